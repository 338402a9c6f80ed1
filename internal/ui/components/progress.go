package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edurisk/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// NewStepProgress creates a progress bar labelled "Step N of M".
func NewStepProgress(step, total, width int) ProgressBar {
	var pct float64
	if total > 0 {
		pct = float64(step) / float64(total)
	}
	return ProgressBar{
		Label:   fmt.Sprintf("Step %d of %d", step, total),
		Percent: pct,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	percentText := fmt.Sprintf("  %d%%", int(p.Percent*100+0.5))
	barWidth := p.Width - lipgloss.Width(result) - len(percentText)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(percentText)
	return result
}
