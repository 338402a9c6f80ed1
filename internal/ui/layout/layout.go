// Package layout draws the application chrome around the active screen.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edurisk/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the supported minimum.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether screens should drop decorative sections.
func IsCompact(width, height int) bool {
	return width < compactWidth || height < compactHeight
}

// TooSmallMessage asks the user to enlarge the terminal.
func TooSmallMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf(
			"Terminal too small\n\nEduRisk needs at least %d x %d\nCurrent size is %d x %d",
			MinWidth, MinHeight, width, height))
}

// Chrome is the header and footer drawn around a screen.
type Chrome struct {
	Title  string
	Status string // right side of the header, may be empty
	Hints  []KeyHint
}

// Render draws the chrome at the given size and fills the middle with the
// output of body, which receives the space left for content.
func (c Chrome) Render(width, height int, body func(width, height int) string) string {
	if IsTooSmall(width, height) {
		return TooSmallMessage(width, height)
	}

	header := c.header(width)
	footer := c.footer(width)

	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	content := lipgloss.NewStyle().
		Width(width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(body(width, bodyHeight))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

var barStyle = lipgloss.NewStyle().
	Background(theme.BgCard).
	BorderForeground(theme.Border).
	Padding(0, 2)

func (c Chrome) header(width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("EduRisk")
	if c.Title != "" {
		left += theme.Hint.Render("  ›  ") + lipgloss.NewStyle().Foreground(theme.Text).Render(c.Title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(c.Status)

	inner := width - barStyle.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return barStyle.
		Width(width).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (c Chrome) footer(width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	parts := make([]string, 0, len(c.Hints))
	for _, h := range c.Hints {
		parts = append(parts, key.Render(h.Key)+" "+theme.Hint.Render(h.Description))
	}

	return barStyle.
		Width(width).
		Border(lipgloss.NormalBorder(), true, false, false, false).
		Render(strings.Join(parts, theme.Hint.Render("  ·  ")))
}
