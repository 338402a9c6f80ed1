package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edurisk/internal/ui/components"
	"github.com/abhisek/edurisk/internal/ui/layout"
	"github.com/abhisek/edurisk/internal/ui/theme"
)

const bannerFull = `███████╗██████╗ ██╗   ██╗██████╗ ██╗███████╗██╗  ██╗
██╔════╝██╔══██╗██║   ██║██╔══██╗██║██╔════╝██║ ██╔╝
█████╗  ██║  ██║██║   ██║██████╔╝██║███████╗█████╔╝
██╔══╝  ██║  ██║██║   ██║██╔══██╗██║╚════██║██╔═██╗
███████╗██████╔╝╚██████╔╝██║  ██║██║███████║██║  ██╗
╚══════╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚═╝  ╚═╝`

const bannerCompact = "E · D · U · R · I · S · K"

var features = []struct{ title, text string }{
	{"AI Analysis", "Machine learning predicts dropout risk"},
	{"Personalized Support", "Counseling tailored to each student"},
	{"Early Intervention", "Spot at-risk students in time"},
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height)
	cw := components.ContentWidth(width)
	center := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center)

	var sections []string

	banner := bannerFull
	if compact {
		banner = bannerCompact
	}
	sections = append(sections,
		center.Render(theme.Title.Render(banner)),
		center.Render(theme.Subtitle.Render("AI-Powered Student Counseling System")))

	if !compact {
		sections = append(sections, renderFeatures(cw))
	}

	sections = append(sections, h.menu.View(cw))

	if line := h.statusLine(); line != "" {
		sections = append(sections, center.Render(line))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func renderFeatures(cw int) string {
	lines := make([]string, 0, len(features))
	for _, f := range features {
		lines = append(lines, theme.Label.Render("• "+f.title)+"  "+theme.Hint.Render(f.text))
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func (h *HomeScreen) statusLine() string {
	switch {
	case h.checking:
		return theme.Hint.Render("Checking prediction service...")
	case h.status == nil:
		return ""
	case h.status.Err != nil:
		return theme.Notice.Render("✗ Prediction service unreachable")
	}

	hs := h.status.Health
	model := "model not loaded"
	style := theme.RiskHigh
	if hs.ModelLoaded {
		model = "model loaded"
		style = theme.RiskLow
	}
	status := hs.Status
	if status == "" {
		status = "unknown"
	}
	return style.Render("● Service " + status + ", " + model)
}
