// Package report is the screen that renders a prediction result.
package report

import (
	"encoding/json"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	rep "github.com/abhisek/edurisk/internal/report"
	"github.com/abhisek/edurisk/internal/router"
	"github.com/abhisek/edurisk/internal/screen"
	"github.com/abhisek/edurisk/internal/ui/components"
	"github.com/abhisek/edurisk/internal/ui/layout"
	"github.com/abhisek/edurisk/internal/ui/theme"
)

// ReportScreen shows the interpreted prediction.
type ReportScreen struct {
	report       rep.Report
	newWizard    func() screen.Screen
	scrollOffset int
	lines        int
	height       int
}

var _ screen.Screen = (*ReportScreen)(nil)
var _ screen.KeyHintProvider = (*ReportScreen)(nil)

// New interprets raw and builds the screen. newWizard starts a fresh
// assessment and may be nil.
func New(raw json.RawMessage, newWizard func() screen.Screen) *ReportScreen {
	return &ReportScreen{report: rep.Interpret(raw), newWizard: newWizard}
}

// Report returns the interpreted report.
func (s *ReportScreen) Report() rep.Report {
	return s.report
}

func (s *ReportScreen) Init() tea.Cmd {
	return nil
}

func (s *ReportScreen) Title() string {
	return rep.Heading
}

func (s *ReportScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.report.Available {
		hints = append(hints, layout.KeyHint{Key: "↑↓", Description: "Scroll"})
	}
	if s.newWizard != nil {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "New Assessment"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *ReportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < s.maxOffset() {
			s.scrollOffset++
		}
	case "n", "N":
		if s.newWizard != nil {
			next := s.newWizard()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ReportScreen) maxOffset() int {
	return max(0, s.lines-s.height)
}

func (s *ReportScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if !s.report.Available {
		body := theme.Title.Width(cw).Render(rep.NoDataTitle) + "\n\n" +
			theme.Subtitle.Width(cw).Render(rep.NoDataMessage)
		return components.Frame(body, width, height)
	}

	content := s.render(cw)
	all := strings.Split(content, "\n")
	s.lines = len(all)
	s.height = height
	s.scrollOffset = min(s.scrollOffset, s.maxOffset())

	visible := all[s.scrollOffset:min(len(all), s.scrollOffset+height)]
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(visible, "\n"))
}

func (s *ReportScreen) render(cw int) string {
	r := s.report
	var sections []string

	sections = append(sections,
		theme.Title.Width(cw).Render(rep.Heading)+"\n"+theme.Subtitle.Width(cw).Render(rep.Subheading))

	riskStyle := theme.RiskLow
	icon := "✓"
	if r.HighRisk {
		riskStyle = theme.RiskHigh
		icon = "⚠"
	}
	headline := riskStyle.Render(icon+" "+r.Headline()) + "\n" +
		theme.Body.Render("Prediction Confidence: ") + theme.Label.Render(r.ConfidenceText()) + "\n" +
		theme.Hint.Render(r.Interpretation())
	sections = append(sections, components.Card(headline, cw))

	if len(r.Panels) > 0 {
		sections = append(sections, theme.Label.Render("Detailed Analysis")+"\n"+renderPanels(r.Panels, cw))
	}

	if len(r.Recommendations) > 0 {
		var b strings.Builder
		b.WriteString(theme.Label.Render("Personalized Recommendations"))
		for _, rec := range r.Recommendations {
			b.WriteString("\n" + theme.Selected.Render(strconv.Itoa(rec.Number)+".") + " " +
				lipgloss.NewStyle().Width(cw-12).Render(rec.Text))
		}
		sections = append(sections, components.Card(b.String(), cw))
	}

	if len(r.Summary) > 0 {
		var b strings.Builder
		b.WriteString(theme.Label.Render("Assessment Summary"))
		for _, f := range r.Summary {
			b.WriteString("\n" + theme.Hint.Render(f.Label+": ") + theme.Body.Render(f.Value))
		}
		sections = append(sections, components.Card(b.String(), cw))
	}

	sections = append(sections, theme.Hint.Width(cw).Render(rep.Disclaimer))
	return strings.Join(sections, "\n\n")
}

func renderPanels(panels []rep.Panel, cw int) string {
	w := cw/len(panels) - 2
	boxes := make([]string, 0, len(panels))
	for _, p := range panels {
		style := theme.PanelWarning
		if p.Positive {
			style = theme.PanelPositive
		}
		boxes = append(boxes, style.Width(w).Render(theme.Hint.Render(p.Title)+"\n"+theme.Label.Render(p.Value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}
