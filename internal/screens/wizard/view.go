package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/edurisk/internal/assessment"
	"github.com/abhisek/edurisk/internal/ui/components"
	"github.com/abhisek/edurisk/internal/ui/theme"
)

func (w *WizardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, w.progress(cw).View())
	sections = append(sections, theme.Title.Width(cw).Render(w.wiz.Step().Title()))
	sections = append(sections, components.Card(w.renderStep(), cw))
	sections = append(sections, w.renderButtons(cw))

	if w.wiz.Submitting() {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(w.spin.View()+" Analyzing..."))
	} else if w.notice != nil {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(theme.Notice.Render(w.notice.title)+"\n"+theme.Body.Render(w.notice.message)))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n\n"))
}

func (w *WizardScreen) renderStep() string {
	switch w.wiz.Step() {
	case assessment.Step1:
		return strings.Join([]string{w.age.View(), w.attendance.View(), w.marks.View()}, "\n\n")
	case assessment.Step2:
		return strings.Join([]string{
			collapsed(w.education),
			collapsed(w.income),
			collapsed(w.failures),
		}, "\n\n")
	case assessment.Step3:
		return w.activities.View()
	case assessment.Step4:
		return w.behavior.View()
	}
	return ""
}

// collapsed shows an unfocused list as a single summary line so the three
// step-two questions fit on one screen.
func collapsed(c components.ChoiceList) string {
	if c.Focused {
		return c.View()
	}
	value := theme.Hint.Render("not selected")
	for _, o := range c.Options {
		if o.Value == c.Value() {
			value = theme.Body.Render(o.Label)
		}
	}
	return theme.Label.Render(c.Prompt) + "\n  " + value
}

func (w *WizardScreen) renderButtons(cw int) string {
	prev := components.Button("Previous", false, w.wiz.Step() == assessment.Step1)
	label := "Next Step"
	if w.wiz.Step() == assessment.Step4 {
		label = "Submit Assessment"
	}
	next := components.Button(label, !w.wiz.Submitting(), w.wiz.Submitting())

	gap := cw - lipgloss.Width(prev) - lipgloss.Width(next)
	if gap < 1 {
		gap = 1
	}
	return prev + strings.Repeat(" ", gap) + next
}
