// Package wizard is the four-step assessment form screen.
package wizard

import (
	"context"
	"encoding/json"
	"errors"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/edurisk/internal/assessment"
	"github.com/abhisek/edurisk/internal/router"
	"github.com/abhisek/edurisk/internal/screen"
	"github.com/abhisek/edurisk/internal/ui/components"
	"github.com/abhisek/edurisk/internal/ui/layout"
)

// ReportFactory builds the screen that shows a prediction response.
type ReportFactory func(raw json.RawMessage) screen.Screen

// notice is the message line shown under the form.
type notice struct {
	title   string
	message string
}

// WizardScreen collects answers step by step and submits them.
type WizardScreen struct {
	wiz       *assessment.Wizard
	predictor assessment.Predictor
	newReport ReportFactory
	logger    *zap.Logger

	age        components.TextInput
	attendance components.TextInput
	marks      components.TextInput
	education  components.ChoiceList
	income     components.ChoiceList
	failures   components.ChoiceList
	activities components.Checklist
	behavior   components.ChoiceList

	focus  int
	notice *notice
	spin   spinner.Model
	cancel context.CancelFunc
}

var _ screen.Screen = (*WizardScreen)(nil)
var _ screen.KeyHintProvider = (*WizardScreen)(nil)
var _ screen.StatusProvider = (*WizardScreen)(nil)
var _ screen.Closer = (*WizardScreen)(nil)

// New creates a wizard screen on the first step. logger may be nil.
func New(predictor assessment.Predictor, newReport ReportFactory, logger *zap.Logger) *WizardScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &WizardScreen{
		wiz:       assessment.NewWizard(),
		predictor: predictor,
		newReport: newReport,

		age:        components.NewTextInput("Age", "Enter your age", true, 3),
		attendance: components.NewTextInput("Attendance Percentage", "e.g., 85", true, 6),
		marks:      components.NewTextInput("Academic Marks/Grade (%)", "Enter your overall percentage", true, 6),
		education:  components.NewChoiceList("Parent's Education Level", choices(assessment.EducationOptions())),
		income:     components.NewChoiceList("Family Monthly Income", choices(assessment.IncomeOptions())),
		failures:   components.NewChoiceList("Previous Academic Failures", choices(assessment.FailureOptions())),
		activities: components.NewChecklist("Select all activities you participate in:", activityChoices()),
		behavior:   components.NewChoiceList("How would you rate your behavior in school?", choices(assessment.BehaviorOptions())),

		spin: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	w.logger = logger.With(zap.String("wizard_id", w.wiz.ID()))
	return w
}

func choices(opts []assessment.Option) []components.Choice {
	out := make([]components.Choice, len(opts))
	for i, o := range opts {
		out[i] = components.Choice{Value: o.Token, Label: o.Label, Description: o.Description}
	}
	return out
}

func activityChoices() []components.Choice {
	out := make([]components.Choice, len(assessment.Activities))
	for i, a := range assessment.Activities {
		out[i] = components.Choice{Value: a, Label: a}
	}
	return out
}

func (w *WizardScreen) Init() tea.Cmd {
	return w.applyFocus()
}

func (w *WizardScreen) Title() string {
	return "Student Assessment"
}

// Status shows the step counter in the header.
func (w *WizardScreen) Status() string {
	return w.progress(0).Label
}

func (w *WizardScreen) progress(width int) components.ProgressBar {
	return components.NewStepProgress(int(w.wiz.Step()), assessment.TotalSteps, width)
}

func (w *WizardScreen) KeyHints() []layout.KeyHint {
	if w.wiz.Submitting() {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
	}
	if w.focusedList() {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Select"})
	}
	if w.wiz.Step() > assessment.Step1 {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+B", Description: "Previous"})
	}
	if w.wiz.Step() == assessment.Step4 {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Next Step"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

// Close cancels an outstanding prediction request.
func (w *WizardScreen) Close() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *WizardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return w.handleResult(msg)

	case spinner.TickMsg:
		if !w.wiz.Submitting() {
			return w, nil
		}
		var cmd tea.Cmd
		w.spin, cmd = w.spin.Update(msg)
		return w, cmd

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	// Cursor blink and other input messages.
	return w, w.updateFocused(msg)
}

func (w *WizardScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if w.wiz.Submitting() {
		return w, nil
	}

	switch msg.String() {
	case "tab":
		return w, w.moveFocus(1)
	case "shift+tab":
		return w, w.moveFocus(-1)
	case "ctrl+b":
		w.commit()
		if w.wiz.Previous() {
			w.notice = nil
			w.focus = 0
			return w, w.applyFocus()
		}
		return w, nil
	case "enter":
		w.commit()
		if w.wiz.Step() == assessment.Step4 {
			return w, w.submit()
		}
		return w, w.next()
	case "up", "down":
		if !w.focusedList() {
			if msg.String() == "up" {
				return w, w.moveFocus(-1)
			}
			return w, w.moveFocus(1)
		}
	}

	cmd := w.updateFocused(msg)
	w.commit()
	return w, cmd
}

func (w *WizardScreen) next() tea.Cmd {
	if err := w.wiz.Next(); err != nil {
		w.showError(err)
		return nil
	}
	w.notice = nil
	w.focus = 0
	return w.applyFocus()
}

func (w *WizardScreen) submit() tea.Cmd {
	if w.predictor == nil {
		w.notice = &notice{title: assessment.SubmitFailedTitle, message: assessment.SubmitFailedNotice}
		return nil
	}
	sub, err := w.wiz.BeginSubmit()
	if err != nil {
		w.showError(err)
		return nil
	}
	w.notice = nil
	w.logger.Info("submitting assessment", zap.String("submission_id", sub.ID))

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	predictor := w.predictor
	send := func() tea.Msg {
		raw, err := assessment.Submit(ctx, predictor, sub)
		return submitResultMsg{ID: sub.ID, Raw: raw, Err: err}
	}
	return tea.Batch(w.spin.Tick, send)
}

func (w *WizardScreen) handleResult(msg submitResultMsg) (screen.Screen, tea.Cmd) {
	if !w.wiz.FinishSubmit(msg.ID) {
		w.logger.Debug("ignoring stale prediction response", zap.String("submission_id", msg.ID))
		return w, nil
	}
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}

	if msg.Err != nil {
		w.logger.Warn("prediction request failed", zap.String("submission_id", msg.ID), zap.Error(msg.Err))
		w.showError(msg.Err)
		return w, nil
	}

	w.logger.Info("prediction received", zap.String("submission_id", msg.ID), zap.Int("bytes", len(msg.Raw)))
	if w.newReport == nil {
		return w, func() tea.Msg { return router.PopScreenMsg{} }
	}
	next := w.newReport(msg.Raw)
	return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WizardScreen) showError(err error) {
	var (
		ve *assessment.ValidationError
		fe *assessment.FieldError
		ne *assessment.NetworkError
	)
	switch {
	case errors.As(err, &ve):
		w.notice = &notice{title: assessment.MissingInfoTitle, message: assessment.MissingInfoMessage}
	case errors.As(err, &fe):
		w.notice = &notice{title: "Invalid Information", message: "Please check " + fieldLabel(fe.Field) + "."}
	case errors.As(err, &ne):
		w.notice = &notice{title: assessment.SubmitFailedTitle, message: ne.UserMessage()}
	default:
		w.notice = &notice{title: assessment.SubmitFailedTitle, message: err.Error()}
	}
}

func fieldLabel(field string) string {
	switch field {
	case assessment.FieldAge:
		return "your age"
	case assessment.FieldAttendancePercent:
		return "your attendance percentage"
	case assessment.FieldAverageMarks:
		return "your marks"
	case assessment.FieldParentsEducation:
		return "parent's education level"
	case assessment.FieldFamilyIncome:
		return "family income"
	case assessment.FieldPreviousFailures:
		return "previous failures"
	case assessment.FieldBehavior:
		return "behavior rating"
	default:
		return field
	}
}

// commit copies the widget values into the answer record.
func (w *WizardScreen) commit() {
	_ = w.wiz.Edit(func(a *assessment.Answers) {
		a.Age = w.age.Value()
		a.AttendancePercent = w.attendance.Value()
		a.AverageMarks = w.marks.Value()
		a.ParentsEducation = assessment.EducationLevel(w.education.Value())
		a.FamilyIncome = assessment.IncomeBand(w.income.Value())
		a.PreviousFailures = assessment.FailureCategory(w.failures.Value())
		a.Behavior = assessment.BehaviorRating(w.behavior.Value())

		set := assessment.NewActivitySet()
		for _, name := range assessment.Activities {
			if w.activities.Checked(name) {
				set.Toggle(name)
			}
		}
		a.Extracurriculars = set
	})
}

// fieldCount returns the number of focusable fields on the current step.
func (w *WizardScreen) fieldCount() int {
	switch w.wiz.Step() {
	case assessment.Step1, assessment.Step2:
		return 3
	default:
		return 1
	}
}

func (w *WizardScreen) focusedList() bool {
	return w.wiz.Step() != assessment.Step1
}

func (w *WizardScreen) moveFocus(delta int) tea.Cmd {
	n := w.fieldCount()
	w.focus = (w.focus + delta + n) % n
	return w.applyFocus()
}

// applyFocus focuses the field at w.focus on the current step and blurs
// everything else.
func (w *WizardScreen) applyFocus() tea.Cmd {
	w.age.Blur()
	w.attendance.Blur()
	w.marks.Blur()
	w.education.Focused = false
	w.income.Focused = false
	w.failures.Focused = false
	w.activities.Focused = false
	w.behavior.Focused = false

	switch w.wiz.Step() {
	case assessment.Step1:
		return []*components.TextInput{&w.age, &w.attendance, &w.marks}[w.focus].Focus()
	case assessment.Step2:
		[]*components.ChoiceList{&w.education, &w.income, &w.failures}[w.focus].Focused = true
	case assessment.Step3:
		w.activities.Focused = true
	case assessment.Step4:
		w.behavior.Focused = true
	}
	return nil
}

// updateFocused forwards msg to the focused field.
func (w *WizardScreen) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch w.wiz.Step() {
	case assessment.Step1:
		switch w.focus {
		case 0:
			w.age, cmd = w.age.Update(msg)
		case 1:
			w.attendance, cmd = w.attendance.Update(msg)
		case 2:
			w.marks, cmd = w.marks.Update(msg)
		}
	case assessment.Step2:
		switch w.focus {
		case 0:
			w.education, _ = w.education.Update(msg)
		case 1:
			w.income, _ = w.income.Update(msg)
		case 2:
			w.failures, _ = w.failures.Update(msg)
		}
	case assessment.Step3:
		w.activities, _ = w.activities.Update(msg)
	case assessment.Step4:
		w.behavior, _ = w.behavior.Update(msg)
	}
	return cmd
}
