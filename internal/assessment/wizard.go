package assessment

import (
	"github.com/google/uuid"
)

// Step is a page of the assessment wizard.
type Step int

const (
	Step1 Step = iota + 1 // Basic information
	Step2                 // Family background
	Step3                 // Extracurricular activities
	Step4                 // Behavioral assessment
)

// TotalSteps is the number of wizard pages.
const TotalSteps = 4

// Steps returns all steps in order.
func Steps() []Step {
	return []Step{Step1, Step2, Step3, Step4}
}

// Title returns the page heading for the step.
func (s Step) Title() string {
	switch s {
	case Step1:
		return "Basic Information"
	case Step2:
		return "Family Background"
	case Step3:
		return "Extracurricular Activities"
	case Step4:
		return "Behavioral Assessment"
	default:
		return ""
	}
}

// edge lists the neighbours of a step. A zero Step means no transition.
type edge struct {
	next Step
	prev Step
}

var transitions = map[Step]edge{
	Step1: {next: Step2},
	Step2: {next: Step3, prev: Step1},
	Step3: {next: Step4, prev: Step2},
	Step4: {prev: Step3},
}

// Submission is a payload that has been accepted for sending.
type Submission struct {
	ID      string
	Payload Payload
}

// Wizard is the step controller. It owns the answer record for its lifetime
// and is not safe for concurrent use; callers drive it from a single event loop.
type Wizard struct {
	id       string
	step     Step
	answers  Answers
	inFlight string // id of the outstanding submission, empty when idle
}

// NewWizard returns a wizard on Step1 with empty answers.
func NewWizard() *Wizard {
	return &Wizard{
		id:      uuid.NewString(),
		step:    Step1,
		answers: Answers{Extracurriculars: NewActivitySet()},
	}
}

// ID identifies this wizard instance.
func (w *Wizard) ID() string { return w.id }

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Answers returns a copy of the current answers.
func (w *Wizard) Answers() Answers { return w.answers.Clone() }

// Submitting reports whether a submission is outstanding.
func (w *Wizard) Submitting() bool { return w.inFlight != "" }

// Progress returns the completed fraction shown in the progress bar.
func (w *Wizard) Progress() float64 {
	return float64(w.step) / float64(TotalSteps)
}

// Edit applies fn to the answer record. Edits are refused while a
// submission is outstanding.
func (w *Wizard) Edit(fn func(a *Answers)) error {
	if w.Submitting() {
		return ErrSubmitInFlight
	}
	fn(&w.answers)
	if w.answers.Extracurriculars == nil {
		w.answers.Extracurriculars = NewActivitySet()
	}
	return nil
}

// Next advances one step when the current step validates. On failure the
// step is unchanged and the *ValidationError is returned.
func (w *Wizard) Next() error {
	if w.Submitting() {
		return ErrSubmitInFlight
	}
	e := transitions[w.step]
	if e.next == 0 {
		return ErrFinalStep
	}
	if err := ValidateStep(w.step, w.answers); err != nil {
		return err
	}
	w.step = e.next
	return nil
}

// Previous moves back one step without validation. It returns false on Step1
// and while a submission is outstanding.
func (w *Wizard) Previous() bool {
	if w.Submitting() {
		return false
	}
	e := transitions[w.step]
	if e.prev == 0 {
		return false
	}
	w.step = e.prev
	return true
}

// BeginSubmit validates the final step, encodes the answers and marks the
// wizard as submitting. Only one submission may be outstanding at a time.
func (w *Wizard) BeginSubmit() (Submission, error) {
	if w.Submitting() {
		return Submission{}, ErrSubmitInFlight
	}
	if w.step != Step4 {
		return Submission{}, ErrNotFinalStep
	}
	if err := ValidateStep(w.step, w.answers); err != nil {
		return Submission{}, err
	}
	p, err := BuildPayload(w.answers)
	if err != nil {
		return Submission{}, err
	}
	if err := p.Validate(); err != nil {
		return Submission{}, err
	}

	sub := Submission{ID: uuid.NewString(), Payload: p}
	w.inFlight = sub.ID
	return sub, nil
}

// FinishSubmit resolves the outstanding submission. It returns false, and
// changes nothing, when id does not match it (a stale response). The step
// and answers are kept either way so a failed submission can be retried.
func (w *Wizard) FinishSubmit(id string) bool {
	if id == "" || id != w.inFlight {
		return false
	}
	w.inFlight = ""
	return true
}
