package assessment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSubmitInFlight is returned when the wizard already has an
	// outstanding submission.
	ErrSubmitInFlight = errors.New("a submission is already in progress")

	// ErrFinalStep is returned by Next on the last step.
	ErrFinalStep = errors.New("already on the final step")

	// ErrNotFinalStep is returned by BeginSubmit before the last step.
	ErrNotFinalStep = errors.New("submission is only available on the final step")
)

// Notice titles and messages shown to the user.
const (
	MissingInfoTitle   = "Missing Information"
	MissingInfoMessage = "Please fill in all required fields before proceeding."
	SubmitFailedTitle  = "Error"
	SubmitFailedNotice = "Something went wrong while submitting your data. Please try again."
)

// ValidationError reports the fields that block leaving a step.
type ValidationError struct {
	Step   Step
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d incomplete: missing %s", int(e.Step), strings.Join(e.Fields, ", "))
}

// FieldError reports an answer that cannot be encoded for submission.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("field %q: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("field %q (%q): %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

var (
	errUnset        = errors.New("not set")
	errUnrecognized = errors.New("unrecognized value")
	errNotNumeric   = errors.New("not a finite number")
)

// NetworkError wraps any failure of the outbound prediction request.
// Its Error text is safe to log; UserMessage is what the user sees.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("prediction request failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage returns the generic failure notice.
func (e *NetworkError) UserMessage() string {
	return SubmitFailedNotice
}
