package predictor

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse indicates the service answered 2xx with a body that is
// not a JSON document.
var ErrInvalidResponse = errors.New("prediction service returned a non-JSON body")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	// Message is the service's "error" field when it sent one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("prediction service returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("prediction service returned status %d", e.StatusCode)
}

// ErrUnavailable indicates the request could not be sent or no response
// was received.
type ErrUnavailable struct {
	Err error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("prediction service unavailable: %v", e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }
