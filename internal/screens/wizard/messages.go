package wizard

import "encoding/json"

// submitResultMsg carries the outcome of a prediction request.
type submitResultMsg struct {
	ID  string
	Raw json.RawMessage
	Err error
}
