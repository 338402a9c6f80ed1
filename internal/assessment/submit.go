package assessment

import (
	"context"
	"encoding/json"
)

// Predictor sends an encoded payload to the prediction service and returns
// the raw JSON response.
type Predictor interface {
	Predict(ctx context.Context, p Payload) (json.RawMessage, error)
}

// Submit sends the submission exactly once. Any failure is returned as a
// *NetworkError; the response is returned unaltered on success.
func Submit(ctx context.Context, p Predictor, sub Submission) (json.RawMessage, error) {
	raw, err := p.Predict(ctx, sub.Payload)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	return raw, nil
}
