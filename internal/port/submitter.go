package port

import "context"

// Submitter delivers a form payload to the submission endpoint
type Submitter interface {
	// Submit posts payload and returns an error for any transport failure
	// or non-success response
	Submit(ctx context.Context, payload map[string]string) error
}
