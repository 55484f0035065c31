package model

import "context"

// ChatModel is the interface every chat backend implements. The
// conversation loop depends only on this contract, which keeps the loop
// testable with scripted models.
type ChatModel interface {
	// Complete sends the full conversation history plus the tool catalog
	// and returns the model's next step.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// IsAvailable reports whether the backend is configured and reachable
	// enough to attempt a request.
	IsAvailable() bool

	// Name returns the model identifier for logging.
	Name() string
}
