package prompting

import "context"

// Backend is the generation capability an Engine invokes: given resolved
// prompt text, produce response text, asynchronously via the context,
// fallibly. Implementations report transport errors, malformed upstream
// payloads, and rate limiting as ordinary errors; the engine performs no
// retry or classification of its own.
//
// A Backend is shared, not owned: many engines may hold the same backend
// and invoke it concurrently, so implementations must be safe for
// concurrent use. Cancellation of an in-flight call is delegated entirely
// to the context.
type Backend interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

// CompletionRequest carries the resolved prompt text and an optional
// generation-length hint to a backend.
type CompletionRequest struct {
	// Prompt is the fully resolved text, exactly as returned by Resolve.
	Prompt string

	// MaxTokens is a generation-length hint. Zero means backend default.
	MaxTokens int
}

// BackendFunc adapts a plain function to the Backend interface, the usual
// shape for test doubles.
type BackendFunc func(ctx context.Context, req *CompletionRequest) (string, error)

// Complete implements Backend.
func (f BackendFunc) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	return f(ctx, req)
}
