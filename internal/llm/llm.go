package llm

import (
	"context"
	"errors"
)

// Client abstracts the hosted generative-text provider.
type Client interface {
	Summarize(ctx context.Context, input SummarizeInput) (Result, error)
}

// SummarizeInput captures the inputs for one summarization call.
type SummarizeInput struct {
	DocumentText string
}

// Result holds the model's raw free-form output. Truncated reports whether
// the document text exceeded the prompt character budget and was cut.
type Result struct {
	Text      string
	Truncated bool
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Summarize returns ErrNotConfigured.
func (PlaceholderClient) Summarize(ctx context.Context, input SummarizeInput) (Result, error) {
	_ = ctx
	_ = input
	return Result{}, ErrNotConfigured
}
