package llm

import (
	"context"
	"errors"
)

// Client abstracts completion providers.
type Client interface {
	// Complete returns the generated text for prompt, capped at maxTokens output tokens.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient stands in when no provider credentials are available.
// Every call fails, so guarded stages degrade to their fallback text.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(context.Context, string, int) (string, error) {
	return "", ErrNotConfigured
}
