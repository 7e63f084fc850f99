// Package llm drives text generation against remote chat-completion
// providers. A Driver wraps a primary and optional fallback Provider and
// handles sentinel-based truncation detection, bounded continuation calls,
// and post-stitch tail hygiene. Provider failures surface as "LLM Error:"
// answer strings rather than errors so callers always have text to return.
package llm

import (
	"context"
	"time"
)

// EndMarker is the sentinel the generator is asked to finish with. Its
// absence after a call signals a truncated response.
const EndMarker = "<<END_OF_RESPONSE>>"

// Chat roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single chat turn sent to a provider.
type Message struct {
	Role    string
	Content string
}

// Provider is a single chat-completion backend.
type Provider interface {
	// Complete sends one chat-completion call and returns the generated text.
	Complete(ctx context.Context, messages []Message, maxTokens int) (string, error)
	// Label identifies the provider and model, e.g. "HuggingFace/zai-org/GLM-4.5:novita".
	Label() string
}

// withTimeout applies the per-call deadline providers are configured with.
// A non-positive duration leaves the context unchanged.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
