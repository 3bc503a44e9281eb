package llm

import (
	"context"
	"errors"
)

// Client abstracts the generative model provider. Generate performs exactly
// one model call for the given prompt; it does not retry. Cancellation and
// timeouts are the caller's responsibility via ctx.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrUnavailable indicates no provider is configured.
	ErrUnavailable = errors.New("ai features unavailable")
	// ErrRefused indicates the model declined to produce content,
	// e.g. safety-filtered or empty output.
	ErrRefused = errors.New("model declined to produce content")
)

// Disabled is the Client wired when no API key is configured.
// Every call fails fast with ErrUnavailable.
type Disabled struct{}

// Generate returns ErrUnavailable without attempting a call.
func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrUnavailable
}
