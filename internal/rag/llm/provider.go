package llm

import (
	"context"
	"errors"
)

// ErrMissingCredential is returned by a provider whose API key is not configured.
var ErrMissingCredential = errors.New("llm api key is not configured")

// ErrEmptyResponse is returned when the provider answered without any text.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// Provider sends one prompt and returns one textual answer. No streaming, no retries.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// KeyFunc resolves the credential at call time.
type KeyFunc func() string
