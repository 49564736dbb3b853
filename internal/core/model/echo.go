package model

import "context"

// EchoTranslator returns the input text unchanged. It stands in for the
// real model during local development and in tests, where running an
// inference server is not practical.
type EchoTranslator struct{}

// NewEchoTranslator creates an echo backend.
func NewEchoTranslator() *EchoTranslator {
	return &EchoTranslator{}
}

// Generate returns the request text as-is.
func (t *EchoTranslator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	return req.Text, nil
}

// CheckHealth always succeeds.
func (t *EchoTranslator) CheckHealth(ctx context.Context) error {
	return nil
}
