// Package model provides the text generation capability used by the
// translation pipeline, with interchangeable engine backends.
package model

import "context"

// GenerationParams are the decoding settings for one generation call.
type GenerationParams struct {
	MaxNewTokens  int     `json:"max_new_tokens"`
	NumBeams      int     `json:"num_beams"`
	LengthPenalty float64 `json:"length_penalty"`
}

// DefaultGenerationParams returns the decoding settings used for
// translation: beam search with 5 beams, no length bias, and room for
// long outputs.
func DefaultGenerationParams() GenerationParams {
	return GenerationParams{
		MaxNewTokens:  1024,
		NumBeams:      5,
		LengthPenalty: 1.0,
	}
}

// GenerationRequest is a single generation call. SourceTag and TargetTag
// are locale tags such as "eng_Latn"; the target tag is also the token the
// decoder is forced to start with, which is how the model family selects
// its output language.
type GenerationRequest struct {
	Text      string
	SourceTag string
	TargetTag string
	Params    GenerationParams
}

// Translator is the generation capability consumed by the translation
// service. Implementations must be safe for concurrent use.
type Translator interface {
	// Generate produces the translated text for one request.
	Generate(ctx context.Context, req GenerationRequest) (string, error)

	// CheckHealth verifies the backend is ready to serve.
	CheckHealth(ctx context.Context) error
}

// TranslatorFunc adapts a plain function to the Translator interface.
// Useful for tests and small inline backends.
type TranslatorFunc func(ctx context.Context, req GenerationRequest) (string, error)

// Generate calls f.
func (f TranslatorFunc) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	return f(ctx, req)
}

// CheckHealth always succeeds for function-backed translators.
func (f TranslatorFunc) CheckHealth(ctx context.Context) error {
	return nil
}
