package envelope

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClareAI/astra-translate-service/internal/cache"
	"github.com/ClareAI/astra-translate-service/internal/core/language"
	"github.com/ClareAI/astra-translate-service/internal/core/model"
	"github.com/ClareAI/astra-translate-service/internal/metrics"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
)

func newProcessor(tr model.Translator) *Processor {
	resolver := language.NewResolver(language.DetectorFunc(func(string) (string, bool) {
		return "en", true
	}))
	svc := translate.NewService(tr, resolver, cache.NoopCache{})
	return NewProcessor(svc, metrics.SurfacePubSub)
}

func upperTranslator() model.Translator {
	return model.TranslatorFunc(func(ctx context.Context, req model.GenerationRequest) (string, error) {
		return strings.ToUpper(req.Text), nil
	})
}

func TestProcessSuccess(t *testing.T) {
	p := newProcessor(upperTranslator())

	out := p.Process(context.Background(), []byte(`{
		"input": {"text": "hello", "target_language": "fr", "source_language": "en"}
	}`))

	resp, ok := out.(Response)
	require.True(t, ok, "expected a success response, got %#v", out)
	assert.Equal(t, "HELLO", resp.TranslatedText)
	assert.Equal(t, "en", resp.SourceLanguage)
	assert.Equal(t, "fr", resp.TargetLanguage)
}

func TestProcessMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{
			name:    "missing text",
			payload: `{"input": {"target_language": "fr"}}`,
			wantErr: "Missing required field: text",
		},
		{
			name:    "missing target_language",
			payload: `{"input": {"text": "hello"}}`,
			wantErr: "Missing required field: target_language",
		},
		{
			name:    "empty input",
			payload: `{"input": {}}`,
			wantErr: "Missing required field: text",
		},
		{
			name:    "no input key",
			payload: `{}`,
			wantErr: "Missing required field: text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProcessor(upperTranslator())

			out := p.Process(context.Background(), []byte(tt.payload))

			resp, ok := out.(ErrorResponse)
			require.True(t, ok, "expected an error response, got %#v", out)
			assert.Equal(t, tt.wantErr, resp.Error)

			// Validation errors carry no language fields on the wire.
			data, err := json.Marshal(resp)
			require.NoError(t, err)
			assert.JSONEq(t, `{"error": "`+tt.wantErr+`"}`, string(data))
		})
	}
}

func TestProcessEmptyTextIsValid(t *testing.T) {
	p := newProcessor(upperTranslator())

	out := p.Process(context.Background(), []byte(`{
		"input": {"text": "", "target_language": "fr"}
	}`))

	resp, ok := out.(Response)
	require.True(t, ok, "empty text is present, so the request is valid; got %#v", out)
	assert.Equal(t, "", resp.TranslatedText)
	assert.Equal(t, "en", resp.SourceLanguage)
	assert.Equal(t, "fr", resp.TargetLanguage)
}

func TestProcessMalformedJSON(t *testing.T) {
	p := newProcessor(upperTranslator())

	out := p.Process(context.Background(), []byte(`{"input": `))

	resp, ok := out.(ErrorResponse)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(resp.Error, "Error processing request: "), "got %q", resp.Error)
}

func TestProcessUnsupportedTargetSubstituted(t *testing.T) {
	p := newProcessor(upperTranslator())

	out := p.Process(context.Background(), []byte(`{
		"input": {"text": "hello", "target_language": "tlh", "source_language": "en"}
	}`))

	resp, ok := out.(Response)
	require.True(t, ok, "unsupported targets are substituted, never rejected; got %#v", out)
	assert.Equal(t, "en", resp.TargetLanguage)
}

func TestProcessTranslationFailure(t *testing.T) {
	failing := model.TranslatorFunc(func(ctx context.Context, req model.GenerationRequest) (string, error) {
		return "", errors.New("model timed out")
	})
	p := newProcessor(failing)

	out := p.Process(context.Background(), []byte(`{
		"input": {"text": "hello", "target_language": "fr", "source_language": "en"}
	}`))

	resp, ok := out.(ErrorResponse)
	require.True(t, ok)
	assert.Equal(t, "Translation error: model timed out", resp.Error)
	assert.Equal(t, "en", resp.SourceLanguage)
	assert.Equal(t, "fr", resp.TargetLanguage)
}

func TestProcessPanicBecomesError(t *testing.T) {
	exploding := model.TranslatorFunc(func(ctx context.Context, req model.GenerationRequest) (string, error) {
		panic("weights corrupted")
	})
	p := newProcessor(exploding)

	out := p.Process(context.Background(), []byte(`{
		"input": {"text": "hello", "target_language": "fr", "source_language": "en"}
	}`))

	resp, ok := out.(ErrorResponse)
	require.True(t, ok)
	assert.Contains(t, resp.Error, "weights corrupted")
	assert.Equal(t, "en", resp.SourceLanguage)
	assert.Equal(t, "fr", resp.TargetLanguage)
}
