package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClareAI/astra-translate-service/internal/cache"
	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/internal/core/language"
	"github.com/ClareAI/astra-translate-service/internal/core/model"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
)

func upperTranslator() model.Translator {
	return model.TranslatorFunc(func(ctx context.Context, req model.GenerationRequest) (string, error) {
		return strings.ToUpper(req.Text), nil
	})
}

// unhealthyTranslator fails both generation and health checks.
type unhealthyTranslator struct{}

func (unhealthyTranslator) Generate(ctx context.Context, req model.GenerationRequest) (string, error) {
	return "", errors.New("engine offline")
}

func (unhealthyTranslator) CheckHealth(ctx context.Context) error {
	return errors.New("engine offline")
}

func newTestRouter(tr model.Translator, cfg *config.Config) *mux.Router {
	if cfg == nil {
		cfg = &config.Config{}
	}
	resolver := language.NewResolver(language.DetectorFunc(func(string) (string, bool) {
		return "en", true
	}))
	svc := translate.NewService(tr, resolver, cache.NoopCache{})

	router := mux.NewRouter()
	NewHandlerManager(cfg, svc).SetupAllRoutes(router)
	return router
}

func postJSON(router *mux.Router, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getJSON(router *mux.Router, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestTranslateEndpointSuccess(t *testing.T) {
	router := newTestRouter(upperTranslator(), nil)

	rec := postJSON(router, "/api/translate", `{"text": "hello", "target_language": "fr", "source_language": "en"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "HELLO", resp.TranslatedText)
	assert.Equal(t, "en", resp.SourceLanguage)
	assert.Equal(t, "fr", resp.TargetLanguage)
}

func TestTranslateEndpointDetectsSource(t *testing.T) {
	router := newTestRouter(upperTranslator(), nil)

	rec := postJSON(router, "/api/translate", `{"text": "hello", "target_language": "de"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.SourceLanguage, "detected source should be reported")
	assert.Equal(t, "de", resp.TargetLanguage)
}

func TestTranslateEndpointMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing text",
			body: `{"target_language": "fr"}`,
			want: "Missing required field: text",
		},
		{
			name: "missing target_language",
			body: `{"text": "hello"}`,
			want: "Missing required field: target_language",
		},
		{
			name: "empty object reports text first",
			body: `{}`,
			want: "Missing required field: text",
		},
	}

	router := newTestRouter(upperTranslator(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(router, "/api/translate", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error": "`+tt.want+`"}`, rec.Body.String())
		})
	}
}

func TestTranslateEndpointEmptyTextSucceeds(t *testing.T) {
	router := newTestRouter(upperTranslator(), nil)

	rec := postJSON(router, "/api/translate", `{"text": "", "target_language": "fr"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.TranslatedText)
	assert.Equal(t, "fr", resp.TargetLanguage)
}

func TestTranslateEndpointMalformedJSON(t *testing.T) {
	router := newTestRouter(upperTranslator(), nil)

	rec := postJSON(router, "/api/translate", `{"text": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp["error"], "Invalid request body:"), "got %q", resp["error"])
}

func TestTranslateEndpointUnsupportedTargetSubstituted(t *testing.T) {
	router := newTestRouter(upperTranslator(), nil)

	rec := postJSON(router, "/api/translate", `{"text": "hello", "target_language": "xx"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TranslateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "en", resp.TargetLanguage, "unsupported target falls back to the default")
	assert.Equal(t, "HELLO", resp.TranslatedText)
}

func TestTranslateEndpointGenerationFailure(t *testing.T) {
	router := newTestRouter(unhealthyTranslator{}, nil)

	rec := postJSON(router, "/api/translate", `{"text": "hello", "target_language": "fr"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "engine offline"}`, rec.Body.String())
}

func TestTranslateEndpointRejectsNonJSONContentType(t *testing.T) {
	router := newTestRouter(upperTranslator(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader("text=hello"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "Content-Type must be application/json")
}
