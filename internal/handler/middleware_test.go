package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClareAI/astra-translate-service/internal/config"
)

func signAPIKey(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(upperTranslator(), nil)

	t.Run("generated when absent", func(t *testing.T) {
		rec := getJSON(router, "/api/health")
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("caller id kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set("X-Request-ID", "req-abc-123")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, "req-abc-123", rec.Header().Get("X-Request-ID"))
	})
}

func TestAPIKeyMiddleware(t *testing.T) {
	const secret = "test-secret"
	router := newTestRouter(upperTranslator(), &config.Config{AuthSecret: secret})

	body := `{"text": "hello", "target_language": "fr"}`

	t.Run("missing key rejected", func(t *testing.T) {
		rec := postJSON(router, "/api/translate", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error": "missing key"}`, rec.Body.String())
	})

	t.Run("garbage key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", "not-a-jwt")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error": "invalid key"}`, rec.Body.String())
	})

	t.Run("wrong scope rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", signAPIKey(t, secret, jwt.MapClaims{"scope": "admin"}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", signAPIKey(t, "other-secret", jwt.MapClaims{"scope": "translate"}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid key accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-Key", signAPIKey(t, secret, jwt.MapClaims{"scope": "translate"}))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("health probe bypasses auth", func(t *testing.T) {
		rec := getJSON(router, "/api/health")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	router := newTestRouter(upperTranslator(), &config.Config{
		RateLimitRPS:   1,
		RateLimitBurst: 1,
	})

	body := `{"text": "hello", "target_language": "fr"}`

	first := postJSON(router, "/api/translate", body)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())

	second := postJSON(router, "/api/translate", body)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error": "rate limit exceeded"}`, second.Body.String())
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	// Probe routes stay reachable while translation is throttled.
	probe := getJSON(router, "/api/health")
	assert.Equal(t, http.StatusOK, probe.Code)
}
