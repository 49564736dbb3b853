package handler

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClareAI/astra-translate-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func dialStream(t *testing.T, serverURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/api/translate/stream"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	return conn
}

func TestStreamTranslate(t *testing.T) {
	server := httptest.NewServer(newTestRouter(upperTranslator(), nil))
	defer server.Close()

	conn := dialStream(t, server.URL)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(StreamRequest{
		ID:             "frame-1",
		Text:           strPtr("hello"),
		TargetLanguage: strPtr("fr"),
	}))

	var resp StreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "frame-1", resp.ID)
	assert.Equal(t, "HELLO", resp.TranslatedText)
	assert.Equal(t, "en", resp.SourceLanguage)
	assert.Equal(t, "fr", resp.TargetLanguage)
	assert.Empty(t, resp.Error)
}

func TestStreamMissingFieldKeepsConnection(t *testing.T) {
	server := httptest.NewServer(newTestRouter(upperTranslator(), nil))
	defer server.Close()

	conn := dialStream(t, server.URL)
	defer conn.Close()

	// A bad frame comes back as an error frame, not a closed connection.
	require.NoError(t, conn.WriteJSON(StreamRequest{ID: "bad", Text: strPtr("hello")}))

	var resp StreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "bad", resp.ID)
	assert.Equal(t, domain.MissingFieldTarget, resp.Error)

	// The next frame still translates.
	require.NoError(t, conn.WriteJSON(StreamRequest{
		ID:             "good",
		Text:           strPtr("world"),
		TargetLanguage: strPtr("es"),
	}))

	resp = StreamResponse{}
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "good", resp.ID)
	assert.Equal(t, "WORLD", resp.TranslatedText)
	assert.Equal(t, "es", resp.TargetLanguage)
	assert.Empty(t, resp.Error)
}

func TestStreamGenerationFailure(t *testing.T) {
	server := httptest.NewServer(newTestRouter(unhealthyTranslator{}, nil))
	defer server.Close()

	conn := dialStream(t, server.URL)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(StreamRequest{
		ID:             "frame-1",
		Text:           strPtr("hello"),
		TargetLanguage: strPtr("fr"),
	}))

	var resp StreamResponse
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "frame-1", resp.ID)
	assert.Equal(t, "engine offline", resp.Error)
	assert.Empty(t, resp.TranslatedText)
}
