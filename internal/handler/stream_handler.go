package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/ClareAI/astra-translate-service/internal/domain"
	"github.com/ClareAI/astra-translate-service/internal/metrics"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// streamReadTimeout closes idle connections that stop ponging.
	streamReadTimeout = 120 * time.Second

	// streamFrameTimeout bounds a single translation frame.
	streamFrameTimeout = 120 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamHandler serves translation over a WebSocket connection so clients
// can push many texts without per-request connection overhead.
type StreamHandler struct {
	service *translate.Service
}

// StreamRequest is one inbound frame. The optional ID is echoed back so
// callers can correlate responses.
type StreamRequest struct {
	ID             string  `json:"id,omitempty"`
	Text           *string `json:"text"`
	TargetLanguage *string `json:"target_language"`
	SourceLanguage *string `json:"source_language,omitempty"`
}

// StreamResponse is one outbound frame, either a result or an error.
type StreamResponse struct {
	ID             string `json:"id,omitempty"`
	TranslatedText string `json:"translated_text,omitempty"`
	SourceLanguage string `json:"source_language,omitempty"`
	TargetLanguage string `json:"target_language,omitempty"`
	Error          string `json:"error,omitempty"`
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(service *translate.Service) *StreamHandler {
	return &StreamHandler{
		service: service,
	}
}

// SetupStreamRoutes sets up the WebSocket translation route
func (h *StreamHandler) SetupStreamRoutes(router *mux.Router) {
	router.HandleFunc("/translate/stream", h.Stream).Methods("GET")
	logger.Base().Info("stream endpoint registered", zap.String("path", "/api/translate/stream"))
}

// Stream upgrades the connection and serves translation frames until the
// client disconnects. Frames are processed in arrival order; gorilla
// connections allow only one concurrent writer.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Base().Error("websocket upgrade failed", zap.Error(err))
		return
	}

	h.handleConnection(r.Context(), conn)
}

func (h *StreamHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	logger.Base().Info("stream connection established", zap.String("remote", conn.RemoteAddr().String()))

	conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
		return nil
	})

	for {
		var req StreamRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Base().Error("stream read error", zap.Error(err))
			} else {
				logger.Base().Info("stream connection closed", zap.String("remote", conn.RemoteAddr().String()))
			}
			return
		}

		conn.SetReadDeadline(time.Now().Add(streamReadTimeout))
		h.sendResponse(conn, h.handleFrame(ctx, req))
	}
}

// handleFrame translates one frame, mapping failures onto error frames the
// same way the request surface does. It never returns without a frame.
func (h *StreamHandler) handleFrame(ctx context.Context, req StreamRequest) StreamResponse {
	if req.Text == nil {
		return StreamResponse{ID: req.ID, Error: domain.MissingFieldText}
	}
	if req.TargetLanguage == nil {
		return StreamResponse{ID: req.ID, Error: domain.MissingFieldTarget}
	}

	var sourceCode string
	if req.SourceLanguage != nil {
		sourceCode = *req.SourceLanguage
	}

	frameCtx, cancel := context.WithTimeout(ctx, streamFrameTimeout)
	defer cancel()

	start := time.Now()
	result, err := h.service.Translate(frameCtx, domain.Request{
		Text:       *req.Text,
		TargetCode: *req.TargetLanguage,
		SourceCode: sourceCode,
	})
	if err != nil {
		metrics.RecordRequest(metrics.SurfaceStream, false, time.Since(start), len(*req.Text), 0)
		_, message := failureStatus(err)
		return StreamResponse{ID: req.ID, Error: message}
	}

	metrics.RecordRequest(metrics.SurfaceStream, true, time.Since(start), len(*req.Text), len(result.TranslatedText))

	return StreamResponse{
		ID:             req.ID,
		TranslatedText: result.TranslatedText,
		SourceLanguage: result.SourceCode,
		TargetLanguage: result.TargetCode,
	}
}

func (h *StreamHandler) sendResponse(conn *websocket.Conn, resp StreamResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		logger.Base().Error("stream write error", zap.Error(err))
	}
}
