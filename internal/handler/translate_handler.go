package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ClareAI/astra-translate-service/internal/domain"
	"github.com/ClareAI/astra-translate-service/internal/metrics"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TranslateHandler handles HTTP translation requests
type TranslateHandler struct {
	service *translate.Service
}

// TranslateRequest is the POST /api/translate body. Pointer fields
// distinguish an absent key from an empty string so missing-field
// validation reports the right field.
type TranslateRequest struct {
	Text           *string `json:"text"`
	TargetLanguage *string `json:"target_language"`
	SourceLanguage *string `json:"source_language,omitempty"`
}

// TranslateResponse is the success body for POST /api/translate
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// NewTranslateHandler creates a new translate handler
func NewTranslateHandler(service *translate.Service) *TranslateHandler {
	return &TranslateHandler{
		service: service,
	}
}

// SetupTranslateRoutes sets up routes for translation
func (h *TranslateHandler) SetupTranslateRoutes(router *mux.Router) {
	router.HandleFunc("/translate", h.Translate).Methods("POST")
	logger.Base().Info("translate endpoint registered", zap.String("path", "/api/translate"))
}

// Translate godoc
// @Summary Translate text
// @Description Translate text into the target language. The source language is auto-detected when not provided. Unsupported codes fall back to English instead of failing.
// @Tags translate
// @Accept json
// @Produce json
// @Param request body TranslateRequest true "Translation request"
// @Success 200 {object} TranslateResponse "Translated text with resolved languages"
// @Failure 400 {object} map[string]string "Missing required field or malformed body"
// @Failure 500 {object} map[string]string "Translation or unexpected failure"
// @Router /api/translate [post]
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if req.Text == nil {
		writeError(w, http.StatusBadRequest, domain.MissingFieldText)
		return
	}
	if req.TargetLanguage == nil {
		writeError(w, http.StatusBadRequest, domain.MissingFieldTarget)
		return
	}

	var sourceCode string
	if req.SourceLanguage != nil {
		sourceCode = *req.SourceLanguage
	}

	start := time.Now()
	result, err := h.service.Translate(r.Context(), domain.Request{
		Text:       *req.Text,
		TargetCode: *req.TargetLanguage,
		SourceCode: sourceCode,
	})
	if err != nil {
		metrics.RecordRequest(metrics.SurfaceHTTP, false, time.Since(start), len(*req.Text), 0)
		status, message := failureStatus(err)
		writeError(w, status, message)
		return
	}

	metrics.RecordRequest(metrics.SurfaceHTTP, true, time.Since(start), len(*req.Text), len(result.TranslatedText))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(TranslateResponse{
		TranslatedText: result.TranslatedText,
		SourceLanguage: result.SourceCode,
		TargetLanguage: result.TargetCode,
	}); err != nil {
		logger.Base().Error("failed to encode translate response", zap.Error(err))
	}
}

// failureStatus maps a pipeline failure onto an HTTP status and message.
// Validation failures are client errors, everything else is a server error.
func failureStatus(err error) (int, string) {
	var failure *domain.Failure
	if errors.As(err, &failure) {
		switch failure.Kind {
		case domain.FailureValidation:
			return http.StatusBadRequest, failure.Message
		case domain.FailureTranslation:
			return http.StatusInternalServerError, failure.Message
		default:
			return http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %s", failure.Message)
		}
	}

	return http.StatusInternalServerError, fmt.Sprintf("An unexpected error occurred: %v", err)
}

// writeError writes a JSON error body with the given status
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
