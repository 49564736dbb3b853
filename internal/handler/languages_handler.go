package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ClareAI/astra-translate-service/internal/core/language"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// LanguagesHandler serves the supported language inventory
type LanguagesHandler struct{}

// LanguageInfo describes one supported language
type LanguageInfo struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	LocaleTag string `json:"locale_tag"`
}

// LanguagesResponse is the GET /api/languages body
type LanguagesResponse struct {
	Languages []LanguageInfo `json:"languages"`
	Default   string         `json:"default"`
	Count     int            `json:"count"`
}

// NewLanguagesHandler creates a new languages handler
func NewLanguagesHandler() *LanguagesHandler {
	return &LanguagesHandler{}
}

// SetupLanguagesRoutes sets up routes for the language inventory
func (h *LanguagesHandler) SetupLanguagesRoutes(router *mux.Router) {
	router.HandleFunc("/languages", h.Languages).Methods("GET")
	logger.Base().Info("languages endpoint registered", zap.String("path", "/api/languages"))
}

// Languages godoc
// @Summary List supported languages
// @Description Returns every language code the service accepts together with its display name and model locale tag
// @Tags languages
// @Produce json
// @Success 200 {object} LanguagesResponse "Supported languages"
// @Router /api/languages [get]
func (h *LanguagesHandler) Languages(w http.ResponseWriter, r *http.Request) {
	codes := language.SupportedCodes()

	languages := make([]LanguageInfo, 0, len(codes))
	for _, code := range codes {
		tag, _ := language.Lookup(code)
		languages = append(languages, LanguageInfo{
			Code:      code,
			Name:      language.Name(code),
			LocaleTag: tag,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LanguagesResponse{
		Languages: languages,
		Default:   language.DefaultCode,
		Count:     len(languages),
	}); err != nil {
		logger.Base().Error("failed to encode languages response", zap.Error(err))
	}
}
