package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	service *translate.Service
}

// HealthResponse is the health probe body
type HealthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *translate.Service) *HealthHandler {
	return &HealthHandler{
		service: service,
	}
}

// SetupHealthRoutes sets up routes for health probes
func (h *HealthHandler) SetupHealthRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods("GET")
	router.HandleFunc("/health/ready", h.Ready).Methods("GET")
	logger.Base().Info("health endpoints registered",
		zap.String("liveness", "/api/health"),
		zap.String("readiness", "/api/health/ready"),
	)
}

// Health godoc
// @Summary Liveness check
// @Description Always returns ok while the process is serving
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Service is alive"
// @Router /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// Ready godoc
// @Summary Readiness check
// @Description Verifies the translation engine is reachable
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Engine reachable"
// @Failure 503 {object} HealthResponse "Engine unreachable"
// @Router /api/health/ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.service.HealthCheck(r.Context()); err != nil {
		logger.Base().Warn("readiness check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(HealthResponse{Status: "unavailable", Error: err.Error()})
		return
	}

	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}
