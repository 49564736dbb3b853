package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// HandlerManager manages all handlers and their initialization
type HandlerManager struct {
	config  *config.Config
	service *translate.Service
}

// NewHandlerManager creates a handler manager around an already constructed
// translation service. The service lifecycle is owned by the entry point,
// not by the handler layer.
func NewHandlerManager(cfg *config.Config, service *translate.Service) *HandlerManager {
	return &HandlerManager{
		config:  cfg,
		service: service,
	}
}

// SetupAllRoutes sets up all routes with middleware
func (hm *HandlerManager) SetupAllRoutes(router *mux.Router) {
	// Apply global middleware
	router.Use(CORSMiddleware)
	router.Use(RequestIDMiddleware)
	router.Use(GlobalLoggingMiddleware)

	hm.SetupAPIRoutes(router)
	hm.SetupMetricsRoute(router)
	hm.SetupRootRoute(router)

	logger.Base().Info("all application routes registered")
}

// SetupAPIRoutes sets up all API routes and middleware
func (hm *HandlerManager) SetupAPIRoutes(router *mux.Router) {
	// Health probes and the language inventory bypass rate limiting and
	// key auth so orchestrators and dashboards can always reach them.
	probeRouter := router.PathPrefix("/api").Subrouter()
	probeRouter.Use(LoggingMiddleware)

	healthHandler := NewHealthHandler(hm.service)
	healthHandler.SetupHealthRoutes(probeRouter)

	languagesHandler := NewLanguagesHandler()
	languagesHandler.SetupLanguagesRoutes(probeRouter)

	// Translation routes carry the full middleware chain.
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(LoggingMiddleware)
	apiRouter.Use(ValidationMiddleware)
	apiRouter.Use(RateLimitMiddleware(hm.config.RateLimitRPS, hm.config.RateLimitBurst))
	apiRouter.Use(APIKeyMiddleware(hm.config.AuthSecret))

	translateHandler := NewTranslateHandler(hm.service)
	translateHandler.SetupTranslateRoutes(apiRouter)

	streamHandler := NewStreamHandler(hm.service)
	streamHandler.SetupStreamRoutes(apiRouter)

	// Setup CORS preflight handling for all API routes
	router.PathPrefix("/api/").HandlerFunc(handleCORS).Methods("OPTIONS")

	logger.Base().Info("api routes registered")
}

// SetupMetricsRoute exposes Prometheus metrics
func (hm *HandlerManager) SetupMetricsRoute(router *mux.Router) {
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	logger.Base().Info("metrics endpoint registered", zap.String("path", "/metrics"))
}

// SetupRootRoute serves a small banner so hitting the bare host shows what
// is running and where the useful endpoints live.
func (hm *HandlerManager) SetupRootRoute(router *mux.Router) {
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message":   "Astra Translate API is running",
			"health":    "/api/health",
			"languages": "/api/languages",
			"metrics":   "/metrics",
		})
	}).Methods("GET")
}

// handleCORS handles CORS preflight requests for API routes
func handleCORS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, HEAD, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")
	w.WriteHeader(http.StatusOK)
}
