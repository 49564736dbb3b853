package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/internal/handler"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Server represents the translation API server
type Server struct {
	config *config.Config
	router *mux.Router
	http   *http.Server
}

// NewServer wires the translation pipeline and registers all routes
func NewServer(cfg *config.Config) (*Server, error) {
	service, err := translate.NewServiceFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	handlerManager := handler.NewHandlerManager(cfg, service)
	handlerManager.SetupAllRoutes(router)

	// Probe the engine once at startup. A dead engine logs a warning but
	// does not prevent serving; the first request reports the failure.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := service.HealthCheck(ctx); err != nil {
		logger.Base().Warn("translation engine not reachable at startup", zap.Error(err))
	} else {
		logger.Base().Info("translation engine reachable")
	}

	// The write timeout must outlive the generation budget or long
	// translations get cut off mid-response.
	writeTimeout := cfg.GenerationTimeout + 15*time.Second

	return &Server{
		config: cfg,
		router: router,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Start begins serving and blocks until the listener stops.
func (s *Server) Start() error {
	logger.Base().Info("Starting server", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Stop drains in-flight requests and shuts the listener down.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func main() {
	// 0. Load .env file for local development if it exists
	// This will not override environment variables set by Helm/Docker
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: .env file not found or skipped (expected in production): %v", err)
	}

	// 1. Load configuration and initialize logging
	config.LoadConfig()
	cfg := config.GetConfig()
	if _, err := logger.Init(cfg.Debug); err != nil {
		log.Printf("Failed to initialize zap logger, falling back to std log: %v", err)
	}
	defer logger.Sync()

	fmt.Printf("🚀 Starting Astra Translate Service (port %d)\n", cfg.Port)

	// 2. Create the server
	server, err := NewServer(&cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create server: %v", err)
	}
	logger.Base().Info("✅ Server initialized successfully",
		zap.Int("port", cfg.Port),
		zap.String("engine", cfg.Engine),
		zap.String("instance_id", instanceID()))

	// 3. Start serving in the background
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 4. Wait for a shutdown signal or a listener failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("❌ Server failed to start: %v", err)
	case sig := <-sigCh:
		logger.Base().Info("shutdown signal received, stopping server", zap.String("signal", sig.String()))
	}

	// 5. Drain in-flight requests before exiting
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		logger.Base().Error("error during shutdown", zap.Error(err))
	}

	logger.Base().Info("server stopped")
}

// instanceID identifies this service instance in logs. The hostname is the
// pod name under Kubernetes; a timestamp-based ID covers everything else.
func instanceID() string {
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	return fmt.Sprintf("translate-service-%d", time.Now().UnixNano())
}
