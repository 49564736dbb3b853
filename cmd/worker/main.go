package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/internal/envelope"
	"github.com/ClareAI/astra-translate-service/internal/metrics"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/ClareAI/astra-translate-service/pkg/pubsub"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main runs the queue worker: it pulls translation envelopes from a Pub/Sub
// subscription, executes them against the shared pipeline, and publishes the
// result document to the result topic.
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

	fmt.Printf("🚀 Starting Astra Translate Worker (subscription %s)\n", cfg.PubSubSubscription)

	// 2. Build the translation pipeline and the envelope processor
	service, err := translate.NewServiceFromConfig(&cfg)
	if err != nil {
		log.Fatalf("❌ Failed to build translation service: %v", err)
	}
	processor := envelope.NewProcessor(service, metrics.SurfacePubSub)

	// 3. Connect to Pub/Sub. The context is cancelled on SIGINT/SIGTERM,
	// which drains the Receive loop and lets in-flight messages finish.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus, err := pubsub.NewPubSubService(ctx, &pubsub.PubSubConfig{
		ProjectID:    cfg.PubSubProjectID,
		Subscription: cfg.PubSubSubscription,
		ResultTopic:  cfg.PubSubResultTopic,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to Pub/Sub: %v", err)
	}
	defer bus.Close()

	logger.Base().Info("✅ Worker initialized successfully",
		zap.String("subscription", cfg.PubSubSubscription),
		zap.String("result_topic", cfg.PubSubResultTopic),
		zap.String("engine", cfg.Engine),
	)

	// 4. Consume until a shutdown signal arrives
	err = bus.Receive(ctx, func(ctx context.Context, data []byte, attributes map[string]string) []byte {
		out := processor.Process(ctx, data)
		payload, err := json.Marshal(out)
		if err != nil {
			logger.Base().Error("failed to marshal envelope result", zap.Error(err))
			payload = []byte(fmt.Sprintf(`{"error": "Error processing request: %v"}`, err))
		}
		return payload
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("❌ Receive loop failed: %v", err)
	}

	logger.Base().Info("worker stopped")
}
