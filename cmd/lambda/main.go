// Package main is the entry point for the serverless translation function.
// Events carry the same envelope document the queue worker consumes, so the
// two surfaces stay interchangeable.
package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/internal/envelope"
	"github.com/ClareAI/astra-translate-service/internal/metrics"
	"github.com/ClareAI/astra-translate-service/internal/services/translate"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

// processor is built once per cold start and reused across invocations.
var processor *envelope.Processor

func main() {
	// 1. Load configuration and initialize logging
	config.LoadConfig()
	cfg := config.GetConfig()
	if _, err := logger.Init(cfg.Debug); err != nil {
		log.Printf("Failed to initialize zap logger, falling back to std log: %v", err)
	}

	// 2. Build the translation pipeline once per cold start
	service, err := translate.NewServiceFromConfig(&cfg)
	if err != nil {
		log.Fatalf("❌ Failed to build translation service: %v", err)
	}
	processor = envelope.NewProcessor(service, metrics.SurfaceLambda)

	// 3. Hand control to the Lambda runtime
	lambda.Start(handleRequest)
}

func handleRequest(ctx context.Context, event json.RawMessage) (interface{}, error) {
	// Warmup detection must run before envelope parsing.
	if warmup, ok := isWarmupEvent(event); ok {
		return handleWarmup(ctx, warmup)
	}

	// The processor never fails: malformed or incomplete envelopes come
	// back as error documents, matching the queue worker.
	return processor.Process(ctx, event), nil
}
