package model

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

// EngineType selects the generation backend.
type EngineType string

const (
	// EngineInference calls the model inference server over HTTP.
	EngineInference EngineType = "inference"
	// EngineEcho returns input unchanged; for development and tests.
	EngineEcho EngineType = "echo"
)

// Config holds the settings for creating a Translator.
type Config struct {
	Engine  EngineType
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewTranslator creates the Translator backend selected by the config.
// Swapping engines never requires changes in the serving layers.
func NewTranslator(cfg Config) (Translator, error) {
	logger.Base().Info("Creating translator backend",
		zap.String("engine", string(cfg.Engine)),
		zap.String("base_url", cfg.BaseURL))

	switch cfg.Engine {
	case EngineInference:
		return NewInferenceClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout), nil
	case EngineEcho:
		return NewEchoTranslator(), nil
	default:
		return nil, fmt.Errorf("unsupported engine type: %s", cfg.Engine)
	}
}

// ParseEngineType parses a string into an EngineType.
func ParseEngineType(s string) (EngineType, error) {
	switch s {
	case "inference", "Inference", "INFERENCE":
		return EngineInference, nil
	case "echo", "Echo", "ECHO":
		return EngineEcho, nil
	default:
		return "", fmt.Errorf("unknown engine type: %s (supported: inference, echo)", s)
	}
}
