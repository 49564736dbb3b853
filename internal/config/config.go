package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	// Server
	Port  int
	Debug bool

	// Translation engine
	Engine            string
	InferenceURL      string
	InferenceAPIKey   string
	GenerationTimeout time.Duration

	// Result cache (disabled when RedisAddr is empty)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// API protection (both disabled by default)
	RateLimitRPS   float64
	RateLimitBurst int
	AuthSecret     string

	// Async envelope transport
	PubSubProjectID    string
	PubSubSubscription string
	PubSubResultTopic  string

	// Model artifact sync
	ModelBucket string
	ModelPrefix string
	ModelDir    string

	// Lambda warmup fanout
	WarmupConcurrency int
}

var (
	// AppConfig holds the current configuration
	AppConfig Config
)

// LoadConfig loads configuration from environment variables.
// The .env file is loaded in main.go for local development using godotenv.Load().
func LoadConfig() {
	AppConfig = Config{
		Port:  GetEnvAsIntOrDefault("PORT", 8000),
		Debug: GetEnvAsBoolOrDefault("DEBUG", false),

		Engine:            GetEnvOrDefault("TRANSLATOR_ENGINE", "inference"),
		InferenceURL:      GetEnvOrDefault("INFERENCE_URL", "http://localhost:8080"),
		InferenceAPIKey:   GetEnvOrDefault("INFERENCE_API_KEY", ""),
		GenerationTimeout: time.Duration(GetEnvAsIntOrDefault("GENERATION_TIMEOUT_SECONDS", 60)) * time.Second,

		RedisAddr:     GetEnvOrDefault("REDIS_ADDR", ""),
		RedisPassword: GetEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       GetEnvAsIntOrDefault("REDIS_DB", 0),
		CacheTTL:      time.Duration(GetEnvAsIntOrDefault("CACHE_TTL_SECONDS", 86400)) * time.Second,

		RateLimitRPS:   GetEnvAsFloatOrDefault("RATE_LIMIT_RPS", 0),
		RateLimitBurst: GetEnvAsIntOrDefault("RATE_LIMIT_BURST", 10),
		AuthSecret:     GetEnvOrDefault("AUTH_SECRET", ""),

		PubSubProjectID:    GetEnvOrDefault("PUBSUB_PROJECT_ID", ""),
		PubSubSubscription: GetEnvOrDefault("PUBSUB_SUBSCRIPTION", "translate-requests"),
		PubSubResultTopic:  GetEnvOrDefault("PUBSUB_RESULT_TOPIC", "translate-results"),

		ModelBucket: GetEnvOrDefault("MODEL_BUCKET", ""),
		ModelPrefix: GetEnvOrDefault("MODEL_PREFIX", "nllb-200-distilled-600M"),
		ModelDir:    GetEnvOrDefault("MODEL_DIR", "./models"),

		WarmupConcurrency: GetEnvAsIntOrDefault("WARMUP_CONCURRENCY", 3),
	}
}

// GetConfig returns the current configuration
func GetConfig() Config {
	return AppConfig
}

// GetEnvOrDefault returns the environment variable value or a default
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvAsIntOrDefault returns the environment variable as int or a default
func GetEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsBoolOrDefault returns the environment variable as bool or a default
func GetEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// GetEnvAsFloatOrDefault returns the environment variable as float64 or a default
func GetEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
