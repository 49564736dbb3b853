package translate

import (
	"github.com/ClareAI/astra-translate-service/internal/cache"
	"github.com/ClareAI/astra-translate-service/internal/config"
	"github.com/ClareAI/astra-translate-service/internal/core/language"
	"github.com/ClareAI/astra-translate-service/internal/core/model"
	"github.com/ClareAI/astra-translate-service/pkg/redis"
)

// NewServiceFromConfig wires a Service from application configuration: the
// configured engine, the trigram detector, and the result cache. Every entry
// point (HTTP server, queue worker, lambda) builds its pipeline here so they
// all serve identical semantics; lifecycle stays with the caller.
func NewServiceFromConfig(cfg *config.Config) (*Service, error) {
	engine, err := model.ParseEngineType(cfg.Engine)
	if err != nil {
		return nil, err
	}

	translator, err := model.NewTranslator(model.Config{
		Engine:  engine,
		BaseURL: cfg.InferenceURL,
		APIKey:  cfg.InferenceAPIKey,
		Timeout: cfg.GenerationTimeout,
	})
	if err != nil {
		return nil, err
	}

	resolver := language.NewResolver(language.NewTrigramDetector())

	var redisCfg *redis.RedisConfig
	if cfg.RedisAddr != "" {
		redisCfg = &redis.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
	}
	results := cache.NewResultCache(redisCfg, cfg.CacheTTL)

	return NewService(translator, resolver, results), nil
}
