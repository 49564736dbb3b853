// Package cache stores completed translations so identical requests skip
// generation. Backends: Redis (shared across replicas), in-process memory,
// or disabled.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/internal/domain"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
	"github.com/ClareAI/astra-translate-service/pkg/redis"
)

// ResultCache caches completed translations keyed by the text and the
// resolved language pair. All implementations fail open: a cache problem
// is never more than a miss.
type ResultCache interface {
	Get(ctx context.Context, text, sourceTag, targetTag string) (domain.Result, bool)
	Put(ctx context.Context, text, sourceTag, targetTag string, result domain.Result)
}

// NewResultCache selects the cache backend. Redis is used when an address
// is configured; otherwise results are cached in process memory. A zero
// ttl disables caching entirely. A configured but unreachable Redis
// degrades to the in-process cache so startup never fails on the cache.
func NewResultCache(redisCfg *redis.RedisConfig, ttl time.Duration) ResultCache {
	if ttl <= 0 {
		logger.Base().Info("Result cache disabled")
		return NoopCache{}
	}

	if redisCfg != nil && redisCfg.Addr != "" {
		store, err := redis.NewRedisService(redisCfg)
		if err != nil {
			logger.Base().Warn("Redis unavailable, falling back to in-process result cache", zap.Error(err))
			return NewMemoryResultCache(ttl)
		}
		logger.Base().Info("Result cache using Redis", zap.String("addr", redisCfg.Addr))
		return NewRedisResultCache(store, ttl)
	}

	return NewMemoryResultCache(ttl)
}

// digest hashes the language pair and full text into a bounded cache key.
func digest(text, sourceTag, targetTag string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", sourceTag, targetTag, text)
	return hex.EncodeToString(h.Sum(nil))
}

// RedisResultCache persists results in Redis so all replicas share one
// cache.
type RedisResultCache struct {
	store redis.RedisServiceInterface
	ttl   time.Duration
}

// NewRedisResultCache creates a Redis-backed result cache.
func NewRedisResultCache(store redis.RedisServiceInterface, ttl time.Duration) *RedisResultCache {
	return &RedisResultCache{store: store, ttl: ttl}
}

// Get looks up a cached result for the text and language pair.
func (c *RedisResultCache) Get(ctx context.Context, text, sourceTag, targetTag string) (domain.Result, bool) {
	key := c.store.GenerateKey(redis.TRANSLATION_RESULT, digest(text, sourceTag, targetTag))

	val, err := c.store.GetValue(ctx, key)
	if err != nil {
		if err != redis.ErrKeyNotExist {
			logger.Base().Warn("Result cache read failed", zap.Error(err))
		}
		return domain.Result{}, false
	}

	var result domain.Result
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		logger.Base().Warn("Failed to unmarshal cached result", zap.Error(err))
		return domain.Result{}, false
	}
	return result, true
}

// Put stores a result with the configured TTL. Write errors are logged
// and dropped.
func (c *RedisResultCache) Put(ctx context.Context, text, sourceTag, targetTag string, result domain.Result) {
	data, err := json.Marshal(result)
	if err != nil {
		logger.Base().Warn("Failed to marshal result for cache", zap.Error(err))
		return
	}

	key := c.store.GenerateKey(redis.TRANSLATION_RESULT, digest(text, sourceTag, targetTag))
	if err := c.store.SetValue(ctx, key, string(data), c.ttl); err != nil {
		logger.Base().Warn("Result cache write failed", zap.Error(err))
	}
}

// NoopCache disables caching.
type NoopCache struct{}

// Get always misses.
func (NoopCache) Get(ctx context.Context, text, sourceTag, targetTag string) (domain.Result, bool) {
	return domain.Result{}, false
}

// Put drops the result.
func (NoopCache) Put(ctx context.Context, text, sourceTag, targetTag string, result domain.Result) {
}
