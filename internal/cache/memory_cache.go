package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"

	"github.com/ClareAI/astra-translate-service/internal/domain"
	"github.com/ClareAI/astra-translate-service/pkg/logger"
)

const (
	// DefaultMaxEntries bounds the in-process cache size.
	DefaultMaxEntries = 10000
	// DefaultMemoryTTL is used when no TTL is configured.
	DefaultMemoryTTL = 24 * time.Hour
)

type memoryEntry struct {
	result    *domain.Result
	expiresAt time.Time
}

// MemoryResultCache provides a thread-safe in-process result cache. It is
// the fallback when no Redis is configured; each replica then warms its
// own cache.
type MemoryResultCache struct {
	entries    map[string]*memoryEntry
	mutex      sync.RWMutex
	ttl        time.Duration
	maxEntries int
}

// NewMemoryResultCache creates an in-process cache with the given TTL.
func NewMemoryResultCache(ttl time.Duration) *MemoryResultCache {
	if ttl <= 0 {
		ttl = DefaultMemoryTTL
	}

	cache := &MemoryResultCache{
		entries:    make(map[string]*memoryEntry),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
	}

	logger.Base().Info("In-process result cache initialized",
		zap.Duration("ttl", ttl),
		zap.Int("max_entries", cache.maxEntries))
	return cache
}

// Get retrieves a cached result (thread-safe read). Expired entries are
// removed lazily.
func (c *MemoryResultCache) Get(ctx context.Context, text, sourceTag, targetTag string) (domain.Result, bool) {
	key := digest(text, sourceTag, targetTag)

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return domain.Result{}, false
	}

	if time.Now().After(entry.expiresAt) {
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return domain.Result{}, false
	}

	return c.copyResult(entry.result), true
}

// Put stores a result copy (thread-safe write). When the cache is full,
// expired entries are evicted first; if none are expired an arbitrary
// entry is dropped to stay bounded.
func (c *MemoryResultCache) Put(ctx context.Context, text, sourceTag, targetTag string, result domain.Result) {
	key := digest(text, sourceTag, targetTag)
	stored := c.copyResult(&result)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictExpiredLocked()
		if len(c.entries) >= c.maxEntries {
			for k := range c.entries {
				delete(c.entries, k)
				break
			}
		}
	}

	c.entries[key] = &memoryEntry{
		result:    &stored,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Len returns the number of entries currently held, expired or not.
func (c *MemoryResultCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

func (c *MemoryResultCache) evictExpiredLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// copyResult creates a deep copy so callers can never mutate a cached
// entry. Uses github.com/jinzhu/copier for automatic deep copy - no need
// to manually update when adding new fields.
func (c *MemoryResultCache) copyResult(original *domain.Result) domain.Result {
	if original == nil {
		return domain.Result{}
	}

	var copied domain.Result
	if err := copier.CopyWithOption(&copied, original, copier.Option{DeepCopy: true}); err != nil {
		logger.Base().Warn("Failed to copy cached result", zap.Error(err))
		return *original
	}
	return copied
}
