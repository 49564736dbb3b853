package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClareAI/astra-translate-service/internal/domain"
	"github.com/ClareAI/astra-translate-service/pkg/redis"
)

// fakeStore is an in-memory redis.RedisServiceInterface for tests.
type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: make(map[string]string)}
}

func (s *fakeStore) GenerateKey(keyType redis.KeyType, identifier string) string {
	return string(keyType) + ":" + identifier
}

func (s *fakeStore) GetValue(ctx context.Context, key string) (string, error) {
	val, ok := s.values[key]
	if !ok {
		return "", redis.ErrKeyNotExist
	}
	return val, nil
}

func (s *fakeStore) SetValue(ctx context.Context, key string, value string, ttl time.Duration) error {
	s.values[key] = value
	return nil
}

func (s *fakeStore) DelValue(ctx context.Context, key string) error {
	delete(s.values, key)
	return nil
}

func TestRedisResultCacheRoundTrip(t *testing.T) {
	store := newFakeStore()
	c := NewRedisResultCache(store, time.Hour)
	ctx := context.Background()

	result := domain.Result{TranslatedText: "Bonjour", SourceCode: "en", TargetCode: "fr"}

	_, ok := c.Get(ctx, "Hello", "eng_Latn", "fra_Latn")
	assert.False(t, ok, "empty cache must miss")

	c.Put(ctx, "Hello", "eng_Latn", "fra_Latn", result)

	got, ok := c.Get(ctx, "Hello", "eng_Latn", "fra_Latn")
	require.True(t, ok)
	assert.Equal(t, result, got)

	_, ok = c.Get(ctx, "Hello", "eng_Latn", "deu_Latn")
	assert.False(t, ok, "different language pair must miss")

	_, ok = c.Get(ctx, "Hello!", "eng_Latn", "fra_Latn")
	assert.False(t, ok, "different text must miss")
}

func TestRedisResultCacheCorruptEntry(t *testing.T) {
	store := newFakeStore()
	c := NewRedisResultCache(store, time.Hour)
	ctx := context.Background()

	key := store.GenerateKey(redis.TRANSLATION_RESULT, digest("Hello", "eng_Latn", "fra_Latn"))
	store.values[key] = "{not json"

	_, ok := c.Get(ctx, "Hello", "eng_Latn", "fra_Latn")
	assert.False(t, ok, "corrupt entries must read as a miss")
}

func TestNoopCache(t *testing.T) {
	c := NoopCache{}
	ctx := context.Background()

	c.Put(ctx, "Hello", "eng_Latn", "fra_Latn", domain.Result{TranslatedText: "Bonjour"})
	_, ok := c.Get(ctx, "Hello", "eng_Latn", "fra_Latn")
	assert.False(t, ok)
}

func TestNewResultCacheSelection(t *testing.T) {
	c := NewResultCache(nil, 0)
	assert.IsType(t, NoopCache{}, c, "zero ttl disables caching")

	c = NewResultCache(nil, time.Hour)
	assert.IsType(t, &MemoryResultCache{}, c, "no redis address selects the in-process cache")

	c = NewResultCache(&redis.RedisConfig{Addr: ""}, time.Hour)
	assert.IsType(t, &MemoryResultCache{}, c)
}

func TestDigestDistinguishesParts(t *testing.T) {
	base := digest("text", "eng_Latn", "fra_Latn")
	assert.NotEqual(t, base, digest("text2", "eng_Latn", "fra_Latn"))
	assert.NotEqual(t, base, digest("text", "deu_Latn", "fra_Latn"))
	assert.NotEqual(t, base, digest("text", "eng_Latn", "spa_Latn"))
	assert.Equal(t, base, digest("text", "eng_Latn", "fra_Latn"))
}
