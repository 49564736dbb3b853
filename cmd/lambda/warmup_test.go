package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClareAI/astra-translate-service/internal/config"
)

func TestIsWarmupEvent(t *testing.T) {
	config.AppConfig = config.Config{WarmupConcurrency: 3}

	t.Run("translation envelope is not a warmup", func(t *testing.T) {
		event := json.RawMessage(`{"input": {"text": "hello", "target_language": "fr"}}`)
		_, ok := isWarmupEvent(event)
		assert.False(t, ok)
	})

	t.Run("malformed payload is not a warmup", func(t *testing.T) {
		_, ok := isWarmupEvent(json.RawMessage(`not json`))
		assert.False(t, ok)
	})

	t.Run("wrong source is not a warmup", func(t *testing.T) {
		_, ok := isWarmupEvent(json.RawMessage(`{"source": "scheduler"}`))
		assert.False(t, ok)
	})

	t.Run("absent concurrency falls back to the configured default", func(t *testing.T) {
		warmup, ok := isWarmupEvent(json.RawMessage(`{"source": "warmup"}`))
		require.True(t, ok)
		assert.Equal(t, 3, warmup.Concurrency)
	})

	t.Run("explicit zero concurrency disables fanout", func(t *testing.T) {
		warmup, ok := isWarmupEvent(json.RawMessage(`{"source": "warmup", "concurrency": 0}`))
		require.True(t, ok)
		assert.Equal(t, 0, warmup.Concurrency)
	})

	t.Run("explicit concurrency overrides the default", func(t *testing.T) {
		warmup, ok := isWarmupEvent(json.RawMessage(`{"source": "warmup", "concurrency": 5}`))
		require.True(t, ok)
		assert.Equal(t, 5, warmup.Concurrency)
	})
}
