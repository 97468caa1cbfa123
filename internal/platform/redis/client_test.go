package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admission/internal/platform/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("empty URL disables redis", func(t *testing.T) {
		client, err := New(ctx, config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, client)
	})

	t.Run("malformed URL", func(t *testing.T) {
		_, err := New(ctx, config.RedisConfig{URL: "http://localhost:6379"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse redis URL")
	})

	t.Run("unreachable server", func(t *testing.T) {
		_, err := New(ctx, config.RedisConfig{
			URL:         "redis://127.0.0.1:1/0",
			PoolSize:    1,
			DialTimeout: 100 * time.Millisecond,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis ping failed")
	})
}
