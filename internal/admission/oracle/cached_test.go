package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingOracle records how often it was consulted.
type countingOracle struct {
	limit int64
	err   error
	calls int
}

func (o *countingOracle) CreditLimit(context.Context, string, time.Time) (int64, error) {
	o.calls++
	return o.limit, o.err
}

func TestCacheKey(t *testing.T) {
	dob := time.Date(2001, time.May, 19, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "admission:credit_limit:Boleyn:2001-05-19", cacheKey("Boleyn", dob))

	t.Run("surname spelling is preserved", func(t *testing.T) {
		dob := time.Date(2001, time.May, 19, 0, 0, 0, 0, time.UTC)
		assert.NotEqual(t, cacheKey("McDonald", dob), cacheKey("MCDONALD", dob))
		assert.NotEqual(t, cacheKey("McDonald", dob), cacheKey("Mcdonald", dob))
	})
}

// TestCachedFallsThroughWhenRedisIsDown runs against an address nothing listens on.
func TestCachedFallsThroughWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ctx := context.Background()
	dob := time.Date(2001, time.May, 19, 0, 0, 0, 0, time.UTC)

	t.Run("returns the wrapped oracle's limit", func(t *testing.T) {
		next := &countingOracle{limit: 600}
		limit, err := NewCached(next, client, time.Minute).CreditLimit(ctx, "Boleyn", dob)
		require.NoError(t, err)
		assert.Equal(t, int64(600), limit)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("propagates the wrapped oracle's error", func(t *testing.T) {
		boom := errors.New("scoring down")
		next := &countingOracle{err: boom}
		_, err := NewCached(next, client, time.Minute).CreditLimit(ctx, "Boleyn", dob)
		require.ErrorIs(t, err, boom)
	})
}
