package oracle

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"admission/internal/admission/ports"
)

const cacheKeyPrefix = "admission:credit_limit:"

// Cached remembers base limits in Redis. The oracle is a pure function of
// surname and birth date, so entries only expire to pick up scoring changes.
// The surname is keyed exactly as given since the scorer may be case sensitive.
// Cache failures are logged and fall through to the wrapped oracle.
type Cached struct {
	next   ports.CreditLimitOracle
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

type CachedOption func(*Cached)

func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *Cached) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCached wraps next with a Redis cache holding entries for ttl.
func NewCached(next ports.CreditLimitOracle, client redis.Cmdable, ttl time.Duration, opts ...CachedOption) *Cached {
	c := &Cached{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) CreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int64, error) {
	key := cacheKey(lastName, dateOfBirth)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if limit, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return limit, nil
		}
		c.logger.WarnContext(ctx, "discarding malformed credit limit cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "credit limit cache read failed", "error", err)
	}

	limit, err := c.next.CreditLimit(ctx, lastName, dateOfBirth)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, strconv.FormatInt(limit, 10), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "credit limit cache write failed", "error", err)
	}
	return limit, nil
}

func cacheKey(lastName string, dateOfBirth time.Time) string {
	return cacheKeyPrefix + lastName + ":" + dateOfBirth.Format(dateLayout)
}
