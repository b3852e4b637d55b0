// Package redis caches arbitration responses in Redis.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/akash-new/reviewscout"
	"github.com/cespare/xxhash/v2"
	"github.com/redis/go-redis/v9"
)

// Cache defaults.
const (
	DefaultTTL    = 30 * 24 * time.Hour
	DefaultPrefix = "reviewscout:arbiter:"
)

var _ reviewscout.Arbiter = (*CachingArbiter)(nil)

// CachingArbiter answers repeated prompts from Redis and forwards the rest
// to the wrapped arbiter. Cache failures fall through to the wrapped arbiter.
type CachingArbiter struct {
	client *redis.Client
	next   reviewscout.Arbiter
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// Option configures a CachingArbiter.
type Option func(*CachingArbiter)

// WithTTL sets how long answers are kept.
func WithTTL(ttl time.Duration) Option {
	return func(a *CachingArbiter) {
		a.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(a *CachingArbiter) {
		a.prefix = prefix
	}
}

// WithLogger sets the logger used for cache failures.
func WithLogger(logger *slog.Logger) Option {
	return func(a *CachingArbiter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewCachingArbiter wraps next with a cache stored in client.
func NewCachingArbiter(client *redis.Client, next reviewscout.Arbiter, opts ...Option) *CachingArbiter {
	a := &CachingArbiter{
		client: client,
		next:   next,
		ttl:    DefaultTTL,
		prefix: DefaultPrefix,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewClient connects to the Redis server at url, e.g. redis://localhost:6379/0.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, reviewscout.Errorf(reviewscout.EINVALID, "invalid redis url: %v", err)
	}
	return redis.NewClient(opts), nil
}

// Arbitrate implements reviewscout.Arbiter.
func (a *CachingArbiter) Arbitrate(ctx context.Context, prompt string) (string, error) {
	key := a.Key(prompt)

	cached, err := a.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		return cached, nil
	case !errors.Is(err, redis.Nil):
		a.logger.Warn("arbiter cache read failed", "error", err)
	}

	resp, err := a.next.Arbitrate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resp) == "" {
		return resp, nil
	}

	if err := a.client.Set(ctx, key, resp, a.ttl).Err(); err != nil {
		a.logger.Warn("arbiter cache write failed", "error", err)
	}
	return resp, nil
}

// Key returns the cache key for prompt.
func (a *CachingArbiter) Key(prompt string) string {
	return a.prefix + strconv.FormatUint(xxhash.Sum64String(prompt), 16)
}
