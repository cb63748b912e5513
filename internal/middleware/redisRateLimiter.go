package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/GoPDFChat/internal/config"
	"github.com/akolanti/GoPDFChat/pkg/logger_i"
)

type counterStore interface {
	IncrWithExpiry(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

// RedisRateLimiter is a fixed window counter shared by every instance that uses the
// same redis. When redis fails the request is let through.
type RedisRateLimiter struct {
	store  counterStore
	limit  int64
	window time.Duration
	now    func() time.Time
	logger *logger_i.Logger
}

func NewRedisRateLimiter(store counterStore, limit int64, window time.Duration) *RedisRateLimiter {
	if limit <= 0 {
		limit = config.RedisRateLimitPerWindow
	}
	if window <= 0 {
		window = config.RedisRateLimitWindow
	}
	return &RedisRateLimiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
		logger: logger_i.NewLogger("Redis Rate Limiter"),
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) bool {
	windowStart := l.now().Truncate(l.window).Unix()
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, windowStart)

	count, err := l.store.IncrWithExpiry(ctx, redisKey, l.window)
	if err != nil {
		l.logger.WithTrace(ctx).Error("Rate limit counter unavailable, allowing request", "error", err)
		return true
	}
	return count <= l.limit
}

func (l *RedisRateLimiter) Name() string {
	return "redis"
}
