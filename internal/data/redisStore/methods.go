package redisStore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// IncrWithExpiry increments key and sets its ttl in one transaction, returning the new count.
func (s *Store) IncrWithExpiry(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, expiration)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	return s.client.TTL(ctx, key).Result()
}
