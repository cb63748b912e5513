package redisStore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/akolanti/GoPDFChat/pkg/logger_i"
	"github.com/redis/go-redis/v9"
)

var (
	instances = make(map[string]*Store)
	mu        sync.RWMutex
	logger    = logger_i.NewLogger("Redis Store")
)

type Store struct {
	client *redis.Client
	Type   int
}

type Options struct {
	Addr     string
	Password string
	DB       int
}

func (o Options) key() string {
	return fmt.Sprintf("%s/%d", o.Addr, o.DB)
}

// GetRedisStore returns the shared store for the address and db, connecting on first use.
// It returns nil when redis cannot be reached so callers can fall back to memory.
// Stores are closed when ctx ends.
func GetRedisStore(ctx context.Context, opts Options) *Store {
	mu.RLock()
	instance, exists := instances[opts.key()]
	mu.RUnlock()

	if exists {
		return instance
	}

	mu.Lock()
	defer mu.Unlock()

	if instance, exists = instances[opts.key()]; exists {
		return instance
	}
	return createNewStore(ctx, opts)
}

func createNewStore(ctx context.Context, opts Options) *Store {
	if opts.Addr == "" {
		return nil
	}
	newClient := redis.NewClient(&redis.Options{
		Addr:                  opts.Addr,
		Password:              opts.Password,
		DB:                    opts.DB,
		ContextTimeoutEnabled: true,
		ReadTimeout:           2 * time.Second,
		WriteTimeout:          2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := newClient.Ping(pingCtx).Err(); err != nil {
		logger.Error("Redis is offline", "addr", opts.Addr, "error", err.Error())
		_ = newClient.Close()
		return nil
	}

	logger.Info("Redis store init successfully", "addr", opts.Addr, "db", opts.DB)

	newStore := &Store{
		client: newClient,
		Type:   opts.DB,
	}
	instances[opts.key()] = newStore
	go closeOnDone(ctx, opts.key(), newStore)
	return newStore
}

func closeOnDone(ctx context.Context, key string, store *Store) {
	<-ctx.Done()
	mu.Lock()
	delete(instances, key)
	mu.Unlock()
	if err := store.client.Close(); err != nil {
		logger.Error("Error closing redis client", "error", err)
		return
	}
	logger.Info("Redis store closed successfully", "db", store.Type)
}

// NewTestStore wraps an existing client, used with miniredis in tests.
func NewTestStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
