package middleware

import (
	"context"
	"sync"

	"github.com/akolanti/GoPDFChat/internal/config"
	"golang.org/x/time/rate"
)

// Limiter decides whether a request from key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
	Name() string
}

var (
	limiterInstance Limiter
	limiterMu       sync.RWMutex
)

// InitRateLimiter installs the limiter used by Wrap. nil disables rate limiting.
func InitRateLimiter(l Limiter) {
	limiterMu.Lock()
	defer limiterMu.Unlock()
	limiterInstance = l
}

func currentLimiter() Limiter {
	limiterMu.RLock()
	defer limiterMu.RUnlock()
	return limiterInstance
}

type IPRateLimiter struct {
	ips       map[string]*rate.Limiter
	mu        sync.Mutex
	rateLimit rate.Limit
	burstRate int
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{ips: make(map[string]*rate.Limiter), rateLimit: r, burstRate: b}
}

func NewDefaultIPRateLimiter() *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND)
}

func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()
	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.rateLimit, i.burstRate)
		i.ips[ip] = limiter
	}
	return limiter
}

func (i *IPRateLimiter) Allow(_ context.Context, key string) bool {
	return i.GetLimiter(key).Allow()
}

func (i *IPRateLimiter) Name() string {
	return "memory"
}
