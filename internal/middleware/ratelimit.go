package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"

	"github.com/jengzang/latlong-terrain/pkg/response"
)

// window counts requests from one client inside a fixed window
type window struct {
	count int
}

// RateLimiter allows limit requests per client per window.
// Each client's window starts at its first request and is not extended by later hits.
type RateLimiter struct {
	mu      sync.Mutex
	clients *ttlcache.Cache[string, *window]
	limit   int
}

// NewRateLimiter creates a limiter and starts its expiry loop; call Stop to release it
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	clients := ttlcache.New[string, *window](
		ttlcache.WithTTL[string, *window](period),
		ttlcache.WithDisableTouchOnHit[string, *window](),
	)
	go clients.Start()

	return &RateLimiter{
		clients: clients,
		limit:   limit,
	}
}

// Allow checks if a request from the given client is allowed
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	item := rl.clients.Get(client)
	if item == nil {
		rl.clients.Set(client, &window{count: 1}, ttlcache.DefaultTTL)
		return true
	}

	w := item.Value()
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// Stop ends the expiry loop
func (rl *RateLimiter) Stop() {
	rl.clients.Stop()
}

// RateLimit middleware limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			response.TooManyRequests(c, "Rate limit exceeded. Please try again later.")
			return
		}
		c.Next()
	}
}
