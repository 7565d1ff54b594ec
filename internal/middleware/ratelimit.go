// Package middleware provides the HTTP middleware chain for the applytrail API.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// maxBuckets is the maximum number of tracked IPs to prevent memory exhaustion.
	maxBuckets = 100_000

	bucketSweepInterval = 5 * time.Minute
	bucketMaxIdle       = 10 * time.Minute
)

// RateLimiter implements a token bucket rate limiter per client IP. Rates may
// be fractional, so a limiter can allow one request every few seconds.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    float64
	burst   float64
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a RateLimiter with the given requests per second and burst size.
// It starts a background goroutine to evict idle buckets, which stops when ctx is cancelled.
func NewRateLimiter(ctx context.Context, ratePerSec float64, burst int) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    ratePerSec,
		burst:   float64(burst),
	}
	go rl.sweepLoop(ctx)

	return rl
}

// allow takes one token from ip's bucket. Caller must hold rl.mu.
func (rl *RateLimiter) allow(ip string, now time.Time) (allowed, tracked bool) {
	b, ok := rl.buckets[ip]
	if !ok {
		if len(rl.buckets) >= maxBuckets {
			return false, false
		}

		b = &bucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[ip] = b
	}

	b.tokens = min(rl.burst, b.tokens+now.Sub(b.lastSeen).Seconds()*rl.rate)
	b.lastSeen = now

	if b.tokens < 1 {
		return false, true
	}

	b.tokens--

	return true, true
}

func (rl *RateLimiter) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(bucketSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for ip, b := range rl.buckets {
				if now.Sub(b.lastSeen) > bucketMaxIdle {
					delete(rl.buckets, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// Handler returns Gin middleware that applies rate limiting per client IP.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// c.ClientIP() ignores X-Forwarded-For because the router trusts no proxies.
		rl.mu.Lock()
		allowed, tracked := rl.allow(c.ClientIP(), time.Now())
		rl.mu.Unlock()

		switch {
		case !tracked:
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many clients")
		case !allowed:
			respondError(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
		default:
			c.Next()
		}
	}
}
