package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	bruteForceMaxAttempts = 10
	bruteForceWindow      = 10 * time.Minute
	bruteForceLockout     = 5 * time.Minute
	bruteForceCleanup     = time.Minute
	bruteForceMaxRecords  = 10000
)

type failureRecord struct {
	attempts  int
	firstFail time.Time
	lockedAt  time.Time
}

// BruteForceGuard tracks session token failures per client IP and locks out
// clients that exceed the failure threshold within the tracking window.
type BruteForceGuard struct {
	mu      sync.Mutex
	records map[string]*failureRecord
	log     *logrus.Logger
	now     func() time.Time
}

// NewBruteForceGuard creates a new guard and starts a background cleanup goroutine
// that stops when ctx is cancelled.
func NewBruteForceGuard(ctx context.Context, log *logrus.Logger) *BruteForceGuard {
	g := &BruteForceGuard{
		records: make(map[string]*failureRecord),
		log:     log,
		now:     time.Now,
	}
	go g.cleanupLoop(ctx)
	return g
}

// IsBlocked reports whether the client is currently locked out.
func (g *BruteForceGuard) IsBlocked(clientIP string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[clientIP]
	if !ok || rec.lockedAt.IsZero() {
		return false
	}

	return g.now().Sub(rec.lockedAt) < bruteForceLockout
}

// RecordFailure records a rejected session token from the client.
func (g *BruteForceGuard) RecordFailure(clientIP string) {
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[clientIP]
	if !ok || now.Sub(rec.firstFail) > bruteForceWindow {
		g.records[clientIP] = &failureRecord{attempts: 1, firstFail: now}
		return
	}

	rec.attempts++
	if rec.attempts >= bruteForceMaxAttempts && rec.lockedAt.IsZero() {
		rec.lockedAt = now
		g.log.WithField("client_ip", clientIP).Warn("client locked out after repeated invalid session tokens")
	}
}

// Reset clears failure tracking for a client after a successful authentication.
func (g *BruteForceGuard) Reset(clientIP string) {
	g.mu.Lock()
	delete(g.records, clientIP)
	g.mu.Unlock()
}

func (g *BruteForceGuard) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(bruteForceCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

// sweep drops expired lockouts and stale windows, then trims the table to
// bruteForceMaxRecords by discarding the oldest entries.
func (g *BruteForceGuard) sweep() {
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	for ip, rec := range g.records {
		locked := !rec.lockedAt.IsZero()
		if (locked && now.Sub(rec.lockedAt) >= bruteForceLockout) ||
			(!locked && now.Sub(rec.firstFail) >= bruteForceWindow) {
			delete(g.records, ip)
		}
	}

	for len(g.records) > bruteForceMaxRecords {
		var (
			oldestIP string
			oldest   time.Time
		)

		for ip, rec := range g.records {
			if oldestIP == "" || rec.firstFail.Before(oldest) {
				oldestIP, oldest = ip, rec.firstFail
			}
		}

		delete(g.records, oldestIP)
	}
}

// BruteForceMiddleware returns middleware that rejects requests from locked-out clients.
func BruteForceMiddleware(guard *BruteForceGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if guard.IsBlocked(c.ClientIP()) {
			respondError(c, http.StatusTooManyRequests, "rate_limited", "too many failed authentication attempts")
			return
		}

		c.Next()
	}
}
