// Package ratelimit provides per-client rate limiting using the token bucket
// algorithm. Each protected scope (queries, uploads) gets its own Limiter.
package ratelimit

import (
	"sync"
	"time"
)

// bucket is a single client's token bucket. Tokens refill at a steady rate
// up to the burst capacity.
type bucket struct {
	capacity   int
	refillRate float64
	tokens     float64
	lastRefill time.Time
}

func (b *bucket) allow(now time.Time) bool {
	elapsed := now.Sub(b.lastRefill)
	b.tokens += elapsed.Seconds() * b.refillRate
	if b.tokens > float64(b.capacity) {
		b.tokens = float64(b.capacity)
	}
	b.lastRefill = now

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}

// Limiter tracks one token bucket per client key.
type Limiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	lastAccess map[string]time.Time

	limit  int
	window time.Duration

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter allows limit requests per window for each client key, with a
// background sweep dropping buckets idle for two windows.
func NewLimiter(limit int, window time.Duration) *Limiter {
	l := &Limiter{
		buckets:    make(map[string]*bucket),
		lastAccess: make(map[string]time.Time),
		limit:      limit,
		window:     window,
	}

	l.cleanupTicker = time.NewTicker(window)
	l.cleanupStop = make(chan struct{})
	go l.cleanupLoop()
	return l
}

// Allow reports whether the client may proceed, consuming a token if so.
func (l *Limiter) Allow(clientID string) bool {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{
			capacity:   l.limit,
			refillRate: float64(l.limit) / l.window.Seconds(),
			tokens:     float64(l.limit),
			lastRefill: now,
		}
		l.buckets[clientID] = b
	}
	l.lastAccess[clientID] = now
	return b.allow(now)
}

// Stop halts the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
		close(l.cleanupStop)
	}
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.sweep()
		case <-l.cleanupStop:
			return
		}
	}
}

func (l *Limiter) sweep() {
	cutoff := time.Now().Add(-2 * l.window)

	l.mu.Lock()
	defer l.mu.Unlock()
	for id, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, id)
			delete(l.lastAccess, id)
		}
	}
}
