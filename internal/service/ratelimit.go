package service

import (
	"sync"
	"time"
)

// AttemptLimiter is an in-memory per-key limiter for credential endpoints,
// using the token bucket algorithm. It is safe for concurrent use and
// cleans up stale buckets in the background until Stop is called.
type AttemptLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*attemptBucket
	rate     float64 // tokens added per second
	capacity float64 // maximum burst
	done     chan struct{}
}

type attemptBucket struct {
	tokens float64
	last   time.Time
}

// NewAttemptLimiter allows a burst of capacity attempts per key, refilling
// at rate attempts per second.
func NewAttemptLimiter(rate, capacity float64) *AttemptLimiter {
	l := &AttemptLimiter{
		buckets:  make(map[string]*attemptBucket),
		rate:     rate,
		capacity: capacity,
		done:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

// Allow reports whether the given key may attempt again, consuming one
// token when it may.
func (l *AttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &attemptBucket{tokens: l.capacity, last: time.Now()}
		l.buckets[key] = b
	}

	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*l.rate, l.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Stop ends the background cleanup goroutine.
func (l *AttemptLimiter) Stop() {
	close(l.done)
}

// cleanup removes buckets idle for more than 10 minutes.
func (l *AttemptLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for key, b := range l.buckets {
				if b.last.Before(cutoff) {
					delete(l.buckets, key)
				}
			}
			l.mu.Unlock()
		}
	}
}
