package ratelimit

import (
	"sync"
	"time"

	"cottage/config"
)

// Limiter is the denial-of-abuse gate applied to public booking traffic.
// State is process-local and best-effort: it resets on restart and is not a
// correctness mechanism. Implementations must be safe for concurrent use.
type Limiter interface {
	Allow(key string) bool
	Remaining(key string) int
}

type slidingWindow struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	sweep  time.Time
}

// NewFromConfig builds the limiter from the app rate limiter settings.
func NewFromConfig(cfg *config.Config) Limiter {
	return NewSlidingWindow(cfg.App.RateLimiter.MaxRequests, time.Duration(cfg.App.RateLimiter.WindowSeconds)*time.Second)
}

// NewSlidingWindow returns a Limiter admitting at most max hits per key within
// the trailing window.
func NewSlidingWindow(max int, window time.Duration) Limiter {
	return &slidingWindow{
		hits:   map[string][]time.Time{},
		max:    max,
		window: window,
	}
}

// Allow records a hit for key and reports whether it is within quota. A denied
// hit is not recorded, so hammering while throttled does not extend the block.
func (l *slidingWindow) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	recent := l.prune(key, now)

	if len(recent) >= l.max {
		l.hits[key] = recent

		return false
	}

	l.hits[key] = append(recent, now)

	return true
}

// Remaining reports how many hits the key has left in the current window.
func (l *slidingWindow) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := l.max - len(l.prune(key, time.Now()))
	if remaining < 0 {
		remaining = 0
	}

	return remaining
}

// prune drops hits older than the window for one key and, at most once per
// window, evicts idle keys so the map does not grow unbounded across many
// distinct callers.
func (l *slidingWindow) prune(key string, now time.Time) []time.Time {
	cutoff := now.Add(-l.window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) == 0 {
		delete(l.hits, key)
	}

	if now.Sub(l.sweep) > l.window {
		l.sweep = now

		for k, ts := range l.hits {
			if k != key && (len(ts) == 0 || !ts[len(ts)-1].After(cutoff)) {
				delete(l.hits, k)
			}
		}
	}

	return recent
}
