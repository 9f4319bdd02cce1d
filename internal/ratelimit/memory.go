package ratelimit

import (
	"context"
	"sync"
	"time"
)

// entry is one client's window state.
type entry struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter is a fixed-window limiter backed by a mutex-guarded map.
// It is the single-instance default: no cross-process coordination, which is
// acceptable while the service runs as one logical instance per deployment.
//
// A background sweeper deletes entries whose window has expired so the map
// does not grow without bound as one-off clients come and go.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   int
	window  time.Duration
	done    chan struct{}
}

// NewMemoryLimiter creates a limiter admitting up to limit requests per key
// per window and starts its sweeper goroutine. Call Stop to release it.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*entry),
		limit:   limit,
		window:  window,
		done:    make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow admits the first sight of a key and any key whose window has passed
// with a fresh count of 1. Inside a live window it increments up to the
// limit; at the limit it denies without incrementing.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	e, ok := l.entries[key]
	if !ok || now.After(e.resetTime) {
		l.entries[key] = &entry{count: 1, resetTime: now.Add(l.window)}
		return true, 0
	}

	if e.count >= l.limit {
		return false, time.Until(e.resetTime)
	}

	e.count++
	return true, 0
}

// Stop terminates the sweeper goroutine.
func (l *MemoryLimiter) Stop() {
	close(l.done)
}

// sweep periodically removes expired entries. Live windows keep their
// counts; only keys past their reset time are dropped.
func (l *MemoryLimiter) sweep() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.mu.Lock()
			now := time.Now()
			for key, e := range l.entries {
				if now.After(e.resetTime) {
					delete(l.entries, key)
				}
			}
			l.mu.Unlock()
		case <-l.done:
			return
		}
	}
}
