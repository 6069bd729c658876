package ratelimit

import (
	"sync"
	"time"
)

// entry tracks one client's current window.
type entry struct {
	count       int
	windowStart time.Time
}

// FixedWindow counts requests per key within fixed wall-clock windows. Counts
// reset when a window expires rather than sliding, so a burst exactly at a
// window boundary can exceed the intended average rate; that approximation is
// deliberate. Entries are never evicted, so the map grows with the number of
// distinct keys seen (TODO: periodic eviction of stale entries).
type FixedWindow struct {
	mu     sync.Mutex
	quota  int
	window time.Duration
	now    func() time.Time
	seen   map[string]*entry
}

// New creates a limiter admitting up to quota requests per key per window.
func New(quota int, window time.Duration) *FixedWindow {
	return NewWithClock(quota, window, time.Now)
}

// NewWithClock is New with an injectable clock, for tests.
func NewWithClock(quota int, window time.Duration, now func() time.Time) *FixedWindow {
	return &FixedWindow{
		quota:  quota,
		window: window,
		now:    now,
		seen:   make(map[string]*entry),
	}
}

// Allow records a request for key and reports whether it stays within quota.
// The first request past the quota and every one after it, within the same
// window, are rejected.
func (l *FixedWindow) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.seen[key]
	if !ok || now.Sub(e.windowStart) >= l.window {
		l.seen[key] = &entry{count: 1, windowStart: now}
		return true
	}

	e.count++
	return e.count <= l.quota
}
