package ratelimit_test

import (
	"testing"
	"time"

	"bookbazaar/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindow_QuotaBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewWithClock(50, time.Minute, func() time.Time { return now })

	// The 50th request is admitted, the 51st is not.
	for i := 1; i <= 50; i++ {
		assert.True(t, limiter.Allow("203.0.113.7"), "request %d should be admitted", i)
	}
	assert.False(t, limiter.Allow("203.0.113.7"), "51st request should be rejected")
	assert.False(t, limiter.Allow("203.0.113.7"), "subsequent requests in the same window stay rejected")
}

func TestFixedWindow_WindowReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewWithClock(50, time.Minute, func() time.Time { return now })

	for i := 0; i < 51; i++ {
		limiter.Allow("198.51.100.2")
	}
	assert.False(t, limiter.Allow("198.51.100.2"))

	// Crossing the window boundary resets the counter and a fresh quota is
	// available.
	now = now.Add(time.Minute)
	for i := 1; i <= 50; i++ {
		assert.True(t, limiter.Allow("198.51.100.2"), "request %d after reset should be admitted", i)
	}
	assert.False(t, limiter.Allow("198.51.100.2"))
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := ratelimit.NewWithClock(2, time.Minute, func() time.Time { return now })

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// A different client address has its own counter.
	assert.True(t, limiter.Allow("10.0.0.2"))
}
