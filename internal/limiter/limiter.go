// Package limiter provides a process-local fixed-window rate limiter.
package limiter

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrLimitExceeded is returned when the current window has no calls left.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// FixedWindow allows at most limit calls per window. The window starts with the first call
// after the previous window expired.
type FixedWindow struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	count       int
	now         func() time.Time
}

// NewFixedWindow creates a limiter allowing limit calls per window.
func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow consumes one call. It returns ErrLimitExceeded with the time left until the window resets.
func (l *FixedWindow) Allow() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.windowStart.IsZero() || now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}

	if l.count >= l.limit {
		retryIn := l.window - now.Sub(l.windowStart)
		return fmt.Errorf("%w: retry in %s", ErrLimitExceeded, retryIn.Round(time.Second))
	}

	l.count++
	return nil
}
