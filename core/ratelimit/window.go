// Package ratelimit implements the gateway's global sliding-window limiter.
package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultLimit is the number of requests admitted per window, sized for
	// the provider's free tier.
	DefaultLimit = 10
	// DefaultWindow is the trailing interval over which requests are counted.
	DefaultWindow = 60 * time.Second

	// maxStamps bounds the retained timestamp queue.
	maxStamps = 50
)

// SlidingWindow admits calls as long as fewer than limit calls were recorded
// in the trailing window. It is shared across all endpoints and callers, and
// is safe for concurrent use.
type SlidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	limit  int
	stamps []time.Time
	now    func() time.Time
}

type Option func(*SlidingWindow)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(w *SlidingWindow) {
		w.now = now
	}
}

func NewSlidingWindow(limit int, window time.Duration, opts ...Option) *SlidingWindow {
	w := &SlidingWindow{
		window: window,
		limit:  limit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *SlidingWindow) Limit() int {
	return w.limit
}

func (w *SlidingWindow) Window() time.Duration {
	return w.window
}

// Allow records the current call and admits it, or rejects it returning how
// long the caller should wait before retrying. Expired timestamps are evicted
// lazily on each check.
func (w *SlidingWindow) Allow() (time.Duration, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	cutoff := now.Add(-w.window)
	i := 0
	for i < len(w.stamps) && w.stamps[i].Before(cutoff) {
		i++
	}
	w.stamps = w.stamps[i:]

	if len(w.stamps) >= w.limit {
		// Wait until the oldest recorded call slides out of the window,
		// floored to whole seconds plus one.
		wait := w.window - now.Sub(w.stamps[0])
		return wait.Truncate(time.Second) + time.Second, false
	}

	if len(w.stamps) >= maxStamps {
		w.stamps = w.stamps[1:]
	}
	w.stamps = append(w.stamps, now)
	return 0, true
}
