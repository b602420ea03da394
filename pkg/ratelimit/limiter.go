// Package ratelimit provides an in-process sliding window rate limiter.
//
// Each upstream provider gets its own Limiter tuned below the vendor's
// advertised free-tier ceiling. The limiter throttles, it never rejects:
// Acquire blocks until a slot opens or the context is cancelled.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter permits at most maxCalls calls in any trailing window.
type Limiter struct {
	mu       sync.Mutex
	maxCalls int
	window   time.Duration
	calls    []time.Time
}

// New creates a limiter allowing maxCalls per window.
func New(maxCalls int, window time.Duration) *Limiter {
	if maxCalls < 1 {
		maxCalls = 1
	}
	return &Limiter{
		maxCalls: maxCalls,
		window:   window,
		calls:    make([]time.Time, 0, maxCalls),
	}
}

// Acquire blocks until one more call is permitted, then records it.
// Returns ctx.Err() if the context is cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	for {
		wait, ok := l.tryAcquire()
		if ok {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			// Re-check; another caller may have taken the slot.
		}
	}
}

// tryAcquire attempts to record a call under the budget. On success it
// returns (0, true); otherwise the duration until the oldest retained
// call exits the window. The prune-check-record sequence runs under one
// lock so concurrent callers can never both observe the last free slot.
func (l *Limiter) tryAcquire() (time.Duration, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.prune(now)

	if len(l.calls) < l.maxCalls {
		l.calls = append(l.calls, now)
		return 0, true
	}

	wait := l.calls[0].Add(l.window).Sub(now)
	if wait < time.Millisecond {
		wait = time.Millisecond
	}
	return wait, false
}

// prune discards call records older than the trailing window.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	i := 0
	for i < len(l.calls) && !l.calls[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.calls = append(l.calls[:0], l.calls[i:]...)
	}
}

// InFlight returns the number of calls currently counted in the window.
func (l *Limiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.prune(time.Now())
	return len(l.calls)
}

// Limit returns the configured (maxCalls, window) budget.
func (l *Limiter) Limit() (int, time.Duration) {
	return l.maxCalls, l.window
}
