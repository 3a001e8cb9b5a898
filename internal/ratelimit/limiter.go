// Package ratelimit implements a per-key request limiter over a trailing
// window, persisted in a pluggable store, with a net/http middleware.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Decision is the outcome of one limiter check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// RetryAfter is the time until the oldest request in the window expires.
	RetryAfter time.Duration
}

// Limiter admits at most max requests per key within window. All checks are
// serialised under one lock so concurrent requests for the same key cannot
// both pass a load-check-save cycle.
type Limiter struct {
	store  Store
	max    int
	window time.Duration
	now    func() time.Time

	mu sync.Mutex
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces the limiter's time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New returns a limiter persisting timestamps in store.
func New(store Store, max int, window time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		store:  store,
		max:    max,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Limit returns the configured maximum per window.
func (l *Limiter) Limit() int {
	return l.max
}

// Allow records a request for key when the key is under its limit.
// Denied requests are not recorded.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	stamps, err := l.recent(ctx, key, now)
	if err != nil {
		return Decision{}, err
	}

	if len(stamps) >= l.max {
		return Decision{
			Allowed:    false,
			Limit:      l.max,
			RetryAfter: l.resetIn(stamps, now),
		}, nil
	}

	stamps = append(stamps, now)
	if err := l.store.Save(ctx, key, stamps, l.window); err != nil {
		return Decision{}, fmt.Errorf("failed to save rate limit state: %w", err)
	}
	return Decision{
		Allowed:    true,
		Limit:      l.max,
		Remaining:  l.max - len(stamps),
		RetryAfter: l.resetIn(stamps, now),
	}, nil
}

// Remaining reports how many requests key may still make without recording one.
func (l *Limiter) Remaining(ctx context.Context, key string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamps, err := l.recent(ctx, key, l.now())
	if err != nil {
		return 0, err
	}
	return max(l.max-len(stamps), 0), nil
}

// recent loads key's timestamps and drops those outside the window.
func (l *Limiter) recent(ctx context.Context, key string, now time.Time) ([]time.Time, error) {
	stamps, err := l.store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate limit state: %w", err)
	}
	cutoff := now.Add(-l.window)
	kept := stamps[:0]
	for _, t := range stamps {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept, nil
}

func (l *Limiter) resetIn(stamps []time.Time, now time.Time) time.Duration {
	if len(stamps) == 0 {
		return 0
	}
	oldest := stamps[0]
	for _, t := range stamps[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}
	return max(oldest.Add(l.window).Sub(now), 0)
}
