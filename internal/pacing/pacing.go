// package pacing throttles catalog API usage: a minimum-spacing rate
// limiter with a sliding-window cap, and a quota tracker that meters
// billable operation units against a daily budget.
package pacing

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a minimum spacing between calls plus a hard cap on
// calls within a sliding window. Burst capacity is deliberately 1; this
// is steady-state pacing, not a token bucket.
type Limiter struct {
	rl           *rate.Limiter
	window       time.Duration
	maxPerWindow int
	calls        []time.Time

	now func() time.Time
}

// NewLimiter creates a [Limiter] allowing callsPerSecond in steady state
// and at most maxPerWindow calls in any window. A maxPerWindow of zero
// disables the window cap.
func NewLimiter(callsPerSecond float64, window time.Duration, maxPerWindow int) *Limiter {
	return &Limiter{
		rl:           rate.NewLimiter(rate.Limit(callsPerSecond), 1),
		window:       window,
		maxPerWindow: maxPerWindow,
		now:          time.Now,
	}
}

// Wait blocks until the next call is permitted or the context is
// cancelled. Callers hold no lock while waiting; one logical task uses
// a Limiter at a time.
func (l *Limiter) Wait(ctx context.Context) error {
	if err := l.rl.Wait(ctx); err != nil {
		return err
	}

	if l.maxPerWindow > 0 {
		l.prune()
		if len(l.calls) >= l.maxPerWindow {
			wait := l.calls[0].Add(l.window).Sub(l.now())
			if wait > 0 {
				timer := time.NewTimer(wait)
				defer timer.Stop()
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-timer.C:
				}
			}
			l.prune()
		}
		l.calls = append(l.calls, l.now())
	}

	return nil
}

// prune drops call records that have aged out of the window.
func (l *Limiter) prune() {
	cutoff := l.now().Add(-l.window)
	kept := l.calls[:0]
	for _, t := range l.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.calls = kept
}
