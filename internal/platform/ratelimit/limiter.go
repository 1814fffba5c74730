package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMinInterval is the pacing used for public provider APIs.
const DefaultMinInterval = time.Second

// Limiter enforces a minimum interval between releases. The mutex is held while
// sleeping so concurrent callers queue in lock acquisition order and every caller
// measures against the previous caller's release time.
type Limiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	last        time.Time
	clock       clockwork.Clock
}

type Option func(*Limiter)

func WithClock(clock clockwork.Clock) Option {
	return func(l *Limiter) {
		if clock != nil {
			l.clock = clock
		}
	}
}

func New(minInterval time.Duration, opts ...Option) *Limiter {
	if minInterval < 0 {
		minInterval = 0
	}
	l := &Limiter{
		minInterval: minInterval,
		clock:       clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) MinInterval() time.Duration {
	return l.minInterval
}

// Wait blocks until minInterval has elapsed since the previous release.
// A cancelled context returns its error and leaves the release time untouched.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.last.IsZero() {
		if remaining := l.minInterval - l.clock.Since(l.last); remaining > 0 {
			timer := l.clock.NewTimer(remaining)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.Chan():
			}
		}
	}

	l.last = l.clock.Now()
	return nil
}
