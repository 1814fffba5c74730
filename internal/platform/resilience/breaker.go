package resilience

import (
	"errors"

	"github.com/riskibarqy/athlete-hub/internal/platform/logging"
	"github.com/sony/gobreaker/v2"
)

// Breaker guards calls to one upstream dependency. A disabled breaker runs every call.
type Breaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

func NewBreaker[T any](name string, cfg CircuitBreakerConfig, logger *logging.Logger) *Breaker[T] {
	if !cfg.Enabled {
		return &Breaker[T]{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	cfg = NormalizeCircuitBreakerConfig(cfg)
	threshold := uint32(cfg.FailureThreshold)

	return &Breaker[T]{cb: gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.HalfOpenMaxReq),
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})}
}

func (b *Breaker[T]) Execute(fn func() (T, error)) (T, error) {
	if b == nil || b.cb == nil {
		return fn()
	}
	return b.cb.Execute(fn)
}

// State reports "disabled" when the breaker is off.
func (b *Breaker[T]) State() string {
	if b == nil || b.cb == nil {
		return "disabled"
	}
	return b.cb.State().String()
}

// IsOpen reports whether err is a rejection by an open or saturated half-open breaker.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
