// Package circuitbreaker wraps sony/gobreaker with logging and defaults
// tuned for the upstream market-data APIs.
package circuitbreaker

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/movewise/swap-router/internal/logger"
)

// CircuitBreaker is a typed circuit breaker around an upstream call.
type CircuitBreaker[T any] struct {
	cb *gobreaker.CircuitBreaker[T]
}

// Config holds circuit breaker tuning knobs.
type Config struct {
	MaxRequests uint          // Requests allowed while half-open
	Interval    time.Duration // Counter reset interval while closed
	Timeout     time.Duration // Open -> half-open transition delay
	MaxFailures uint32        // Consecutive failures before opening
}

// DefaultConfig returns settings suited to flaky public APIs: open after
// five consecutive failures, probe again after 30 seconds.
func DefaultConfig() Config {
	return Config{
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		MaxFailures: 5,
	}
}

// New creates a circuit breaker with default settings.
func New[T any](name string, log logger.LoggerInterface) *CircuitBreaker[T] {
	return NewWithConfig[T](name, DefaultConfig(), log)
}

// NewWithConfig creates a circuit breaker with the given settings.
func NewWithConfig[T any](name string, cfg Config, log logger.LoggerInterface) *CircuitBreaker[T] {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(cfg.MaxRequests),
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &CircuitBreaker[T]{
		cb: gobreaker.NewCircuitBreaker[T](settings),
	}
}

// Execute runs fn through the breaker.
func (c *CircuitBreaker[T]) Execute(fn func() (T, error)) (T, error) {
	return c.cb.Execute(fn)
}

// State returns the current breaker state.
func (c *CircuitBreaker[T]) State() gobreaker.State {
	return c.cb.State()
}
