package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitOpenError is returned while the breaker rejects calls.
type CircuitOpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%v: retry in %s", ErrCircuitOpen, e.RetryAfter)
	}
	return fmt.Sprintf("%v for %s: retry in %s", ErrCircuitOpen, e.Name, e.RetryAfter)
}

func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type CircuitBreakerState string

const (
	CircuitClosed   CircuitBreakerState = "closed"
	CircuitOpen     CircuitBreakerState = "open"
	CircuitHalfOpen CircuitBreakerState = "half_open"
)

type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold int
	OpenTimeout      time.Duration
}

// CircuitBreaker trips after FailureThreshold consecutive failures and
// rejects calls for OpenTimeout. After that a single probe is let through:
// success closes the breaker, failure re-opens it.
type CircuitBreaker struct {
	mu  sync.Mutex
	cfg CircuitBreakerConfig
	now func() time.Time

	state     CircuitBreakerState
	failures  int
	openUntil time.Time
	probing   bool
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = time.Second
	}

	return &CircuitBreaker{
		cfg:   cfg,
		now:   time.Now,
		state: CircuitClosed,
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refreshLocked()
	return cb.state
}

// Execute runs fn unless the breaker is open. Context cancellation is not
// counted as a failure. Only the half-open probe can close an open breaker;
// calls admitted before it tripped do not change its state when they finish.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	probe, err := cb.admit()
	if err != nil {
		return err
	}

	err = fn(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if probe {
		cb.probing = false
	}

	switch {
	case errors.Is(err, context.Canceled):
	case err != nil:
		if probe {
			cb.tripLocked()
		} else if cb.state == CircuitClosed {
			cb.failures++
			if cb.failures >= cb.cfg.FailureThreshold {
				cb.tripLocked()
			}
		}
	case probe:
		cb.state = CircuitClosed
		cb.failures = 0
	case cb.state == CircuitClosed:
		cb.failures = 0
	}

	return err
}

func (cb *CircuitBreaker) tripLocked() {
	cb.state = CircuitOpen
	cb.openUntil = cb.now().Add(cb.cfg.OpenTimeout)
	cb.failures = 0
}

// admit reports whether the admitted call is the half-open probe.
func (cb *CircuitBreaker) admit() (bool, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refreshLocked()

	switch cb.state {
	case CircuitOpen:
		return false, cb.openErrLocked()
	case CircuitHalfOpen:
		if cb.probing {
			return false, cb.openErrLocked()
		}
		cb.probing = true
		return true, nil
	}
	return false, nil
}

func (cb *CircuitBreaker) refreshLocked() {
	if cb.state == CircuitOpen && !cb.now().Before(cb.openUntil) {
		cb.state = CircuitHalfOpen
		cb.probing = false
	}
}

func (cb *CircuitBreaker) openErrLocked() error {
	remaining := cb.openUntil.Sub(cb.now())
	if remaining < 0 {
		remaining = 0
	}
	return &CircuitOpenError{Name: cb.cfg.Name, RetryAfter: remaining}
}
