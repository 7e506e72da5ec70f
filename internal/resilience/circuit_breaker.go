// SPDX-License-Identifier: MIT

// Package resilience guards upstream calls with a circuit breaker.
package resilience

import (
	"errors"
	"sync"
	"time"

	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/metrics"
)

// State is the breaker position.
type State string

const (
	StateClosed   State = "closed"
	StateOpen     State = "open"
	StateHalfOpen State = "half-open"
)

// ErrCircuitOpen is returned without calling the guarded function.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// CircuitBreaker counts consecutive upstream failures and, past a threshold,
// rejects calls until resetTimeout has elapsed. After that a single trial call is
// let through; its outcome closes or re-opens the breaker.
type CircuitBreaker struct {
	name         string
	threshold    int
	resetTimeout time.Duration
	clock        clock
	isFailure    func(error) bool

	mu       sync.Mutex
	state    State
	streak   int
	openedAt time.Time
	inTrial  bool
}

// Option customises a CircuitBreaker.
type Option func(*CircuitBreaker)

// WithClock replaces the wall clock, for tests.
func WithClock(c clock) Option {
	return func(cb *CircuitBreaker) { cb.clock = c }
}

// WithFailureFilter limits which errors count against the upstream. Rejected
// errors are still returned to the caller but leave the breaker untouched.
func WithFailureFilter(fn func(error) bool) Option {
	return func(cb *CircuitBreaker) { cb.isFailure = fn }
}

// NewCircuitBreaker returns a closed breaker. threshold defaults to 3 and
// resetTimeout to 30s.
func NewCircuitBreaker(name string, threshold int, resetTimeout time.Duration, opts ...Option) *CircuitBreaker {
	if threshold <= 0 {
		threshold = 3
	}
	if resetTimeout <= 0 {
		resetTimeout = 30 * time.Second
	}
	cb := &CircuitBreaker{
		name:         name,
		threshold:    threshold,
		resetTimeout: resetTimeout,
		clock:        realClock{},
		state:        StateClosed,
	}
	for _, opt := range opts {
		opt(cb)
	}
	metrics.SetCircuitBreakerState(name, string(StateClosed))
	return cb
}

// Execute calls fn unless the breaker is open.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	trial, ok := cb.admit()
	if !ok {
		return ErrCircuitOpen
	}

	err := fn()
	counted := err != nil && (cb.isFailure == nil || cb.isFailure(err))
	cb.settle(trial, counted, err != nil)
	return err
}

// admit reports whether a call may proceed and whether it is the half-open trial.
func (cb *CircuitBreaker) admit() (trial, ok bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return false, true
	case StateOpen:
		if cb.clock.Now().Sub(cb.openedAt) < cb.resetTimeout {
			return false, false
		}
		cb.setState(StateHalfOpen)
	}
	if cb.inTrial {
		return false, false
	}
	cb.inTrial = true
	return true, true
}

func (cb *CircuitBreaker) settle(trial, counted, failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if trial {
		cb.inTrial = false
		if counted {
			metrics.RecordCircuitBreakerTrip(cb.name, "trial_failed")
			cb.open()
			return
		}
		cb.streak = 0
		cb.setState(StateClosed)
		return
	}

	if !counted {
		if !failed {
			cb.streak = 0
		}
		return
	}
	cb.streak++
	if cb.state == StateClosed && cb.streak >= cb.threshold {
		metrics.RecordCircuitBreakerTrip(cb.name, "threshold_exceeded")
		cb.open()
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.clock.Now()
	cb.setState(StateOpen)
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(s State) {
	if cb.state == s {
		return
	}
	prev := cb.state
	cb.state = s
	metrics.SetCircuitBreakerState(cb.name, string(s))
	logger := xglog.WithComponent("resilience")
	logger.Info().
		Str(xglog.FieldEvent, "breaker.transition").
		Str("breaker", cb.name).
		Str("from", string(prev)).
		Str("to", string(s)).
		Int("failures", cb.streak).
		Msg("circuit breaker state changed")
}

// State returns the current position.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Name identifies the breaker in metrics and logs.
func (cb *CircuitBreaker) Name() string { return cb.name }
