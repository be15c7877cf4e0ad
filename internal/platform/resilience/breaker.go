package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs outside the breaker
// lock, so it may call back into the breaker.
type StateChangeFunc func(key string, from, to CircuitState)

type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
	OnStateChange    StateChangeFunc
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 5,
		OpenTimeout:      60 * time.Second,
		HalfOpenMaxReq:   1,
	}
}

func (c CircuitBreakerConfig) normalized() CircuitBreakerConfig {
	defaults := DefaultCircuitBreakerConfig()
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaults.FailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaults.OpenTimeout
	}
	if c.HalfOpenMaxReq < 1 {
		c.HalfOpenMaxReq = defaults.HalfOpenMaxReq
	}
	return c
}

// CircuitBreaker fails fast against one upstream after FailureThreshold
// consecutive failures, then lets HalfOpenMaxReq probes through once
// OpenTimeout has passed.
type CircuitBreaker struct {
	key string
	cfg CircuitBreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     CircuitState
	failures  int
	openedAt  time.Time
	probing   int
	succeeded int
}

type transition struct {
	from, to CircuitState
}

func NewCircuitBreaker(key string, cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		key:   key,
		cfg:   cfg.normalized(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

func (b *CircuitBreaker) Key() string { return b.key }

// Allow reserves a slot for one call or returns ErrCircuitOpen.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	var changed *transition
	if b.state == CircuitStateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			b.mu.Unlock()
			return ErrCircuitOpen
		}
		changed = b.moveTo(CircuitStateHalfOpen)
	}
	var err error
	if b.state == CircuitStateHalfOpen {
		if b.probing >= b.cfg.HalfOpenMaxReq {
			err = ErrCircuitOpen
		} else {
			b.probing++
		}
	}
	b.mu.Unlock()

	b.notify(changed)
	return err
}

// Do runs fn under the breaker. Errors for which isFailure returns false
// pass through without counting against the upstream; a nil isFailure
// counts every error.
func (b *CircuitBreaker) Do(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	var changed *transition
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.releaseProbe()
		b.succeeded++
		if b.succeeded >= b.cfg.HalfOpenMaxReq && b.probing == 0 {
			changed = b.moveTo(CircuitStateClosed)
		}
	}
	b.mu.Unlock()
	b.notify(changed)
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	var changed *transition
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			changed = b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.releaseProbe()
		changed = b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	b.mu.Unlock()
	b.notify(changed)
}

// State reports half-open as soon as the open timeout elapses, even before
// the next Allow performs the transition.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) releaseProbe() {
	if b.probing > 0 {
		b.probing--
	}
}

// moveTo must be called with mu held.
func (b *CircuitBreaker) moveTo(to CircuitState) *transition {
	from := b.state
	b.state = to
	b.probing = 0
	b.succeeded = 0
	switch to {
	case CircuitStateOpen:
		b.openedAt = b.now()
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	}
	if from == to {
		return nil
	}
	return &transition{from: from, to: to}
}

func (b *CircuitBreaker) notify(t *transition) {
	if t == nil || b.cfg.OnStateChange == nil {
		return
	}
	b.cfg.OnStateChange(b.key, t.from, t.to)
}
