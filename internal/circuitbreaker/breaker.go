// Package circuitbreaker stops hammering the remote API while it is
// down. Consecutive transport failures open the breaker; after a
// cooldown a single probe is let through, and its outcome decides
// whether the breaker closes again.
package circuitbreaker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrOpen is returned in place of a remote call while the breaker is
// open.
var ErrOpen = errors.New("circuitbreaker: remote calls suspended")

// State is the breaker state.
type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures that
	// opens the breaker.
	FailureThreshold int

	// Cooldown is how long the breaker stays open before allowing a
	// probe call.
	Cooldown time.Duration

	// Clock overrides time.Now, for tests.
	Clock func() time.Time

	Logger *zap.Logger
}

// Breaker tracks consecutive failures of a remote dependency. Callers
// gate each call on Allow and report the outcome with RecordSuccess or
// RecordFailure.
type Breaker struct {
	threshold int
	cooldown  time.Duration
	clock     func() time.Time
	logger    *zap.Logger

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// New creates a closed breaker.
func New(cfg *Config) (*Breaker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.FailureThreshold <= 0 {
		return nil, fmt.Errorf("failure threshold must be positive")
	}
	if cfg.Cooldown <= 0 {
		return nil, fmt.Errorf("cooldown must be positive")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	BreakerState.Set(float64(StateClosed))

	return &Breaker{
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		clock:     clock,
		logger:    cfg.Logger,
	}, nil
}

// Allow reports whether a call may proceed. While half-open only one
// probe call is admitted at a time.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return true
	case StateOpen:
		if b.clock().Sub(b.openedAt) < b.cooldown {
			RejectedTotal.Inc()
			return false
		}
		b.transitionLocked(StateHalfOpen)
		b.probing = true
		return true
	case StateHalfOpen:
		if b.probing {
			RejectedTotal.Inc()
			return false
		}
		b.probing = true
		return true
	}
	return false
}

// RecordSuccess closes the breaker and clears the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures = 0
	b.probing = false
	if b.state != StateClosed {
		b.transitionLocked(StateClosed)
	}
}

// RecordFailure counts a failure. At the threshold the breaker opens;
// a failed half-open probe reopens it immediately.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false

	if b.state == StateHalfOpen {
		b.openedAt = b.clock()
		b.transitionLocked(StateOpen)
		return
	}

	b.failures++
	if b.state == StateClosed && b.failures >= b.threshold {
		b.openedAt = b.clock()
		b.transitionLocked(StateOpen)
	}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) transitionLocked(next State) {
	from := b.state
	b.state = next

	BreakerState.Set(float64(next))
	StateChangesTotal.Inc()

	b.logger.Info("circuit-breaker-state-changed",
		zap.String("from", from.String()),
		zap.String("to", next.String()),
		zap.Int("failures", b.failures))
}
