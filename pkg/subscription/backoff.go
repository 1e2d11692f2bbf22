package subscription

import (
	"math/rand"
	"sync"
	"time"
)

// BackoffConfig holds the exponential backoff parameters used between
// reconnection attempts.
type BackoffConfig struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
	Jitter       float64 // 0.2 = up to 20% added per attempt
}

// Backoff produces successive reconnection delays: exponential growth
// up to MaxDelay, with random jitter so clients do not reconnect in
// lockstep after a shared outage.
type Backoff struct {
	cfg     BackoffConfig
	mu      sync.Mutex
	current time.Duration
}

// NewBackoff creates a Backoff starting at the initial delay.
func NewBackoff(cfg BackoffConfig) *Backoff {
	return &Backoff{
		cfg:     cfg,
		current: cfg.InitialDelay,
	}
}

// Next returns the delay to wait before the next attempt and advances
// the backoff.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	jittered := float64(b.current) * (1.0 + rand.Float64()*b.cfg.Jitter)

	next := time.Duration(float64(b.current) * b.cfg.Multiplier)
	if next > b.cfg.MaxDelay {
		next = b.cfg.MaxDelay
	}
	b.current = next

	return time.Duration(jittered)
}

// Reset returns the backoff to its initial delay after a successful
// connection.
func (b *Backoff) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current = b.cfg.InitialDelay
}
