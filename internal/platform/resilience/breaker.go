package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type State uint8

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

const (
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 15 * time.Second
	defaultHalfOpenProbes   = 2
)

// BreakerConfig tunes a Breaker. Non-positive limits fall back to defaults.
// OnStateChange runs with the breaker locked and must not call back into it.
type BreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenProbes   int
	OnStateChange    func(from, to State)
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.FailureThreshold < 1 {
		c.FailureThreshold = defaultFailureThreshold
	}
	if c.OpenTimeout <= 0 {
		c.OpenTimeout = defaultOpenTimeout
	}
	if c.HalfOpenProbes < 1 {
		c.HalfOpenProbes = defaultHalfOpenProbes
	}
	return c
}

// Breaker counts consecutive backend failures. Once tripped it rejects calls
// until the cool-down has passed, then admits a bounded number of probes.
// Every probe has to succeed before it closes again.
//
// A nil *Breaker admits everything.
type Breaker struct {
	mu sync.Mutex

	cfg       BreakerConfig
	state     State
	failures  int
	openedAt  time.Time
	probesOut int
	probesOK  int
	now       func() time.Time
}

// NewBreaker returns nil when cfg is disabled.
func NewBreaker(cfg BreakerConfig) *Breaker {
	if !cfg.Enabled {
		return nil
	}
	return &Breaker{
		cfg:   cfg.withDefaults(),
		state: StateClosed,
		now:   time.Now,
	}
}

// Allow reserves a call. Every nil return must be paired with Done.
func (b *Breaker) Allow() error {
	if b == nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.cfg.OpenTimeout {
			return ErrCircuitOpen
		}
		b.setState(StateHalfOpen)
	}
	if b.state == StateHalfOpen {
		if b.probesOut >= b.cfg.HalfOpenProbes {
			return ErrCircuitOpen
		}
		b.probesOut++
	}
	return nil
}

// Done records the outcome of a call admitted by Allow. A caller that gave
// up (context.Canceled) says nothing about the backend and counts as success.
func (b *Breaker) Done(err error) {
	if b == nil {
		return
	}
	failed := err != nil && !errors.Is(err, context.Canceled)

	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		if !failed {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	case StateHalfOpen:
		if b.probesOut > 0 {
			b.probesOut--
		}
		if failed {
			b.trip()
			return
		}
		b.probesOK++
		if b.probesOK >= b.cfg.HalfOpenProbes && b.probesOut == 0 {
			b.setState(StateClosed)
		}
	case StateOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
}

// State reports the current state. An open breaker whose cool-down has
// passed reads as half-open even before the next Allow.
func (b *Breaker) State() State {
	if b == nil {
		return StateClosed
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return StateHalfOpen
	}
	return b.state
}

func (b *Breaker) trip() {
	b.setState(StateOpen)
	b.openedAt = b.now()
}

func (b *Breaker) setState(to State) {
	from := b.state
	b.state = to
	b.failures = 0
	b.probesOut = 0
	b.probesOK = 0
	if to != StateOpen {
		b.openedAt = time.Time{}
	}
	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}
