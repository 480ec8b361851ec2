// Package timer implements the practice countdown as a pure state machine so
// the transitions can be tested without real time.
package timer

import (
	"errors"
	"fmt"
)

type State string

const (
	StateStopped  State = "stopped"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

const (
	MinDurationMinutes = 1
	MaxDurationMinutes = 120
)

var (
	ErrNotRunning      = errors.New("timer is not running")
	ErrAlreadyRunning  = errors.New("timer is already running")
	ErrAdjustWhileBusy = errors.New("duration can only change while stopped")
)

// Countdown counts whole seconds from a configured duration down to zero.
// stopped(duration) → running → {finished | paused → running | stopped}.
type Countdown struct {
	state        State
	durationSec  int
	remainingSec int
}

func New(minutes int) (*Countdown, error) {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return nil, fmt.Errorf("duration must be between %d and %d minutes, got %d",
			MinDurationMinutes, MaxDurationMinutes, minutes)
	}
	sec := minutes * 60
	return &Countdown{state: StateStopped, durationSec: sec, remainingSec: sec}, nil
}

func (c *Countdown) State() State   { return c.state }
func (c *Countdown) Remaining() int { return c.remainingSec }
func (c *Countdown) Duration() int  { return c.durationSec }

// SetDuration is only legal while stopped; a running or paused timer keeps
// its original duration.
func (c *Countdown) SetDuration(minutes int) error {
	if c.state != StateStopped {
		return ErrAdjustWhileBusy
	}
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return fmt.Errorf("duration must be between %d and %d minutes, got %d",
			MinDurationMinutes, MaxDurationMinutes, minutes)
	}
	c.durationSec = minutes * 60
	c.remainingSec = c.durationSec
	return nil
}

func (c *Countdown) Start() error {
	switch c.state {
	case StateStopped, StatePaused:
		c.state = StateRunning
		return nil
	case StateRunning:
		return ErrAlreadyRunning
	default:
		return fmt.Errorf("cannot start a %s timer", c.state)
	}
}

func (c *Countdown) Pause() error {
	if c.state != StateRunning {
		return ErrNotRunning
	}
	c.state = StatePaused
	return nil
}

// Reset returns to stopped with the full duration, from any state.
func (c *Countdown) Reset() {
	c.state = StateStopped
	c.remainingSec = c.durationSec
}

// Tick advances one second while running and reports whether the countdown
// just finished. Ticks in any other state are ignored.
func (c *Countdown) Tick() bool {
	if c.state != StateRunning {
		return false
	}
	c.remainingSec--
	if c.remainingSec <= 0 {
		c.remainingSec = 0
		c.state = StateFinished
		return true
	}
	return false
}
