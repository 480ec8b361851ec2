package timer

import (
	"errors"
	"testing"
)

func TestNew_RejectsOutOfRangeDuration(t *testing.T) {
	for _, minutes := range []int{0, -5, 121} {
		if _, err := New(minutes); err == nil {
			t.Fatalf("expected error for %d minutes", minutes)
		}
	}
	c, err := New(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Remaining() != 60 {
		t.Fatalf("expected 60 seconds remaining, got %d", c.Remaining())
	}
}

func TestCountdown_RunsThroughToFinished(t *testing.T) {
	c, _ := New(1)
	if err := c.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	var finished bool
	for i := 0; i < 60; i++ {
		finished = c.Tick()
	}
	if !finished {
		t.Fatalf("expected the 60th tick to finish the countdown")
	}
	if c.State() != StateFinished || c.Remaining() != 0 {
		t.Fatalf("expected finished/0, got %s/%d", c.State(), c.Remaining())
	}
}

func TestCountdown_PauseHoldsRemaining(t *testing.T) {
	c, _ := New(2)
	_ = c.Start()
	c.Tick()
	c.Tick()
	if err := c.Pause(); err != nil {
		t.Fatalf("pause: %v", err)
	}
	before := c.Remaining()
	if c.Tick() {
		t.Fatalf("tick while paused must not finish")
	}
	if c.Remaining() != before {
		t.Fatalf("remaining changed while paused: %d -> %d", before, c.Remaining())
	}
	if err := c.Start(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	c.Tick()
	if c.Remaining() != before-1 {
		t.Fatalf("expected resume to continue from %d, got %d", before-1, c.Remaining())
	}
}

func TestCountdown_ResetRestoresFullDuration(t *testing.T) {
	c, _ := New(3)
	_ = c.Start()
	c.Tick()
	c.Reset()
	if c.State() != StateStopped {
		t.Fatalf("expected stopped after reset, got %s", c.State())
	}
	if c.Remaining() != c.Duration() {
		t.Fatalf("expected full duration after reset, got %d/%d", c.Remaining(), c.Duration())
	}
}

func TestSetDuration_OnlyWhileStopped(t *testing.T) {
	c, _ := New(5)
	if err := c.SetDuration(10); err != nil {
		t.Fatalf("set while stopped: %v", err)
	}
	if c.Remaining() != 600 {
		t.Fatalf("expected 600 seconds, got %d", c.Remaining())
	}

	_ = c.Start()
	if err := c.SetDuration(20); !errors.Is(err, ErrAdjustWhileBusy) {
		t.Fatalf("expected ErrAdjustWhileBusy while running, got %v", err)
	}
	_ = c.Pause()
	if err := c.SetDuration(20); !errors.Is(err, ErrAdjustWhileBusy) {
		t.Fatalf("expected ErrAdjustWhileBusy while paused, got %v", err)
	}
}

func TestStart_ErrorsWhenAlreadyRunning(t *testing.T) {
	c, _ := New(1)
	_ = c.Start()
	if err := c.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestPause_ErrorsWhenNotRunning(t *testing.T) {
	c, _ := New(1)
	if err := c.Pause(); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
}
