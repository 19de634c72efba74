// Package engine implements the wall-clock anchored countdown that
// drives every ZenFlowz session. Remaining time is recomputed from an
// absolute end timestamp on each poll, so accuracy does not depend on
// how regularly the driver ticks.
package engine

import (
	"math"
	"time"
)

// Handler receives the completion signal with the progress value at the
// moment the countdown expired (1.0 on a natural completion).
type Handler func(quality float64)

// Countdown tracks a single session's remaining time and progress.
// It is passive: a driver calls Tick on a short interval (TickInterval
// or faster) and the countdown recomputes its state from the clock.
// All methods must be called from one goroutine.
type Countdown struct {
	total    time.Duration
	end      time.Time
	timeLeft int
	progress float64
	running  bool
	fired    bool

	// handler is a mutable slot: the countdown always invokes whatever
	// handler was installed last, so callers can swap in a fresh closure
	// whenever its dependencies change.
	handler Handler

	now func() time.Time
}

// New creates a countdown for the given duration, stopped at full time.
func New(total time.Duration) *Countdown {
	c := &Countdown{now: time.Now}
	c.Reset(total)
	return c
}

// SetClock overrides the wall clock. Tests use this to script time.
func (c *Countdown) SetClock(now func() time.Time) {
	c.now = now
}

// SetHandler installs the completion handler.
func (c *Countdown) SetHandler(fn Handler) {
	c.handler = fn
}

// Start anchors the deadline to the wall clock and begins a run segment.
// Resuming after a pause picks up from the frozen progress, so no time
// is lost or double-counted across pause/resume.
func (c *Countdown) Start() {
	if c.running || (c.timeLeft == 0 && c.progress >= 1) {
		return
	}
	remaining := time.Duration((1 - c.progress) * float64(c.total))
	c.end = c.now().Add(remaining)
	c.running = true
	c.fired = false
}

// Pause stops the run segment. TimeLeft and Progress freeze at their
// last computed values.
func (c *Countdown) Pause() {
	c.running = false
}

// Reset stops any active segment and rebaselines to a new duration.
// A non-positive duration is treated as already complete.
func (c *Countdown) Reset(total time.Duration) {
	c.total = total
	c.running = false
	c.fired = false
	if total <= 0 {
		c.timeLeft = 0
		c.progress = 1
		return
	}
	c.timeLeft = int(math.Ceil(total.Seconds()))
	c.progress = 0
}

// Finish drives the countdown straight to zero without signalling the
// handler. Used by force-completion paths that deliver their own signal.
func (c *Countdown) Finish() {
	c.running = false
	c.fired = true
	c.timeLeft = 0
	c.progress = 1
}

// Tick recomputes remaining time from the wall clock. When the deadline
// passes it stops, invokes the handler exactly once for this segment,
// and reports true. Ticking while paused is a no-op, so cancelling a
// segment synchronously prevents any further completion delivery.
func (c *Countdown) Tick() bool {
	if !c.running {
		return false
	}
	remaining := c.end.Sub(c.now())
	if remaining < 0 {
		remaining = 0
	}
	c.timeLeft = int(math.Ceil(remaining.Seconds()))
	if c.total > 0 {
		c.progress = math.Min(1, math.Max(0, 1-float64(remaining)/float64(c.total)))
	} else {
		c.progress = 1
	}
	if remaining > 0 {
		return false
	}
	c.running = false
	if c.fired {
		return false
	}
	c.fired = true
	if c.handler != nil {
		c.handler(c.progress)
	}
	return true
}

// TimeLeft returns the remaining whole seconds.
func (c *Countdown) TimeLeft() int {
	return c.timeLeft
}

// Progress returns the normalized progress in [0,1].
func (c *Countdown) Progress() float64 {
	return c.progress
}

// Running reports whether a run segment is active.
func (c *Countdown) Running() bool {
	return c.running
}

// Total returns the duration the countdown was last reset to.
func (c *Countdown) Total() time.Duration {
	return c.total
}
