// Package workout operates the per-group workout timers: the anchored
// countdown core, the rest timer, and the phase machines for the
// standard, superset, EMOM, AMRAP, and circuit modes.
package workout

import "time"

// tickWindow is the trailing stretch of a countdown during which the
// per-second tick effect fires.
const tickWindow = 4 * time.Second

// Countdown counts down a fixed duration against the wall clock.
// Remaining time is always recomputed as duration − (now − anchor)
// rather than accumulated from ticks, so backgrounding and scheduling
// jitter self-correct. Pausing snapshots the remaining time; resuming
// re-derives the anchor so no elapsed time is lost or double-counted.
type Countdown struct {
	now      func() time.Time
	duration time.Duration
	anchor   time.Time
	frozen   time.Duration
	running  bool
	paused   bool
	fired    bool
}

// NewCountdown returns an unstarted countdown for the given duration.
// A nil clock defaults to time.Now.
func NewCountdown(d time.Duration, now func() time.Time) *Countdown {
	if now == nil {
		now = time.Now
	}

	return &Countdown{
		now:      now,
		duration: d,
	}
}

// Start anchors the countdown at the current instant. Starting an
// already-running countdown restarts it from the full duration.
func (c *Countdown) Start() {
	c.anchor = c.now()
	c.running = true
	c.paused = false
	c.fired = false
}

// Remaining reports the time left, never negative. While paused it
// returns the snapshot taken at pause time.
func (c *Countdown) Remaining() time.Duration {
	if !c.running {
		return c.duration
	}

	if c.paused {
		return c.frozen
	}

	remaining := c.duration - c.now().Sub(c.anchor)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Pause freezes the displayed remaining time.
func (c *Countdown) Pause() {
	if !c.running || c.paused {
		return
	}

	c.frozen = c.Remaining()
	c.paused = true
}

// Resume re-derives the anchor from the frozen remaining time so the
// countdown continues from exactly where it was paused.
func (c *Countdown) Resume() {
	if !c.paused {
		return
	}

	c.anchor = c.now().Add(-(c.duration - c.frozen))
	c.paused = false
}

// Paused reports whether the countdown is currently frozen.
func (c *Countdown) Paused() bool {
	return c.paused
}

// Adjust stretches or shrinks the countdown by delta without moving the
// anchor. Shrinking below zero leaves the countdown expired rather than
// negative.
func (c *Countdown) Adjust(delta time.Duration) {
	c.duration += delta

	if c.paused {
		c.frozen += delta
		if c.frozen < 0 {
			c.frozen = 0
		}
	}
}

// Duration returns the current (possibly adjusted) total duration.
func (c *Countdown) Duration() time.Duration {
	return c.duration
}

// Elapsed reports how much of the countdown has run.
func (c *Countdown) Elapsed() time.Duration {
	return c.duration - c.Remaining()
}

// Expired reports whether the countdown has reached zero. A paused
// countdown never expires.
func (c *Countdown) Expired() bool {
	return c.running && !c.paused && c.Remaining() == 0
}

// Fire reports expiry exactly once, guarding against a completion
// racing an external cancel or a duplicate tick.
func (c *Countdown) Fire() bool {
	if c.fired || !c.Expired() {
		return false
	}

	c.fired = true

	return true
}

// InTickWindow reports whether the countdown is inside its final
// seconds, where the tick effect fires.
func (c *Countdown) InTickWindow() bool {
	r := c.Remaining()
	return c.running && !c.paused && r > 0 && r <= tickWindow
}
