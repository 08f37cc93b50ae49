package workout

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		t: time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
	}
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func TestCountdownAnchoredRemaining(t *testing.T) {
	clock := newFakeClock()

	c := NewCountdown(90*time.Second, clock.now)
	c.Start()

	clock.advance(25 * time.Second)

	if got := c.Remaining(); got != 65*time.Second {
		t.Fatalf("remaining = %v, want 65s", got)
	}

	// a long suspension self-corrects instead of drifting
	clock.advance(2 * time.Minute)

	if got := c.Remaining(); got != 0 {
		t.Fatalf("remaining = %v, want 0", got)
	}
}

func TestCountdownPauseResume(t *testing.T) {
	clock := newFakeClock()

	c := NewCountdown(60*time.Second, clock.now)
	c.Start()

	clock.advance(20 * time.Second)
	c.Pause()

	before := c.Remaining()

	// time passing while paused must not drain the countdown
	clock.advance(5 * time.Minute)

	if got := c.Remaining(); got != before {
		t.Fatalf("paused remaining = %v, want %v", got, before)
	}

	c.Resume()

	if got := c.Remaining(); got != before {
		t.Fatalf(
			"remaining moved across an immediate resume: %v != %v",
			got,
			before,
		)
	}

	clock.advance(10 * time.Second)

	if got := c.Remaining(); got != 30*time.Second {
		t.Fatalf("remaining after resume = %v, want 30s", got)
	}
}

func TestCountdownPauseResumeWallDelayOnly(t *testing.T) {
	clock := newFakeClock()

	c := NewCountdown(45*time.Second, clock.now)
	c.Start()

	clock.advance(10 * time.Second)

	c.Pause()
	clock.advance(700 * time.Millisecond) // real delay between the taps
	c.Resume()

	got := c.Remaining()

	if got > 35*time.Second {
		t.Fatalf("remaining moved backward: %v > 35s", got)
	}

	if got < 35*time.Second {
		t.Fatalf("resume lost time beyond the wall delay: %v", got)
	}
}

func TestCountdownAdjust(t *testing.T) {
	clock := newFakeClock()

	c := NewCountdown(30*time.Second, clock.now)
	c.Start()

	clock.advance(10 * time.Second)

	c.Adjust(15 * time.Second)

	if got := c.Remaining(); got != 35*time.Second {
		t.Fatalf("remaining after +15s = %v, want 35s", got)
	}

	c.Adjust(-15 * time.Second)

	if got := c.Remaining(); got != 20*time.Second {
		t.Fatalf("remaining after -15s = %v, want 20s", got)
	}

	// shrinking past zero expires rather than going negative
	c.Adjust(-time.Minute)

	if got := c.Remaining(); got != 0 {
		t.Fatalf("remaining = %v, want 0", got)
	}
}

func TestCountdownFireOnce(t *testing.T) {
	clock := newFakeClock()

	c := NewCountdown(5*time.Second, clock.now)
	c.Start()

	if c.Fire() {
		t.Fatal("fired before expiry")
	}

	clock.advance(6 * time.Second)

	if !c.Fire() {
		t.Fatal("did not fire at expiry")
	}

	if c.Fire() {
		t.Fatal("fired twice")
	}
}

func TestCountdownTickWindow(t *testing.T) {
	clock := newFakeClock()

	c := NewCountdown(10*time.Second, clock.now)
	c.Start()

	if c.InTickWindow() {
		t.Fatal("in tick window with 10s remaining")
	}

	clock.advance(6500 * time.Millisecond)

	if !c.InTickWindow() {
		t.Fatal("not in tick window with 3.5s remaining")
	}

	clock.advance(4 * time.Second)

	if c.InTickWindow() {
		t.Fatal("in tick window after expiry")
	}
}

func TestRestTimerAdjustRearms(t *testing.T) {
	clock := newFakeClock()

	r := NewRestTimer(90*time.Second, clock.now)

	var rearmed []time.Duration

	r.Rearm = func(remaining time.Duration) {
		rearmed = append(rearmed, remaining)
	}

	r.Start()
	clock.advance(30 * time.Second)

	r.Extend()
	r.Shorten()

	want := []time.Duration{75 * time.Second, 60 * time.Second}

	if len(rearmed) != 2 || rearmed[0] != want[0] || rearmed[1] != want[1] {
		t.Fatalf("rearm calls = %v, want %v", rearmed, want)
	}
}

func TestRestTimerSkipFiresOnce(t *testing.T) {
	clock := newFakeClock()

	r := NewRestTimer(90*time.Second, clock.now)
	r.Start()

	r.Skip()

	if r.Remaining() != 0 {
		t.Fatal("skip should zero the remaining time")
	}

	if !r.Done() {
		t.Fatal("skipped rest should report done")
	}

	// even if the countdown also expires, completion fires once
	clock.advance(2 * time.Minute)

	if r.Done() {
		t.Fatal("completion fired twice")
	}
}
