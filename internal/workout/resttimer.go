package workout

import "time"

// AdjustStep is the increment applied by the rest timer's +/- controls.
const AdjustStep = 15 * time.Second

// RestTimer is the between-sets countdown used by the standard and
// superset machines. It supports mid-countdown adjustment, which also
// re-arms any scheduled background completion notification, and an
// explicit skip.
type RestTimer struct {
	countdown *Countdown

	// Rearm, when set, is invoked with the new remaining time after
	// every adjustment so a pending completion notification can be
	// rescheduled.
	Rearm func(remaining time.Duration)

	skipped bool
}

// NewRestTimer returns an unstarted rest timer. A nil clock defaults to
// time.Now.
func NewRestTimer(d time.Duration, now func() time.Time) *RestTimer {
	return &RestTimer{
		countdown: NewCountdown(d, now),
	}
}

// Start begins the countdown from its full duration.
func (r *RestTimer) Start() {
	r.skipped = false
	r.countdown.Start()
}

// Remaining reports the rest time left.
func (r *RestTimer) Remaining() time.Duration {
	if r.skipped {
		return 0
	}

	return r.countdown.Remaining()
}

// Adjust extends or shortens the rest by delta and re-arms the pending
// completion notification.
func (r *RestTimer) Adjust(delta time.Duration) {
	r.countdown.Adjust(delta)

	if r.Rearm != nil {
		r.Rearm(r.countdown.Remaining())
	}
}

// Extend adds one adjustment step.
func (r *RestTimer) Extend() {
	r.Adjust(AdjustStep)
}

// Shorten removes one adjustment step.
func (r *RestTimer) Shorten() {
	r.Adjust(-AdjustStep)
}

// Skip ends the rest immediately.
func (r *RestTimer) Skip() {
	r.skipped = true
}

// Pause freezes the countdown.
func (r *RestTimer) Pause() {
	r.countdown.Pause()
}

// Resume continues from the paused remaining time.
func (r *RestTimer) Resume() {
	r.countdown.Resume()
}

// Done reports completion exactly once, whether the countdown ran out
// or the rest was skipped.
func (r *RestTimer) Done() bool {
	if r.skipped {
		// route the skip through the countdown's one-shot guard so a
		// racing expiry cannot double-fire
		if r.countdown.fired {
			return false
		}

		r.countdown.fired = true

		return true
	}

	return r.countdown.Fire()
}

// InTickWindow reports whether the rest is inside its final seconds.
func (r *RestTimer) InTickWindow() bool {
	return !r.skipped && r.countdown.InTickWindow()
}
