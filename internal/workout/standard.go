package workout

import (
	"time"

	"github.com/spotter-app/spotter/internal/models"
)

// Standard runs a single exercise through the idle → setActive →
// resting loop. It has no terminal phase of its own: the caller judges
// completion against the exercise's target sets.
//
// Phase advancement is driven solely by observed log growth: the
// machine snapshots the exercise's log count after every transition and
// moves to resting when a strictly larger count is reported while a set
// is active.
type Standard struct {
	cfg     models.TimerConfig
	now     func() time.Time
	effects Effects

	phase    Phase
	setStart time.Time
	rest     *RestTimer
	logCount int
}

// NewStandard returns an idle standard machine seeded with the
// exercise's current log count. A nil clock defaults to time.Now.
func NewStandard(
	cfg models.TimerConfig,
	logCount int,
	now func() time.Time,
	effects Effects,
) *Standard {
	if now == nil {
		now = time.Now
	}

	if effects == nil {
		effects = NopEffects{}
	}

	return &Standard{
		cfg:      cfg,
		now:      now,
		effects:  effects,
		phase:    PhaseIdle,
		logCount: logCount,
	}
}

// Phase returns the current phase.
func (s *Standard) Phase() Phase {
	return s.phase
}

// StartSet begins a working set: the stopwatch starts counting up from
// this instant. Ignored outside the idle phase.
func (s *Standard) StartSet() {
	if s.phase != PhaseIdle {
		return
	}

	s.phase = PhaseSetActive
	s.setStart = s.now()
	s.effects.PhaseChange(PhaseSetActive)
}

// SetElapsed reports how long the active set has been running.
func (s *Standard) SetElapsed() time.Duration {
	if s.phase != PhaseSetActive {
		return 0
	}

	return s.now().Sub(s.setStart)
}

// ObserveLogCount feeds the exercise's latest log count into the
// machine. A count above the snapshot while a set is active arms the
// rest timer: the warmup duration when this was the exercise's
// first-ever set and a warmup is configured, the standard rest
// otherwise.
func (s *Standard) ObserveLogCount(count int) {
	if s.phase != PhaseSetActive || count <= s.logCount {
		return
	}

	restSeconds := s.cfg.RestSeconds
	if s.logCount == 0 && s.cfg.WarmupRestSeconds > 0 {
		restSeconds = s.cfg.WarmupRestSeconds
	}

	s.logCount = count
	s.phase = PhaseResting

	s.rest = NewRestTimer(
		time.Duration(restSeconds)*time.Second,
		s.now,
	)
	s.rest.Start()

	s.effects.PhaseChange(PhaseResting)
}

// Rest exposes the active rest timer, or nil outside the resting
// phase.
func (s *Standard) Rest() *RestTimer {
	if s.phase != PhaseResting {
		return nil
	}

	return s.rest
}

// SkipRest ends the rest immediately.
func (s *Standard) SkipRest() {
	if s.phase == PhaseResting {
		s.rest.Skip()
	}
}

// Tick advances the machine against the clock; it reports whether the
// phase changed.
func (s *Standard) Tick() bool {
	if s.phase != PhaseResting {
		return false
	}

	if s.rest.InTickWindow() {
		s.effects.Tick()
	}

	if !s.rest.Done() {
		return false
	}

	s.phase = PhaseIdle
	s.rest = nil
	s.effects.PhaseChange(PhaseIdle)

	return true
}
