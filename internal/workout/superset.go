package workout

import (
	"time"

	"github.com/spotter-app/spotter/internal/models"
)

// Superset cycles an active-exercise cursor through a group of paired
// movements. Logging a set for any exercise but the last advances the
// cursor immediately with rest suppressed; logging the last exercise
// starts the group's shared rest, and when that rest completes the
// cursor returns to the first exercise and the round increments.
type Superset struct {
	cfg       models.TimerConfig
	now       func() time.Time
	effects   Effects
	exercises int

	phase Phase
	index int
	round int
	rest  *RestTimer
}

// NewSuperset returns a superset machine on round 1, exercise 0.
// A nil clock defaults to time.Now.
func NewSuperset(
	cfg models.TimerConfig,
	exercises int,
	now func() time.Time,
	effects Effects,
) *Superset {
	if now == nil {
		now = time.Now
	}

	if effects == nil {
		effects = NopEffects{}
	}

	return &Superset{
		cfg:       cfg,
		now:       now,
		effects:   effects,
		exercises: exercises,
		phase:     PhaseSetActive,
		round:     1,
	}
}

// Phase returns the current phase.
func (s *Superset) Phase() Phase {
	return s.phase
}

// ActiveExercise returns the index of the exercise currently being
// performed.
func (s *Superset) ActiveExercise() int {
	return s.index
}

// Round returns the 1-based round number.
func (s *Superset) Round() int {
	return s.round
}

// LogSet records that a set was logged for the active exercise. All but
// the last exercise advance the cursor with no rest; the last starts
// the shared rest timer.
func (s *Superset) LogSet() {
	if s.phase != PhaseSetActive {
		return
	}

	if s.index < s.exercises-1 {
		s.index++
		return
	}

	s.phase = PhaseResting

	s.rest = NewRestTimer(
		time.Duration(s.cfg.RestSeconds)*time.Second,
		s.now,
	)
	s.rest.Start()

	s.effects.PhaseChange(PhaseResting)
}

// Rest exposes the shared rest timer, or nil outside the resting
// phase.
func (s *Superset) Rest() *RestTimer {
	if s.phase != PhaseResting {
		return nil
	}

	return s.rest
}

// SkipRest ends the shared rest immediately.
func (s *Superset) SkipRest() {
	if s.phase == PhaseResting {
		s.rest.Skip()
	}
}

// Tick advances the machine against the clock; on rest completion the
// cursor resets and the round increments. It reports whether the phase
// changed.
func (s *Superset) Tick() bool {
	if s.phase != PhaseResting {
		return false
	}

	if s.rest.InTickWindow() {
		s.effects.Tick()
	}

	if !s.rest.Done() {
		return false
	}

	s.phase = PhaseSetActive
	s.index = 0
	s.round++
	s.rest = nil
	s.effects.PhaseChange(PhaseSetActive)

	return true
}
