package workout

import (
	"time"

	"github.com/spotter-app/spotter/internal/models"
)

// Circuit runs a fixed work/rest interval sequence: prep, then for each
// round a work countdown per exercise separated by circuit rests, with
// a longer round rest between rounds, finishing after the last
// exercise of the last round. Only countdown expiry moves the phase;
// quick logs record a set against the active (round, exercise) without
// ever triggering a transition.
type Circuit struct {
	cfg       models.TimerConfig
	now       func() time.Time
	effects   Effects
	exercises int

	phase     Phase
	countdown *Countdown
	round     int
	index     int
	logs      []QuickLog
}

// NewCircuit returns a circuit machine in its prep phase. A nil clock
// defaults to time.Now.
func NewCircuit(
	cfg models.TimerConfig,
	exercises int,
	now func() time.Time,
	effects Effects,
) *Circuit {
	if now == nil {
		now = time.Now
	}

	if effects == nil {
		effects = NopEffects{}
	}

	c := &Circuit{
		cfg:       cfg,
		now:       now,
		effects:   effects,
		exercises: exercises,
		phase:     PhasePrep,
		round:     1,
	}

	c.countdown = NewCountdown(
		time.Duration(cfg.PrepCountdownSeconds)*time.Second,
		now,
	)

	return c
}

// Start begins the prep countdown.
func (c *Circuit) Start() {
	c.countdown.Start()
	c.effects.PhaseChange(PhasePrep)
}

// Phase returns the current phase.
func (c *Circuit) Phase() Phase {
	return c.phase
}

// Round returns the 1-based current round.
func (c *Circuit) Round() int {
	return c.round
}

// ActiveExercise returns the index of the exercise being worked or
// rested into.
func (c *Circuit) ActiveExercise() int {
	return c.index
}

// Remaining reports the time left in the current phase's countdown.
func (c *Circuit) Remaining() time.Duration {
	if c.phase == PhaseComplete {
		return 0
	}

	return c.countdown.Remaining()
}

// Log records a quick set against the active round and exercise during
// work.
func (c *Circuit) Log(weightKg float64, reps int) {
	if c.phase != PhaseWork {
		return
	}

	c.logs = append(c.logs, QuickLog{
		Round:         c.round,
		ExerciseIndex: c.index,
		WeightKg:      weightKg,
		Reps:          reps,
	})
}

// Pause freezes the current countdown.
func (c *Circuit) Pause() {
	if c.phase != PhaseComplete {
		c.countdown.Pause()
	}
}

// Resume continues from the paused remaining time.
func (c *Circuit) Resume() {
	c.countdown.Resume()
}

// Paused reports whether the current countdown is frozen.
func (c *Circuit) Paused() bool {
	return c.phase != PhaseComplete && c.countdown.Paused()
}

// EndEarly aborts the timer directly to complete.
func (c *Circuit) EndEarly() {
	if c.phase == PhaseComplete {
		return
	}

	c.phase = PhaseComplete
	c.effects.PhaseChange(PhaseComplete)
}

// Done reports whether the timer has completed.
func (c *Circuit) Done() bool {
	return c.phase == PhaseComplete
}

// Tick advances the machine against the clock; it reports whether the
// phase changed.
func (c *Circuit) Tick() bool {
	if c.phase == PhaseComplete {
		return false
	}

	if c.countdown.InTickWindow() {
		c.effects.Tick()
	}

	if !c.countdown.Fire() {
		return false
	}

	c.advance()

	return true
}

// advance applies the transition for an expired countdown.
func (c *Circuit) advance() {
	switch c.phase {
	case PhasePrep:
		c.enter(PhaseWork, c.cfg.WorkSeconds)

	case PhaseWork:
		lastExercise := c.index == c.exercises-1
		lastRound := c.round == c.cfg.Rounds

		switch {
		case lastExercise && lastRound:
			c.phase = PhaseComplete
			c.effects.PhaseChange(PhaseComplete)
		case lastExercise:
			c.enter(PhaseRoundRest, c.cfg.RoundRestSeconds)
		default:
			c.enter(PhaseCircuitRest, c.cfg.CircuitRestSeconds)
		}

	case PhaseCircuitRest:
		c.index++
		c.enter(PhaseWork, c.cfg.WorkSeconds)

	case PhaseRoundRest:
		c.round++
		c.index = 0
		c.enter(PhaseWork, c.cfg.WorkSeconds)
	}
}

func (c *Circuit) enter(phase Phase, seconds int) {
	c.phase = phase
	c.countdown = NewCountdown(time.Duration(seconds)*time.Second, c.now)
	c.countdown.Start()
	c.effects.PhaseChange(phase)
}

// Logs returns the accumulated quick logs in the order they were
// recorded.
func (c *Circuit) Logs() []QuickLog {
	return c.logs
}
