package workout

import (
	"time"

	"github.com/spotter-app/spotter/internal/models"
)

// Score summarizes an AMRAP effort. A round only counts as full when
// every exercise in it was logged; the trailing incomplete round is
// reported as extra reps instead.
type Score struct {
	FullRounds  int
	ExtraReps   int
	TotalVolume float64
}

// AMRAP runs a single time cap: prep → work → complete. Within work a
// (round, exercise) cursor advances by one exercise per quick log;
// the countdown is independent of logging and only stops at zero or on
// an explicit early end.
type AMRAP struct {
	cfg       models.TimerConfig
	now       func() time.Time
	effects   Effects
	exercises int

	phase Phase
	prep  *Countdown
	work  *Countdown
	round int
	index int
	logs  []QuickLog
}

// NewAMRAP returns an AMRAP machine in its prep phase, cursor at round
// 1, exercise 0. A nil clock defaults to time.Now.
func NewAMRAP(
	cfg models.TimerConfig,
	exercises int,
	now func() time.Time,
	effects Effects,
) *AMRAP {
	if now == nil {
		now = time.Now
	}

	if effects == nil {
		effects = NopEffects{}
	}

	return &AMRAP{
		cfg:       cfg,
		now:       now,
		effects:   effects,
		exercises: exercises,
		phase:     PhasePrep,
		prep: NewCountdown(
			time.Duration(cfg.PrepCountdownSeconds)*time.Second,
			now,
		),
		work: NewCountdown(
			time.Duration(cfg.TimeLimitSeconds)*time.Second,
			now,
		),
		round: 1,
	}
}

// Start begins the prep countdown.
func (a *AMRAP) Start() {
	a.prep.Start()
	a.effects.PhaseChange(PhasePrep)
}

// Phase returns the current phase.
func (a *AMRAP) Phase() Phase {
	return a.phase
}

// Round returns the cursor's 1-based round.
func (a *AMRAP) Round() int {
	return a.round
}

// ActiveExercise returns the cursor's exercise index.
func (a *AMRAP) ActiveExercise() int {
	return a.index
}

// Remaining reports the time left on the cap, or on the prep countdown
// while preparing.
func (a *AMRAP) Remaining() time.Duration {
	switch a.phase {
	case PhasePrep:
		return a.prep.Remaining()
	case PhaseWork:
		return a.work.Remaining()
	default:
		return 0
	}
}

// Log records a quick set for the exercise under the cursor and
// advances it by one exercise; completing a round moves to the next
// round's first exercise.
func (a *AMRAP) Log(weightKg float64, reps int) {
	if a.phase != PhaseWork {
		return
	}

	a.logs = append(a.logs, QuickLog{
		Round:         a.round,
		ExerciseIndex: a.index,
		WeightKg:      weightKg,
		Reps:          reps,
	})

	a.index++
	if a.index >= a.exercises {
		a.index = 0
		a.round++
	}
}

// Pause freezes the active countdown.
func (a *AMRAP) Pause() {
	switch a.phase {
	case PhasePrep:
		a.prep.Pause()
	case PhaseWork:
		a.work.Pause()
	}
}

// Resume continues from the paused remaining time.
func (a *AMRAP) Resume() {
	switch a.phase {
	case PhasePrep:
		a.prep.Resume()
	case PhaseWork:
		a.work.Resume()
	}
}

// Paused reports whether the active countdown is frozen.
func (a *AMRAP) Paused() bool {
	switch a.phase {
	case PhasePrep:
		return a.prep.Paused()
	case PhaseWork:
		return a.work.Paused()
	default:
		return false
	}
}

// EndEarly aborts the timer directly to complete.
func (a *AMRAP) EndEarly() {
	if a.phase == PhaseComplete {
		return
	}

	a.phase = PhaseComplete
	a.effects.PhaseChange(PhaseComplete)
}

// Done reports whether the timer has completed.
func (a *AMRAP) Done() bool {
	return a.phase == PhaseComplete
}

// Tick advances the machine against the clock; it reports whether the
// phase changed.
func (a *AMRAP) Tick() bool {
	switch a.phase {
	case PhasePrep:
		if a.prep.InTickWindow() {
			a.effects.Tick()
		}

		if !a.prep.Fire() {
			return false
		}

		a.phase = PhaseWork
		a.work.Start()
		a.effects.PhaseChange(PhaseWork)

		return true

	case PhaseWork:
		if a.work.InTickWindow() {
			a.effects.Tick()
		}

		if !a.work.Fire() {
			return false
		}

		a.phase = PhaseComplete
		a.effects.PhaseChange(PhaseComplete)

		return true

	default:
		return false
	}
}

// Logs returns the accumulated quick logs in the order they were
// recorded.
func (a *AMRAP) Logs() []QuickLog {
	return a.logs
}

// Score computes the final AMRAP result: the number of rounds in which
// every exercise was logged, the reps logged in the trailing incomplete
// round, and the total volume over all entries.
func (a *AMRAP) Score() Score {
	var score Score

	perRound := make(map[int]int)
	maxRound := 0

	for _, q := range a.logs {
		perRound[q.Round]++

		if q.Round > maxRound {
			maxRound = q.Round
		}

		score.TotalVolume += q.WeightKg * float64(q.Reps)
	}

	if maxRound == 0 {
		return score
	}

	if perRound[maxRound] >= a.exercises {
		score.FullRounds = maxRound
		return score
	}

	score.FullRounds = maxRound - 1

	for _, q := range a.logs {
		if q.Round == maxRound {
			score.ExtraReps += q.Reps
		}
	}

	return score
}
