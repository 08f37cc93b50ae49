package workout

import (
	"time"

	"github.com/spotter-app/spotter/internal/models"
)

// EMOM runs a fixed interval repeating for a set number of rounds:
// prep → work → complete. The whole work phase is a single anchored
// countdown of interval × rounds; the current round is derived from
// elapsed time, so logging never advances it and the phase ends at
// exactly rounds × interval.
type EMOM struct {
	cfg     models.TimerConfig
	now     func() time.Time
	effects Effects

	phase     Phase
	prep      *Countdown
	work      *Countdown
	lastRound int
	slots     map[int]QuickLog
}

// NewEMOM returns an EMOM machine in its prep phase. A nil clock
// defaults to time.Now.
func NewEMOM(
	cfg models.TimerConfig,
	now func() time.Time,
	effects Effects,
) *EMOM {
	if now == nil {
		now = time.Now
	}

	if effects == nil {
		effects = NopEffects{}
	}

	total := time.Duration(cfg.IntervalSeconds*cfg.TotalRounds) * time.Second

	return &EMOM{
		cfg:     cfg,
		now:     now,
		effects: effects,
		phase:   PhasePrep,
		prep: NewCountdown(
			time.Duration(cfg.PrepCountdownSeconds)*time.Second,
			now,
		),
		work:      NewCountdown(total, now),
		lastRound: 1,
		slots:     make(map[int]QuickLog),
	}
}

// Start begins the prep countdown.
func (e *EMOM) Start() {
	e.prep.Start()
	e.effects.PhaseChange(PhasePrep)
}

// Phase returns the current phase.
func (e *EMOM) Phase() Phase {
	return e.phase
}

// Round returns the 1-based current round, derived from elapsed work
// time.
func (e *EMOM) Round() int {
	if e.phase != PhaseWork {
		return e.lastRound
	}

	interval := time.Duration(e.cfg.IntervalSeconds) * time.Second

	round := int(e.work.Elapsed()/interval) + 1
	if round > e.cfg.TotalRounds {
		round = e.cfg.TotalRounds
	}

	return round
}

// Remaining reports the time left in the current round's interval, or
// in the prep countdown while preparing.
func (e *EMOM) Remaining() time.Duration {
	switch e.phase {
	case PhasePrep:
		return e.prep.Remaining()
	case PhaseWork:
		interval := time.Duration(e.cfg.IntervalSeconds) * time.Second

		r := e.work.Remaining() % interval
		if r == 0 && e.work.Remaining() > 0 {
			r = interval
		}

		return r
	default:
		return 0
	}
}

// Log fills the current round's quick-log slot. Each round holds at
// most one entry; logging again in the same round replaces it, and
// logging never advances the round.
func (e *EMOM) Log(weightKg float64, reps int) {
	if e.phase != PhaseWork {
		return
	}

	round := e.Round()

	e.slots[round] = QuickLog{
		Round:    round,
		WeightKg: weightKg,
		Reps:     reps,
	}
}

// Pause freezes the active countdown.
func (e *EMOM) Pause() {
	switch e.phase {
	case PhasePrep:
		e.prep.Pause()
	case PhaseWork:
		e.work.Pause()
	}
}

// Resume continues from the paused remaining time.
func (e *EMOM) Resume() {
	switch e.phase {
	case PhasePrep:
		e.prep.Resume()
	case PhaseWork:
		e.work.Resume()
	}
}

// Paused reports whether the active countdown is frozen.
func (e *EMOM) Paused() bool {
	switch e.phase {
	case PhasePrep:
		return e.prep.Paused()
	case PhaseWork:
		return e.work.Paused()
	default:
		return false
	}
}

// EndEarly aborts the timer directly to complete.
func (e *EMOM) EndEarly() {
	if e.phase == PhaseComplete {
		return
	}

	e.lastRound = e.Round()
	e.phase = PhaseComplete
	e.effects.PhaseChange(PhaseComplete)
}

// Done reports whether the timer has completed.
func (e *EMOM) Done() bool {
	return e.phase == PhaseComplete
}

// Tick advances the machine against the clock; it reports whether the
// phase or round changed.
func (e *EMOM) Tick() bool {
	switch e.phase {
	case PhasePrep:
		if e.prep.InTickWindow() {
			e.effects.Tick()
		}

		if !e.prep.Fire() {
			return false
		}

		e.phase = PhaseWork
		e.work.Start()
		e.effects.PhaseChange(PhaseWork)

		return true

	case PhaseWork:
		if !e.work.Paused() &&
			e.Remaining() > 0 && e.Remaining() <= tickWindow {
			e.effects.Tick()
		}

		if e.work.Fire() {
			e.lastRound = e.cfg.TotalRounds
			e.phase = PhaseComplete
			e.effects.PhaseChange(PhaseComplete)

			return true
		}

		// round rollover within the work phase
		if round := e.Round(); round != e.lastRound {
			e.lastRound = round
			e.effects.PhaseChange(PhaseWork)

			return true
		}

		return false

	default:
		return false
	}
}

// Logs returns the accumulated quick logs in round order, ready to be
// flushed when the group finishes.
func (e *EMOM) Logs() []QuickLog {
	logs := make([]QuickLog, 0, len(e.slots))

	for round := 1; round <= e.cfg.TotalRounds; round++ {
		if q, ok := e.slots[round]; ok {
			logs = append(logs, q)
		}
	}

	return logs
}
