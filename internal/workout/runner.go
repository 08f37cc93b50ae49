package workout

import (
	"context"
	"fmt"
	"time"

	"github.com/spotter-app/spotter/internal/models"
)

// Machine is a timed-mode phase machine (EMOM, AMRAP, circuit) drivable
// by a Runner.
type Machine interface {
	Start()
	Tick() bool
	Phase() Phase
	Round() int
	Remaining() time.Duration
	Pause()
	Resume()
	Paused() bool
	EndEarly()
	Done() bool
	Log(weightKg float64, reps int)
	Logs() []QuickLog
}

// LogWriter persists one logged set.
type LogWriter interface {
	SaveLog(
		ctx context.Context,
		log models.ExerciseLog,
	) (*models.ExerciseLog, error)
}

// Runner drives a machine with one-second wall-clock ticks. Commands
// arrive over an internal channel so the machine stays single-writer;
// when the machine completes, the accumulated quick logs are flushed
// sequentially before Run returns.
type Runner struct {
	machine   Machine
	writer    LogWriter
	sessionID string
	group     models.ExerciseGroup

	// Confirm gates the early-end abort; a nil hook ends without
	// asking.
	Confirm func(prompt string) bool

	// Render is called after every tick and command with the latest
	// committed state.
	Render func(m Machine)

	cmds chan func()
}

// NewRunner wires a runner around a machine. The writer may be nil for
// modes that do not persist quick logs.
func NewRunner(
	machine Machine,
	writer LogWriter,
	sessionID string,
	group models.ExerciseGroup,
) *Runner {
	return &Runner{
		machine:   machine,
		writer:    writer,
		sessionID: sessionID,
		group:     group,
		cmds:      make(chan func(), 8),
	}
}

// Pause freezes the machine's active countdown.
func (r *Runner) Pause() {
	r.cmds <- r.machine.Pause
}

// Resume continues the machine from its paused remaining time.
func (r *Runner) Resume() {
	r.cmds <- r.machine.Resume
}

// QuickLog records a set against the machine's current position.
func (r *Runner) QuickLog(weightKg float64, reps int) {
	r.cmds <- func() {
		r.machine.Log(weightKg, reps)
	}
}

// EndEarly aborts the timer after confirmation.
func (r *Runner) EndEarly() {
	if r.Confirm != nil &&
		!r.Confirm("End this group early? Progress so far will be saved.") {
		return
	}

	r.cmds <- r.machine.EndEarly
}

// Run starts the machine and drives it to completion, then flushes the
// quick logs one at a time. It returns once every log is written or the
// context is canceled.
func (r *Runner) Run(ctx context.Context) error {
	r.machine.Start()
	r.render()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for !r.machine.Done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-r.cmds:
			cmd()
		case <-ticker.C:
			r.machine.Tick()
		}

		r.render()
	}

	return r.flush(ctx)
}

func (r *Runner) render() {
	if r.Render != nil {
		r.Render(r.machine)
	}
}

// flush writes the accumulated quick logs sequentially, awaiting each
// before issuing the next so completion is only signaled once every
// set is persisted.
func (r *Runner) flush(ctx context.Context) error {
	logs := r.machine.Logs()

	if r.writer == nil || len(logs) == 0 {
		return nil
	}

	for _, q := range logs {
		log := q.toExerciseLog(r.sessionID, r.group)

		if _, err := r.writer.SaveLog(ctx, log); err != nil {
			return fmt.Errorf(
				"unable to save set for %s (round %d): %w",
				log.ExerciseName,
				q.Round,
				err,
			)
		}
	}

	return nil
}
