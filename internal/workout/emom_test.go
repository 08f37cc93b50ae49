package workout

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spotter-app/spotter/internal/models"
)

func emomConfig(interval, rounds, prep int) models.TimerConfig {
	return models.TimerConfig{
		Mode:                 models.ModeEMOM,
		IntervalSeconds:      interval,
		TotalRounds:          rounds,
		PrepCountdownSeconds: prep,
	}
}

func TestEMOMEndsAtExactDuration(t *testing.T) {
	clock := newFakeClock()

	m := NewEMOM(emomConfig(60, 3, 5), clock.now, nil)
	m.Start()

	clock.advance(5 * time.Second)
	m.Tick()

	if m.Phase() != PhaseWork {
		t.Fatalf("phase after prep = %s, want work", m.Phase())
	}

	// one second short of rounds x interval: still working
	clock.advance(179 * time.Second)
	m.Tick()

	if m.Done() {
		t.Fatal("completed before rounds x interval elapsed")
	}

	clock.advance(time.Second)
	m.Tick()

	if !m.Done() {
		t.Fatal("did not complete at exactly rounds x interval")
	}
}

func TestEMOMRoundDerivedFromElapsed(t *testing.T) {
	clock := newFakeClock()

	m := NewEMOM(emomConfig(60, 4, 0), clock.now, nil)
	m.Start()
	m.Tick() // zero-length prep

	if m.Round() != 1 {
		t.Fatalf("round = %d, want 1", m.Round())
	}

	clock.advance(61 * time.Second)
	m.Tick()

	if m.Round() != 2 {
		t.Fatalf("round = %d, want 2", m.Round())
	}

	if got := m.Remaining(); got != 59*time.Second {
		t.Fatalf("remaining in round = %v, want 59s", got)
	}

	// a long suspension lands on the correct round
	clock.advance(125 * time.Second)
	m.Tick()

	if m.Round() != 4 {
		t.Fatalf("round = %d, want 4", m.Round())
	}
}

func TestEMOMLoggingNeverAdvancesRound(t *testing.T) {
	clock := newFakeClock()

	m := NewEMOM(emomConfig(60, 3, 0), clock.now, nil)
	m.Start()
	m.Tick()

	m.Log(60, 10)
	m.Log(62.5, 8) // same round: replaces the slot

	if m.Round() != 1 {
		t.Fatalf("round = %d, logging must not advance it", m.Round())
	}

	clock.advance(60 * time.Second)
	m.Tick()
	m.Log(65, 6)

	clock.advance(120 * time.Second)
	m.Tick()

	want := []QuickLog{
		{Round: 1, WeightKg: 62.5, Reps: 8},
		{Round: 2, WeightKg: 65, Reps: 6},
	}

	if diff := cmp.Diff(want, m.Logs()); diff != "" {
		t.Errorf("logs mismatch (-want +got):\n%s", diff)
	}
}

func TestEMOMCompletesWithoutLogs(t *testing.T) {
	clock := newFakeClock()

	m := NewEMOM(emomConfig(30, 2, 0), clock.now, nil)
	m.Start()
	m.Tick()

	clock.advance(60 * time.Second)
	m.Tick()

	if !m.Done() {
		t.Fatal("unlogged rounds must not block completion")
	}

	if len(m.Logs()) != 0 {
		t.Fatalf("logs = %v, want none", m.Logs())
	}
}

func TestEMOMPauseResume(t *testing.T) {
	clock := newFakeClock()

	m := NewEMOM(emomConfig(60, 2, 0), clock.now, nil)
	m.Start()
	m.Tick()

	clock.advance(45 * time.Second)
	m.Pause()

	clock.advance(10 * time.Minute)
	m.Tick()

	if m.Done() {
		t.Fatal("a paused timer must not complete")
	}

	if got := m.Remaining(); got != 15*time.Second {
		t.Fatalf("paused remaining = %v, want 15s", got)
	}

	m.Resume()
	clock.advance(75 * time.Second)
	m.Tick()

	if !m.Done() {
		t.Fatal("did not complete after resuming")
	}
}

func TestEMOMEndEarly(t *testing.T) {
	clock := newFakeClock()

	m := NewEMOM(emomConfig(60, 10, 0), clock.now, nil)
	m.Start()
	m.Tick()

	clock.advance(30 * time.Second)
	m.EndEarly()

	if !m.Done() {
		t.Fatal("end early did not complete the timer")
	}
}

// countingEffects tallies effect invocations.
type countingEffects struct {
	ticks     int
	phases    int
	successes int
}

func (c *countingEffects) Tick()             { c.ticks++ }
func (c *countingEffects) PhaseChange(Phase) { c.phases++ }
func (c *countingEffects) Success(string)    { c.successes++ }

func TestEMOMPausedSuppressesTickEffect(t *testing.T) {
	clock := newFakeClock()
	effects := &countingEffects{}

	m := NewEMOM(emomConfig(60, 1, 0), clock.now, effects)
	m.Start()
	m.Tick()

	clock.advance(57 * time.Second)
	m.Tick()

	before := effects.ticks
	if before == 0 {
		t.Fatal("no tick effect inside the final window")
	}

	m.Pause()

	for i := 0; i < 3; i++ {
		m.Tick()
	}

	if effects.ticks != before {
		t.Fatalf(
			"tick effect fired %d times while paused",
			effects.ticks-before,
		)
	}

	m.Resume()
	m.Tick()

	if effects.ticks != before+1 {
		t.Fatalf("ticks after resume = %d, want %d", effects.ticks, before+1)
	}
}
