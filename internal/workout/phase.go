package workout

import "github.com/spotter-app/spotter/internal/models"

// Phase is the current step of a group's timer. The standard and
// superset machines cycle through the idle/setActive/resting phases;
// the timed machines run prep/work/rest phases through to complete.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseSetActive   Phase = "setActive"
	PhaseResting     Phase = "resting"
	PhasePrep        Phase = "prep"
	PhaseWork        Phase = "work"
	PhaseCircuitRest Phase = "circuitRest"
	PhaseRoundRest   Phase = "roundRest"
	PhaseComplete    Phase = "complete"
)

// QuickLog is a set recorded mid-timer. Quick logs accumulate locally
// while the timer runs and are persisted in bulk when the group
// finishes.
type QuickLog struct {
	Round         int
	ExerciseIndex int
	WeightKg      float64
	Reps          int
}

// toExerciseLog converts a quick log into the backend log shape.
func (q QuickLog) toExerciseLog(
	sessionID string,
	group models.ExerciseGroup,
) models.ExerciseLog {
	name := ""
	if q.ExerciseIndex < len(group.Exercises) {
		name = group.Exercises[q.ExerciseIndex].Name
	}

	return models.ExerciseLog{
		SessionID:    sessionID,
		ExerciseName: name,
		SetNumber:    q.Round,
		WeightKg:     q.WeightKg,
		Reps:         q.Reps,
		RoundNumber:  q.Round,
	}
}
