package models

import "github.com/google/uuid"

// NormalizeSession guarantees that a session observed by the timer engine
// has a populated ExerciseGroups list regardless of which backend schema
// version produced it. Sessions already carrying groups pass through
// unchanged; legacy flat exercise lists are wrapped into single-exercise
// groups with a default standard rest timer; sessions with neither get an
// empty list. Running it twice yields the same groups as running it once.
func NormalizeSession(s *Session) {
	if len(s.ExerciseGroups) > 0 {
		return
	}

	if len(s.Exercises) == 0 {
		s.ExerciseGroups = []ExerciseGroup{}
		return
	}

	groups := make([]ExerciseGroup, 0, len(s.Exercises))

	for _, ex := range s.Exercises {
		groups = append(groups, ExerciseGroup{
			GroupID:   uuid.NewString(),
			GroupType: GroupSingle,
			TimerConfig: TimerConfig{
				Mode:        ModeStandard,
				RestSeconds: DefaultRestSeconds,
			},
			Exercises: []ExerciseInSession{ex},
		})
	}

	s.ExerciseGroups = groups
	s.Exercises = nil
}
