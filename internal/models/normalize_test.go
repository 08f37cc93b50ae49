package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNormalizeSessionLegacyExercises(t *testing.T) {
	sess := &Session{
		ID: "s1",
		Exercises: []ExerciseInSession{
			{Name: "Squat", Sets: 3, Reps: 5},
			{Name: "Bench Press", Sets: 3, Reps: 8},
		},
	}

	NormalizeSession(sess)

	if len(sess.ExerciseGroups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(sess.ExerciseGroups))
	}

	if sess.Exercises != nil {
		t.Error("legacy exercise list should be cleared after migration")
	}

	for i, g := range sess.ExerciseGroups {
		if g.GroupID == "" {
			t.Errorf("group %d: missing synthesized group id", i)
		}

		if g.GroupType != GroupSingle {
			t.Errorf("group %d: type = %s, want single", i, g.GroupType)
		}

		want := TimerConfig{Mode: ModeStandard, RestSeconds: DefaultRestSeconds}
		if diff := cmp.Diff(want, g.TimerConfig); diff != "" {
			t.Errorf("group %d timer config mismatch (-want +got):\n%s", i, diff)
		}

		if len(g.Exercises) != 1 {
			t.Errorf("group %d: expected exactly one exercise", i)
		}
	}

	if sess.ExerciseGroups[0].Exercises[0].Name != "Squat" {
		t.Error("exercise order not preserved")
	}
}

func TestNormalizeSessionPassThrough(t *testing.T) {
	groups := []ExerciseGroup{
		{
			GroupID:   "g1",
			GroupType: GroupSuperset,
			TimerConfig: TimerConfig{
				Mode:        ModeStandard,
				RestSeconds: 120,
			},
			Exercises: []ExerciseInSession{
				{Name: "Pull Up", Sets: 4, Reps: 8},
				{Name: "Dip", Sets: 4, Reps: 10},
			},
		},
	}

	sess := &Session{ID: "s1", ExerciseGroups: groups}

	NormalizeSession(sess)

	if diff := cmp.Diff(groups, sess.ExerciseGroups); diff != "" {
		t.Errorf("pass-through changed groups (-want +got):\n%s", diff)
	}
}

func TestNormalizeSessionEmpty(t *testing.T) {
	sess := &Session{ID: "s1"}

	NormalizeSession(sess)

	if sess.ExerciseGroups == nil || len(sess.ExerciseGroups) != 0 {
		t.Fatalf("expected empty group list, got %v", sess.ExerciseGroups)
	}
}

func TestNormalizeSessionIdempotent(t *testing.T) {
	sess := &Session{
		ID: "s1",
		Exercises: []ExerciseInSession{
			{Name: "Deadlift", Sets: 3, Reps: 5},
		},
	}

	NormalizeSession(sess)

	once := append([]ExerciseGroup(nil), sess.ExerciseGroups...)

	NormalizeSession(sess)

	// Group IDs are random per synthesis, so idempotence means the second
	// run changes nothing at all.
	if diff := cmp.Diff(once, sess.ExerciseGroups, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("second normalization changed groups (-want +got):\n%s", diff)
	}
}
