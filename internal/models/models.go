// Package models defines the workout domain types exchanged with the
// coaching backend.
package models

import "time"

type (
	// SessionStatus is the lifecycle state of a scheduled workout session.
	SessionStatus string

	// GroupType describes how the exercises in a group are performed.
	GroupType string

	// TimerMode selects the phase-timing behaviour for an exercise group.
	TimerMode string

	// ExerciseType determines whether logging expects weight and reps or
	// distance and duration.
	ExerciseType string
)

const (
	StatusScheduled  SessionStatus = "scheduled"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusSkipped    SessionStatus = "skipped"
)

const (
	GroupSingle   GroupType = "single"
	GroupSuperset GroupType = "superset"
	GroupCircuit  GroupType = "circuit"
)

const (
	ModeStandard TimerMode = "standard"
	ModeEMOM     TimerMode = "emom"
	ModeAMRAP    TimerMode = "amrap"
	ModeCircuit  TimerMode = "circuit"
)

const (
	ExerciseStrength ExerciseType = "strength"
	ExerciseCardio   ExerciseType = "cardio"
)

// DefaultRestSeconds is applied when a legacy session carries no timer
// configuration.
const DefaultRestSeconds = 90

// TimerConfig carries the mode-specific duration parameters for a group.
// Only the fields relevant to the mode are populated.
type TimerConfig struct {
	Mode                 TimerMode `json:"mode"`
	RestSeconds          int       `json:"restSeconds,omitempty"`
	WarmupRestSeconds    int       `json:"warmupRestSeconds,omitempty"`
	IntervalSeconds      int       `json:"intervalSeconds,omitempty"`
	TotalRounds          int       `json:"totalRounds,omitempty"`
	TimeLimitSeconds     int       `json:"timeLimitSeconds,omitempty"`
	WorkSeconds          int       `json:"workSeconds,omitempty"`
	CircuitRestSeconds   int       `json:"circuitRestSeconds,omitempty"`
	RoundRestSeconds     int       `json:"roundRestSeconds,omitempty"`
	Rounds               int       `json:"rounds,omitempty"`
	PrepCountdownSeconds int       `json:"prepCountdownSeconds,omitempty"`
}

// ExerciseInSession is one prescribed exercise within a group.
type ExerciseInSession struct {
	Name         string       `json:"name"`
	Sets         int          `json:"sets"`
	Reps         int          `json:"reps"`
	TargetRPE    float64      `json:"targetRpe,omitempty"`
	ExerciseType ExerciseType `json:"exerciseType,omitempty"`
	YoutubeURL   string       `json:"youtubeUrl,omitempty"`
	Notes        string       `json:"notes,omitempty"`
}

// ExerciseGroup is a unit of timed execution: a single exercise, a
// superset, or a circuit. The timer mode is independent of the group
// type.
type ExerciseGroup struct {
	GroupID     string              `json:"groupId"`
	GroupType   GroupType           `json:"groupType"`
	TimerConfig TimerConfig         `json:"timerConfig"`
	Exercises   []ExerciseInSession `json:"exercises"`
	Notes       string              `json:"notes,omitempty"`
}

// Session is a scheduled workout instance belonging to one user and one
// week. Group composition is immutable once logging has begun.
type Session struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	PlanID         string          `json:"planId,omitempty"`
	ScheduledDate  string          `json:"scheduledDate"`
	Title          string          `json:"title"`
	Status         SessionStatus   `json:"status"`
	ExerciseGroups []ExerciseGroup `json:"exerciseGroups"`
	// Exercises is the legacy flat schema; NormalizeSession folds it
	// into ExerciseGroups.
	Exercises   []ExerciseInSession `json:"exercises,omitempty"`
	StartedAt   *time.Time          `json:"startedAt,omitempty"`
	CompletedAt *time.Time          `json:"completedAt,omitempty"`
	CreatedAt   *time.Time          `json:"createdAt,omitempty"`
}

// ExerciseLog is one logged set. The id is server-assigned; during an
// active session logs are append-only from the client's perspective.
type ExerciseLog struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId,omitempty"`
	SessionID       string     `json:"sessionId"`
	ExerciseName    string     `json:"exerciseName"`
	SetNumber       int        `json:"setNumber"`
	WeightKg        float64    `json:"weightKg,omitempty"`
	Reps            int        `json:"reps,omitempty"`
	DistanceM       float64    `json:"distanceM,omitempty"`
	DurationSeconds int        `json:"durationSeconds,omitempty"`
	RPE             float64    `json:"rpe,omitempty"`
	RoundNumber     int        `json:"roundNumber,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	LoggedAt        *time.Time `json:"loggedAt,omitempty"`
}

// Profile is the user's training profile.
type Profile struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"displayName"`
	Email           string   `json:"email"`
	TrainingGoals   []string `json:"trainingGoals,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	AvailableDays   int      `json:"availableDays,omitempty"`
	PreferredUnit   string   `json:"preferredUnit,omitempty"`
}

// ToolCallStatus marks a streamed tool invocation as running or finished.
type ToolCallStatus string

const (
	ToolLoading  ToolCallStatus = "loading"
	ToolComplete ToolCallStatus = "complete"
)

// ToolCall is a tool invocation indicator on an assistant message.
type ToolCall struct {
	Name   string         `json:"name"`
	Status ToolCallStatus `json:"status"`
}

// ChatRole identifies the author of a display message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatDisplayMessage is one rendered conversation entry. It is mutated
// incrementally while IsStreaming is set and immutable afterwards.
type ChatDisplayMessage struct {
	Role        ChatRole   `json:"role"`
	Content     string     `json:"content"`
	Thinking    string     `json:"thinking,omitempty"`
	ToolCalls   []ToolCall `json:"toolCalls,omitempty"`
	IsStreaming bool       `json:"isStreaming"`
}

// VoiceParseResult is the backend's interpretation of a spoken set.
type VoiceParseResult struct {
	Transcript         string          `json:"transcript,omitempty"`
	Parsed             *VoiceParsedSet `json:"parsed,omitempty"`
	NeedsClarification string          `json:"needsClarification,omitempty"`
}

// VoiceParsedSet is the structured set extracted from a transcript.
type VoiceParsedSet struct {
	WeightKg float64 `json:"weightKg"`
	Reps     int     `json:"reps"`
	RPE      float64 `json:"rpe,omitempty"`
}
