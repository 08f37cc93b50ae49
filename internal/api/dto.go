package api

// LogSetRequest is the body for creating or updating a logged set.
// Strength sets carry weight and reps; cardio sets carry distance and
// duration.
type LogSetRequest struct {
	SessionID       string  `json:"sessionId"`
	ExerciseName    string  `json:"exerciseName"`
	WeightKg        float64 `json:"weightKg,omitempty"`
	Reps            int     `json:"reps,omitempty"`
	DistanceM       float64 `json:"distanceM,omitempty"`
	DurationSeconds int     `json:"durationSeconds,omitempty"`
	RPE             float64 `json:"rpe,omitempty"`
	SetNumber       int     `json:"setNumber,omitempty"`
	RoundNumber     int     `json:"roundNumber,omitempty"`
}

// UpdateLogRequest carries user-edited fields for an existing log.
type UpdateLogRequest struct {
	WeightKg        float64 `json:"weightKg,omitempty"`
	Reps            int     `json:"reps,omitempty"`
	DistanceM       float64 `json:"distanceM,omitempty"`
	DurationSeconds int     `json:"durationSeconds,omitempty"`
	RPE             float64 `json:"rpe,omitempty"`
}

// Credentials is the login/register request body.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// HistoryPoint is one aggregated data point for an exercise over time.
type HistoryPoint struct {
	Date      string  `json:"date"`
	MaxWeight float64 `json:"maxWeight"`
	Volume    float64 `json:"volume"`
}

// HistoryDetail is the per-set breakdown for one exercise on one day.
type HistoryDetail struct {
	Date      string  `json:"date"`
	SetNumber int     `json:"setNumber"`
	WeightKg  float64 `json:"weightKg"`
	Reps      int     `json:"reps"`
	RPE       float64 `json:"rpe,omitempty"`
}
