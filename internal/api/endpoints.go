package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spotter-app/spotter/internal/models"
)

// Login exchanges credentials for an access token.
func (c *Client) Login(
	ctx context.Context,
	creds Credentials,
) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Register creates a new account and returns its first access token.
func (c *Client) Register(
	ctx context.Context,
	creds Credentials,
) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", creds, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// GetProfile fetches the user's training profile. A 404 maps to
// ErrNoProfile, signalling first-time setup.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile

	err := c.doJSON(ctx, http.MethodGet, "/api/profile", nil, &profile)
	if err != nil {
		if apiErr := AsError(err); apiErr != nil &&
			apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrNoProfile
		}

		return nil, err
	}

	return &profile, nil
}

// UpdateProfile saves profile changes and returns the updated profile.
func (c *Client) UpdateProfile(
	ctx context.Context,
	profile *models.Profile,
) (*models.Profile, error) {
	var updated models.Profile
	if err := c.doJSON(ctx, http.MethodPut, "/api/profile", profile, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// ListSessions returns all sessions scheduled in the week starting at
// weekStart (a Monday, YYYY-MM-DD). Every session is normalized so the
// timer engine always observes a populated group list.
func (c *Client) ListSessions(
	ctx context.Context,
	weekStart string,
) ([]models.Session, error) {
	var sessions []models.Session

	path := "/api/sessions?week_start=" + url.QueryEscape(weekStart)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &sessions); err != nil {
		return nil, err
	}

	for i := range sessions {
		models.NormalizeSession(&sessions[i])
	}

	return sessions, nil
}

// StartSession transitions a session to in_progress.
func (c *Client) StartSession(
	ctx context.Context,
	sessionID string,
) (*models.Session, error) {
	return c.transitionSession(ctx, sessionID, "start")
}

// CompleteSession transitions a session to completed.
func (c *Client) CompleteSession(
	ctx context.Context,
	sessionID string,
) (*models.Session, error) {
	return c.transitionSession(ctx, sessionID, "complete")
}

// ReopenSession transitions a completed session back to in_progress.
func (c *Client) ReopenSession(
	ctx context.Context,
	sessionID string,
) (*models.Session, error) {
	return c.transitionSession(ctx, sessionID, "reopen")
}

func (c *Client) transitionSession(
	ctx context.Context,
	sessionID, action string,
) (*models.Session, error) {
	var sess models.Session

	path := fmt.Sprintf(
		"/api/sessions/%s/%s",
		url.PathEscape(sessionID),
		action,
	)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &sess); err != nil {
		return nil, err
	}

	models.NormalizeSession(&sess)

	return &sess, nil
}

// LogSet records a completed set and returns the created log.
func (c *Client) LogSet(
	ctx context.Context,
	req LogSetRequest,
) (*models.ExerciseLog, error) {
	var created models.ExerciseLog
	if err := c.doJSON(ctx, http.MethodPost, "/api/exercises/log", req, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// UpdateLog edits an existing logged set.
func (c *Client) UpdateLog(
	ctx context.Context,
	logID string,
	req UpdateLogRequest,
) (*models.ExerciseLog, error) {
	var updated models.ExerciseLog

	path := "/api/exercises/log/" + url.PathEscape(logID)
	if err := c.doJSON(ctx, http.MethodPatch, path, req, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteLog removes a logged set.
func (c *Client) DeleteLog(ctx context.Context, logID string) error {
	path := "/api/exercises/log/" + url.PathEscape(logID)

	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// GetLogs returns the logged sets for one exercise in a session, in the
// order they were logged.
func (c *Client) GetLogs(
	ctx context.Context,
	sessionID, exerciseName string,
) ([]models.ExerciseLog, error) {
	var logs []models.ExerciseLog

	path := fmt.Sprintf(
		"/api/exercises/log?session_id=%s&exercise_name=%s",
		url.QueryEscape(sessionID),
		url.QueryEscape(exerciseName),
	)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}

	return logs, nil
}

// ExerciseNames returns every exercise name the user has logged.
func (c *Client) ExerciseNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := c.doJSON(ctx, http.MethodGet, "/api/exercises/names", nil, &names); err != nil {
		return nil, err
	}

	return names, nil
}

// ExerciseHistory returns aggregated progress points for one exercise.
func (c *Client) ExerciseHistory(
	ctx context.Context,
	exerciseName string,
) ([]HistoryPoint, error) {
	var points []HistoryPoint

	path := "/api/exercises/history?exercise_name=" +
		url.QueryEscape(exerciseName)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &points); err != nil {
		return nil, err
	}

	return points, nil
}

// ExerciseHistoryDetail returns the per-set breakdown for one exercise on
// one date.
func (c *Client) ExerciseHistoryDetail(
	ctx context.Context,
	exerciseName, date string,
) ([]HistoryDetail, error) {
	var details []HistoryDetail

	path := fmt.Sprintf(
		"/api/exercises/history/detail?exercise_name=%s&date=%s",
		url.QueryEscape(exerciseName),
		url.QueryEscape(date),
	)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &details); err != nil {
		return nil, err
	}

	return details, nil
}

// ClearChatHistory deletes the server-side conversation.
func (c *Client) ClearChatHistory(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodDelete, "/chat/history", nil, nil)
}

// ParseVoice uploads a recorded set description for transcription and
// structured parsing.
func (c *Client) ParseVoice(
	ctx context.Context,
	audio io.Reader,
	exerciseName, sessionID string,
) (*models.VoiceParseResult, error) {
	var result models.VoiceParseResult

	fields := map[string]string{
		"exercise_name": exerciseName,
		"session_id":    sessionID,
	}

	err := c.doMultipart(
		ctx,
		"/api/voice/parse",
		fields,
		"audio",
		"set.m4a",
		audio,
		&result,
	)
	if err != nil {
		return nil, err
	}

	return &result, nil
}
