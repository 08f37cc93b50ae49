package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/spotter-app/spotter/internal/api"
	"github.com/spotter-app/spotter/internal/models"
	"github.com/spotter-app/spotter/internal/timeutil"
)

// resolveWeekStart turns the --week flag into a Monday date string.
// Empty input means the current week; anything else is parsed as a
// natural date phrase.
func resolveWeekStart(flag string) (string, error) {
	if flag == "" {
		return timeutil.DateOnly(timeutil.WeekStart(time.Now())), nil
	}

	parsed, err := dateparser.Parse(&dateparser.Configuration{
		CurrentTime: time.Now(),
	}, flag)
	if err != nil {
		return "", fmt.Errorf("unable to parse week %q: %w", flag, err)
	}

	return timeutil.DateOnly(timeutil.WeekStart(parsed.Time)), nil
}

// fetchWeekSessions lists the week's sessions, caching them locally.
// When the backend is unreachable it falls back to the cached copy so
// the schedule stays viewable offline; auth failures are never masked.
func fetchWeekSessions(
	ctx *cli.Context,
	c *clients,
	weekStart string,
) ([]models.Session, error) {
	sessions, err := c.api.ListSessions(ctx.Context, weekStart)
	if err == nil {
		if cacheErr := c.db.CacheWeekSessions(weekStart, sessions); cacheErr != nil {
			pterm.Debug.Printfln("unable to cache sessions: %v", cacheErr)
		}

		return sessions, nil
	}

	if errors.Is(err, api.ErrUnauthorized) {
		return nil, err
	}

	cached, cacheErr := c.db.GetCachedWeekSessions(weekStart)
	if cacheErr != nil || cached == nil {
		return nil, err
	}

	pterm.Warning.Printfln(
		"Backend unreachable (%v); showing cached schedule", err,
	)

	return cached, nil
}

func sessionsAction(ctx *cli.Context) error {
	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	weekStart, err := resolveWeekStart(ctx.String("week"))
	if err != nil {
		return err
	}

	sessions, err := fetchWeekSessions(ctx, c, weekStart)
	if err != nil {
		return err
	}

	if len(sessions) == 0 {
		pterm.Info.Printfln("No sessions scheduled for the week of %s", weekStart)
		return nil
	}

	tableData := pterm.TableData{
		{"ID", "DATE", "TITLE", "GROUPS", "STATUS"},
	}

	for _, sess := range sessions {
		tableData = append(tableData, []string{
			sess.ID,
			sess.ScheduledDate,
			sess.Title,
			fmt.Sprintf("%d", len(sess.ExerciseGroups)),
			string(sess.Status),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(tableData).
		Render()
}

// findSession locates one session in a week's schedule by exact or
// prefix id match.
func findSession(
	sessions []models.Session,
	sessionID string,
) (*models.Session, error) {
	var match *models.Session

	for i := range sessions {
		if sessions[i].ID == sessionID {
			return &sessions[i], nil
		}

		if len(sessionID) >= 4 &&
			len(sessions[i].ID) >= len(sessionID) &&
			sessions[i].ID[:len(sessionID)] == sessionID {
			if match != nil {
				return nil, fmt.Errorf(
					"session id %q is ambiguous", sessionID,
				)
			}

			match = &sessions[i]
		}
	}

	if match == nil {
		return nil, fmt.Errorf(
			"no session %q in this week's schedule", sessionID,
		)
	}

	return match, nil
}
