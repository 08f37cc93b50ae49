package app

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/spotter-app/spotter/internal/api"
)

func parseFloatField(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%s must be a non-negative number, got %q", name, value)
	}

	return f, nil
}

func parseIntField(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, value)
	}

	return n, nil
}

// buildLogRequest validates the manual-entry flags locally; nothing is
// sent until every number parses.
func buildLogRequest(ctx *cli.Context) (*api.LogSetRequest, error) {
	req := &api.LogSetRequest{
		SessionID:    ctx.String("session"),
		ExerciseName: ctx.String("exercise"),
		SetNumber:    ctx.Int("set"),
	}

	strength := ctx.String("weight") != "" || ctx.String("reps") != ""
	cardio := ctx.String("distance") != "" || ctx.String("duration") != ""

	switch {
	case strength && cardio:
		return nil, errors.New(
			"a set is either weight/reps or distance/duration, not both",
		)

	case strength:
		weight, err := parseFloatField("weight", ctx.String("weight"))
		if err != nil {
			return nil, err
		}

		reps, err := parseIntField("reps", ctx.String("reps"))
		if err != nil {
			return nil, err
		}

		req.WeightKg = weight
		req.Reps = reps

	case cardio:
		distance, err := parseFloatField("distance", ctx.String("distance"))
		if err != nil {
			return nil, err
		}

		duration, err := parseIntField("duration", ctx.String("duration"))
		if err != nil {
			return nil, err
		}

		req.DistanceM = distance
		req.DurationSeconds = duration

	default:
		return nil, errors.New(
			"provide --weight/--reps or --distance/--duration",
		)
	}

	if rpe := ctx.String("rpe"); rpe != "" {
		value, err := parseFloatField("rpe", rpe)
		if err != nil {
			return nil, err
		}

		if value > 10 {
			return nil, fmt.Errorf("rpe must be between 0 and 10, got %s", rpe)
		}

		req.RPE = value
	}

	return req, nil
}

// buildUpdateLogRequest validates the edit flags locally. At least one
// measurement must change; the modes stay mutually exclusive.
func buildUpdateLogRequest(ctx *cli.Context) (*api.UpdateLogRequest, error) {
	req := &api.UpdateLogRequest{}

	strength := ctx.String("weight") != "" || ctx.String("reps") != ""
	cardio := ctx.String("distance") != "" || ctx.String("duration") != ""

	switch {
	case strength && cardio:
		return nil, errors.New(
			"a set is either weight/reps or distance/duration, not both",
		)

	case strength:
		if v := ctx.String("weight"); v != "" {
			weight, err := parseFloatField("weight", v)
			if err != nil {
				return nil, err
			}

			req.WeightKg = weight
		}

		if v := ctx.String("reps"); v != "" {
			reps, err := parseIntField("reps", v)
			if err != nil {
				return nil, err
			}

			req.Reps = reps
		}

	case cardio:
		if v := ctx.String("distance"); v != "" {
			distance, err := parseFloatField("distance", v)
			if err != nil {
				return nil, err
			}

			req.DistanceM = distance
		}

		if v := ctx.String("duration"); v != "" {
			duration, err := parseIntField("duration", v)
			if err != nil {
				return nil, err
			}

			req.DurationSeconds = duration
		}
	}

	if rpe := ctx.String("rpe"); rpe != "" {
		value, err := parseFloatField("rpe", rpe)
		if err != nil {
			return nil, err
		}

		if value > 10 {
			return nil, fmt.Errorf("rpe must be between 0 and 10, got %s", rpe)
		}

		req.RPE = value
	}

	if *req == (api.UpdateLogRequest{}) {
		return nil, errors.New("nothing to change")
	}

	return req, nil
}

func logAction(ctx *cli.Context) error {
	req, err := buildLogRequest(ctx)
	if err != nil {
		return err
	}

	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	created, err := c.api.LogSet(ctx.Context, *req)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Logged %s set %d", created.ExerciseName, created.SetNumber,
	)

	return nil
}

func editLogAction(ctx *cli.Context) error {
	logID := ctx.Args().First()
	if logID == "" {
		return errors.New("a log id is required")
	}

	req, err := buildUpdateLogRequest(ctx)
	if err != nil {
		return err
	}

	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	updated, err := c.api.UpdateLog(ctx.Context, logID, *req)
	if err != nil {
		return err
	}

	pterm.Success.Printfln(
		"Updated %s set %d", updated.ExerciseName, updated.SetNumber,
	)

	return nil
}

func deleteLogAction(ctx *cli.Context) error {
	logID := ctx.Args().First()
	if logID == "" {
		return errors.New("a log id is required")
	}

	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	if err := c.api.DeleteLog(ctx.Context, logID); err != nil {
		return err
	}

	pterm.Success.Println("Log removed")

	return nil
}
