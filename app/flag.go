package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"V"},
		Usage:   "Enable debug logging",
	}

	weekFlag = &cli.StringFlag{
		Name:    "week",
		Aliases: []string{"w"},
		Usage: "Week to show, as a date or natural phrase " +
			`(e.g. "2026-08-24", "last monday", "next week")`,
	}

	displayNameFlag = &cli.StringFlag{
		Name:    "name",
		Aliases: []string{"n"},
		Usage:   "Display name",
	}

	goalFlag = &cli.StringSliceFlag{
		Name:  "goal",
		Usage: "Training goal (repeatable)",
	}

	daysFlag = &cli.StringFlag{
		Name:  "days",
		Usage: "Training days available per week",
	}

	experienceFlag = &cli.StringFlag{
		Name:  "experience",
		Usage: "Experience level (beginner, intermediate or advanced)",
	}

	unitFlag = &cli.StringFlag{
		Name:  "unit",
		Usage: "Preferred weight unit (kg or lb)",
	}

	sessionFlag = &cli.StringFlag{
		Name:     "session",
		Aliases:  []string{"s"},
		Usage:    "Session the set belongs to",
		Required: true,
	}

	exerciseFlag = &cli.StringFlag{
		Name:     "exercise",
		Aliases:  []string{"e"},
		Usage:    "Exercise name",
		Required: true,
	}

	setFlag = &cli.IntFlag{
		Name:  "set",
		Usage: "1-based set number",
		Value: 1,
	}

	// numeric entry flags are strings so input is validated locally
	// before any network call
	weightFlag = &cli.StringFlag{
		Name:  "weight",
		Usage: "Weight in kilograms",
	}

	repsFlag = &cli.StringFlag{
		Name:  "reps",
		Usage: "Repetitions performed",
	}

	distanceFlag = &cli.StringFlag{
		Name:  "distance",
		Usage: "Distance in metres (cardio)",
	}

	durationFlag = &cli.StringFlag{
		Name:  "duration",
		Usage: "Duration in seconds (cardio)",
	}

	rpeFlag = &cli.StringFlag{
		Name:  "rpe",
		Usage: "Rate of perceived exertion (1-10)",
	}

	clearHistoryFlag = &cli.BoolFlag{
		Name:  "clear",
		Usage: "Clear the conversation history and exit",
	}

	detailFlag = &cli.StringFlag{
		Name:  "detail",
		Usage: "Show the per-set breakdown for a date (YYYY-MM-DD)",
	}
)
