// Package app wires the Spotter command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/spotter-app/spotter/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the spotter app instance.
func Get() *cli.App {
	spotterApp := &cli.App{
		Name: "spotter",
		Usage: `
		Spotter is a command-line training companion. It runs your scheduled
		workouts with mode-aware timers (straight sets, supersets, EMOM,
		AMRAP, circuits), logs your sets, and talks to your coach over a
		streaming chat.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "login",
				Usage:     "Sign in and store the access token locally",
				ArgsUsage: "<email>",
				Action:    loginAction,
			},
			{
				Name:      "register",
				Usage:     "Create an account and sign in",
				ArgsUsage: "<email>",
				Flags:     []cli.Flag{displayNameFlag},
				Action:    registerAction,
			},
			{
				Name:   "logout",
				Usage:  "Discard the stored access token",
				Action: logoutAction,
			},
			{
				Name:   "sessions",
				Usage:  "List the workout sessions scheduled for a week",
				Flags:  []cli.Flag{weekFlag},
				Action: sessionsAction,
			},
			{
				Name:      "start",
				Usage:     "Mark a session as in progress",
				ArgsUsage: "<session-id>",
				Action:    startAction,
			},
			{
				Name:      "complete",
				Usage:     "Mark a session as completed",
				ArgsUsage: "<session-id>",
				Action:    completeAction,
			},
			{
				Name:      "reopen",
				Usage:     "Reopen a completed or skipped session",
				ArgsUsage: "<session-id>",
				Action:    reopenAction,
			},
			{
				Name:      "run",
				Usage:     "Run a session's exercise groups with live timers",
				ArgsUsage: "<session-id> [group-number]",
				Flags:     []cli.Flag{weekFlag},
				Action:    runAction,
			},
			{
				Name:  "log",
				Usage: "Record one set manually",
				Flags: []cli.Flag{
					sessionFlag,
					exerciseFlag,
					setFlag,
					weightFlag,
					repsFlag,
					distanceFlag,
					durationFlag,
					rpeFlag,
				},
				Action: logAction,
			},
			{
				Name:      "edit-log",
				Usage:     "Edit a previously logged set",
				ArgsUsage: "<log-id>",
				Flags: []cli.Flag{
					weightFlag,
					repsFlag,
					distanceFlag,
					durationFlag,
					rpeFlag,
				},
				Action: editLogAction,
			},
			{
				Name:      "delete-log",
				Usage:     "Delete a previously logged set",
				ArgsUsage: "<log-id>",
				Action:    deleteLogAction,
			},
			{
				Name:   "chat",
				Usage:  "Talk to your coach",
				Flags:  []cli.Flag{clearHistoryFlag},
				Action: chatAction,
			},
			{
				Name:  "profile",
				Usage: "Show or update your training profile",
				Flags: []cli.Flag{
					displayNameFlag,
					goalFlag,
					daysFlag,
					experienceFlag,
					unitFlag,
				},
				Action: profileAction,
			},
			{
				Name:      "progress",
				Usage:     "Browse logged exercises and their history",
				ArgsUsage: "[exercise-name]",
				Flags:     []cli.Flag{detailFlag},
				Action:    progressAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			verboseFlag,
		},
		Before: beforeAction,
		After:  afterAction,
	}

	return spotterApp
}
