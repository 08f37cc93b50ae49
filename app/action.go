package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/spotter-app/spotter/internal/api"
	"github.com/spotter-app/spotter/internal/auth"
	"github.com/spotter-app/spotter/internal/config"
	"github.com/spotter-app/spotter/internal/models"
	"github.com/spotter-app/spotter/store"
)

const (
	envNoColor        = "NO_COLOR"
	envSpotterNoColor = "SPOTTER_NO_COLOR"
)

var conf *config.Config

var errNotLoggedIn = errors.New(
	"you are not signed in: run `spotter login <email>` first",
)

// clients bundles the store, request client, and token manager behind
// one lifecycle.
type clients struct {
	db   *store.Client
	api  *api.Client
	auth *auth.Manager
}

func initClients() (*clients, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, err
	}

	manager := auth.NewManager(db)

	return &clients{
		db:   db,
		auth: manager,
		api: api.NewClient(
			conf.Server.BaseURL,
			manager,
			conf.Server.RequestTimeout,
		),
	}, nil
}

func (c *clients) close() {
	_ = c.db.Close()
}

// requireAuth fails fast when no usable token is stored so commands
// do not round-trip just to receive a 401.
func (c *clients) requireAuth() error {
	if !c.auth.LoggedIn() {
		return errNotLoggedIn
	}

	return nil
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	if _, exists := os.LookupEnv(envSpotterNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	config.InitializePaths()

	cfg, err := config.New(
		config.WithViperConfig(config.ConfigFilePath()),
	)
	if err != nil {
		return err
	}

	conf = cfg

	config.InitLogger(ctx.Bool("verbose"))

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting spotter")

	return nil
}

func loginAction(ctx *cli.Context) error {
	email := ctx.Args().First()
	if email == "" {
		return errors.New("usage: spotter login <email>")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	resp, err := c.api.Login(ctx.Context, api.Credentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := c.auth.Save(resp.AccessToken); err != nil {
		return err
	}

	pterm.Success.Printfln("Signed in as %s", resp.Email)

	return nil
}

func registerAction(ctx *cli.Context) error {
	email := ctx.Args().First()
	if email == "" {
		return errors.New("usage: spotter register <email>")
	}

	password, err := promptPassword()
	if err != nil {
		return err
	}

	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	resp, err := c.api.Register(ctx.Context, api.Credentials{
		Email:       email,
		Password:    password,
		DisplayName: ctx.String("name"),
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	if err := c.auth.Save(resp.AccessToken); err != nil {
		return err
	}

	pterm.Success.Printfln("Welcome, %s", resp.DisplayName)

	return nil
}

func logoutAction(_ *cli.Context) error {
	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.auth.Clear(); err != nil {
		return err
	}

	pterm.Success.Println("Signed out")

	return nil
}

func promptPassword() (string, error) {
	password, err := pterm.DefaultInteractiveTextInput.
		WithMask("*").
		Show("Password")
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}

	return password, nil
}

func startAction(ctx *cli.Context) error {
	return transitionAction(ctx, "start")
}

func completeAction(ctx *cli.Context) error {
	return transitionAction(ctx, "complete")
}

func reopenAction(ctx *cli.Context) error {
	return transitionAction(ctx, "reopen")
}

func transitionAction(ctx *cli.Context, verb string) error {
	sessionID := ctx.Args().First()
	if sessionID == "" {
		return fmt.Errorf("usage: spotter %s <session-id>", verb)
	}

	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	switch verb {
	case "start":
		sess, err := c.api.StartSession(ctx.Context, sessionID)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("%s is now in progress", sess.Title)
	case "complete":
		sess, err := c.api.CompleteSession(ctx.Context, sessionID)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("%s completed. Nice work!", sess.Title)
	case "reopen":
		sess, err := c.api.ReopenSession(ctx.Context, sessionID)
		if err != nil {
			return err
		}

		pterm.Success.Printfln("%s reopened", sess.Title)
	}

	return nil
}

func profileAction(ctx *cli.Context) error {
	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	editing := ctx.IsSet("name") || ctx.IsSet("goal") || ctx.IsSet("days") ||
		ctx.IsSet("experience") || ctx.IsSet("unit")

	profile, err := c.api.GetProfile(ctx.Context)
	if errors.Is(err, api.ErrNoProfile) {
		if !editing {
			pterm.Info.Println(
				"No profile yet. Chat with your coach to set one up.",
			)

			return nil
		}

		profile = &models.Profile{}
	} else if err != nil {
		return err
	}

	if editing {
		if err := applyProfileFlags(ctx, profile); err != nil {
			return err
		}

		profile, err = c.api.UpdateProfile(ctx.Context, profile)
		if err != nil {
			return err
		}

		pterm.Success.Println("Profile updated")
	}

	pterm.DefaultSection.Println(profile.DisplayName)
	pterm.Printfln("Email:      %s", profile.Email)
	pterm.Printfln("Experience: %s", profile.ExperienceLevel)
	pterm.Printfln("Days/week:  %d", profile.AvailableDays)

	if len(profile.TrainingGoals) > 0 {
		pterm.Printfln("Goals:      %s", strings.Join(profile.TrainingGoals, ", "))
	}

	return nil
}

// applyProfileFlags folds the edit flags into profile, validating each
// value before anything is sent.
func applyProfileFlags(ctx *cli.Context, profile *models.Profile) error {
	if ctx.IsSet("name") {
		profile.DisplayName = ctx.String("name")
	}

	if ctx.IsSet("goal") {
		profile.TrainingGoals = ctx.StringSlice("goal")
	}

	if ctx.IsSet("days") {
		days, err := parseIntField("days", ctx.String("days"))
		if err != nil {
			return err
		}

		if days < 1 || days > 7 {
			return fmt.Errorf("days must be between 1 and 7, got %d", days)
		}

		profile.AvailableDays = days
	}

	if ctx.IsSet("experience") {
		level := strings.ToLower(ctx.String("experience"))
		switch level {
		case "beginner", "intermediate", "advanced":
			profile.ExperienceLevel = level
		default:
			return fmt.Errorf(
				"experience must be beginner, intermediate or advanced, got %q",
				ctx.String("experience"),
			)
		}
	}

	if ctx.IsSet("unit") {
		unit := strings.ToLower(ctx.String("unit"))
		if unit != "kg" && unit != "lb" {
			return fmt.Errorf("unit must be kg or lb, got %q", ctx.String("unit"))
		}

		profile.PreferredUnit = unit
	}

	return nil
}

// runSessionCmd executes the user's configured post-group command.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	cmd := exec.Command(name, args...)

	return cmd.Run()
}
