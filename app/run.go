package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/spotter-app/spotter/internal/api"
	"github.com/spotter-app/spotter/internal/models"
	"github.com/spotter-app/spotter/internal/timeutil"
	"github.com/spotter-app/spotter/internal/workout"
)

// apiLogWriter persists quick logs through the request client.
type apiLogWriter struct {
	api *api.Client
}

func (w apiLogWriter) SaveLog(
	ctx context.Context,
	log models.ExerciseLog,
) (*models.ExerciseLog, error) {
	return w.api.LogSet(ctx, api.LogSetRequest{
		SessionID:    log.SessionID,
		ExerciseName: log.ExerciseName,
		WeightKg:     log.WeightKg,
		Reps:         log.Reps,
		RoundNumber:  log.RoundNumber,
	})
}

// readInput feeds stdin lines into a channel so timer loops can select
// on user commands alongside ticks.
func readInput() <-chan string {
	lines := make(chan string)

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}

		close(lines)
	}()

	return lines
}

// confirmLine asks a yes/no question over the shared stdin line
// channel. The readInput goroutine owns stdin, so every prompt must
// consume lines from the same channel rather than opening a second
// reader against the file descriptor.
func confirmLine(input <-chan string, prompt string) bool {
	pterm.Print(prompt + " [y/N]: ")

	line, ok := <-input
	if !ok {
		return false
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func runAction(ctx *cli.Context) error {
	sessionID := ctx.Args().First()
	if sessionID == "" {
		return errors.New("usage: spotter run <session-id> [group-number]")
	}

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

	sess, err := findSession(sessions, sessionID)
	if err != nil {
		return err
	}

	if sess.Status == models.StatusScheduled {
		sess, err = c.api.StartSession(ctx.Context, sess.ID)
		if err != nil {
			return err
		}
	}

	groups := sess.ExerciseGroups
	if len(groups) == 0 {
		pterm.Info.Println("This session has no exercise groups")
		return nil
	}

	if arg := ctx.Args().Get(1); arg != "" {
		n, err := parseIntField("group-number", arg)
		if err != nil {
			return err
		}

		if n < 1 || n > len(groups) {
			return fmt.Errorf(
				"group-number must be between 1 and %d", len(groups),
			)
		}

		groups = groups[n-1 : n]
	}

	input := readInput()
	effects := workout.NotifyEffects{Enabled: conf.Notify.Enabled}

	for i, group := range groups {
		pterm.DefaultSection.Printfln(
			"Group %d/%d: %s", i+1, len(groups), groupTitle(group),
		)

		err := runGroup(ctx.Context, c, sess, group, input, effects)
		if err != nil {
			return err
		}

		if err := runSessionCmd(conf.System.SessionCmd); err != nil {
			pterm.Warning.Printfln("session_cmd failed: %v", err)
		}
	}

	if confirmLine(input, "Mark the session as completed?") {
		if _, err := c.api.CompleteSession(ctx.Context, sess.ID); err != nil {
			return err
		}

		pterm.Success.Println("Session completed. Nice work!")
	}

	return nil
}

func groupTitle(group models.ExerciseGroup) string {
	names := make([]string, 0, len(group.Exercises))
	for _, ex := range group.Exercises {
		names = append(names, ex.Name)
	}

	return strings.Join(names, " + ")
}

// applyTimerDefaults fills the gaps a plan may leave in a group's timer
// config from the user's configured fallbacks.
func applyTimerDefaults(cfg models.TimerConfig) models.TimerConfig {
	if cfg.RestSeconds == 0 {
		cfg.RestSeconds = conf.Timers.RestSeconds
	}

	if cfg.PrepCountdownSeconds == 0 {
		cfg.PrepCountdownSeconds = conf.Timers.PrepCountdownSeconds
	}

	return cfg
}

func runGroup(
	ctx context.Context,
	c *clients,
	sess *models.Session,
	group models.ExerciseGroup,
	input <-chan string,
	effects workout.Effects,
) error {
	cfg := applyTimerDefaults(group.TimerConfig)

	switch cfg.Mode {
	case models.ModeEMOM:
		machine := workout.NewEMOM(cfg, nil, effects)
		return runTimed(ctx, c, sess, group, machine, input)

	case models.ModeAMRAP:
		machine := workout.NewAMRAP(cfg, len(group.Exercises), nil, effects)

		err := runTimed(ctx, c, sess, group, machine, input)
		if err != nil {
			return err
		}

		score := machine.Score()
		pterm.Info.Printfln(
			"Score: %d full rounds, %d extra reps, %.1f kg total volume",
			score.FullRounds,
			score.ExtraReps,
			score.TotalVolume,
		)

		return nil

	case models.ModeCircuit:
		machine := workout.NewCircuit(cfg, len(group.Exercises), nil, effects)
		return runTimed(ctx, c, sess, group, machine, input)

	default:
		if group.GroupType == models.GroupSuperset {
			return runSuperset(ctx, c, sess, group, cfg, input, effects)
		}

		return runStandard(ctx, c, sess, group, cfg, input, effects)
	}
}

// runStandard walks each exercise through start-set / log / rest cycles
// until its target sets are reached.
func runStandard(
	ctx context.Context,
	c *clients,
	sess *models.Session,
	group models.ExerciseGroup,
	cfg models.TimerConfig,
	input <-chan string,
	effects workout.Effects,
) error {
	for _, ex := range group.Exercises {
		logs, err := c.api.GetLogs(ctx, sess.ID, ex.Name)
		if err != nil {
			return err
		}

		machine := workout.NewStandard(cfg, len(logs), nil, effects)

		for set := len(logs) + 1; set <= ex.Sets; set++ {
			pterm.Printfln(
				"%s — set %d of %d (target %d reps). Press Enter to start.",
				ex.Name, set, ex.Sets, ex.Reps,
			)

			if _, ok := <-input; !ok {
				return nil
			}

			machine.StartSet()

			entry, err := promptSetEntry(input, ex)
			if err != nil {
				return err
			}

			if entry == nil {
				set-- // blank entry: offer the same set again
				continue
			}

			entry.SessionID = sess.ID
			entry.ExerciseName = ex.Name
			entry.SetNumber = set

			// persist first: the machine only advances once the new
			// log is observed
			if _, err := c.api.LogSet(ctx, *entry); err != nil {
				pterm.Error.Printfln("unable to save the set: %v", err)
				set--

				continue
			}

			logs, err = c.api.GetLogs(ctx, sess.ID, ex.Name)
			if err != nil {
				return err
			}

			machine.ObserveLogCount(len(logs))

			if set < ex.Sets {
				if err := restLoop(machine.Rest(), machine.Tick, input); err != nil {
					return err
				}
			} else {
				machine.SkipRest()
				machine.Tick()
			}
		}

		pterm.Success.Printfln("%s done", ex.Name)
	}

	return nil
}

// runSuperset cycles the group's exercises with rest only after each
// full round.
func runSuperset(
	ctx context.Context,
	c *clients,
	sess *models.Session,
	group models.ExerciseGroup,
	cfg models.TimerConfig,
	input <-chan string,
	effects workout.Effects,
) error {
	rounds := group.Exercises[0].Sets
	for _, ex := range group.Exercises[1:] {
		if ex.Sets < rounds {
			rounds = ex.Sets
		}
	}

	machine := workout.NewSuperset(cfg, len(group.Exercises), nil, effects)

	for machine.Round() <= rounds {
		ex := group.Exercises[machine.ActiveExercise()]

		pterm.Printfln(
			"Round %d/%d — %s (target %d reps). Press Enter when done.",
			machine.Round(), rounds, ex.Name, ex.Reps,
		)

		if _, ok := <-input; !ok {
			return nil
		}

		entry, err := promptSetEntry(input, ex)
		if err != nil {
			return err
		}

		if entry == nil {
			continue
		}

		entry.SessionID = sess.ID
		entry.ExerciseName = ex.Name
		entry.SetNumber = machine.Round()
		entry.RoundNumber = machine.Round()

		if _, err := c.api.LogSet(ctx, *entry); err != nil {
			pterm.Error.Printfln("unable to save the set: %v", err)
			continue
		}

		lastRound := machine.Round() == rounds

		machine.LogSet()

		if machine.Phase() == workout.PhaseResting {
			if lastRound {
				machine.SkipRest()
				machine.Tick()

				break
			}

			if err := restLoop(machine.Rest(), machine.Tick, input); err != nil {
				return err
			}
		}
	}

	pterm.Success.Println("Superset done")

	return nil
}

// restLoop renders the rest countdown, accepting "+", "-", and "s"
// commands until the rest completes.
func restLoop(
	rest *workout.RestTimer,
	tick func() bool,
	input <-chan string,
) error {
	if rest == nil {
		return nil
	}

	step := time.Duration(conf.Timers.RestAdjustSeconds) * time.Second
	if step <= 0 {
		step = workout.AdjustStep
	}

	pterm.Info.Printfln(
		`Resting. "+"/"-" adjusts by %ds, "s" skips.`, int(step.Seconds()),
	)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case line, ok := <-input:
			if !ok {
				return nil
			}

			switch line {
			case "+":
				rest.Adjust(step)
			case "-":
				rest.Adjust(-step)
			case "s":
				rest.Skip()
			}
		case <-ticker.C:
		}

		remaining := timeutil.Round(rest.Remaining().Seconds())
		pterm.Printo("Rest: " + timeutil.FormatSeconds(remaining))

		if tick() {
			pterm.Println()
			return nil
		}
	}
}

// promptSetEntry reads and validates the numbers for one set. A blank
// first field abandons the set. Nothing is sent anywhere until the
// input parses.
func promptSetEntry(
	input <-chan string,
	ex models.ExerciseInSession,
) (*api.LogSetRequest, error) {
	if ex.ExerciseType == models.ExerciseCardio {
		pterm.Print("Distance (m) and duration (s), e.g. \"1000 240\": ")

		line, ok := <-input
		if !ok || line == "" {
			return nil, nil
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errors.New("expected distance and duration")
		}

		distance, err := parseFloatField("distance", fields[0])
		if err != nil {
			return nil, err
		}

		duration, err := parseIntField("duration", fields[1])
		if err != nil {
			return nil, err
		}

		return &api.LogSetRequest{
			DistanceM:       distance,
			DurationSeconds: duration,
		}, nil
	}

	pterm.Print("Weight (kg) and reps, e.g. \"60 8\": ")

	line, ok := <-input
	if !ok || line == "" {
		return nil, nil
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, errors.New("expected weight and reps")
	}

	weight, err := parseFloatField("weight", fields[0])
	if err != nil {
		return nil, err
	}

	reps, err := parseIntField("reps", fields[1])
	if err != nil {
		return nil, err
	}

	return &api.LogSetRequest{
		WeightKg: weight,
		Reps:     reps,
	}, nil
}

// runTimed drives an EMOM, AMRAP, or circuit machine, relaying user
// commands to the runner while it ticks.
func runTimed(
	ctx context.Context,
	c *clients,
	sess *models.Session,
	group models.ExerciseGroup,
	machine workout.Machine,
	input <-chan string,
) error {
	runner := workout.NewRunner(
		machine,
		apiLogWriter{api: c.api},
		sess.ID,
		group,
	)

	runner.Confirm = func(prompt string) bool {
		return confirmLine(input, prompt)
	}

	runner.Render = renderTimed(group)

	pterm.Info.Println(
		`Commands: "p" pause, "r" resume, "l <kg> <reps>" log, "e" end early.`,
	)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			select {
			case <-runCtx.Done():
				return
			case line, ok := <-input:
				if !ok {
					return
				}

				handleTimedCommand(runner, line)
			}
		}
	}()

	if err := runner.Run(runCtx); err != nil {
		return err
	}

	pterm.Println()
	pterm.Success.Println("Group complete")

	return nil
}

func handleTimedCommand(runner *workout.Runner, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	switch fields[0] {
	case "p":
		runner.Pause()
	case "r":
		runner.Resume()
	case "e":
		runner.EndEarly()
	case "l":
		if len(fields) != 3 {
			pterm.Warning.Println(`log as "l <kg> <reps>"`)
			return
		}

		weight, err := parseFloatField("weight", fields[1])
		if err != nil {
			pterm.Warning.Println(err)
			return
		}

		reps, err := parseIntField("reps", fields[2])
		if err != nil {
			pterm.Warning.Println(err)
			return
		}

		runner.QuickLog(weight, reps)
	}
}

func renderTimed(group models.ExerciseGroup) func(m workout.Machine) {
	return func(m workout.Machine) {
		if m.Done() {
			return
		}

		remaining := timeutil.Round(m.Remaining().Seconds())

		label := string(m.Phase())

		type cursored interface {
			ActiveExercise() int
		}

		if cur, ok := m.(cursored); ok && m.Phase() == workout.PhaseWork {
			idx := cur.ActiveExercise()
			if idx < len(group.Exercises) {
				label = group.Exercises[idx].Name
			}
		}

		state := ""
		if m.Paused() {
			state = " [paused]"
		}

		pterm.Printo(fmt.Sprintf(
			"Round %d | %s | %s%s",
			m.Round(),
			label,
			timeutil.FormatSeconds(remaining),
			state,
		))
	}
}
