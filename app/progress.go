package app

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

func progressAction(ctx *cli.Context) error {
	c, err := initClients()
	if err != nil {
		return err
	}

	defer c.close()

	if err := c.requireAuth(); err != nil {
		return err
	}

	exercise := ctx.Args().First()
	if exercise == "" {
		return listExerciseNames(ctx, c)
	}

	if date := ctx.String("detail"); date != "" {
		return showHistoryDetail(ctx, c, exercise, date)
	}

	return showHistory(ctx, c, exercise)
}

func listExerciseNames(ctx *cli.Context, c *clients) error {
	names, err := c.api.ExerciseNames(ctx.Context)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		pterm.Info.Println("No exercises logged yet")
		return nil
	}

	sort.Slice(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})

	for _, name := range names {
		pterm.Println(name)
	}

	return nil
}

func showHistory(ctx *cli.Context, c *clients, exercise string) error {
	points, err := c.api.ExerciseHistory(ctx.Context, exercise)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		pterm.Info.Printfln("No history for %s", exercise)
		return nil
	}

	tableData := pterm.TableData{
		{"DATE", "MAX WEIGHT (KG)", "VOLUME (KG)"},
	}

	for _, p := range points {
		tableData = append(tableData, []string{
			p.Date,
			fmt.Sprintf("%.1f", p.MaxWeight),
			fmt.Sprintf("%.1f", p.Volume),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(tableData).
		Render()
}

func showHistoryDetail(
	ctx *cli.Context,
	c *clients,
	exercise string,
	date string,
) error {
	details, err := c.api.ExerciseHistoryDetail(ctx.Context, exercise, date)
	if err != nil {
		return err
	}

	if len(details) == 0 {
		pterm.Info.Printfln("No sets for %s on %s", exercise, date)
		return nil
	}

	tableData := pterm.TableData{
		{"SET", "WEIGHT (KG)", "REPS", "RPE"},
	}

	for _, d := range details {
		rpe := "-"
		if d.RPE > 0 {
			rpe = fmt.Sprintf("%.1f", d.RPE)
		}

		tableData = append(tableData, []string{
			fmt.Sprintf("%d", d.SetNumber),
			fmt.Sprintf("%.1f", d.WeightKg),
			fmt.Sprintf("%d", d.Reps),
			rpe,
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(tableData).
		Render()
}
