package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gameplan/internal/core/doctor"
	"github.com/hay-kot/gameplan/internal/core/styles"
	"github.com/hay-kot/gameplan/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your gameplan workspace",
		UsageText:   "gameplan doctor [options]",
		Description: "Runs diagnostic checks on configuration, workspace documents, and external tools.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	app, err := cmd.flags.LoadApp()
	if err != nil {
		return err
	}

	results := doctor.RunAll(ctx, []doctor.Check{
		doctor.NewToolsCheck(app.Config),
		doctor.NewWorkspaceCheck(app.Config),
		doctor.NewTrackingCheck(app.Config),
	})

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(results)
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	return iojson.WriteWith(c.Root().Writer, os.Stderr, out)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputText(results []doctor.Result) error {
	w := os.Stderr
	divider := styles.TextMutedStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.TextPrimaryBoldStyle.Render("Gameplan Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.TextForegroundBoldStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.TextMutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.TextSuccessStyle.Render("✔")
			case doctor.StatusWarn:
				icon = styles.TextWarningStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.TextErrorStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	summary := fmt.Sprintf("%s  %s  %s",
		styles.TextSuccessStyle.Render(fmt.Sprintf("%d passed", passed)),
		styles.TextWarningStyle.Render(fmt.Sprintf("%d warnings", warned)),
		styles.TextErrorStyle.Render(fmt.Sprintf("%d failed", failed)),
	)
	_, _ = fmt.Fprintln(w, summary)

	if fixable := doctor.CountFixable(results); fixable > 0 {
		_, _ = fmt.Fprintln(w)
		hint := styles.TextMutedStyle.Render(fmt.Sprintf("%d issue(s) can be fixed with the commands in the details above", fixable))
		_, _ = fmt.Fprintln(w, hint)
	}

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
