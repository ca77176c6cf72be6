package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/gameplan/internal/printer"
)

type AgendaCmd struct {
	flags *Flags
	plain bool
}

func NewAgendaCmd(flags *Flags) *AgendaCmd {
	return &AgendaCmd{flags: flags}
}

func (cmd *AgendaCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "agenda",
		Usage:     "Manage the daily agenda document",
		UsageText: "gameplan agenda <command>",
		Commands: []*cli.Command{
			{
				Name:        "init",
				Usage:       "Create AGENDA.md from the configured sections",
				Action:      cmd.runInit,
				Description: "Creates the agenda document with a date header and one placeholder block per configured section.",
			},
			{
				Name:   "view",
				Usage:  "Print the agenda",
				Action: cmd.runView,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "plain",
						Usage:       "print raw markdown without terminal rendering",
						Destination: &cmd.plain,
					},
				},
			},
			{
				Name:   "refresh",
				Usage:  "Rebuild the agenda for today",
				Action: cmd.runRefresh,
				Description: `Archives completed tasks to LOGBOOK.md, restamps the date header,
reorders sections to match gameplan.yaml, runs command-driven
sections, and re-renders tracked items from their synced documents.
Manual content and per-item Actions/Notes are preserved.`,
			},
		},
	})
	return app
}

func (cmd *AgendaCmd) runInit(ctx context.Context, _ *cli.Command) error {
	app, err := cmd.flags.LoadApp()
	if err != nil {
		return err
	}

	if err := app.Agenda.Init(); err != nil {
		return err
	}
	printer.Ctx(ctx).Successf("Created %s", app.Config.AgendaPath())
	return nil
}

func (cmd *AgendaCmd) runView(_ context.Context, c *cli.Command) error {
	app, err := cmd.flags.LoadApp()
	if err != nil {
		return err
	}

	doc, err := app.Agenda.Read()
	if err != nil {
		return err
	}

	if cmd.plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		_, err = fmt.Fprint(c.Root().Writer, doc)
		return err
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		_, err = fmt.Fprint(c.Root().Writer, doc)
		return err
	}

	out, err := renderer.Render(doc)
	if err != nil {
		_, err = fmt.Fprint(c.Root().Writer, doc)
		return err
	}

	_, err = fmt.Fprint(c.Root().Writer, out)
	return err
}

func (cmd *AgendaCmd) runRefresh(ctx context.Context, _ *cli.Command) error {
	app, err := cmd.flags.LoadApp()
	if err != nil {
		return err
	}

	if err := app.Agenda.Refresh(ctx); err != nil {
		return err
	}
	printer.Ctx(ctx).Successf("Refreshed %s", app.Config.AgendaPath())
	return nil
}
