package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gameplan/internal/printer"
)

type LogbookCmd struct {
	flags *Flags
}

func NewLogbookCmd(flags *Flags) *LogbookCmd {
	return &LogbookCmd{flags: flags}
}

func (cmd *LogbookCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "logbook",
		Usage:     "Archive and review completed work",
		UsageText: "gameplan logbook <command>",
		Commands: []*cli.Command{
			{
				Name:   "archive",
				Usage:  "Move completed agenda tasks into LOGBOOK.md",
				Action: cmd.runArchive,
				Description: `Scans the agenda for completed, dated task lines, merges them into
the weekly logbook, and removes them from the agenda. Running it with
nothing new to archive is a no-op.`,
			},
			{
				Name:   "view",
				Usage:  "Print the logbook",
				Action: cmd.runView,
			},
		},
	})
	return app
}

func (cmd *LogbookCmd) runArchive(ctx context.Context, _ *cli.Command) error {
	app, err := cmd.flags.LoadApp()
	if err != nil {
		return err
	}

	tasks, initiatives, err := app.Logbook.Process()
	if err != nil {
		return err
	}

	p := printer.Ctx(ctx)
	if tasks == 0 {
		p.Infof("Nothing to archive")
		return nil
	}
	p.Successf("Archived %d task(s) across %d initiative(s)", tasks, initiatives)
	return nil
}

func (cmd *LogbookCmd) runView(_ context.Context, c *cli.Command) error {
	app, err := cmd.flags.LoadApp()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(app.Config.LogbookPath())
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no logbook yet; completed tasks are archived on 'gameplan logbook archive' or 'gameplan agenda refresh'")
		}
		return err
	}

	_, err = fmt.Fprint(c.Root().Writer, string(data))
	return err
}
