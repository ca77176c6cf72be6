package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/gameplan/internal/gameplan"
	"github.com/hay-kot/gameplan/internal/printer"
	"github.com/hay-kot/gameplan/pkg/iojson"
)

type SyncCmd struct {
	flags  *Flags
	format string
}

func NewSyncCmd(flags *Flags) *SyncCmd {
	return &SyncCmd{flags: flags}
}

func (cmd *SyncCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sync",
		Usage:     "Sync tracked items into their local documents",
		UsageText: "gameplan sync [options] [area]",
		Description: `Fetches every configured tracked item and updates its document under
tracking/areas/. A failed fetch skips that item and continues; the
existing document is never overwritten by a failure.`,
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

func (cmd *SyncCmd) run(ctx context.Context, c *cli.Command) error {
	app, err := cmd.flags.LoadApp()
	if err != nil {
		return err
	}

	report, err := app.Sync.Run(ctx, c.Args().First())
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		return iojson.WriteWith(c.Root().Writer, os.Stderr, report)
	}

	return cmd.outputText(ctx, report)
}

func (cmd *SyncCmd) outputText(ctx context.Context, report *gameplan.Report) error {
	p := printer.Ctx(ctx)

	if len(report.Items) == 0 {
		p.Infof("No tracked items configured")
		return nil
	}

	for _, item := range report.Items {
		switch {
		case item.Skipped:
			p.Warnf("[%s] %s skipped: %s", item.Area, item.ID, item.Error)
		case item.Changed:
			p.Successf("[%s] %s updated (%s)", item.Area, item.ID, item.Status)
		default:
			p.Successf("[%s] %s unchanged (%s)", item.Area, item.ID, item.Status)
		}
	}

	p.Infof("")
	p.Infof("%s", fmt.Sprintf("%d synced, %d skipped", report.Synced, report.Skipped))
	return nil
}
