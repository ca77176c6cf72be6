package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	initcmd "github.com/hay-kot/gameplan/internal/commands/init"
)

type InitCmd struct {
	flags    *Flags
	yes      bool
	force    bool
	noAgenda bool
	issues   string
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a gameplan workspace with an interactive wizard",
		UsageText: "gameplan init [options]",
		Description: `Sets up a workspace for first-time use.

The wizard will:
  - Generate gameplan.yaml with a default agenda section layout
  - Optionally record Jira issues to track
  - Optionally create the initial AGENDA.md

Use --yes to accept all defaults without prompts.
Use --force to overwrite existing configuration.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
			&cli.BoolFlag{
				Name:        "no-agenda",
				Usage:       "skip AGENDA.md creation",
				Destination: &cmd.noAgenda,
			},
			&cli.StringFlag{
				Name:        "issues",
				Usage:       "comma-separated Jira issue keys to track",
				Destination: &cmd.issues,
			},
		},
		Action: cmd.run,
	})
	return app
}

// IssueList returns the parsed list of issue keys, or nil if not set.
func (cmd *InitCmd) IssueList() []string {
	if cmd.issues == "" {
		return nil
	}
	issues := strings.Split(cmd.issues, ",")
	for i, issue := range issues {
		issues[i] = strings.TrimSpace(issue)
	}
	return issues
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	wizard := initcmd.NewWizard(initcmd.WizardOptions{
		BasePath: cmd.flags.Dir,
		Yes:      cmd.yes,
		Force:    cmd.force,
		NoAgenda: cmd.noAgenda,
		Issues:   cmd.IssueList(),
	})
	return wizard.Run(ctx)
}
