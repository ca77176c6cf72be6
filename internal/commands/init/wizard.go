// Package initcmd implements the interactive first-run wizard.
package initcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
	"github.com/hay-kot/gameplan/internal/printer"
	"github.com/hay-kot/gameplan/pkg/executil"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	BasePath string
	Yes      bool // skip prompts, use defaults
	Force    bool // overwrite existing config
	NoAgenda bool // skip agenda creation
	Issues   []string
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	configPath := filepath.Join(w.opts.BasePath, config.FileName)

	if configExists(configPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", configPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(configPath + "\nOverwrite?").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	issues := w.opts.Issues
	createAgenda := !w.opts.NoAgenda

	if !w.opts.Yes {
		var err error
		issues, createAgenda, err = w.promptUser(issues, createAgenda)
		if err != nil {
			return err
		}
	}

	cfg := config.DefaultConfig()
	if len(issues) > 0 {
		area := cfg.Areas["jira"]
		for _, issue := range issues {
			area.Items = append(area.Items, config.ItemConfig{Issue: issue})
		}
		cfg.Areas["jira"] = area
	}
	cfg.BasePath = w.opts.BasePath

	if err := cfg.Write(w.opts.BasePath); err != nil {
		return err
	}
	p.Successf("Wrote %s", configPath)

	for area := range cfg.Areas {
		if err := os.MkdirAll(filepath.Join(cfg.AreaDir(area), "archive"), 0o755); err != nil {
			return fmt.Errorf("create tracking dirs: %w", err)
		}
	}

	if createAgenda {
		agenda := gameplan.NewAgendaService(&cfg, &executil.RealExecutor{}, adapters.NewRegistry(), log.Logger)
		switch err := agenda.Init(); {
		case errors.Is(err, gameplan.ErrAgendaExists):
			p.Warnf("%s already exists, keeping it", config.AgendaFile)
		case err != nil:
			return err
		default:
			p.Successf("Created %s", config.AgendaFile)
		}
	}

	p.Infof("")
	p.Infof("Next steps:")
	p.Infof("  - Edit %s to add tracked items", config.FileName)
	p.Infof("  - Run 'gameplan sync' to pull tracked items")
	p.Infof("  - Run 'gameplan agenda refresh' to rebuild today's agenda")

	return nil
}

// promptUser collects wizard answers interactively.
func (w *Wizard) promptUser(issues []string, createAgenda bool) ([]string, bool, error) {
	issueInput := strings.Join(issues, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Jira issues to track").
				Description("Comma-separated issue keys (e.g. PROJ-123, PROJ-456). Leave empty to add later.").
				Value(&issueInput),
			huh.NewConfirm().
				Title("Create AGENDA.md now?").
				Value(&createAgenda),
		),
	)
	if err := form.Run(); err != nil {
		return nil, false, err
	}

	return splitIssues(issueInput), createAgenda, nil
}

func splitIssues(input string) []string {
	var issues []string
	for _, part := range strings.Split(input, ",") {
		if key := strings.TrimSpace(part); key != "" {
			issues = append(issues, key)
		}
	}
	return issues
}

func configExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
