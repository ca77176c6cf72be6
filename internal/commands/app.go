package commands

import (
	"github.com/rs/zerolog/log"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters/jira"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters/local"
	"github.com/hay-kot/gameplan/pkg/executil"
	"github.com/hay-kot/gameplan/pkg/markup"
)

// App wires the loaded configuration to the workspace services. It is
// built per command invocation because most commands need a valid
// workspace while init must run without one.
type App struct {
	Config   *config.Config
	Registry *adapters.Registry
	Agenda   *gameplan.AgendaService
	Sync     *gameplan.SyncService
	Logbook  *gameplan.Logbook
}

// LoadApp loads the workspace configuration from the --dir flag and
// builds the service graph. Returns config.ErrNotInitialized when no
// gameplan.yaml exists.
func (f *Flags) LoadApp() (*App, error) {
	cfg, err := config.Load(f.Dir)
	if err != nil {
		return nil, err
	}

	exec := &executil.RealExecutor{}

	var conv markup.Converter = markup.Noop{}
	if pandoc := markup.NewPandoc(""); pandoc.Available() {
		conv = pandoc
	} else {
		log.Debug().Msg("pandoc not found, jira markup conversion disabled")
	}

	registry := adapters.NewRegistry()
	registry.Register(jira.New(cfg.Areas["jira"], cfg.BasePath, exec, conv))
	registry.Register(local.New(cfg.BasePath))

	return &App{
		Config:   cfg,
		Registry: registry,
		Agenda:   gameplan.NewAgendaService(cfg, exec, registry, log.Logger),
		Sync:     gameplan.NewSyncService(cfg, registry, log.Logger),
		Logbook:  gameplan.NewLogbook(cfg, log.Logger),
	}, nil
}
