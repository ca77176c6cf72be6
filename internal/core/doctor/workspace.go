package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/hay-kot/gameplan/internal/core/config"
)

// WorkspaceCheck verifies the workspace documents exist.
type WorkspaceCheck struct {
	cfg *config.Config
}

// NewWorkspaceCheck creates a new workspace documents check.
func NewWorkspaceCheck(cfg *config.Config) *WorkspaceCheck {
	return &WorkspaceCheck{cfg: cfg}
}

func (c *WorkspaceCheck) Name() string {
	return "Workspace"
}

func (c *WorkspaceCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.cfg.AgendaPath()); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:   config.AgendaFile,
			Status:  StatusWarn,
			Detail:  "not found; run 'gameplan agenda init'",
			Fixable: true,
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  config.AgendaFile,
			Status: StatusPass,
		})
	}

	if _, err := os.Stat(c.cfg.LogbookPath()); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  config.LogbookFile,
			Status: StatusPass,
			Detail: "not created yet (written on first archival)",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  config.LogbookFile,
			Status: StatusPass,
		})
	}

	sections := len(c.cfg.Agenda.Sections)
	if sections == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "agenda sections",
			Status: StatusFail,
			Detail: "no sections configured in " + config.FileName,
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "agenda sections",
			Status: StatusPass,
			Detail: fmt.Sprintf("%d configured", sections),
		})
	}

	return result
}
