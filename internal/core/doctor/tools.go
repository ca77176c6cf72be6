package doctor

import (
	"context"
	"os/exec"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters/jira"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// ToolsCheck verifies that the external binaries the adapters shell out
// to are available on $PATH.
type ToolsCheck struct {
	cfg *config.Config
}

// NewToolsCheck creates a new tools check.
func NewToolsCheck(cfg *config.Config) *ToolsCheck {
	return &ToolsCheck{cfg: cfg}
}

func (c *ToolsCheck) Name() string {
	return "Tools"
}

func (c *ToolsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	// jirahhh is required only when a jira area is configured
	binary := jira.DefaultBinary
	if area, ok := c.cfg.Areas["jira"]; ok && area.BinaryPath != "" {
		binary = area.BinaryPath
	}

	jiraConfigured := len(c.cfg.Areas["jira"].Items) > 0
	if path, err := lookPathFunc(binary); err != nil {
		status := StatusWarn
		detail := "not found on PATH (required to sync jira items)"
		if !jiraConfigured {
			detail = "not found on PATH (no jira items configured, not needed yet)"
		} else {
			status = StatusFail
		}
		result.Items = append(result.Items, CheckItem{
			Label:  binary,
			Status: status,
			Detail: detail,
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  binary,
			Status: StatusPass,
			Detail: path,
		})
	}

	// pandoc is optional; without it Jira comment markup is kept as-is
	if path, err := lookPathFunc("pandoc"); err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "pandoc",
			Status: StatusWarn,
			Detail: "not found on PATH (Jira comment markup will not be converted to markdown)",
		})
	} else {
		result.Items = append(result.Items, CheckItem{
			Label:  "pandoc",
			Status: StatusPass,
			Detail: path,
		})
	}

	return result
}
