package doctor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hay-kot/gameplan/internal/core/config"
)

// TrackingCheck looks for tracked-item documents that no longer match a
// configured item. Orphans are harmless but usually mean an item was
// removed from gameplan.yaml without archiving its document.
type TrackingCheck struct {
	cfg *config.Config
}

// NewTrackingCheck creates a new tracking directories check.
func NewTrackingCheck(cfg *config.Config) *TrackingCheck {
	return &TrackingCheck{cfg: cfg}
}

func (c *TrackingCheck) Name() string {
	return "Tracking"
}

func (c *TrackingCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	for _, area := range sortedKeys(c.cfg.Areas) {
		areaDir := c.cfg.AreaDir(area)

		matches, err := doublestar.FilepathGlob(filepath.Join(areaDir, "*", "README.md"))
		if err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  area,
				Status: StatusFail,
				Detail: fmt.Sprintf("scan failed: %v", err),
			})
			continue
		}

		configured := make(map[string]bool)
		for _, item := range c.cfg.Areas[area].Items {
			configured[item.Key()] = true
		}

		orphans := 0
		for _, m := range matches {
			dir := filepath.Base(filepath.Dir(m))
			if !matchesConfigured(dir, configured) {
				orphans++
			}
		}

		switch {
		case orphans > 0:
			result.Items = append(result.Items, CheckItem{
				Label:  area,
				Status: StatusWarn,
				Detail: fmt.Sprintf("%d document(s) with no configured item under %s", orphans, areaDir),
			})
		default:
			result.Items = append(result.Items, CheckItem{
				Label:  area,
				Status: StatusPass,
				Detail: fmt.Sprintf("%d document(s)", len(matches)),
			})
		}
	}

	if len(result.Items) == 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "areas",
			Status: StatusPass,
			Detail: "none configured",
		})
	}

	return result
}

// matchesConfigured reports whether a document directory name belongs
// to a configured item: exact id or "<id>-<slug>".
func matchesConfigured(dir string, configured map[string]bool) bool {
	if configured[dir] {
		return true
	}
	for id := range configured {
		if strings.HasPrefix(dir, id+"-") {
			return true
		}
	}
	return false
}

func sortedKeys(areas map[string]config.AreaConfig) []string {
	keys := make([]string, 0, len(areas))
	for k := range areas {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
