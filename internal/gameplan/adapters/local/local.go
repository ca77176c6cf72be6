// Package local tracks items that have no external system behind them.
// Items live entirely in their README documents: YAML frontmatter holds
// the managed state, the body belongs to the user.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
	"github.com/hay-kot/gameplan/internal/markdown"
)

const defaultStatus = "Active"

// Adapter manages locally tracked items.
type Adapter struct {
	base string
	now  func() time.Time
}

// New creates a local adapter rooted at the workspace base path.
func New(basePath string) *Adapter {
	return &Adapter{base: basePath, now: time.Now}
}

func (a *Adapter) Name() string { return "local" }

// Available always reports true; local items need no external binary.
func (a *Adapter) Available() bool { return true }

// Items expands the area configuration into tracked local items.
func (a *Adapter) Items(area config.AreaConfig) []adapters.TrackedItem {
	items := make([]adapters.TrackedItem, 0, len(area.Items))
	for _, ic := range area.Items {
		if ic.ID == "" {
			continue
		}
		items = append(items, adapters.TrackedItem{
			ID:     ic.ID,
			Source: a.Name(),
			Attrs:  ic,
		})
	}
	return items
}

// Fetch reads the item's current state from its own document, falling
// back to the configured title/status for items not yet on disk. There
// is no upstream, so Version stays empty and change detection always
// reports no change.
func (a *Adapter) Fetch(_ context.Context, item adapters.TrackedItem) (adapters.Snapshot, error) {
	title := item.Attrs.Title
	if title == "" {
		title = item.ID
	}
	status := item.Attrs.Status
	if status == "" {
		status = defaultStatus
	}

	docPath := adapters.FindDocument(a.areaDir(), item.ID)
	if docPath == "" {
		return adapters.Snapshot{Title: title, Status: status}, nil
	}

	data, err := os.ReadFile(docPath)
	if err != nil {
		return adapters.Snapshot{}, fmt.Errorf("read %s: %w", item.ID, err)
	}

	fm, _ := markdown.ParseFrontmatter(string(data))
	if t := fm.GetString("title"); t != "" {
		title = t
	}
	if s := fm.GetString("status"); s != "" {
		status = s
	}
	return adapters.Snapshot{Title: title, Status: status}, nil
}

func (a *Adapter) areaDir() string {
	return filepath.Join(a.base, "tracking", "areas", "local")
}

// StoragePath returns tracking/areas/local/<id>-<slug>/README.md.
func (a *Adapter) StoragePath(item adapters.TrackedItem, title string) string {
	dirName := item.ID
	if title != "" {
		if slug := adapters.SanitizeTitle(title); slug != "" {
			dirName = item.ID + "-" + slug
		}
	}
	return filepath.Join(a.areaDir(), dirName, "README.md")
}

// UpdateDocument writes the snapshot into the item's frontmatter,
// preserving the body byte-for-byte. The document is only rewritten
// when the managed fields actually changed, so an unchanged sync leaves
// the file byte-identical.
func (a *Adapter) UpdateDocument(path string, snap adapters.Snapshot, item adapters.TrackedItem) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create item dir: %w", err)
	}

	existing, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return os.WriteFile(path, []byte(a.newDocument(snap, item)), 0o644)
	}
	if err != nil {
		return fmt.Errorf("read item document: %w", err)
	}

	fm, body := markdown.ParseFrontmatter(string(existing))
	if fm.GetString("id") == item.ID &&
		fm.GetString("title") == snap.Title &&
		fm.GetString("status") == snap.Status {
		return nil
	}

	fm.Set("id", item.ID)
	fm.Set("title", snap.Title)
	fm.Set("status", snap.Status)
	fm.Set("last_updated", a.now().UTC().Format(time.RFC3339))

	if err := os.WriteFile(path, []byte(fm.Encode()+body), 0o644); err != nil {
		return fmt.Errorf("write item document: %w", err)
	}
	return nil
}

func (a *Adapter) newDocument(snap adapters.Snapshot, item adapters.TrackedItem) string {
	fm := markdown.NewFrontmatter()
	fm.Set("id", item.ID)
	fm.Set("title", snap.Title)
	fm.Set("status", snap.Status)
	fm.Set("last_updated", a.now().UTC().Format(time.RFC3339))

	body := fmt.Sprintf(`
# %s

## Overview

[Add context about this item here]

## Actions

- [ ] [Add actions here]

## Notes

[Add notes, decisions, and important information here]
`, snap.Title)

	return fm.Encode() + body
}
