// Package adapters defines the tracking-system adapter contract.
//
// An adapter mirrors one kind of tracked work item (a Jira issue, a
// local note) into a per-item markdown document under
// tracking/areas/<name>/. The sync orchestrator drives adapters through
// the Adapter interface only.
package adapters

import (
	"context"

	"github.com/hay-kot/gameplan/internal/core/config"
)

// TrackedItem is one unit of work being mirrored into a local document.
// Items are reconstructed from configuration on every run and are
// immutable within a sync pass.
type TrackedItem struct {
	ID     string
	Source string // adapter name that owns the item
	Attrs  config.ItemConfig
}

// Comment is a single update on a tracked item, ordered as returned by
// the source system.
type Comment struct {
	Author    string
	Timestamp string // ISO-8601 when known, else raw source text
	Body      string
}

// Snapshot is the result of one fetch. It lives only within a sync
// pass; the derived document is what persists.
type Snapshot struct {
	Title    string
	Status   string
	Assignee string
	// Version is an opaque change-detection token (e.g. the upstream
	// "updated" stamp). Compared by equality only.
	Version  string
	Comments []Comment
	Raw      map[string]any
}

// Adapter mirrors tracked items for one area.
type Adapter interface {
	// Name returns the adapter name, which is also the area key in
	// gameplan.yaml and the directory under tracking/areas/.
	Name() string

	// Available reports whether the adapter's external dependencies
	// can be reached (binaries on PATH etc).
	Available() bool

	// Items expands the area configuration into tracked items.
	Items(area config.AreaConfig) []TrackedItem

	// Fetch retrieves the item's current state. Failures are expected
	// and recovered per item by the orchestrator; implementations
	// return an error rather than a partial snapshot.
	Fetch(ctx context.Context, item TrackedItem) (Snapshot, error)

	// StoragePath returns the document path for an item, embedding a
	// sanitized title suffix when the title is known.
	StoragePath(item TrackedItem, title string) string

	// UpdateDocument writes the snapshot into the document at path,
	// creating it if absent and preserving all manual content.
	UpdateDocument(path string, snap Snapshot, item TrackedItem) error
}
