package gameplan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters/local"
	"github.com/hay-kot/gameplan/internal/markdown"
)

// stubAdapter lets tests script fetch outcomes per item.
type stubAdapter struct {
	name      string
	available bool
	base      string
	snapshots map[string]adapters.Snapshot
	errs      map[string]error
}

func (a *stubAdapter) Name() string    { return a.name }
func (a *stubAdapter) Available() bool { return a.available }

func (a *stubAdapter) Items(area config.AreaConfig) []adapters.TrackedItem {
	items := make([]adapters.TrackedItem, 0, len(area.Items))
	for _, ic := range area.Items {
		items = append(items, adapters.TrackedItem{ID: ic.Key(), Source: a.name, Attrs: ic})
	}
	return items
}

func (a *stubAdapter) Fetch(_ context.Context, item adapters.TrackedItem) (adapters.Snapshot, error) {
	if err := a.errs[item.ID]; err != nil {
		return adapters.Snapshot{}, err
	}
	return a.snapshots[item.ID], nil
}

func (a *stubAdapter) StoragePath(item adapters.TrackedItem, title string) string {
	dir := item.ID
	if slug := adapters.SanitizeTitle(title); slug != "" {
		dir += "-" + slug
	}
	return filepath.Join(a.base, "tracking", "areas", a.name, dir, "README.md")
}

func (a *stubAdapter) UpdateDocument(path string, snap adapters.Snapshot, _ adapters.TrackedItem) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte("# "+snap.Title+"\n"), 0o644)
}

func testSync(t *testing.T, stub *stubAdapter, items ...config.ItemConfig) *SyncService {
	t.Helper()
	cfg := config.Config{
		Areas:    map[string]config.AreaConfig{stub.name: {Items: items}},
		BasePath: t.TempDir(),
	}
	stub.base = cfg.BasePath

	reg := adapters.NewRegistry()
	reg.Register(stub)

	return NewSyncService(&cfg, reg, zerolog.Nop())
}

func TestSyncRun_ChangeDetectionSequence(t *testing.T) {
	stub := &stubAdapter{
		name:      "stub",
		available: true,
		snapshots: map[string]adapters.Snapshot{
			"ITEM-1": {Title: "First Item", Status: "To Do", Version: "v1"},
		},
	}
	svc := testSync(t, stub, config.ItemConfig{ID: "ITEM-1"})

	// first sync has no prior token to compare against
	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.False(t, report.Items[0].Changed)
	assert.Equal(t, 1, report.Synced)

	// a new upstream token reports a change
	stub.snapshots["ITEM-1"] = adapters.Snapshot{Title: "First Item", Status: "In Progress", Version: "v2"}
	report, err = svc.Run(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, report.Items[0].Changed)

	// the same token again reports no change
	report, err = svc.Run(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, report.Items[0].Changed)
}

func TestSyncRun_WritesSidecar(t *testing.T) {
	stub := &stubAdapter{
		name:      "stub",
		available: true,
		snapshots: map[string]adapters.Snapshot{
			"ITEM-1": {Title: "First Item", Status: "To Do", Version: "2025-10-15T09:00:00Z"},
		},
	}
	svc := testSync(t, stub, config.ItemConfig{ID: "ITEM-1"})
	svc.now = func() time.Time {
		return time.Date(2025, 10, 15, 9, 30, 0, 0, time.UTC)
	}

	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, report.Items, 1)

	meta := adapters.LoadMetadata(report.Items[0].Path)
	assert.Equal(t, "2025-10-15T09:30:00Z", meta.LastSync)
	assert.Equal(t, "2025-10-15T09:00:00Z", meta.Updated)
}

func TestSyncRun_FetchFailureIsolated(t *testing.T) {
	stub := &stubAdapter{
		name:      "stub",
		available: true,
		snapshots: map[string]adapters.Snapshot{
			"ITEM-2": {Title: "Healthy Item", Status: "Done", Version: "v1"},
		},
		errs: map[string]error{
			"ITEM-1": errors.New("command timed out"),
		},
	}
	svc := testSync(t, stub,
		config.ItemConfig{ID: "ITEM-1"},
		config.ItemConfig{ID: "ITEM-2"},
	)

	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Synced)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Items, 2)

	assert.True(t, report.Items[0].Skipped)
	assert.Contains(t, report.Items[0].Error, "command timed out")

	assert.False(t, report.Items[1].Skipped)
	assert.Equal(t, "Healthy Item", report.Items[1].Title)
}

func TestSyncRun_FetchFailurePreservesDocument(t *testing.T) {
	stub := &stubAdapter{
		name:      "stub",
		available: true,
		errs:      map[string]error{"ITEM-1": errors.New("upstream down")},
	}
	svc := testSync(t, stub, config.ItemConfig{ID: "ITEM-1"})

	docDir := filepath.Join(svc.cfg.AreaDir("stub"), "ITEM-1-prior-title")
	require.NoError(t, os.MkdirAll(docDir, 0o755))
	prior := "# Prior Title\n\nmanual notes\n"
	docPath := filepath.Join(docDir, "README.md")
	require.NoError(t, os.WriteFile(docPath, []byte(prior), 0o644))

	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Skipped)

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, prior, string(data))
}

func TestSyncRun_AreaFilter(t *testing.T) {
	stub := &stubAdapter{
		name:      "stub",
		available: true,
		snapshots: map[string]adapters.Snapshot{
			"ITEM-1": {Title: "First Item", Status: "To Do", Version: "v1"},
		},
	}
	svc := testSync(t, stub, config.ItemConfig{ID: "ITEM-1"})

	report, err := svc.Run(context.Background(), "stub")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Synced)

	_, err = svc.Run(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSyncRun_AdapterUnavailable(t *testing.T) {
	stub := &stubAdapter{name: "stub", available: false}
	svc := testSync(t, stub, config.ItemConfig{ID: "ITEM-1"})

	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Zero(t, report.Synced)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Items, 1)
	assert.Contains(t, report.Items[0].Error, "not available")
}

func TestSyncRun_ReusesExistingDirectoryOnTitleChange(t *testing.T) {
	stub := &stubAdapter{
		name:      "stub",
		available: true,
		snapshots: map[string]adapters.Snapshot{
			"ITEM-1": {Title: "Original Title", Status: "To Do", Version: "v1"},
		},
	}
	svc := testSync(t, stub, config.ItemConfig{ID: "ITEM-1"})

	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	firstPath := report.Items[0].Path

	stub.snapshots["ITEM-1"] = adapters.Snapshot{Title: "Renamed Title", Status: "To Do", Version: "v2"}
	report, err = svc.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, firstPath, report.Items[0].Path)

	entries, err := os.ReadDir(svc.cfg.AreaDir("stub"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSyncRun_LocalAdapterEndToEnd(t *testing.T) {
	cfg := config.Config{
		Areas: map[string]config.AreaConfig{
			"local": {Items: []config.ItemConfig{
				{ID: "task-1", Title: "Ship onboarding flow", Status: "In Progress"},
			}},
		},
		BasePath: t.TempDir(),
	}

	reg := adapters.NewRegistry()
	reg.Register(local.New(cfg.BasePath))

	svc := NewSyncService(&cfg, reg, zerolog.Nop())

	report, err := svc.Run(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 1, report.Synced)

	data, err := os.ReadFile(report.Items[0].Path)
	require.NoError(t, err)

	fm, _ := markdown.ParseFrontmatter(string(data))
	assert.Equal(t, "Ship onboarding flow", fm.GetString("title"))
	assert.Equal(t, "In Progress", fm.GetString("status"))

	meta := adapters.LoadMetadata(report.Items[0].Path)
	assert.NotEmpty(t, meta.LastSync)
}
