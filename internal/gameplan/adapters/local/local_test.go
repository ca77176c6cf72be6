package local

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
	"github.com/hay-kot/gameplan/internal/markdown"
)

func testItem() adapters.TrackedItem {
	return adapters.TrackedItem{
		ID:     "deploy-docs",
		Source: "local",
		Attrs:  config.ItemConfig{ID: "deploy-docs", Title: "Deploy the docs site", Status: "Active"},
	}
}

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := New(t.TempDir())
	a.now = func() time.Time { return time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestFetch_NoDocumentUsesConfig(t *testing.T) {
	a := newTestAdapter(t)

	snap, err := a.Fetch(context.Background(), testItem())
	require.NoError(t, err)
	assert.Equal(t, "Deploy the docs site", snap.Title)
	assert.Equal(t, "Active", snap.Status)
	assert.Empty(t, snap.Version, "local items carry no version token")
}

func TestFetch_ReadsFrontmatter(t *testing.T) {
	a := newTestAdapter(t)
	item := testItem()

	require.NoError(t, a.UpdateDocument(a.StoragePath(item, "Deploy the docs site"),
		adapters.Snapshot{Title: "Deploy the docs site", Status: "Blocked"}, item))

	snap, err := a.Fetch(context.Background(), item)
	require.NoError(t, err)
	assert.Equal(t, "Blocked", snap.Status)
}

func TestUpdateDocument_CreatesWithFrontmatter(t *testing.T) {
	a := newTestAdapter(t)
	item := testItem()

	path := a.StoragePath(item, "Deploy the docs site")
	require.NoError(t, a.UpdateDocument(path, adapters.Snapshot{Title: "Deploy the docs site", Status: "Active"}, item))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	fm, body := markdown.ParseFrontmatter(string(data))
	assert.Equal(t, "deploy-docs", fm.GetString("id"))
	assert.Equal(t, "Deploy the docs site", fm.GetString("title"))
	assert.Equal(t, "Active", fm.GetString("status"))
	assert.Equal(t, "2025-10-15T12:00:00Z", fm.GetString("last_updated"))
	assert.Contains(t, body, "## Actions")
	assert.Contains(t, body, "## Notes")
}

func TestUpdateDocument_PreservesBody(t *testing.T) {
	a := newTestAdapter(t)
	item := testItem()
	path := a.StoragePath(item, "Deploy the docs site")

	require.NoError(t, a.UpdateDocument(path, adapters.Snapshot{Title: "Deploy the docs site", Status: "Active"}, item))

	data, _ := os.ReadFile(path)
	edited := string(data) + "\nmanual trailing note\n"
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	require.NoError(t, a.UpdateDocument(path, adapters.Snapshot{Title: "Deploy the docs site", Status: "Done"}, item))

	data, _ = os.ReadFile(path)
	assert.Contains(t, string(data), "manual trailing note")
	fm, _ := markdown.ParseFrontmatter(string(data))
	assert.Equal(t, "Done", fm.GetString("status"))
}

func TestUpdateDocument_UnchangedIsByteStable(t *testing.T) {
	a := newTestAdapter(t)
	item := testItem()
	path := a.StoragePath(item, "Deploy the docs site")
	snap := adapters.Snapshot{Title: "Deploy the docs site", Status: "Active"}

	require.NoError(t, a.UpdateDocument(path, snap, item))
	first, _ := os.ReadFile(path)

	// Later run, different clock; nothing changed upstream.
	a.now = func() time.Time { return time.Date(2025, 10, 16, 9, 0, 0, 0, time.UTC) }
	require.NoError(t, a.UpdateDocument(path, snap, item))
	second, _ := os.ReadFile(path)

	assert.Equal(t, string(first), string(second))
}

func TestItems_SkipsEntriesWithoutID(t *testing.T) {
	a := newTestAdapter(t)

	items := a.Items(config.AreaConfig{Items: []config.ItemConfig{
		{ID: "one"},
		{Issue: "PROJ-1"}, // jira-shaped entry, not ours
	}})
	require.Len(t, items, 1)
	assert.Equal(t, "one", items[0].ID)
}
