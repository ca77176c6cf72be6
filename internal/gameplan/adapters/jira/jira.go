// Package jira mirrors Jira issues through the jirahhh CLI.
//
// The adapter never talks to Jira directly: it shells out to jirahhh
// (https://github.com/shanemcd/jirahhh), which carries the JIRA_URL /
// JIRA_EMAIL / JIRA_API_TOKEN environment configuration. The JSON it
// returns is treated as an opaque contract; both the flat shape and the
// nested-under-"fields" shape are tolerated.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
	"github.com/hay-kot/gameplan/internal/markdown"
	"github.com/hay-kot/gameplan/pkg/executil"
	"github.com/hay-kot/gameplan/pkg/markup"
)

// DefaultBinary is the jirahhh binary looked up on PATH when the area
// has no binary_path override.
const DefaultBinary = "jirahhh"

const fetchTimeout = 30 * time.Second

// Adapter syncs Jira issues into legacy inline-field documents
// (**Status** / **Assignee** lines plus an Activity Log section).
type Adapter struct {
	cfg  config.AreaConfig
	base string
	exec executil.Executor
	conv markup.Converter
}

// New creates a Jira adapter rooted at the workspace base path. conv
// converts Jira wiki markup in comments to markdown; pass markup.Noop{}
// when no converter is available.
func New(cfg config.AreaConfig, basePath string, exec executil.Executor, conv markup.Converter) *Adapter {
	if conv == nil {
		conv = markup.Noop{}
	}
	return &Adapter{cfg: cfg, base: basePath, exec: exec, conv: conv}
}

func (a *Adapter) Name() string { return "jira" }

// Binary returns the jirahhh binary path, honoring the area's
// binary_path override.
func (a *Adapter) Binary() string {
	if a.cfg.BinaryPath != "" {
		return a.cfg.BinaryPath
	}
	return DefaultBinary
}

// Available reports whether the jirahhh binary can be found.
func (a *Adapter) Available() bool {
	_, err := exec.LookPath(a.Binary())
	return err == nil
}

// Items expands the area configuration into tracked Jira issues.
func (a *Adapter) Items(area config.AreaConfig) []adapters.TrackedItem {
	items := make([]adapters.TrackedItem, 0, len(area.Items))
	for _, ic := range area.Items {
		if ic.Issue == "" {
			continue
		}
		items = append(items, adapters.TrackedItem{
			ID:     ic.Issue,
			Source: a.Name(),
			Attrs:  ic,
		})
	}
	return items
}

// Fetch retrieves the issue and its comments via jirahhh.
func (a *Adapter) Fetch(ctx context.Context, item adapters.TrackedItem) (adapters.Snapshot, error) {
	env := item.Attrs.Env
	if env == "" {
		env = "prod"
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	out, err := a.exec.Output(ctx, a.base, a.Binary(),
		"api", "GET", "/rest/api/2/issue/"+item.ID, "--env", env)
	if err != nil {
		return adapters.Snapshot{}, fmt.Errorf("fetch %s: %w", item.ID, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		return adapters.Snapshot{}, fmt.Errorf("fetch %s: malformed response: %w", item.ID, err)
	}

	snap := snapshotFromIssue(raw)
	if snap.Title == "" {
		return adapters.Snapshot{}, fmt.Errorf("fetch %s: response has no summary", item.ID)
	}

	// Comments are best-effort; a failed comments call doesn't fail the item.
	if out, err := a.exec.Output(ctx, a.base, a.Binary(),
		"api", "GET", "/rest/api/2/issue/"+item.ID+"/comment", "--env", env); err == nil {
		snap.Comments = parseComments(out)
	}

	return snap, nil
}

// snapshotFromIssue extracts title/status/assignee/version from either
// JSON shape jirahhh is known to return.
func snapshotFromIssue(raw map[string]any) adapters.Snapshot {
	snap := adapters.Snapshot{Raw: raw, Assignee: "Unassigned"}

	if fields, ok := raw["fields"].(map[string]any); ok {
		snap.Title, _ = fields["summary"].(string)
		switch status := fields["status"].(type) {
		case map[string]any:
			snap.Status, _ = status["name"].(string)
		case string:
			snap.Status = status
		}
		if assignee, ok := fields["assignee"].(map[string]any); ok {
			if name, _ := assignee["displayName"].(string); name != "" {
				snap.Assignee = name
			}
		}
		snap.Version, _ = fields["updated"].(string)
		return snap
	}

	// Flat shape fallback
	snap.Title, _ = raw["summary"].(string)
	snap.Status, _ = raw["status"].(string)
	if name, _ := raw["assignee"].(string); name != "" {
		snap.Assignee = name
	}
	snap.Version, _ = raw["updated"].(string)
	return snap
}

func parseComments(data []byte) []adapters.Comment {
	var payload struct {
		Comments []struct {
			Author struct {
				DisplayName string `json:"displayName"`
			} `json:"author"`
			Created string `json:"created"`
			Body    string `json:"body"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}

	comments := make([]adapters.Comment, 0, len(payload.Comments))
	for _, c := range payload.Comments {
		author := c.Author.DisplayName
		if author == "" {
			author = "Unknown"
		}
		comments = append(comments, adapters.Comment{
			Author:    author,
			Timestamp: c.Created,
			Body:      strings.TrimSpace(c.Body),
		})
	}
	return comments
}

// StoragePath returns tracking/areas/jira/<KEY>-<slug>/README.md.
func (a *Adapter) StoragePath(item adapters.TrackedItem, title string) string {
	dirName := item.ID
	if title != "" {
		if slug := adapters.SanitizeTitle(title); slug != "" {
			dirName = item.ID + "-" + slug
		}
	}
	return filepath.Join(a.base, "tracking", "areas", "jira", dirName, "README.md")
}

// UpdateDocument writes the snapshot into the issue document, updating
// the Status/Assignee fields and the Activity Log section while leaving
// everything else byte-stable.
func (a *Adapter) UpdateDocument(path string, snap adapters.Snapshot, item adapters.TrackedItem) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create item dir: %w", err)
	}

	var content string
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = a.updateExisting(string(existing), snap)
	case os.IsNotExist(err):
		content = a.newDocument(item.ID, snap)
	default:
		return fmt.Errorf("read item document: %w", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write item document: %w", err)
	}
	return nil
}

func (a *Adapter) newDocument(issueKey string, snap adapters.Snapshot) string {
	doc := fmt.Sprintf(`# %s: %s

**Status**: %s
**Assignee**: %s

## Overview
[Add context about this issue here]

## Activity Log

## Notes
[Add notes, decisions, and important information here]
`, issueKey, snap.Title, snap.Status, snap.Assignee)

	return markdown.ReplaceSection(doc, "## Activity Log", a.activityLog(snap))
}

func (a *Adapter) updateExisting(content string, snap adapters.Snapshot) string {
	content = markdown.SetField(content, "Status", snap.Status)
	content = markdown.SetField(content, "Assignee", snap.Assignee)
	return markdown.ReplaceSection(content, "## Activity Log", a.activityLog(snap))
}

// activityLog renders the synced comments, most recent first.
func (a *Adapter) activityLog(snap adapters.Snapshot) string {
	var b strings.Builder
	b.WriteString("\n*(Auto-synced from Jira)*\n")

	for i := len(snap.Comments) - 1; i >= 0; i-- {
		c := snap.Comments[i]
		body := a.conv.Convert(c.Body, markup.FormatJira, markup.FormatGFM)

		b.WriteString("\n### " + c.Author + " - " + formatTimestamp(c.Timestamp) + "\n\n")
		b.WriteString(strings.TrimSpace(body) + "\n\n---\n")
	}
	return b.String()
}

// formatTimestamp normalizes a Jira timestamp for display; unparsable
// values pass through as-is.
func formatTimestamp(ts string) string {
	if ts == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000-0700"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.UTC().Format("2006-01-02 15:04 UTC")
		}
	}
	return ts
}
