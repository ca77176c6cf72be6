// Package gameplan implements the workspace services behind the CLI:
// the agenda document model, the logbook archival pipeline, and the
// tracked-item sync orchestrator.
package gameplan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/gameplan/adapters"
	"github.com/hay-kot/gameplan/internal/markdown"
	"github.com/hay-kot/gameplan/pkg/executil"
)

const (
	commandTimeout = 30 * time.Second

	// BaseDirEnvVar is exported into the environment of section
	// commands so scripts can locate the workspace.
	BaseDirEnvVar = "GAMEPLAN_BASE_DIR"

	agendaHeaderPrefix = "# Agenda - "
	agendaDateLayout   = "Monday, January 02, 2006"

	actionsHeader      = "#### Actions"
	notesHeader        = "#### Notes"
	actionsPlaceholder = "- [ ] [Add actions here]"
	notesPlaceholder   = "[Add notes here]"

	commandFailedMarker  = "[Error running command: Command failed]"
	commandTimeoutMarker = "[Error running command: Timeout]"
)

var (
	// ErrAgendaExists is returned by Init when the agenda already exists.
	ErrAgendaExists = errors.New("agenda already exists")

	// ErrAgendaNotFound is returned when an operation needs an existing
	// agenda document and there is none.
	ErrAgendaNotFound = errors.New("agenda not found; run 'gameplan agenda init' first")

	// ErrNoSections is returned when the configuration declares no
	// agenda sections.
	ErrNoSections = errors.New("no agenda sections configured")
)

var statusGlyphs = map[string]string{
	"To Do":       "⚪",
	"In Progress": "🔵",
	"In Review":   "🟣",
	"Blocked":     "🔴",
	"Done":        "🟢",
}

// StatusGlyph returns the indicator for a tracked-item status, or the
// unknown indicator for statuses outside the fixed table.
func StatusGlyph(status string) string {
	if g, ok := statusGlyphs[status]; ok {
		return g
	}
	return "⚫"
}

// AgendaService owns the workspace agenda document.
type AgendaService struct {
	cfg      *config.Config
	exec     executil.Executor
	registry *adapters.Registry
	logbook  *Logbook
	now      func() time.Time
	logger   zerolog.Logger
}

// NewAgendaService wires the agenda document model.
func NewAgendaService(cfg *config.Config, exec executil.Executor, registry *adapters.Registry, logger zerolog.Logger) *AgendaService {
	return &AgendaService{
		cfg:      cfg,
		exec:     exec,
		registry: registry,
		logbook:  NewLogbook(cfg, logger),
		now:      time.Now,
		logger:   logger.With().Str("component", "agenda").Logger(),
	}
}

// Init creates the agenda document from the configured section list.
func (s *AgendaService) Init() error {
	if len(s.cfg.Agenda.Sections) == 0 {
		return ErrNoSections
	}
	if _, err := os.Stat(s.cfg.AgendaPath()); err == nil {
		return fmt.Errorf("%w at %s", ErrAgendaExists, s.cfg.AgendaPath())
	}

	var b strings.Builder
	b.WriteString(s.headerLine() + "\n")
	for _, sec := range s.cfg.Agenda.Sections {
		b.WriteString("\n" + sec.Header() + "\n\n")
		b.WriteString(sectionPlaceholder(sec) + "\n")
	}

	if err := os.WriteFile(s.cfg.AgendaPath(), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write agenda: %w", err)
	}
	return nil
}

// Read returns the agenda document content.
func (s *AgendaService) Read() (string, error) {
	data, err := os.ReadFile(s.cfg.AgendaPath())
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrAgendaNotFound
		}
		return "", fmt.Errorf("read agenda: %w", err)
	}
	return string(data), nil
}

// Refresh rebuilds the agenda in place: archive completed tasks to the
// logbook first (so command output generated below never interleaves
// with stale completed-task text), then restamp the date header,
// reorder sections to match configuration, run command-driven
// sections, and re-render the tracked-items section from the synced
// documents.
func (s *AgendaService) Refresh(ctx context.Context) error {
	if len(s.cfg.Agenda.Sections) == 0 {
		return ErrNoSections
	}
	if _, err := os.Stat(s.cfg.AgendaPath()); err != nil {
		if os.IsNotExist(err) {
			return ErrAgendaNotFound
		}
		return fmt.Errorf("stat agenda: %w", err)
	}

	if _, _, err := s.logbook.Process(); err != nil {
		return fmt.Errorf("archive completed tasks: %w", err)
	}

	doc, err := s.Read()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(s.headerLine() + "\n")

	for _, sec := range s.cfg.Agenda.Sections {
		var content string
		switch {
		case sec.IsTrackedItems():
			content = s.formatTrackedItems(doc)
		case sec.IsCommand():
			content = s.runSectionCommand(ctx, sec)
		default:
			if existing, ok := markdown.ExtractSection(doc, sec.Header()); ok {
				content = existing
			} else {
				content = sectionPlaceholder(sec)
			}
		}
		content = strings.Trim(content, "\n")

		b.WriteString("\n" + sec.Header() + "\n")
		if content != "" {
			b.WriteString("\n" + content + "\n")
		}
	}

	if err := os.WriteFile(s.cfg.AgendaPath(), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write agenda: %w", err)
	}
	return nil
}

func (s *AgendaService) headerLine() string {
	return agendaHeaderPrefix + s.now().Format(agendaDateLayout)
}

// sectionPlaceholder renders the initial content for a section that has
// never been filled in.
func sectionPlaceholder(sec config.SectionConfig) string {
	if sec.IsCommand() {
		return "[Run: " + sec.Command + "]"
	}
	if sec.Description != "" {
		return "[" + sec.Description + "]"
	}
	return "[Add content here]"
}

// runSectionCommand executes a section's command with a bounded timeout
// and returns its stdout, or an inline error marker. A failing command
// never fails the refresh.
func (s *AgendaService) runSectionCommand(ctx context.Context, sec config.SectionConfig) string {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	env := []string{BaseDirEnvVar + "=" + s.cfg.BasePath}
	stdout, stderr, err := s.exec.Shell(ctx, s.cfg.BasePath, env, sec.Command)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			s.logger.Warn().Str("section", sec.Name).Msg("section command timed out")
			return commandTimeoutMarker
		}
		s.logger.Warn().Str("section", sec.Name).Err(err).Msg("section command failed")
		marker := commandFailedMarker
		if msg := strings.TrimSpace(stderr); msg != "" {
			marker += "\n" + msg
		}
		return marker
	}
	return strings.Trim(stdout, "\n")
}

// formatTrackedItems renders the tracked-items section. Title and
// status come from each item's synced document on disk, never from a
// live fetch; the Actions and Notes blocks come from the current
// agenda so manual entries survive every refresh.
func (s *AgendaService) formatTrackedItems(agendaDoc string) string {
	areaNames := make([]string, 0, len(s.cfg.Areas))
	for name := range s.cfg.Areas {
		areaNames = append(areaNames, name)
	}
	sort.Strings(areaNames)

	var blocks []string
	for _, name := range areaNames {
		adapter, ok := s.registry.Get(name)
		if !ok {
			s.logger.Warn().Str("area", name).Msg("no adapter for configured area")
			continue
		}
		for _, item := range adapter.Items(s.cfg.Areas[name]) {
			blocks = append(blocks, s.formatItem(agendaDoc, name, item))
		}
	}

	if len(blocks) == 0 {
		return "[No tracked items configured]"
	}
	return strings.Join(blocks, "\n")
}

func (s *AgendaService) formatItem(agendaDoc, area string, item adapters.TrackedItem) string {
	title, status := s.itemSummary(area, item)

	heading := "### [" + item.ID + "]"
	if title != "" {
		heading += " " + title
	}

	actions, notes := itemSubBlocks(agendaDoc, item.ID)
	if actions == "" {
		actions = actionsPlaceholder
	}
	if notes == "" {
		notes = notesPlaceholder
	}

	var b strings.Builder
	b.WriteString(heading + "\n\n")
	b.WriteString("**Status**: " + StatusGlyph(status) + " " + status + "\n\n")
	b.WriteString(actionsHeader + "\n\n" + actions + "\n\n")
	b.WriteString(notesHeader + "\n\n" + notes + "\n")
	return b.String()
}

// itemSummary reads title and status from the item's synced document,
// handling both the frontmatter and the inline-field document styles.
// Configuration attributes fill in when no document exists yet.
func (s *AgendaService) itemSummary(area string, item adapters.TrackedItem) (title, status string) {
	title = item.Attrs.Title
	status = item.Attrs.Status
	if status == "" {
		status = "Unknown"
	}

	path := adapters.FindDocument(s.cfg.AreaDir(area), item.ID)
	if path == "" {
		return title, status
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return title, status
	}

	fm, body := markdown.ParseFrontmatter(string(data))
	if v := fm.GetString("title"); v != "" {
		title = v
	}
	if v := fm.GetString("status"); v != "" {
		status = v
	}
	if fm.Len() > 0 {
		return title, status
	}

	// legacy inline-field style: "# KEY: Title" plus "**Status**: value"
	line, _, _ := strings.Cut(body, "\n")
	if rest, ok := strings.CutPrefix(line, "# "); ok {
		if _, t, found := strings.Cut(rest, ": "); found && t != "" {
			title = t
		}
	}
	if v, ok := markdown.Field(body, "Status"); ok && v != "" {
		status = v
	}
	return title, status
}

// itemSubBlocks extracts the Actions and Notes content for an item from
// the agenda document. The item block is located by id prefix because
// the heading's title half drifts as upstream titles change.
func itemSubBlocks(agendaDoc, id string) (actions, notes string) {
	lines := strings.Split(agendaDoc, "\n")

	start := -1
	for i, line := range lines {
		if markdown.HeadingLevel(line) == 3 && strings.HasPrefix(line, "### ["+id+"]") {
			start = i
			break
		}
	}
	if start == -1 {
		return "", ""
	}

	end := start + 1
	for end < len(lines) && !isBoundary3(lines[end]) {
		end++
	}
	block := strings.Join(lines[start:end], "\n")

	a, _ := markdown.ExtractSection(block, actionsHeader)
	n, _ := markdown.ExtractSection(block, notesHeader)
	return strings.Trim(a, "\n"), strings.Trim(n, "\n")
}

func isBoundary3(line string) bool {
	l := markdown.HeadingLevel(line)
	return l > 0 && l <= 3
}
