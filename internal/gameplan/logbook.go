package gameplan

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/gameplan/internal/core/config"
	"github.com/hay-kot/gameplan/internal/markdown"
)

// Completed agenda tasks look like:
//
//	- [x] Ship the fix ✅ 2025-10-15
//
// Only lines carrying both the checkbox marker and a dated completion
// token are archived; everything else stays in the agenda.
const (
	completedMarker = "- [x] "
	weekPrefix      = "## Week of "

	// OtherInitiative collects completed work that doesn't belong to a
	// tracked item's Actions block.
	OtherInitiative = "Other"
)

var doneDateRe = regexp.MustCompile(`✅ (\d{4}-\d{2}-\d{2})`)

var issueKeyRe = regexp.MustCompile(`^\[([^\]]+)\]\s*(.*)$`)

// Logbook archives completed agenda tasks into the workspace logbook,
// grouped by ISO week and initiative. The logbook is append-only:
// existing entries are merged with new ones and never removed.
type Logbook struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// NewLogbook creates the archival pipeline for a workspace.
func NewLogbook(cfg *config.Config, logger zerolog.Logger) *Logbook {
	return &Logbook{cfg: cfg, logger: logger.With().Str("component", "logbook").Logger()}
}

// ExtractCompleted scans the agenda for completed, dated task lines and
// buckets them by initiative category and completion date. The category
// is the tracked item's heading only for lines inside that item's
// Actions block within the Tracked Items section; completed lines
// anywhere else (other sections, an item's Notes block, outside all
// sections) fall under "Other".
func ExtractCompleted(doc string) map[string]map[string][]string {
	out := make(map[string]map[string][]string)

	insideTracked := false
	currentItem := ""
	insideActions := false

	for _, line := range strings.Split(doc, "\n") {
		switch markdown.HeadingLevel(line) {
		case 1:
			insideTracked = false
			currentItem = ""
			insideActions = false
		case 2:
			insideTracked = strings.Contains(line, config.TrackedItemsSection)
			currentItem = ""
			insideActions = false
		case 3:
			if insideTracked {
				currentItem = strings.TrimSpace(strings.TrimPrefix(line, "###"))
			} else {
				currentItem = ""
			}
			insideActions = false
		case 4:
			insideActions = insideTracked && strings.TrimSpace(strings.TrimPrefix(line, "####")) == "Actions"
		}

		if !strings.HasPrefix(line, completedMarker) {
			continue
		}
		m := doneDateRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		category := OtherInitiative
		if insideTracked && insideActions && currentItem != "" {
			category = currentItem
		}

		if out[category] == nil {
			out[category] = make(map[string][]string)
		}
		out[category][m[1]] = append(out[category][m[1]], line)
	}
	return out
}

// WeekStart returns the Monday on or before t, at midnight in t's
// location.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	t = t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IssueHeading converts a tracked-item heading into its logbook
// initiative heading: "[KEY] Title" becomes "KEY (Title)", a bare
// "[KEY]" becomes "KEY". Headings without a bracketed key, and the
// literal "Other", pass through unchanged.
func IssueHeading(category string) string {
	if category == OtherInitiative {
		return category
	}
	m := issueKeyRe.FindStringSubmatch(category)
	if m == nil {
		return category
	}
	if m[2] == "" {
		return m[1]
	}
	return m[1] + " (" + m[2] + ")"
}

// Prune removes exactly the completed lines captured by
// ExtractCompleted from the document, by exact text match, leaving
// every other line in place.
func Prune(doc string, completed map[string]map[string][]string) string {
	archived := make(map[string]bool)
	for _, byDate := range completed {
		for _, lines := range byDate {
			for _, line := range lines {
				archived[line] = true
			}
		}
	}

	lines := strings.Split(doc, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !archived[line] {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Process runs the archival pipeline: extract completed tasks from the
// agenda, merge them into the logbook, and prune them from the agenda.
// When nothing new was archived neither document is touched, so a
// rerun after a failed write can't lose or duplicate a task. A missing
// agenda is a safe no-op.
func (l *Logbook) Process() (tasksLogged, initiativesTouched int, err error) {
	agendaData, err := os.ReadFile(l.cfg.AgendaPath())
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("read agenda: %w", err)
	}

	completed := ExtractCompleted(string(agendaData))
	if len(completed) == 0 {
		return 0, 0, nil
	}

	logbookData, err := os.ReadFile(l.cfg.LogbookPath())
	if err != nil && !os.IsNotExist(err) {
		return 0, 0, fmt.Errorf("read logbook: %w", err)
	}

	merged, tasksLogged, initiativesTouched := mergeLogbook(string(logbookData), completed)
	if tasksLogged == 0 {
		return 0, 0, nil
	}

	if err := os.WriteFile(l.cfg.LogbookPath(), []byte(merged), 0o644); err != nil {
		return 0, 0, fmt.Errorf("write logbook: %w", err)
	}

	pruned := Prune(string(agendaData), completed)
	if err := os.WriteFile(l.cfg.AgendaPath(), []byte(pruned), 0o644); err != nil {
		return 0, 0, fmt.Errorf("prune agenda: %w", err)
	}

	l.logger.Info().
		Int("tasks", tasksLogged).
		Int("initiatives", initiativesTouched).
		Msg("archived completed tasks")

	return tasksLogged, initiativesTouched, nil
}

// mergeLogbook folds the extracted tasks into the parsed logbook and
// re-renders it. Duplicate lines (exact text) are never stored twice.
func mergeLogbook(doc string, completed map[string]map[string][]string) (string, int, int) {
	weeks := parseLogbook(doc)

	tasksLogged := 0
	touched := make(map[string]bool)

	for category, byDate := range completed {
		heading := IssueHeading(category)
		for date, lines := range byDate {
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				continue
			}
			week := WeekStart(day).Format("2006-01-02")

			for _, line := range lines {
				if containsLine(weeks[week][heading], line) {
					continue
				}
				if weeks[week] == nil {
					weeks[week] = make(map[string][]string)
				}
				weeks[week][heading] = append(weeks[week][heading], line)
				tasksLogged++
				touched[heading] = true
			}
		}
	}

	return renderLogbook(weeks), tasksLogged, len(touched)
}

// parseLogbook reads an existing logbook into week -> initiative ->
// task lines. An empty document parses to an empty structure.
func parseLogbook(doc string) map[string]map[string][]string {
	weeks := make(map[string]map[string][]string)

	week := ""
	initiative := ""
	for _, line := range strings.Split(doc, "\n") {
		switch {
		case strings.HasPrefix(line, weekPrefix):
			week = strings.TrimSpace(strings.TrimPrefix(line, weekPrefix))
			initiative = ""
		case markdown.HeadingLevel(line) == 3:
			initiative = strings.TrimSpace(strings.TrimPrefix(line, "###"))
		case strings.HasPrefix(line, completedMarker) && week != "" && initiative != "":
			if weeks[week] == nil {
				weeks[week] = make(map[string][]string)
			}
			weeks[week][initiative] = append(weeks[week][initiative], line)
		}
	}
	return weeks
}

// renderLogbook serializes the structure: weeks newest first,
// initiatives alphabetical with "Other" always last, tasks newest
// first by their embedded completion date.
func renderLogbook(weeks map[string]map[string][]string) string {
	weekKeys := make([]string, 0, len(weeks))
	for w := range weeks {
		weekKeys = append(weekKeys, w)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weekKeys)))

	var b strings.Builder
	b.WriteString("# Logbook\n")

	for _, week := range weekKeys {
		b.WriteString("\n" + weekPrefix + week + "\n")

		initiatives := make([]string, 0, len(weeks[week]))
		for name := range weeks[week] {
			initiatives = append(initiatives, name)
		}
		sort.Slice(initiatives, func(i, j int) bool {
			if initiatives[i] == OtherInitiative {
				return false
			}
			if initiatives[j] == OtherInitiative {
				return true
			}
			return initiatives[i] < initiatives[j]
		})

		for _, name := range initiatives {
			b.WriteString("\n### " + name + "\n\n")

			tasks := append([]string(nil), weeks[week][name]...)
			sort.SliceStable(tasks, func(i, j int) bool {
				return taskDate(tasks[i]) > taskDate(tasks[j])
			})
			for _, task := range tasks {
				b.WriteString(task + "\n")
			}
		}
	}
	return b.String()
}

func taskDate(line string) string {
	if m := doneDateRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

func containsLine(lines []string, line string) bool {
	for _, l := range lines {
		if l == line {
			return true
		}
	}
	return false
}
