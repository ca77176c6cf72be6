// Package config handles loading and validation of gameplan.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Workspace file names.
const (
	FileName    = "gameplan.yaml"
	AgendaFile  = "AGENDA.md"
	LogbookFile = "LOGBOOK.md"
)

// TrackedItemsSection is the reserved agenda section whose content is
// generated from the tracked-item documents rather than a command.
const TrackedItemsSection = "Tracked Items"

// ErrNotInitialized is returned when the workspace has no gameplan.yaml.
var ErrNotInitialized = errors.New("gameplan.yaml not found; run 'gameplan init' first")

// Config holds the workspace configuration.
type Config struct {
	Areas  map[string]AreaConfig `yaml:"areas"`
	Agenda AgendaConfig          `yaml:"agenda"`

	// BasePath is the workspace directory; set by the loader, not the file.
	BasePath string `yaml:"-"`
}

// AreaConfig configures one tracking area (one adapter).
type AreaConfig struct {
	// BinaryPath overrides the adapter's default CLI binary.
	BinaryPath string       `yaml:"binary_path,omitempty"`
	Items      []ItemConfig `yaml:"items"`
}

// ItemConfig describes one tracked item within an area.
type ItemConfig struct {
	Issue  string `yaml:"issue,omitempty"` // tracker issue key, e.g. PROJ-123
	ID     string `yaml:"id,omitempty"`    // local item id
	Title  string `yaml:"title,omitempty"`
	Status string `yaml:"status,omitempty"`
	Env    string `yaml:"env,omitempty"` // tracker environment name
}

// Key returns the item's identifier regardless of area kind.
func (i ItemConfig) Key() string {
	if i.Issue != "" {
		return i.Issue
	}
	return i.ID
}

// AgendaConfig holds the ordered agenda section list.
type AgendaConfig struct {
	Sections []SectionConfig `yaml:"sections"`
}

// SectionConfig describes one agenda section. A section is either
// manual (description shown as placeholder) or command-driven (command
// output becomes the section content on refresh).
type SectionConfig struct {
	Name        string `yaml:"name"`
	Emoji       string `yaml:"emoji,omitempty"`
	Description string `yaml:"description,omitempty"`
	Command     string `yaml:"command,omitempty"`
}

// Header returns the exact rendered heading line for the section.
// Section identity in the agenda document is this full string.
func (s SectionConfig) Header() string {
	if s.Emoji != "" {
		return "## " + s.Emoji + " " + s.Name
	}
	return "## " + s.Name
}

// IsCommand reports whether the section is command-driven.
func (s SectionConfig) IsCommand() bool { return s.Command != "" }

// IsTrackedItems reports whether this is the reserved tracked-items section.
func (s SectionConfig) IsTrackedItems() bool { return s.Name == TrackedItemsSection }

// DefaultConfig returns the configuration written by 'gameplan init'.
func DefaultConfig() Config {
	return Config{
		Areas: map[string]AreaConfig{
			"jira":  {Items: []ItemConfig{}},
			"local": {Items: []ItemConfig{}},
		},
		Agenda: AgendaConfig{
			Sections: []SectionConfig{
				{Name: "Focus & Priorities", Emoji: "🎯", Description: "What's urgent/important today"},
				{Name: TrackedItemsSection, Emoji: "📌", Description: "Synced work items"},
				{Name: "Notes", Emoji: "📔", Description: "Thoughts and observations"},
			},
		},
	}
}

// Load reads gameplan.yaml from basePath. Returns ErrNotInitialized
// when the file doesn't exist.
func Load(basePath string) (*Config, error) {
	path := filepath.Join(basePath, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w (looked in %s)", ErrNotInitialized, basePath)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	cfg.BasePath = basePath

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Write serializes the configuration to gameplan.yaml under basePath.
func (c *Config) Write(basePath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(basePath, FileName), data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Agenda.Sections))
	for i, s := range c.Agenda.Sections {
		if s.Name == "" {
			return fmt.Errorf("agenda section %d: name is required", i)
		}
		if seen[s.Header()] {
			return fmt.Errorf("duplicate agenda section %q", s.Header())
		}
		seen[s.Header()] = true
		if s.IsTrackedItems() && s.Command != "" {
			return fmt.Errorf("section %q is managed by gameplan and cannot have a command", TrackedItemsSection)
		}
	}

	for name, area := range c.Areas {
		for i, item := range area.Items {
			if item.Key() == "" {
				return fmt.Errorf("area %q: item %d: issue or id is required", name, i)
			}
		}
	}
	return nil
}

// AgendaPath returns the path to the workspace agenda document.
func (c *Config) AgendaPath() string {
	return filepath.Join(c.BasePath, AgendaFile)
}

// LogbookPath returns the path to the workspace logbook document.
func (c *Config) LogbookPath() string {
	return filepath.Join(c.BasePath, LogbookFile)
}

// AreaDir returns the tracking directory for an area.
func (c *Config) AreaDir(area string) string {
	return filepath.Join(c.BasePath, "tracking", "areas", area)
}
