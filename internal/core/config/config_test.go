package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NotInitialized(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotInitialized))
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Areas["jira"] = AreaConfig{Items: []ItemConfig{{Issue: "PROJ-123", Env: "prod"}}}
	require.NoError(t, cfg.Write(dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, loaded.BasePath)
	assert.Equal(t, "PROJ-123", loaded.Areas["jira"].Items[0].Issue)
	assert.Len(t, loaded.Agenda.Sections, 3)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("areas: [unclosed"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default is valid",
			mutate: func(c *Config) {},
		},
		{
			name: "section without name",
			mutate: func(c *Config) {
				c.Agenda.Sections = append(c.Agenda.Sections, SectionConfig{Emoji: "📎"})
			},
			wantErr: "name is required",
		},
		{
			name: "duplicate section header",
			mutate: func(c *Config) {
				c.Agenda.Sections = append(c.Agenda.Sections, c.Agenda.Sections[0])
			},
			wantErr: "duplicate agenda section",
		},
		{
			name: "tracked items with command",
			mutate: func(c *Config) {
				c.Agenda.Sections[1].Command = "echo nope"
			},
			wantErr: "cannot have a command",
		},
		{
			name: "item without key",
			mutate: func(c *Config) {
				c.Areas["jira"] = AreaConfig{Items: []ItemConfig{{Env: "prod"}}}
			},
			wantErr: "issue or id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSectionConfig_Header(t *testing.T) {
	assert.Equal(t, "## 🎯 Focus", SectionConfig{Name: "Focus", Emoji: "🎯"}.Header())
	assert.Equal(t, "## Focus", SectionConfig{Name: "Focus"}.Header())
}
