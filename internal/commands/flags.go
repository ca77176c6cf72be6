package commands

import (
	"os"
	"path/filepath"
	"runtime"
)

// Flags holds the global CLI flags shared by every command.
type Flags struct {
	LogLevel string
	LogFile  string

	// Dir is the workspace directory holding gameplan.yaml, AGENDA.md,
	// LOGBOOK.md, and tracking/.
	Dir string
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/gameplan/gameplan.log
// On Linux: $XDG_STATE_HOME/gameplan/gameplan.log (defaults to ~/.local/state/gameplan/gameplan.log)
func DefaultLogFile() string {
	// Check XDG_STATE_HOME first (works on both macOS and Linux)
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "gameplan", "gameplan.log")
	}

	home, _ := os.UserHomeDir()

	// On macOS, use ~/Library/Logs
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "gameplan", "gameplan.log")
	}

	// On Linux, use ~/.local/state
	return filepath.Join(home, ".local", "state", "gameplan", "gameplan.log")
}
