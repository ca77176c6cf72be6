package executil

import (
	"context"
	"strings"
	"sync"
)

// RecordedCommand captures a command that was executed.
type RecordedCommand struct {
	Dir  string
	Cmd  string
	Args []string
}

// RecordingExecutor captures commands for testing.
// Configure the Outputs/Errors maps to control return values.
type RecordingExecutor struct {
	mu       sync.Mutex
	Commands []RecordedCommand

	// Outputs maps commands to their stdout. Lookup tries the full
	// command line ("cmd arg1 arg2 ...") first, then the bare command
	// name, so a test can answer per-invocation or per-binary.
	Outputs map[string][]byte

	// Errors maps commands to their error, with the same lookup rule.
	Errors map[string]error

	// ShellOutputs / ShellStderr / ShellErrors map a shell command line
	// to the results of Shell.
	ShellOutputs map[string]string
	ShellStderr  map[string]string
	ShellErrors  map[string]error
}

// Output records the command and returns configured stdout/error.
func (e *RecordingExecutor) Output(_ context.Context, dir, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{Dir: dir, Cmd: cmd, Args: args})

	full := strings.TrimSpace(cmd + " " + strings.Join(args, " "))

	var out []byte
	var err error
	if e.Outputs != nil {
		if o, ok := e.Outputs[full]; ok {
			out = o
		} else {
			out = e.Outputs[cmd]
		}
	}
	if e.Errors != nil {
		if er, ok := e.Errors[full]; ok {
			err = er
		} else {
			err = e.Errors[cmd]
		}
	}
	return out, err
}

// Shell records the command line and returns configured results.
func (e *RecordingExecutor) Shell(_ context.Context, dir string, _ []string, command string) (string, string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, RecordedCommand{Dir: dir, Cmd: "sh", Args: []string{"-c", command}})

	return e.ShellOutputs[command], e.ShellStderr[command], e.ShellErrors[command]
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
}
