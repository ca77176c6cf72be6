// Package executil provides shell execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

const maxStderrLen = 500

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	buf *bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

// Executor runs external commands. The interface exists so adapters and
// the agenda refresh can be tested with a fake.
type Executor interface {
	// Output executes a command and returns its stdout. Stderr is
	// folded into the returned error, capped at 500 bytes so large or
	// ANSI-polluted output can't corrupt logs.
	Output(ctx context.Context, dir, cmd string, args ...string) ([]byte, error)
	// Shell executes a command line through `sh -c` with extra
	// environment entries, capturing stdout and stderr separately.
	// A non-nil error accompanies a non-zero exit or a cancelled
	// context; stderr is still returned so callers can report it.
	Shell(ctx context.Context, dir string, env []string, command string) (stdout, stderr string, err error)
}

// RealExecutor calls actual shell commands.
type RealExecutor struct{}

// Output executes a command and returns its stdout.
func (e *RealExecutor) Output(ctx context.Context, dir, cmd string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd, args...)
	if dir != "" {
		c.Dir = dir
	}
	var errBuf bytes.Buffer
	c.Stderr = &limitedWriter{buf: &errBuf, max: maxStderrLen}

	out, err := c.Output()
	if err != nil {
		if msg := strings.TrimSpace(errBuf.String()); msg != "" {
			return out, fmt.Errorf("exec %s: %s: %w", cmd, msg, err)
		}
		return out, fmt.Errorf("exec %s: %w", cmd, err)
	}
	return out, nil
}

// Shell executes a command line through `sh -c`.
func (e *RealExecutor) Shell(ctx context.Context, dir string, env []string, command string) (string, string, error) {
	c := exec.CommandContext(ctx, "sh", "-c", command)
	if dir != "" {
		c.Dir = dir
	}
	if len(env) > 0 {
		c.Env = append(os.Environ(), env...)
	}

	var out, errBuf bytes.Buffer
	c.Stdout = &out
	c.Stderr = &limitedWriter{buf: &errBuf, max: maxStderrLen}

	err := c.Run()
	return out.String(), strings.TrimSpace(errBuf.String()), err
}
