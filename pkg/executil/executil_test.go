package executil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShell_CapturesStdoutAndStderr(t *testing.T) {
	e := &RealExecutor{}

	stdout, stderr, err := e.Shell(context.Background(), "", nil, "echo out; echo err >&2")
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout)
	assert.Equal(t, "err", stderr)
}

func TestShell_NonZeroExit(t *testing.T) {
	e := &RealExecutor{}

	_, stderr, err := e.Shell(context.Background(), "", nil, "echo boom >&2; exit 3")
	require.Error(t, err)
	assert.Equal(t, "boom", stderr)
}

func TestShell_Env(t *testing.T) {
	e := &RealExecutor{}

	stdout, _, err := e.Shell(context.Background(), "", []string{"GAMEPLAN_BASE_DIR=/tmp/ws"}, "printf '%s' \"$GAMEPLAN_BASE_DIR\"")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ws", stdout)
}

func TestShell_Timeout(t *testing.T) {
	e := &RealExecutor{}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := e.Shell(ctx, "", nil, "sleep 5")
	require.Error(t, err)
	assert.ErrorIs(t, ctx.Err(), context.DeadlineExceeded)
}

func TestOutput_StderrCappedAtMaxLen(t *testing.T) {
	e := &RealExecutor{}

	// Write twice the cap to stderr; only the first maxStderrLen bytes
	// should appear in the error.
	longStderr := strings.Repeat("A", maxStderrLen*2)
	script := fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", longStderr)

	_, err := e.Output(context.Background(), "", "sh", "-c", script)
	require.Error(t, err)
	assert.LessOrEqual(t, len(err.Error()), maxStderrLen+40, "error message should be capped")
}

func TestOutput_ReturnsStdoutOnly(t *testing.T) {
	e := &RealExecutor{}

	out, err := e.Output(context.Background(), "", "sh", "-c", "echo data; echo noise >&2")
	require.NoError(t, err)
	assert.Equal(t, "data\n", string(out))
}
