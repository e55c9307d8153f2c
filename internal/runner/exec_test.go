//go:build unix

package runner

import (
	"context"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/plock/internal/errors"
)

// pidStarter starts real processes and remembers their pids so tests can clean up.
type pidStarter struct {
	ExecStarter

	pids []int
}

func (s *pidStarter) Start(cmd *exec.Cmd) (int, error) {
	pid, err := s.ExecStarter.Start(cmd)
	if err == nil {
		s.pids = append(s.pids, pid)
	}
	return pid, err
}

func TestExecStarter_SpawnsProcess(t *testing.T) {
	t.Parallel()
	marker := filepath.Join(t.TempDir(), "marker")

	r := New()
	require.NoError(t, r.Run(context.Background(), []string{"sh", "-c", `echo ran > "$0"`, marker}))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(marker) // #nosec G304 -- test code using safe temp dir
		return err == nil && string(data) == "ran\n"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestExecStarter_DoesNotWait(t *testing.T) {
	t.Parallel()

	starter := &pidStarter{}
	r := NewWithStarter(starter)

	start := time.Now()
	require.NoError(t, r.Run(context.Background(), []string{"sleep", "30"}))
	assert.Less(t, time.Since(start), 5*time.Second, "Run must not wait for the child")

	require.Len(t, starter.pids, 1)
	t.Cleanup(func() {
		_ = syscall.Kill(starter.pids[0], syscall.SIGKILL)
	})
	assert.Positive(t, starter.pids[0])
}

func TestExecStarter_SpawnFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notExecutable := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(notExecutable, []byte("#!/bin/sh\nexit 0\n"), 0o600))

	tests := []struct {
		name  string
		argv  []string
		cause error
	}{
		{name: "program not on PATH", argv: []string{"plock-definitely-not-a-real-program"}, cause: exec.ErrNotFound},
		{name: "missing path", argv: []string{filepath.Join(dir, "missing")}, cause: fs.ErrNotExist},
		{name: "not executable", argv: []string{notExecutable}, cause: fs.ErrPermission},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := New().Run(context.Background(), tc.argv)
			require.ErrorIs(t, err, errors.ErrSpawn)
			assert.ErrorIs(t, err, tc.cause)
		})
	}
}
