// Package runner starts the command that plock runs under a held lock.
//
// Commands are started and never waited on: no output capture, no exit
// status, no supervision. The child inherits the standard streams of plock
// and keeps running after plock exits. The lock file descriptor is opened
// close-on-exec, so the child does not hold the lock.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/plock/internal/errors"
	"github.com/mrz1836/plock/internal/logging"
)

// Starter starts a prepared command without waiting for it to finish.
// This allows for testing by injecting mock implementations.
type Starter interface {
	// Start launches cmd and returns the pid of the new process.
	Start(cmd *exec.Cmd) (pid int, err error)
}

// ExecStarter implements Starter using os/exec.
type ExecStarter struct{}

// Start launches cmd and releases the process so nothing in plock waits on it.
func (ExecStarter) Start(cmd *exec.Cmd) (int, error) {
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}

// Runner spawns commands.
type Runner struct {
	starter Starter
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a Runner that starts real processes wired to the standard streams.
func New() *Runner {
	return NewWithStarter(ExecStarter{})
}

// NewWithStarter creates a Runner with a custom starter (for testing).
func NewWithStarter(starter Starter) *Runner {
	return &Runner{
		starter: starter,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
}

// SetStreams overrides the streams handed to spawned commands.
// Nil values leave the corresponding stream unchanged.
func (r *Runner) SetStreams(stdin io.Reader, stdout, stderr io.Writer) {
	if stdin != nil {
		r.stdin = stdin
	}
	if stdout != nil {
		r.stdout = stdout
	}
	if stderr != nil {
		r.stderr = stderr
	}
}

// Run starts argv[0] with the remaining elements as its arguments and returns
// as soon as the process has started. An empty argv does nothing.
//
// argv[0] is looked up on PATH unless it contains a path separator.
// A failure to start wraps errors.ErrSpawn and is never retried.
func (r *Runner) Run(ctx context.Context, argv []string) error {
	logger := zerolog.Ctx(ctx).With().Str("component", "runner").Logger()

	if len(argv) == 0 {
		logger.Debug().Msg("no command given, nothing to run")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// exec.CommandContext would kill the child when ctx ends; the child must outlive plock.
	cmd := exec.Command(argv[0], argv[1:]...) // #nosec G204 -- running the user's command is the purpose of plock
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	pid, err := r.starter.Start(cmd)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "start %s", argv[0]), errors.ErrSpawn)
	}

	logger.Debug().
		Int("pid", pid).
		Str("command", strings.Join(logging.RedactArgs(argv), " ")).
		Msg("command started")

	return nil
}
