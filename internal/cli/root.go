// Package cli provides the command-line interface for plock.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/plock/internal/config"
	"github.com/mrz1836/plock/internal/constants"
	"github.com/mrz1836/plock/internal/errors"
	"github.com/mrz1836/plock/internal/runner"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// CommandRunner starts the command run under the lock.
// It is satisfied by *runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string) error
}

// newRootCmd creates and returns the root command for the plock CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo, cmdRunner CommandRunner) *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:   constants.ToolName + " [flags] <lock-file> [command [args...]]",
		Short: "Run a command while holding a POSIX lock on a file",
		Long: `plock acquires an exclusive POSIX record lock (fcntl) on a lock file,
waiting for as long as another process holds it, then starts the given command.

It is similar to flock(1) but uses POSIX locks instead of BSD locks, so it
cooperates with programs that lock files with fcntl or lockf.

The lock file is created if it does not exist and its content is never changed.
The command is started and not waited on; the lock is released as soon as
the command has started. Without a command, plock takes the lock and exits.

Flags must come before the lock file. Everything after the lock file is
passed to the command unchanged.`,
		Example: `  plock /tmp/backup.lock rsync -a src/ dst/
  plock -v --mode bsd /var/lock/job.lock ./job.sh --fast`,
		Version: formatVersion(info),
		Args:    requireLockPath,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(cmd.Context(), flags.ConfigFile, func(v *viper.Viper) error {
				return BindGlobalFlags(v, cmd)
			})
			if err != nil {
				return err
			}
			cfg = loaded

			logger := InitLogger(cfg, cmd.ErrOrStderr())
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocked(cmd.Context(), cfg, args[0], args[1:], cmdRunner)
		},
		// Usage and errors are reported by Execute
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// The first positional argument ends flag parsing for plock; the rest belongs to the command.
	cmd.Flags().SetInterspersed(false)
	AddGlobalFlags(cmd, flags)

	return cmd
}

// requireLockPath validates the positional arguments.
func requireLockPath(_ *cobra.Command, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return errors.NewExitCode2Error(errors.ErrMissingLockPath)
	}
	return nil
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// reportError prints a diagnostic for err, with a hint when one is known.
func reportError(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "%s: %v\n", constants.ToolName, err)
	if _, action := errors.Actionable(err); action != "" {
		_, _ = fmt.Fprintf(w, "%s: %s\n", constants.ToolName, action)
	}
}

// Execute runs the root command with the provided context and build info.
// Failures are reported on stderr before being returned; map them to a
// process status with ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo) error {
	return execute(ctx, info, runner.New(), nil)
}

// execute runs plock with an explicit runner and argument list.
// A nil args uses the process arguments.
func execute(ctx context.Context, info BuildInfo, cmdRunner CommandRunner, args []string) error {
	defer CloseLogFile()

	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info, cmdRunner)
	if args != nil {
		cmd.SetArgs(args)
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		reportError(cmd.ErrOrStderr(), err)
		return err
	}
	return nil
}
