package cli

import (
	stderrors "errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/plock/internal/constants"
	"github.com/mrz1836/plock/internal/errors"
)

// Exit codes for the CLI.
const (
	// ExitSuccess indicates the lock was acquired and the command, if any, was started.
	ExitSuccess = 0
	// ExitError indicates a lock, spawn, or other runtime failure.
	ExitError = 1
	// ExitInvalidInput indicates invalid user input.
	ExitInvalidInput = 2
)

// GlobalFlags holds the flags accepted by plock.
type GlobalFlags struct {
	// Verbose enables debug-level logging.
	Verbose bool
	// Quiet suppresses non-essential output (warn level only).
	Quiet bool
	// Mode selects the lock discipline (posix or bsd).
	Mode string
	// ConfigFile is an optional config file path.
	ConfigFile string
}

// AddGlobalFlags adds plock's flags to a command.
func AddGlobalFlags(cmd *cobra.Command, flags *GlobalFlags) {
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "print the lock file, command, and lock state")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", constants.DefaultLockMode, "lock discipline (posix|bsd)")
	cmd.Flags().StringVar(&flags.ConfigFile, "config", "", "config file (default: $"+constants.ConfigEnvVar+")")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// BindGlobalFlags binds flags to Viper so they take precedence over
// environment variables (PLOCK_VERBOSE, PLOCK_MODE, ...) and the config file.
func BindGlobalFlags(v *viper.Viper, cmd *cobra.Command) error {
	for _, name := range []string{"verbose", "quiet", "mode"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// ExitCodeForError returns the appropriate exit code for the given error.
// Returns ExitSuccess (0) for nil errors, ExitInvalidInput (2) for user input
// errors (invalid flags, bad arguments, bad configuration), and ExitError (1)
// for lock, spawn, and all other errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.IsExitCode2Error(err) {
		return ExitInvalidInput
	}

	// OS messages such as "invalid argument" must not read as bad user input.
	if stderrors.Is(err, errors.ErrLockIO) || stderrors.Is(err, errors.ErrSpawn) {
		return ExitError
	}

	for _, sentinel := range []error{
		errors.ErrMissingLockPath,
		errors.ErrInvalidMode,
		errors.ErrInvalidConfig,
		errors.ErrConfigNotFound,
	} {
		if stderrors.Is(err, sentinel) {
			return ExitInvalidInput
		}
	}

	if isInvalidInputError(err.Error()) {
		return ExitInvalidInput
	}

	return ExitError
}

// isInvalidInputError checks if an error message indicates invalid user input.
// This catches Cobra's built-in flag validation errors.
func isInvalidInputError(errMsg string) bool {
	invalidInputPatterns := []string{
		"unknown flag",
		"unknown shorthand flag",
		"flag needs an argument",
		"invalid argument",
		"if any flags in the group",
	}

	for _, pattern := range invalidInputPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
