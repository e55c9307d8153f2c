// Package errors provides centralized error handling for plock.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrLockIO indicates that the lock file could not be opened or created,
	// or that the operating system rejected the lock request itself.
	ErrLockIO = errors.New("lock file i/o failed")

	// ErrSpawn indicates that the requested command could not be started.
	ErrSpawn = errors.New("command failed to start")

	// ErrMissingLockPath indicates that no lock file path was given.
	ErrMissingLockPath = errors.New("lock file path is required")

	// ErrInvalidMode indicates an unknown lock discipline was requested.
	ErrInvalidMode = errors.New("invalid lock mode")

	// ErrInvalidConfig indicates a configuration value failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConfigNotFound indicates that an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
