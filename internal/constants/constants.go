// Package constants provides centralized constant values used throughout plock.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// ToolName is the command name used in usage text and diagnostics.
const ToolName = "plock"

// EnvPrefix is the prefix for environment variable configuration (e.g., PLOCK_VERBOSE).
const EnvPrefix = "PLOCK"

// ConfigEnvVar names the environment variable that points at a config file.
const ConfigEnvVar = "PLOCK_CONFIG"

// Lock file defaults.
const (
	// LockFilePerm is the permission used when the lock file has to be created.
	// The process umask applies.
	LockFilePerm = 0o666

	// DefaultLockMode is the lock discipline used when none is configured.
	DefaultLockMode = "posix"
)

// Log rotation defaults for the optional log file.
const (
	// LogMaxSizeMB is the maximum size of a log file before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAge is how long rotated log files are kept.
	LogMaxAge = 7 * 24 * time.Hour

	// LogCompress controls whether rotated log files are gzipped.
	LogCompress = true

	// LogDirPerm is the permission used when creating the log directory.
	LogDirPerm = 0o750
)
