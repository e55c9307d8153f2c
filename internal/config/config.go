// Package config provides configuration management for plock with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (bound by the caller of Load)
//  2. Environment variables (PLOCK_* prefix, e.g. PLOCK_LOG_FILE)
//  3. Config file, only when given via --config or PLOCK_CONFIG
//  4. Built-in defaults
//
// No config file is read implicitly: by default plock touches no file other
// than the lock file itself.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for plock.
type Config struct {
	// Verbose enables debug-level logging of the lock file, command, and lock state.
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`

	// Quiet limits console logging to warnings and errors.
	Quiet bool `yaml:"quiet" mapstructure:"quiet"`

	// Mode is the lock discipline: "posix" (fcntl record locks) or "bsd" (flock).
	// Default: "posix"
	Mode string `yaml:"mode" mapstructure:"mode"`

	// Log configures the optional log file.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// LogConfig contains settings for the optional rotating log file.
type LogConfig struct {
	// File is the log file path. Empty disables file logging.
	File string `yaml:"file" mapstructure:"file"`

	// MaxSizeMB is the size in megabytes at which the log file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAge is how long rotated files are kept (e.g., "168h").
	MaxAge time.Duration `yaml:"max_age" mapstructure:"max_age"`

	// Compress gzips rotated files.
	Compress bool `yaml:"compress" mapstructure:"compress"`
}

// MaxAgeDays converts MaxAge to whole days, rounding up.
// Zero means rotated files are kept regardless of age.
func (l LogConfig) MaxAgeDays() int {
	if l.MaxAge <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	return int((l.MaxAge + day - 1) / day)
}
