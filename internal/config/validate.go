package config

import (
	"fmt"
	"strings"

	"github.com/mrz1836/plock/internal/errors"
)

// validModes mirrors the modes accepted by the lock package.
var validModes = []string{"posix", "bsd"} //nolint:gochecknoglobals // Read-only lookup table

// Validate checks the configuration for values that cannot work.
// All returned errors wrap errors.ErrInvalidConfig.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", errors.ErrInvalidConfig)
	}

	if cfg.Verbose && cfg.Quiet {
		return fmt.Errorf("%w: verbose and quiet cannot both be set", errors.ErrInvalidConfig)
	}

	if !isValidMode(cfg.Mode) {
		return fmt.Errorf("%w: %w: %q must be one of %v", errors.ErrInvalidConfig, errors.ErrInvalidMode, cfg.Mode, validModes)
	}

	if cfg.Log.MaxSizeMB < 0 {
		return fmt.Errorf("%w: log.max_size_mb must not be negative", errors.ErrInvalidConfig)
	}
	if cfg.Log.MaxBackups < 0 {
		return fmt.Errorf("%w: log.max_backups must not be negative", errors.ErrInvalidConfig)
	}
	if cfg.Log.MaxAge < 0 {
		return fmt.Errorf("%w: log.max_age must not be negative", errors.ErrInvalidConfig)
	}

	return nil
}

func isValidMode(mode string) bool {
	mode = strings.ToLower(strings.TrimSpace(mode))
	for _, m := range validModes {
		if mode == m {
			return true
		}
	}
	return false
}
