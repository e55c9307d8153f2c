package cli

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/plock/internal/config"
	"github.com/mrz1836/plock/internal/lock"
	"github.com/mrz1836/plock/internal/logging"
)

// runLocked takes the lock on lockPath, starts argv while holding it, and
// releases the lock before returning, whatever the outcome.
func runLocked(ctx context.Context, cfg *config.Config, lockPath string, argv []string, cmdRunner CommandRunner) error {
	mode, err := lock.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx)
	event := logger.Debug().Str("lock_file", lockPath).Stringer("mode", mode)
	if len(argv) > 0 {
		event = event.Str("command", strings.Join(logging.RedactArgs(argv), " "))
	}
	event.Msg("acquiring lock")

	return lock.With(ctx, lockPath, func(_ *lock.Handle) error {
		return cmdRunner.Run(ctx, argv)
	}, lock.WithMode(mode))
}
