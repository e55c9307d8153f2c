package cli

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/plock/internal/config"
	"github.com/mrz1836/plock/internal/constants"
	"github.com/mrz1836/plock/internal/errors"
	"github.com/mrz1836/plock/internal/logging"
)

// logFileWriter holds the log file writer for cleanup purposes.
var (
	logFileWriter   io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup
	logFileWriterMu sync.Mutex     //nolint:gochecknoglobals // Protects logFileWriter
)

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// zerologGlobalMu protects concurrent writes to the zerolog global logger.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// configureZerologGlobals sets zerolog global field names.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
		zerolog.DurationFieldUnit = time.Millisecond
	})
}

// InitLogger creates and configures a zerolog.Logger from the configuration.
//
// Log levels are set as follows:
//   - verbose: Debug level (lock file, command, lock state transitions)
//   - quiet: Warn level
//   - default: Info level
//
// Output goes to console. When console is a terminal and NO_COLOR is unset a
// colored console writer is used. Otherwise verbose output is plain text and
// everything else is JSON. If cfg.Log.File is set, entries are also written
// there with rotation and sensitive data redacted. A log file that cannot be
// opened is reported on the returned logger and otherwise ignored.
func InitLogger(cfg *config.Config, console io.Writer) zerolog.Logger {
	configureZerologGlobals()

	level := selectLevel(cfg.Verbose, cfg.Quiet)
	writer := selectOutput(console, cfg.Verbose)

	var fileErr error
	if cfg.Log.File != "" {
		fileWriter, err := createLogFileWriter(cfg.Log)
		if err != nil {
			fileErr = err
		} else {
			setLogFileWriter(fileWriter)
			writer = zerolog.MultiLevelWriter(writer, fileWriter)
		}
	}

	logger := zerolog.New(writer).Level(level).Hook(logging.NewSensitiveDataHook()).With().Timestamp().Logger()
	setGlobalLogger(logger)

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("log_file", cfg.Log.File).Msg("file logging disabled")
	}
	return logger
}

// setGlobalLogger configures the global zerolog logger to match our CLI logger config.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

// setLogFileWriter records w for CloseLogFile, closing any earlier writer.
func setLogFileWriter(w io.WriteCloser) {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
	}
	logFileWriter = w
}

// CloseLogFile closes the log file writer if it was opened.
// This should be called during application shutdown for clean cleanup.
func CloseLogFile() {
	logFileWriterMu.Lock()
	defer logFileWriterMu.Unlock()
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the appropriate log level based on flags.
func selectLevel(verbose, quiet bool) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// selectOutput determines the appropriate output writer based on
// terminal capabilities and environment settings. Verbose output that is not
// going to a terminal is plain uncolored text, one line per event; other
// non-terminal output is JSON.
func selectOutput(w io.Writer, verbose bool) io.Writer {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.Kitchen,
		}
	}
	if verbose {
		return zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}
	return w
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates a rotating file writer wrapped with a
// filtering writer so sensitive data never reaches disk.
func createLogFileWriter(cfg config.LogConfig) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.File), constants.LogDirPerm); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays(),
		Compress:   cfg.Compress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}
