package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to their user-facing messages.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	{
		err: ErrLockIO,
		info: ErrorInfo{
			Message: "Could not open or lock the lock file.",
			Action:  "Check that the parent directory exists and that you can write to it.",
		},
	},
	{
		err: ErrSpawn,
		info: ErrorInfo{
			Message: "The command could not be started.",
			Action:  "Check that the program exists, is on PATH, and is executable.",
		},
	},
	{
		err: ErrMissingLockPath,
		info: ErrorInfo{
			Message: "No lock file was given.",
			Action:  "Run 'plock <lock-file> [command...]'.",
		},
	},
	{
		err: ErrInvalidMode,
		info: ErrorInfo{
			Message: "Unknown lock mode.",
			Action:  "Use --mode posix or --mode bsd.",
		},
	},
	{
		err: ErrConfigNotFound,
		info: ErrorInfo{
			Message: "The config file does not exist.",
			Action:  "Check the --config flag or the PLOCK_CONFIG environment variable.",
		},
	},
	{
		err: ErrInvalidConfig,
		info: ErrorInfo{
			Message: "The configuration is invalid.",
		},
	},
}

// getErrorInfo looks up the ErrorInfo for a given error.
// Returns an ErrorInfo with the original error message if not found.
func getErrorInfo(err error) ErrorInfo {
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// Actionable returns a user-friendly error message along with a suggested
// action the user can take to resolve the issue. The action is empty when
// there is nothing useful to suggest.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
