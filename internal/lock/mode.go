package lock

import (
	"fmt"
	"strings"

	"github.com/mrz1836/plock/internal/errors"
	"github.com/mrz1836/plock/internal/flock"
)

// Mode selects the operating system lock discipline.
type Mode string

const (
	// ModePOSIX uses fcntl record locks. This is the default.
	ModePOSIX Mode = "posix"

	// ModeBSD uses flock(2) locks, compatible with the flock(1) utility.
	ModeBSD Mode = "bsd"
)

// ValidModes returns the accepted mode names.
func ValidModes() []string {
	return []string{string(ModePOSIX), string(ModeBSD)}
}

// ParseMode converts a mode name into a Mode. Matching ignores case and
// surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePOSIX:
		return ModePOSIX, nil
	case ModeBSD:
		return ModeBSD, nil
	default:
		return "", fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidMode, s, ValidModes())
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}

// primitives returns the lock and unlock calls for the mode.
func (m Mode) primitives() (lockFn, unlockFn func(uintptr) error) {
	if m == ModeBSD {
		return flock.Lock, flock.Unlock
	}
	return flock.LockRecord, flock.UnlockRecord
}
