package lock

import (
	"context"
	stderrors "errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/mrz1836/plock/internal/clock"
	"github.com/mrz1836/plock/internal/constants"
	"github.com/mrz1836/plock/internal/errors"
	"github.com/mrz1836/plock/internal/flock"
)

// Option configures Acquire.
type Option func(*options)

type options struct {
	mode  Mode
	perm  os.FileMode
	clock clock.Clock
}

// WithMode selects the lock discipline. The default is ModePOSIX.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithPerm sets the permission used if the lock file has to be created.
func WithPerm(perm os.FileMode) Option {
	return func(o *options) {
		o.perm = perm
	}
}

// WithClock sets the clock used to measure how long Acquire waited.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		o.clock = c
	}
}

func newOptions(opts []Option) options {
	o := options{
		mode:  ModePOSIX,
		perm:  constants.LockFilePerm,
		clock: clock.RealClock{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Handle is a held lock. It owns the lock file descriptor exclusively.
type Handle struct {
	file   *os.File
	path   string
	mode   Mode
	unlock func(uintptr) error
	logger zerolog.Logger

	state     atomic.Int32
	closeOnce sync.Once
}

// Acquire opens path for reading and writing, creating it if needed, and
// blocks until an exclusive lock on the whole file is granted.
//
// There is no timeout: the call returns only once the lock is held or the
// operating system rejects the request. The context is checked before the
// file is opened. All failures wrap errors.ErrLockIO except context errors.
// The logger is taken from the context via zerolog.Ctx.
func Acquire(ctx context.Context, path string, opts ...Option) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := newOptions(opts)
	if _, err := ParseMode(string(o.mode)); err != nil {
		return nil, err
	}
	lockFn, unlockFn := o.mode.primitives()

	logger := zerolog.Ctx(ctx).With().
		Str("component", "lock").
		Str("lock_file", path).
		Stringer("mode", o.mode).
		Logger()

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, o.perm) //#nosec G302,G304 -- lock file needs write access, path is supplied by the user
	if err != nil {
		return nil, errors.Mark(err, errors.ErrLockIO)
	}

	if o.mode == ModePOSIX {
		if pid, ownerErr := flock.Owner(f.Fd()); ownerErr == nil && pid != 0 {
			logger.Debug().Int("holder_pid", pid).Msg("lock is held by another process, waiting")
		}
	}

	logger.Debug().Stringer("state", StateAcquiring).Msg("requesting lock")
	start := o.clock.Now()
	if err := lockFn(f.Fd()); err != nil {
		_ = f.Close()
		return nil, errors.Mark(errors.Wrapf(err, "lock %s", path), errors.ErrLockIO)
	}

	h := &Handle{
		file:   f,
		path:   path,
		mode:   o.mode,
		unlock: unlockFn,
		logger: logger,
	}
	h.state.Store(int32(StateHeld))

	logger.Debug().
		Stringer("state", StateHeld).
		Dur("waited", clock.Since(o.clock, start)).
		Msg("lock acquired")

	return h, nil
}

// With acquires the lock on path, calls fn while it is held, and releases it
// when fn returns or panics. An error from fn takes precedence over a
// release error.
func With(ctx context.Context, path string, fn func(*Handle) error, opts ...Option) (err error) {
	h, err := Acquire(ctx, path, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := h.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return fn(h)
}

// Path returns the lock file path.
func (h *Handle) Path() string {
	return h.path
}

// Mode returns the lock discipline in use.
func (h *Handle) Mode() Mode {
	return h.mode
}

// State reports StateHeld until Close is called, then StateReleased.
func (h *Handle) State() State {
	return State(h.state.Load())
}

// Close releases the lock and closes the lock file. Only the first call has
// any effect; later calls return nil.
func (h *Handle) Close() error {
	var err error
	h.closeOnce.Do(func() {
		unlockErr := h.unlock(h.file.Fd())
		closeErr := h.file.Close()
		h.state.Store(int32(StateReleased))

		if joined := stderrors.Join(unlockErr, closeErr); joined != nil {
			err = errors.Mark(errors.Wrapf(joined, "release %s", h.path), errors.ErrLockIO)
			h.logger.Warn().Err(err).Msg("lock release reported an error")
			return
		}
		h.logger.Debug().Stringer("state", StateReleased).Msg("lock released")
	})
	return err
}
