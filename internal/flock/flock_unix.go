//go:build unix

package flock

import (
	"errors"
	"io"

	"golang.org/x/sys/unix"
)

// wholeFile returns a lock description covering the entire file,
// including bytes appended after the lock is taken.
func wholeFile(typ int16) unix.Flock_t {
	return unix.Flock_t{
		Type:   typ,
		Whence: int16(io.SeekStart),
		Start:  0,
		Len:    0,
	}
}

// LockRecord acquires an exclusive POSIX record lock on the whole file,
// blocking until it is granted. Interrupted waits are restarted.
func LockRecord(fd uintptr) error {
	lk := wholeFile(unix.F_WRLCK)
	return ignoringEINTR(func() error {
		return unix.FcntlFlock(fd, unix.F_SETLKW, &lk)
	})
}

// UnlockRecord releases a POSIX record lock on the whole file.
func UnlockRecord(fd uintptr) error {
	lk := wholeFile(unix.F_UNLCK)
	return ignoringEINTR(func() error {
		return unix.FcntlFlock(fd, unix.F_SETLK, &lk)
	})
}

// Owner reports the pid of a process holding a POSIX record lock that would
// conflict with an exclusive lock on fd. It returns 0 when no other process
// holds one. Locks held by the calling process are never reported.
func Owner(fd uintptr) (int, error) {
	lk := wholeFile(unix.F_WRLCK)
	if err := unix.FcntlFlock(fd, unix.F_GETLK, &lk); err != nil {
		return 0, err
	}
	if lk.Type == unix.F_UNLCK {
		return 0, nil
	}
	return int(lk.Pid), nil
}

// Lock acquires an exclusive BSD lock on the file descriptor,
// blocking until it is granted. Interrupted waits are restarted.
func Lock(fd uintptr) error {
	return ignoringEINTR(func() error {
		return unix.Flock(int(fd), unix.LOCK_EX)
	})
}

// Unlock releases a BSD lock on the file descriptor.
func Unlock(fd uintptr) error {
	return ignoringEINTR(func() error {
		return unix.Flock(int(fd), unix.LOCK_UN)
	})
}

// ignoringEINTR retries fn while it fails with EINTR.
func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if !errors.Is(err, unix.EINTR) {
			return err
		}
	}
}
