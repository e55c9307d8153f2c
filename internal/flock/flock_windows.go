//go:build windows

package flock

import "golang.org/x/sys/windows"

// Windows LockFileEx/UnlockFileEx API parameters.
// See: https://learn.microsoft.com/en-us/windows/win32/api/fileapi/nf-fileapi-lockfileex
const (
	lockReserved  = 0          // Reserved parameter, must be zero
	lockBytesLow  = ^uint32(0) // Low-order 32 bits of byte range to lock
	lockBytesHigh = ^uint32(0) // High-order 32 bits of byte range to lock
)

// LockRecord acquires an exclusive lock on the whole file, blocking until it is granted.
func LockRecord(fd uintptr) error {
	return windows.LockFileEx(
		windows.Handle(fd),
		windows.LOCKFILE_EXCLUSIVE_LOCK,
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// UnlockRecord releases the lock taken by LockRecord.
func UnlockRecord(fd uintptr) error {
	return windows.UnlockFileEx(
		windows.Handle(fd),
		lockReserved,
		lockBytesLow,
		lockBytesHigh,
		&windows.Overlapped{},
	)
}

// Owner is not supported on Windows and always reports no owner.
func Owner(_ uintptr) (int, error) {
	return 0, nil
}

// Lock is equivalent to LockRecord on Windows.
func Lock(fd uintptr) error {
	return LockRecord(fd)
}

// Unlock is equivalent to UnlockRecord on Windows.
func Unlock(fd uintptr) error {
	return UnlockRecord(fd)
}
