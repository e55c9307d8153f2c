// Package flock provides the operating system advisory lock primitives used by plock.
//
// Two lock disciplines are supported on Unix:
//
//   - POSIX record locks (fcntl F_SETLKW) via LockRecord and UnlockRecord.
//     These are owned by the process, are released when any descriptor for the
//     file is closed by that process, and are not inherited across fork.
//   - BSD locks (flock(2)) via Lock and Unlock, compatible with flock(1).
//
// Both acquire an exclusive lock on the whole file and block until granted.
// On Windows both disciplines map to LockFileEx over the full byte range.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
//	if err := flock.LockRecord(file.Fd()); err != nil {
//	    // Lock request rejected by the OS
//	}
//	defer flock.UnlockRecord(file.Fd())
package flock
