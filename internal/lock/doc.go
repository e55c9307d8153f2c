// Package lock acquires exclusive advisory locks on a lock file and hands
// them out as scoped handles.
//
// A Handle owns the open lock file. The lock is held until Close is called,
// which happens exactly once; With wraps a function so the release runs on
// every exit path, including panics. If the process exits without closing
// the handle, the operating system drops the lock with the descriptor.
//
// Import rules:
//   - CAN import: internal/flock, internal/errors, internal/constants
//   - MUST NOT import: internal/cli, internal/runner
package lock
