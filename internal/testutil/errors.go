// Package testutil provides testing utilities for plock.
//
// This package contains mock errors used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors simulate operating system failures that are hard to provoke for real.
var (
	// ErrMockExecNotFound indicates a mock program lookup failed (used in tests).
	ErrMockExecNotFound = errors.New("executable file not found in $PATH")

	// ErrMockPermission indicates a mock permission failure (used in tests).
	ErrMockPermission = errors.New("permission denied")

	// ErrMockUnlock indicates a mock unlock failure (used in tests).
	ErrMockUnlock = errors.New("unlock failed")
)
