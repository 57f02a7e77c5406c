// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package eventfd

import (
	"errors"
	"fmt"
	"runtime"
)

// Kind classifies the operation that failed. It implements the error
// interface, so it may be used directly as a target for [errors.Is]:
//
//	if errors.Is(err, eventfd.ReadFailed) {
//	    // ...
//	}
type Kind int

const (
	// CreationFailed indicates the kernel could not allocate the counter
	// (e.g. the descriptor limit was reached), or the platform lacks eventfd.
	CreationFailed Kind = iota + 1
	// WriteFailed indicates the add operation failed.
	WriteFailed
	// ReadFailed indicates a blocking or non-blocking read failed at the I/O
	// level, including failure of the readiness check.
	ReadFailed
	// CloneFailed indicates duplication of the descriptor failed.
	CloneFailed
)

var (
	// ErrNotReady is returned by [EventFD.TryRead] when the counter is zero.
	// It is the expected outcome of polling, and never matches [ReadFailed].
	ErrNotReady = errors.New("eventfd: not ready")

	// ErrUnsupportedPlatform is the cause of the [CreationFailed] error
	// returned on platforms without eventfd. It matches
	// [errors.ErrUnsupported].
	ErrUnsupportedPlatform = fmt.Errorf("eventfd: unsupported platform %s: %w", runtime.GOOS, errors.ErrUnsupported)
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case CreationFailed:
		return "creation failed"
	case WriteFailed:
		return "write failed"
	case ReadFailed:
		return "read failed"
	case CloneFailed:
		return "clone failed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error implements the error interface.
func (k Kind) Error() string {
	return "eventfd: " + k.String()
}

// Error is returned by every failing [EventFD] operation other than
// [EventFD.TryRead] reporting [ErrNotReady]. Err is the originating cause,
// typically an [*os.SyscallError] wrapping the errno, preserved so that
// errors.Is(err, unix.EBADF) and similar checks work.
type Error struct {
	Err  error
	Kind Kind
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause for use with [errors.Is] and [errors.As].
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the [Kind] of this error.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}
