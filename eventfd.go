// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package eventfd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/joeycumines/logiface"
)

// counterSize is the size of every read and write, a host-endian uint64.
const counterSize = 8

// MaxValue is the largest value the kernel counter can hold. A [EventFD.Write]
// that would take the counter past it blocks until the counter is drained.
const MaxValue uint64 = 1<<64 - 2

// EventFD owns a single eventfd descriptor. See the package documentation.
//
// Methods may be called concurrently, the kernel serializes counter updates,
// but [EventFD.Close] must not race with a call that may block (Read, Write,
// or TryRead after readiness), since the descriptor number may be reused.
type EventFD struct {
	handle      *handle
	logger      *logiface.Logger[logiface.Event]
	cleanup     runtime.Cleanup
	closeOnExec bool
}

// handle is the ownership record for a descriptor, released exactly once.
type handle struct {
	fd atomic.Int64
}

// leaked is the state available to the cleanup of an unclosed EventFD.
type leaked struct {
	handle *handle
	logger *logiface.Logger[logiface.Event]
}

// New creates an eventfd with a counter of 0, or the value provided by
// [WithInitialValue]. On failure the error is an [*Error] of kind
// [CreationFailed].
func New(opts ...Option) (*EventFD, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, newError(CreationFailed, err)
	}

	flags := 0
	if cfg.closeOnExec {
		flags |= efdCloexec
	}

	fd, err := createFD(cfg.initialValue, flags)
	if err != nil {
		return nil, newError(CreationFailed, err)
	}

	x := newEventFD(fd, cfg.closeOnExec, cfg.logger)

	cfg.logger.Debug().
		Int(`fd`, fd).
		Uint64(`initial_value`, uint64(cfg.initialValue)).
		Bool(`cloexec`, cfg.closeOnExec).
		Log(`eventfd created`)

	return x, nil
}

// FromFile returns a new EventFD owning a duplicate of f's descriptor, which
// must refer to an eventfd, e.g. one inherited from a parent process. The
// caller retains ownership of f. On failure the error is an [*Error] of kind
// [CloneFailed].
func FromFile(f *os.File, opts ...Option) (*EventFD, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, newError(CloneFailed, err)
	}
	if f == nil {
		return nil, newError(CloneFailed, os.ErrInvalid)
	}

	conn, err := f.SyscallConn()
	if err != nil {
		return nil, newError(CloneFailed, err)
	}

	var (
		fd     int
		dupErr error
	)
	if err := conn.Control(func(src uintptr) {
		fd, dupErr = dupFD(int(src), cfg.closeOnExec)
	}); err != nil {
		return nil, newError(CloneFailed, err)
	}
	if dupErr != nil {
		return nil, newError(CloneFailed, dupErr)
	}

	x := newEventFD(fd, cfg.closeOnExec, cfg.logger)

	cfg.logger.Debug().
		Int(`fd`, fd).
		Str(`file`, f.Name()).
		Log(`eventfd adopted from file`)

	return x, nil
}

// Scope creates an EventFD, calls fn with it, then closes it, regardless of
// how fn returns. Errors from New, fn, and Close are joined.
// The fn must not retain x.
func Scope(fn func(x *EventFD) error, opts ...Option) (err error) {
	x, err := New(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := x.Close(); closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
			err = errors.Join(err, closeErr)
		}
	}()
	return fn(x)
}

func newEventFD(fd int, closeOnExec bool, logger *logiface.Logger[logiface.Event]) *EventFD {
	x := &EventFD{
		handle:      new(handle),
		logger:      logger,
		closeOnExec: closeOnExec,
	}
	x.handle.fd.Store(int64(fd))
	x.cleanup = runtime.AddCleanup(x, releaseLeaked, leaked{handle: x.handle, logger: logger})
	return x
}

func releaseLeaked(l leaked) {
	fd := l.handle.release()
	if fd < 0 {
		return
	}
	err := closeFD(fd)
	l.logger.Warning().
		Int(`fd`, fd).
		Log(`eventfd not closed before it became unreachable`)
	if err != nil {
		l.logger.Err().
			Int(`fd`, fd).
			Err(err).
			Log(`eventfd cleanup failed to close descriptor`)
	}
}

// Write adds v to the counter. It blocks while the addition would take the
// counter past [MaxValue], until a reader drains it. Writing
// 0xffffffffffffffff is rejected by the kernel (EINVAL). On failure the error
// is an [*Error] of kind [WriteFailed].
func (x *EventFD) Write(v uint64) error {
	defer runtime.KeepAlive(x)

	fd, err := x.fd()
	if err != nil {
		return newError(WriteFailed, err)
	}

	var buf [counterSize]byte
	binary.NativeEndian.PutUint64(buf[:], v)

	n, err := writeFD(fd, buf[:])
	if err != nil {
		return newError(WriteFailed, err)
	}
	if n != counterSize {
		return newError(WriteFailed, io.ErrShortWrite)
	}
	return nil
}

// Read blocks until the counter is non-zero, then returns its value, and
// resets it to zero, atomically. On failure the error is an [*Error] of kind
// [ReadFailed].
func (x *EventFD) Read() (uint64, error) {
	defer runtime.KeepAlive(x)

	fd, err := x.fd()
	if err != nil {
		return 0, newError(ReadFailed, err)
	}

	var buf [counterSize]byte
	n, err := readFD(fd, buf[:])
	if err != nil {
		return 0, newError(ReadFailed, err)
	}
	if n != counterSize {
		return 0, newError(ReadFailed, io.ErrUnexpectedEOF)
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}

// TryRead behaves like [EventFD.Read], but returns [ErrNotReady] instead of
// blocking, if the counter is zero. It performs a zero-timeout readiness
// check, then, if readable, a Read. The check and the read are separate
// calls: if another handle to the same counter drains it in between, the
// Read will block, as it would when called directly.
//
// Failures, including of the readiness check, are an [*Error] of kind
// [ReadFailed].
func (x *EventFD) TryRead() (uint64, error) {
	defer runtime.KeepAlive(x)

	fd, err := x.fd()
	if err != nil {
		return 0, newError(ReadFailed, err)
	}

	ready, err := pollReadable(fd)
	if err != nil {
		return 0, newError(ReadFailed, err)
	}
	if !ready {
		return 0, ErrNotReady
	}

	return x.Read()
}

// TryClone returns a new EventFD, with its own descriptor, sharing the same
// kernel counter. Writes and reads through either are observed by both. The
// clone has an independent lifetime, and must be closed separately. On
// failure the error is an [*Error] of kind [CloneFailed].
func (x *EventFD) TryClone() (*EventFD, error) {
	defer runtime.KeepAlive(x)

	fd, err := x.fd()
	if err != nil {
		return nil, newError(CloneFailed, err)
	}

	dup, err := dupFD(fd, x.closeOnExec)
	if err != nil {
		return nil, newError(CloneFailed, err)
	}

	clone := newEventFD(dup, x.closeOnExec, x.logger)

	x.logger.Debug().
		Int(`fd`, fd).
		Int(`clone_fd`, dup).
		Log(`eventfd cloned`)

	return clone, nil
}

// File returns an [*os.File] owning a duplicate of the descriptor, e.g. for
// [os/exec.Cmd] ExtraFiles. Closing the file does not affect x. On failure
// the error is an [*Error] of kind [CloneFailed].
func (x *EventFD) File() (*os.File, error) {
	defer runtime.KeepAlive(x)

	fd, err := x.fd()
	if err != nil {
		return nil, newError(CloneFailed, err)
	}

	dup, err := dupFD(fd, true)
	if err != nil {
		return nil, newError(CloneFailed, err)
	}

	return os.NewFile(uintptr(dup), fmt.Sprintf(`eventfd:%d`, fd)), nil
}

// Fd returns the descriptor, for registration with an external readiness
// loop (poll, epoll). Ownership is not transferred: the descriptor must not
// be closed, and is only valid until [EventFD.Close]. Returns -1 once closed.
func (x *EventFD) Fd() int {
	return x.handle.load()
}

// Close releases the descriptor. Only the first call has any effect,
// subsequent calls return an error matching [os.ErrClosed], as do all other
// operations, wrapped in their respective [*Error] kind.
func (x *EventFD) Close() error {
	fd := x.handle.release()
	if fd < 0 {
		return fmt.Errorf(`eventfd: close: %w`, os.ErrClosed)
	}
	x.cleanup.Stop()

	err := closeFD(fd)

	x.logger.Debug().
		Int(`fd`, fd).
		Log(`eventfd closed`)

	if err != nil {
		return fmt.Errorf(`eventfd: close: %w`, err)
	}
	return nil
}

func (x *EventFD) fd() (int, error) {
	fd := x.handle.load()
	if fd < 0 {
		return -1, os.ErrClosed
	}
	return fd, nil
}

func (h *handle) load() int {
	return int(h.fd.Load())
}

// release marks the handle closed, returning the descriptor if this call
// was the one to release it, or -1.
func (h *handle) release() int {
	return int(h.fd.Swap(-1))
}
