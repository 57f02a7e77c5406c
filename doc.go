// Package eventfd provides a safe wrapper around a Linux eventfd(2) counter,
// a kernel-maintained uint64 used for lightweight signaling between
// goroutines, processes, and readiness-based I/O loops (poll, epoll).
//
// # Semantics
//
// An [EventFD] owns exactly one descriptor. The counter itself lives in the
// kernel, and is only ever observed through a syscall:
//
//   - [EventFD.Write] adds to the counter, blocking if the addition would
//     take it past [MaxValue].
//   - [EventFD.Read] blocks until the counter is non-zero, then returns it,
//     and resets it to zero, atomically.
//   - [EventFD.TryRead] is Read without blocking, returning [ErrNotReady] if
//     the counter is zero.
//   - [EventFD.TryClone] duplicates the descriptor. The clone is a new owner
//     of the same kernel counter, not a copy of its value.
//   - [EventFD.Fd] exposes the descriptor, for registration with an external
//     readiness loop, without transferring ownership.
//
// Writes between reads accumulate, and the kernel serializes all updates,
// across every descriptor referring to the counter, including those held by
// other processes.
//
// # Resource Discipline
//
// The descriptor is released by [EventFD.Close], exactly once. [Scope] wraps
// creation and release around a function. An EventFD that becomes unreachable
// without being closed is released by a runtime cleanup, which logs a
// warning, if a logger was configured via [WithLogger].
//
// # Errors
//
// Failures are returned as [*Error], carrying a [Kind] ([CreationFailed],
// [WriteFailed], [ReadFailed], [CloneFailed]) and the originating OS error.
// Both may be matched with [errors.Is]:
//
//	v, err := efd.TryRead()
//	switch {
//	case errors.Is(err, eventfd.ErrNotReady):
//	    // nothing yet, poll again later
//	case errors.Is(err, eventfd.ReadFailed):
//	    // I/O failure, see errors.Unwrap(err)
//	}
//
// No operation retries, and an operational failure leaves the EventFD usable.
//
// # Cancellation
//
// Read and Write are not interruptible. To wait with a timeout or context,
// poll [EventFD.Fd] for readability, then call [EventFD.TryRead].
//
// # Platform Support
//
// eventfd is Linux-only. On other platforms the package compiles, but [New]
// fails with a [CreationFailed] error wrapping [ErrUnsupportedPlatform].
package eventfd
