// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build linux

package eventfd

import (
	"os"

	"golang.org/x/sys/unix"
)

const efdCloexec = unix.EFD_CLOEXEC

// createFD creates a blocking eventfd.
func createFD(initval uint32, flags int) (int, error) {
	fd, err := unix.Eventfd(uint(initval), flags)
	if err != nil {
		return -1, os.NewSyscallError("eventfd2", err)
	}
	return fd, nil
}

func readFD(fd int, buf []byte) (int, error) {
	n, err := unix.Read(fd, buf)
	if err != nil {
		return n, os.NewSyscallError("read", err)
	}
	return n, nil
}

func writeFD(fd int, buf []byte) (int, error) {
	n, err := unix.Write(fd, buf)
	if err != nil {
		return n, os.NewSyscallError("write", err)
	}
	return n, nil
}

func closeFD(fd int) error {
	if err := unix.Close(fd); err != nil {
		return os.NewSyscallError("close", err)
	}
	return nil
}

// dupFD duplicates fd to the lowest available descriptor.
func dupFD(fd int, closeOnExec bool) (int, error) {
	cmd := unix.F_DUPFD
	if closeOnExec {
		cmd = unix.F_DUPFD_CLOEXEC
	}
	dup, err := unix.FcntlInt(uintptr(fd), cmd, 0)
	if err != nil {
		return -1, os.NewSyscallError("fcntl", err)
	}
	return dup, nil
}

// pollReadable performs a zero-timeout readiness check for POLLIN.
// EINTR is reported as not ready, as nothing was observed.
func pollReadable(fd int) (bool, error) {
	fds := [1]unix.PollFd{{
		Fd:     int32(fd),
		Events: unix.POLLIN,
	}}

	n, err := unix.Poll(fds[:], 0)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, os.NewSyscallError("poll", err)
	}
	if n == 0 {
		return false, nil
	}

	revents := fds[0].Revents
	switch {
	case revents&unix.POLLNVAL != 0:
		return false, os.NewSyscallError("poll", unix.EBADF)
	case revents&unix.POLLERR != 0:
		return false, os.NewSyscallError("poll", unix.EIO)
	}
	return revents&unix.POLLIN != 0, nil
}
