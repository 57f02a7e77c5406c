// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

//go:build !linux

//lint:file-ignore U1000 Platform-specific stub functions (required for cross-platform compilation symmetry)

package eventfd

// eventfd is Linux-only. These stubs keep the package compiling elsewhere,
// with New failing with ErrUnsupportedPlatform.
const efdCloexec = 0

func createFD(initval uint32, flags int) (int, error) {
	return -1, ErrUnsupportedPlatform
}

func readFD(fd int, buf []byte) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func writeFD(fd int, buf []byte) (int, error) {
	return 0, ErrUnsupportedPlatform
}

func closeFD(fd int) error {
	return ErrUnsupportedPlatform
}

func dupFD(fd int, closeOnExec bool) (int, error) {
	return -1, ErrUnsupportedPlatform
}

func pollReadable(fd int) (bool, error) {
	return false, ErrUnsupportedPlatform
}
