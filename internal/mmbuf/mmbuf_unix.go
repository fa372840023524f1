//go:build unix

// Package mmbuf provides platform-specific helpers for reserving anonymous
// memory regions outside the Go heap.
package mmbuf

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Map reserves size bytes of anonymous, zero-filled memory and returns the
// region together with a release function. A size of zero yields an empty
// region with a no-op release.
func Map(size int) ([]byte, func() error, error) {
	if size == 0 {
		return []byte{}, func() error { return nil }, nil
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, err
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		data = nil
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}
