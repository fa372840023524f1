//go:build !unix

// Package mmbuf provides platform-specific helpers for reserving anonymous
// memory regions outside the Go heap.
package mmbuf

// Map returns a heap slice when anonymous mapping is not available.
func Map(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}
