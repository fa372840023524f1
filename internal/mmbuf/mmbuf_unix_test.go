//go:build unix

package mmbuf

import "testing"

func TestMapReadWriteUnix(t *testing.T) {
	data, release, err := Map(4096)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 4096 {
		t.Fatalf("len mismatch: got %d want 4096", len(data))
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not zero-filled: 0x%x", i, b)
		}
	}
	data[0] = 0xde
	data[4095] = 0xad
	if data[0] != 0xde || data[4095] != 0xad {
		t.Fatalf("mapping not writable")
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	// Double release must be a no-op.
	if err := release(); err != nil {
		t.Fatalf("second release: %v", err)
	}
}

func TestMapZeroLength(t *testing.T) {
	data, release, err := Map(0)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("expected zero-length region, got %d", len(data))
	}
	if release == nil {
		t.Fatalf("expected release function")
	}
	if err := release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}
