package buf

import "testing"

func TestEndianHelpers(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U32LE(data); got != 0x67452301 {
		t.Fatalf("U32LE = 0x%x, want 0x67452301", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 || U32LE(short) != 0 {
		t.Fatalf("short reads should return 0")
	}
}

func TestPutRoundTrip(t *testing.T) {
	b := make([]byte, 4)
	PutU16LE(b, 0xBEEF)
	if got := U16LE(b); got != 0xBEEF {
		t.Fatalf("PutU16LE round trip = 0x%x", got)
	}
	PutU32LE(b, 0xDEADBEEF)
	if got := U32LE(b); got != 0xDEADBEEF {
		t.Fatalf("PutU32LE round trip = 0x%x", got)
	}

	// Short destinations must not panic.
	PutU16LE(nil, 1)
	PutU32LE([]byte{0}, 1)
}
