package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mustAlloc is a test helper for allocations that cannot fail.
func mustAlloc(t *testing.T, p *Pool, size int) Ref {
	t.Helper()
	ref, _, err := p.Alloc(size)
	require.NoError(t, err)
	return ref
}

func Test_Free_CoalesceForward(t *testing.T) {
	p, err := New(300)
	require.NoError(t, err)
	defer p.Close()

	a := mustAlloc(t, p, 100)
	b := mustAlloc(t, p, 100)
	c := mustAlloc(t, p, 100)

	p.Free(c) // free tail first so b's free merges forward
	p.Free(b)

	s := p.Stats()
	require.Equal(t, 2, s.Blocks)
	require.Equal(t, 200, s.LargestFree)
	require.GreaterOrEqual(t, s.CoalesceForward, 1)
	require.NoError(t, p.CheckInvariants())

	p.Free(a)
	require.Equal(t, 1, p.Stats().Blocks)
}

func Test_Free_CoalesceBackward(t *testing.T) {
	p, err := New(300)
	require.NoError(t, err)
	defer p.Close()

	a := mustAlloc(t, p, 100)
	b := mustAlloc(t, p, 100)
	mustAlloc(t, p, 100)

	p.Free(a)
	p.Free(b) // merges into the preceding free block

	s := p.Stats()
	require.Equal(t, 2, s.Blocks)
	require.Equal(t, 200, s.LargestFree)
	require.GreaterOrEqual(t, s.CoalesceBackward, 1)
	require.NoError(t, p.CheckInvariants())
}

func Test_Free_CoalesceBothSides(t *testing.T) {
	p, err := New(300)
	require.NoError(t, err)
	defer p.Close()

	a := mustAlloc(t, p, 100)
	b := mustAlloc(t, p, 100)
	c := mustAlloc(t, p, 100)

	p.Free(a)
	p.Free(c)
	p.Free(b) // middle free bridges both neighbors

	s := p.Stats()
	require.Equal(t, 1, s.Blocks)
	require.Equal(t, 300, s.LargestFree)
	require.NoError(t, p.CheckInvariants())
}

func Test_Free_DoubleFree(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)
	defer p.Close()

	a := mustAlloc(t, p, 64)
	p.Free(a)
	before := p.Stats()

	// Second free of the same reference is a silent no-op.
	p.Free(a)

	after := p.Stats()
	require.Equal(t, before.Blocks, after.Blocks)
	require.Equal(t, before.FreeBytes, after.FreeBytes)
	require.Equal(t, before.BytesFreed, after.BytesFreed)
	require.NoError(t, p.CheckInvariants())
}

func Test_Free_ForeignRef(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)
	defer p.Close()

	mustAlloc(t, p, 64)
	before := p.Stats()

	// Offsets that do not start a live block are ignored: the interior of
	// a used block, a free block, and out-of-range offsets.
	p.Free(10)
	p.Free(64)
	p.Free(4096)
	p.Free(NilRef)

	after := p.Stats()
	require.Equal(t, before.Blocks, after.Blocks)
	require.Equal(t, before.FreeBytes, after.FreeBytes)
	require.NoError(t, p.CheckInvariants())
}

func Test_Free_NoAdjacentFreeInvariant(t *testing.T) {
	p, err := New(1024)
	require.NoError(t, err)
	defer p.Close()

	var refs []Ref
	for i := 0; i < 8; i++ {
		refs = append(refs, mustAlloc(t, p, 128))
	}

	// Free in an order that exercises every merge direction.
	for _, i := range []int{1, 3, 5, 7, 0, 2, 4, 6} {
		p.Free(refs[i])
		require.NoError(t, p.CheckInvariants())
	}

	s := p.Stats()
	require.Equal(t, 1, s.Blocks)
	require.Equal(t, 1024, s.FreeBytes)
}
