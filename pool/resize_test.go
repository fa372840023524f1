package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Resize_ShrinkInPlace(t *testing.T) {
	p, err := New(1024)
	require.NoError(t, err)
	defer p.Close()

	ref, b, err := p.Alloc(200)
	require.NoError(t, err)
	for i := range b {
		b[i] = byte(i)
	}

	got, nb, err := p.Resize(ref, 50)
	require.NoError(t, err)
	require.Equal(t, ref, got, "shrink must keep the reference stable")
	require.Len(t, nb, 52) // rounded to the quantum

	for i := 0; i < 50; i++ {
		require.Equal(t, byte(i), nb[i])
	}

	// The freed tail coalesces with the trailing free block.
	s := p.Stats()
	require.Equal(t, 2, s.Blocks)
	require.Equal(t, 1024-52, s.FreeBytes)
	require.NoError(t, p.CheckInvariants())
}

func Test_Resize_ShrinkKeepsSliver(t *testing.T) {
	p, err := New(10)
	require.NoError(t, err)
	defer p.Close()

	ref, _, err := p.Alloc(10)
	require.NoError(t, err)

	// 10 -> 8 leaves a 2-byte tail, below the quantum: block stays oversized.
	got, nb, err := p.Resize(ref, 8)
	require.NoError(t, err)
	require.Equal(t, ref, got)
	require.Len(t, nb, 10)
	require.Equal(t, 1, p.Stats().Blocks)
}

func Test_Resize_GrowInPlace(t *testing.T) {
	p, err := New(1024)
	require.NoError(t, err)
	defer p.Close()

	ref, b, err := p.Alloc(100)
	require.NoError(t, err)
	for i := range b {
		b[i] = byte(i)
	}

	got, nb, err := p.Resize(ref, 400)
	require.NoError(t, err)
	require.Equal(t, ref, got, "grow into a free neighbor must not move the block")
	require.Len(t, nb, 400)

	for i := 0; i < 100; i++ {
		require.Equal(t, byte(i), nb[i])
	}
	require.NoError(t, p.CheckInvariants())
}

func Test_Resize_GrowMoves(t *testing.T) {
	p, err := New(1024)
	require.NoError(t, err)
	defer p.Close()

	a, ab, err := p.Alloc(100)
	require.NoError(t, err)
	for i := range ab {
		ab[i] = byte(i + 1)
	}
	blocker := mustAlloc(t, p, 100) // pins a's right neighbor

	got, nb, err := p.Resize(a, 300)
	require.NoError(t, err)
	require.NotEqual(t, a, got, "grow past a used neighbor must relocate")
	require.Len(t, nb, 300)

	// Content preserved up to the old size.
	for i := 0; i < 100; i++ {
		require.Equal(t, byte(i+1), nb[i])
	}

	// The old range is free again and available.
	reused, _, err := p.Alloc(100)
	require.NoError(t, err)
	require.Equal(t, a, reused)

	p.Free(blocker)
	require.NoError(t, p.CheckInvariants())
}

func Test_Resize_GrowFailureLeavesBlockIntact(t *testing.T) {
	p, err := New(300)
	require.NoError(t, err)
	defer p.Close()

	a, ab, err := p.Alloc(100)
	require.NoError(t, err)
	for i := range ab {
		ab[i] = 0x7e
	}
	mustAlloc(t, p, 100)
	mustAlloc(t, p, 100)

	_, _, err = p.Resize(a, 200)
	require.ErrorIs(t, err, ErrNoSpace)

	// Original must remain live and unmodified.
	b, err := p.Bytes(a)
	require.NoError(t, err)
	require.Len(t, b, 100)
	for _, v := range b {
		require.Equal(t, byte(0x7e), v)
	}
	require.NoError(t, p.CheckInvariants())
}

func Test_Resize_NilRefAllocates(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)
	defer p.Close()

	ref, b, err := p.Resize(NilRef, 64)
	require.NoError(t, err)
	require.Len(t, b, 64)
	require.NotEqual(t, NilRef, ref)
}

func Test_Resize_ZeroSizeFrees(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)
	defer p.Close()

	a := mustAlloc(t, p, 64)
	ref, _, err := p.Resize(a, 0)
	require.NoError(t, err)
	require.Equal(t, ZeroRef, ref)

	// The block was released.
	s := p.Stats()
	require.Equal(t, 1, s.Blocks)
	require.Equal(t, 256, s.FreeBytes)
}

func Test_Resize_ZeroRefGrows(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)
	defer p.Close()

	// Growing the empty sentinel is a fresh allocation.
	ref, b, err := p.Resize(ZeroRef, 32)
	require.NoError(t, err)
	require.NotEqual(t, ZeroRef, ref)
	require.Len(t, b, 32)
}

func Test_Resize_ForeignRef(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)
	defer p.Close()

	a := mustAlloc(t, p, 64)
	before := p.Stats()

	_, _, err = p.Resize(7, 128) // interior offset, not a block start
	require.ErrorIs(t, err, ErrBadRef)

	p.Free(a)
	_, _, err = p.Resize(a, 128) // already freed
	require.ErrorIs(t, err, ErrBadRef)

	_, _, err = p.Resize(9999, 128) // out of range
	require.ErrorIs(t, err, ErrBadRef)

	after := p.Stats()
	require.Equal(t, before.FreeBytes+64, after.FreeBytes)
	require.NoError(t, p.CheckInvariants())
}

func Test_Resize_EqualSizeIsNoop(t *testing.T) {
	p, err := New(256)
	require.NoError(t, err)
	defer p.Close()

	a, b, err := p.Alloc(64)
	require.NoError(t, err)
	b[0] = 0xaa

	got, nb, err := p.Resize(a, 64)
	require.NoError(t, err)
	require.Equal(t, a, got)
	require.Len(t, nb, 64)
	require.Equal(t, byte(0xaa), nb[0])
	require.Equal(t, 0, p.Stats().SplitCount-1) // only the Alloc split
}
