package pool

import "fmt"

// Alloc reserves a block of at least size bytes and returns its reference
// together with the payload view. The payload covers the granted block
// size, which can exceed the request when splitting would have left an
// unusable sliver.
//
// A size of zero returns the stable ZeroRef sentinel without consuming
// pool space. When no free block is large enough, Alloc returns ErrNoSpace
// and leaves the pool unchanged.
func (p *Pool) Alloc(size int) (Ref, []byte, error) {
	if size < 0 {
		return NilRef, nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return NilRef, nil, ErrClosed
	}
	if size == 0 {
		return ZeroRef, nil, nil
	}
	p.stats.AllocCalls++

	i, err := p.allocLocked(size)
	if err != nil {
		return NilRef, nil, err
	}
	b := &p.blocks[i]
	return Ref(b.off), p.payload(b), nil
}

// allocLocked runs the first-fit search and claims a block for an aligned
// request of size bytes. It returns the ledger index of the claimed block.
// Callers must hold p.mu.
func (p *Pool) allocLocked(size int) (int, error) {
	need, ok := p.alignUp(size)
	if !ok || need > len(p.data) {
		p.stats.FailedAllocs++
		return 0, ErrNoSpace
	}

	// First fit: the leftmost free block that can hold the request wins.
	for i := range p.blocks {
		b := &p.blocks[i]
		if !b.free || b.size < need {
			continue
		}
		if rem := b.size - need; rem >= p.minBlockSize() {
			p.splitBlock(i, need)
		}
		// Otherwise hand out the whole block oversized rather than
		// leaving a sliver the ledger can never satisfy a request from.
		b = &p.blocks[i]
		b.free = false
		p.stats.BytesAllocated += int64(b.size)
		if logAlloc {
			debugLogf("alloc %d -> off=%d granted=%d", size, b.off, b.size)
		}
		return i, nil
	}

	p.stats.FailedAllocs++
	if logAlloc {
		debugLogf("alloc %d failed: no free block large enough", size)
	}
	return 0, ErrNoSpace
}

// Free releases the block that ref designates and eagerly merges it with
// free neighbors.
//
// Free is permissive: NilRef, ZeroRef, references that do not start a live
// block, and double frees are all silent no-ops. This tolerates redundant
// or foreign frees without corrupting the ledger.
func (p *Pool) Free(ref Ref) {
	if ref == NilRef || ref == ZeroRef {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.stats.FreeCalls++
	p.freeLocked(ref)
}

// freeLocked marks the block at ref free and coalesces. Returns false when
// ref does not designate a live used block. Callers must hold p.mu.
func (p *Pool) freeLocked(ref Ref) bool {
	if ref >= Ref(len(p.data)) {
		return false
	}
	i := p.findIndex(int(ref))
	if i < 0 || p.blocks[i].free {
		return false
	}

	p.blocks[i].free = true
	p.stats.BytesFreed += int64(p.blocks[i].size)
	if logAlloc {
		debugLogf("free off=%d size=%d", p.blocks[i].off, p.blocks[i].size)
	}

	p.coalesceForward(i)
	p.coalesceBackward(i)
	return true
}
