package pool

import "fmt"

// Resize changes the block at ref to hold at least newSize bytes,
// preserving content up to min(old granted size, newSize).
//
// NilRef and ZeroRef behave as a fresh Alloc(newSize); a newSize of zero
// frees the block and returns ZeroRef. Shrinks happen in place, splitting
// off the tail when it is large enough to be its own free block. Grows
// first try to absorb an immediately following free block so the reference
// stays stable; otherwise the content moves to a fresh allocation and the
// old block is freed. When the fallback allocation fails the original
// block is left valid and unmodified.
//
// A reference that does not designate a live block yields ErrBadRef.
func (p *Pool) Resize(ref Ref, newSize int) (Ref, []byte, error) {
	if newSize < 0 {
		return NilRef, nil, fmt.Errorf("%w: %d", ErrBadSize, newSize)
	}
	if ref == NilRef || ref == ZeroRef {
		// Growing nothing (or the empty sentinel) is a fresh allocation.
		return p.Alloc(newSize)
	}
	if newSize == 0 {
		p.Free(ref)
		return ZeroRef, nil, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return NilRef, nil, ErrClosed
	}
	p.stats.ResizeCalls++

	i := p.findIndex(int(ref))
	if ref >= Ref(len(p.data)) || i < 0 || p.blocks[i].free {
		return NilRef, nil, ErrBadRef
	}

	need, ok := p.alignUp(newSize)
	if !ok {
		return NilRef, nil, ErrNoSpace
	}

	// Shrink or equal: truncate in place.
	if p.blocks[i].size >= need {
		if rem := p.blocks[i].size - need; rem >= p.minBlockSize() {
			p.splitBlock(i, need)
			p.stats.BytesFreed += int64(rem)
			// The tail may now touch a following free block.
			p.coalesceForward(i + 1)
		}
		b := &p.blocks[i]
		return ref, p.payload(b), nil
	}

	// Grow in place: absorb the following block when it is free and the
	// combined span satisfies the request. No data movement needed.
	if i+1 < len(p.blocks) && p.blocks[i+1].free &&
		p.blocks[i].size+p.blocks[i+1].size >= need {
		grown := p.blocks[i+1].size
		p.blocks[i].size += grown
		p.removeBlock(i + 1)
		p.stats.BytesAllocated += int64(grown)
		if rem := p.blocks[i].size - need; rem >= p.minBlockSize() {
			p.splitBlock(i, need)
			p.stats.BytesFreed += int64(rem)
		}
		if logAlloc {
			debugLogf("resize off=%d grew in place to %d", p.blocks[i].off, p.blocks[i].size)
		}
		b := &p.blocks[i]
		return ref, p.payload(b), nil
	}

	// Fallback: allocate elsewhere, copy, free the old block. All of it
	// happens under the same critical section so the move is atomic.
	oldSize := p.blocks[i].size
	j, err := p.allocLocked(newSize)
	if err != nil {
		return NilRef, nil, err
	}

	// allocLocked can split entries, so re-resolve the old block index.
	newOff := p.blocks[j].off
	newSz := p.blocks[j].size
	oldI := p.findIndex(int(ref))
	copy(p.data[newOff:newOff+oldSize], p.payload(&p.blocks[oldI]))
	p.freeLocked(ref)

	if logAlloc {
		debugLogf("resize off=%d moved to off=%d (old=%d new=%d)", ref, newOff, oldSize, newSz)
	}
	return Ref(newOff), p.data[newOff : newOff+newSz : newOff+newSz], nil
}
