package pool

import (
	"fmt"
	"sort"

	"github.com/joshuapare/poolkit/internal/buf"
)

// block is one ledger entry. The ledger is kept sorted by offset and the
// entries always partition [0, capacity): no gaps, no overlaps, and no two
// adjacent free entries.
type block struct {
	off  int
	size int
	free bool
}

// end returns the first offset past the block.
func (b block) end() int { return b.off + b.size }

// alignUp rounds n up to the next multiple of the pool's alignment quantum.
// ok is false when the padded size would overflow int.
func (p *Pool) alignUp(n int) (int, bool) {
	mask := p.align - 1
	padded, ok := buf.AddOverflowSafe(n, mask)
	if !ok {
		return 0, false
	}
	return padded &^ mask, true
}

// minBlockSize is the smallest remainder worth splitting off as its own
// free block. Anything smaller is absorbed into the allocation instead.
func (p *Pool) minBlockSize() int { return p.align }

// findIndex locates the ledger index of the block starting at off.
// Returns -1 when no block starts exactly there. Callers must hold p.mu.
func (p *Pool) findIndex(off int) int {
	i := sort.Search(len(p.blocks), func(i int) bool {
		return p.blocks[i].off >= off
	})
	if i < len(p.blocks) && p.blocks[i].off == off {
		return i
	}
	return -1
}

// lookupUsed returns the used block starting at ref, or nil. Callers must
// hold p.mu.
func (p *Pool) lookupUsed(ref Ref) *block {
	if p.closed || ref >= Ref(len(p.data)) {
		return nil
	}
	i := p.findIndex(int(ref))
	if i < 0 || p.blocks[i].free {
		return nil
	}
	return &p.blocks[i]
}

// splitBlock splits the free block at index i into a head of exactly size
// bytes and a free tail holding the remainder. The caller has already
// checked that the remainder is viable. Callers must hold p.mu.
func (p *Pool) splitBlock(i, size int) {
	b := p.blocks[i]
	tail := block{off: b.off + size, size: b.size - size, free: true}
	p.blocks[i].size = size

	p.blocks = append(p.blocks, block{})
	copy(p.blocks[i+2:], p.blocks[i+1:])
	p.blocks[i+1] = tail
	p.stats.SplitCount++
}

// removeBlock deletes the ledger entry at index i. Callers must hold p.mu.
func (p *Pool) removeBlock(i int) {
	p.blocks = append(p.blocks[:i], p.blocks[i+1:]...)
}

// coalesceForward merges the block at index i with its successor when both
// are free. Returns true when a merge happened. Callers must hold p.mu.
func (p *Pool) coalesceForward(i int) bool {
	if i+1 >= len(p.blocks) {
		return false
	}
	if !p.blocks[i].free || !p.blocks[i+1].free {
		return false
	}
	p.blocks[i].size += p.blocks[i+1].size
	p.removeBlock(i + 1)
	p.stats.CoalesceForward++
	return true
}

// coalesceBackward merges the block at index i into its predecessor when
// both are free. Returns the index of the merged block. Callers must hold
// p.mu.
func (p *Pool) coalesceBackward(i int) int {
	if i == 0 {
		return i
	}
	if !p.blocks[i-1].free || !p.blocks[i].free {
		return i
	}
	p.blocks[i-1].size += p.blocks[i].size
	p.removeBlock(i)
	p.stats.CoalesceBackward++
	return i - 1
}

// CheckInvariants verifies the ledger's structural invariants: ascending
// offsets, exhaustive gap-free coverage of [0, capacity), positive sizes,
// and no two adjacent free blocks. It is intended for tests and
// diagnostics; a healthy pool always passes.
func (p *Pool) CheckInvariants() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		if len(p.blocks) != 0 {
			return fmt.Errorf("pool: closed pool retains %d ledger entries", len(p.blocks))
		}
		return nil
	}

	next := 0
	for i, b := range p.blocks {
		if b.size <= 0 {
			return fmt.Errorf("pool: block %d at offset %d has size %d", i, b.off, b.size)
		}
		if b.off != next {
			return fmt.Errorf("pool: block %d starts at %d, want %d (gap or overlap)", i, b.off, next)
		}
		if i > 0 && b.free && p.blocks[i-1].free {
			return fmt.Errorf("pool: adjacent free blocks at offsets %d and %d", p.blocks[i-1].off, b.off)
		}
		next = b.end()
	}
	if next != len(p.data) {
		return fmt.Errorf("pool: ledger covers %d bytes, capacity is %d", next, len(p.data))
	}
	return nil
}
