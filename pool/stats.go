package pool

// counters holds the cumulative operation counters. Snapshot values are
// derived from the ledger when Stats() is called.
type counters struct {
	AllocCalls       int
	FreeCalls        int
	ResizeCalls      int
	FailedAllocs     int
	SplitCount       int
	CoalesceForward  int
	CoalesceBackward int
	BytesAllocated   int64
	BytesFreed       int64
}

// Stats is a point-in-time snapshot of pool activity and occupancy.
type Stats struct {
	// Cumulative counters since New.
	AllocCalls       int   // Alloc() calls (zero-size excluded)
	FreeCalls        int   // Free() calls on non-sentinel refs
	ResizeCalls      int   // Resize() calls that reached the ledger
	FailedAllocs     int   // allocations denied for lack of space
	SplitCount       int   // block splits
	CoalesceForward  int   // merges with a following free block
	CoalesceBackward int   // merges into a preceding free block
	BytesAllocated   int64 // total bytes granted, including oversize
	BytesFreed       int64 // total bytes released

	// Current occupancy.
	Capacity    int // pool capacity in bytes
	UsedBytes   int // bytes in live blocks
	FreeBytes   int // bytes in free blocks
	LargestFree int // largest single free block
	Blocks      int // total ledger entries
	FreeBlocks  int // free ledger entries
}

// Stats returns a snapshot of the pool's counters and current occupancy.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := Stats{
		AllocCalls:       p.stats.AllocCalls,
		FreeCalls:        p.stats.FreeCalls,
		ResizeCalls:      p.stats.ResizeCalls,
		FailedAllocs:     p.stats.FailedAllocs,
		SplitCount:       p.stats.SplitCount,
		CoalesceForward:  p.stats.CoalesceForward,
		CoalesceBackward: p.stats.CoalesceBackward,
		BytesAllocated:   p.stats.BytesAllocated,
		BytesFreed:       p.stats.BytesFreed,
		Capacity:         len(p.data),
		Blocks:           len(p.blocks),
	}
	for _, b := range p.blocks {
		if b.free {
			s.FreeBytes += b.size
			s.FreeBlocks++
			if b.size > s.LargestFree {
				s.LargestFree = b.size
			}
		} else {
			s.UsedBytes += b.size
		}
	}
	return s
}
