// Package pool implements a thread-safe, first-fit allocator over a single
// pre-reserved memory region.
//
// # Overview
//
// A Pool owns one contiguous byte buffer and carves it into variable-sized
// blocks on demand. Internally it keeps a side-table ledger of block
// descriptors (offset, size, free/used) that always partitions the buffer
// with no gaps and no overlaps. Allocation uses first-fit search with
// splitting; release eagerly coalesces adjacent free blocks so free space
// does not fragment into unusable slivers.
//
// The backing buffer is obtained from an anonymous memory mapping on unix
// systems, falling back to an ordinary heap slice when mapping is
// unavailable. The choice can be forced with WithBacking.
//
// # Usage Example
//
//	p, err := pool.New(1 << 20)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	ref, buf, err := p.Alloc(256)
//	if err != nil {
//	    return err
//	}
//
//	// Write payload data to buf...
//	copy(buf, payload)
//
//	// Later, release the block
//	p.Free(ref)
//
// # References
//
// Blocks are addressed by Ref, a uint32 offset into the pool. NilRef is the
// null reference; ZeroRef is the stable sentinel returned for zero-sized
// requests, which never consume pool space. Bytes(ref) returns the payload
// view for a live block.
//
// # Resizing
//
// Resize grows a block in place when the immediately following block is
// free and large enough, so the reference stays stable. Otherwise it falls
// back to allocate-copy-free; on fallback failure the original block is
// left untouched.
//
// # Error Policy
//
// Alloc and Resize report capacity exhaustion as ErrNoSpace with no state
// change. Free is deliberately permissive: null references, the zero-size
// sentinel, unrecognized offsets, and double frees are all no-ops. Resize
// on an unrecognized reference returns ErrBadRef.
//
// # Thread Safety
//
// All operations on a Pool are safe for concurrent use. A single mutex
// serializes every ledger mutation; the aggregate effect of concurrent
// calls is equivalent to some sequential interleaving of them. A payload
// slice handed out by Alloc is owned by the caller until that block is
// freed or resized; sharing one payload between goroutines needs external
// synchronization.
//
// # Alignment
//
// Requested sizes are rounded up to the pool's alignment quantum (4 bytes
// unless changed with WithAlignment) so block offsets stay aligned for
// typical payload types.
package pool
