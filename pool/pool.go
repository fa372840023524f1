package pool

import (
	"fmt"
	"sync"

	"github.com/joshuapare/poolkit/internal/mmbuf"
)

// Ref is a block reference - a uint32 offset of the block inside the pool.
type Ref = uint32

const (
	// NilRef is the null reference. No valid block ever has this offset.
	NilRef Ref = 0xFFFFFFFF

	// ZeroRef is the sentinel returned for zero-sized allocations. It is
	// stable across calls, never consumes pool space, and freeing it is a
	// no-op.
	ZeroRef Ref = 0xFFFFFFFE

	// maxPoolSize caps the pool capacity so every block offset fits in a
	// Ref with room for the sentinel values above.
	maxPoolSize = 0x7FFFFFFF
)

// Backing selects how the pool obtains its buffer from the host.
type Backing int

const (
	// BackingAuto tries an anonymous memory mapping first and falls back
	// to a heap slice when mapping fails. This is the default.
	BackingAuto Backing = iota

	// BackingMmap requires an anonymous memory mapping.
	BackingMmap

	// BackingHeap uses an ordinary heap slice.
	BackingHeap
)

// Option configures a Pool at construction time.
type Option func(*config)

type config struct {
	backing Backing
	align   int
}

// WithBacking forces the backing strategy for the pool buffer.
func WithBacking(b Backing) Option {
	return func(c *config) { c.backing = b }
}

// WithAlignment sets the alignment quantum for sizes and block offsets.
// n must be a power of two. The default is 4.
func WithAlignment(n int) Option {
	return func(c *config) { c.align = n }
}

// defaultAlignment keeps block offsets 32-bit aligned without inflating
// small requests.
const defaultAlignment = 4

// Pool is a fixed-capacity allocator over one contiguous buffer.
//
// The zero value is not usable; construct with New. All methods are safe
// for concurrent use.
type Pool struct {
	mu      sync.Mutex
	data    []byte
	release func() error
	blocks  []block // ordered ledger partitioning [0, capacity)
	align   int
	closed  bool
	stats   counters
}

// New reserves a buffer of exactly capacity bytes and returns a pool with
// one free block covering it. A capacity of zero is accepted and yields a
// pool with no allocatable space.
func New(capacity int, opts ...Option) (*Pool, error) {
	cfg := config{backing: BackingAuto, align: defaultAlignment}
	for _, opt := range opts {
		opt(&cfg)
	}
	if capacity < 0 || capacity > maxPoolSize {
		return nil, fmt.Errorf("%w: capacity %d", ErrBadSize, capacity)
	}
	if cfg.align <= 0 || cfg.align&(cfg.align-1) != 0 {
		return nil, fmt.Errorf("%w: alignment %d is not a power of two", ErrBadSize, cfg.align)
	}

	data, release, err := acquire(capacity, cfg.backing)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		data:    data,
		release: release,
		align:   cfg.align,
	}
	if capacity > 0 {
		p.blocks = append(p.blocks, block{off: 0, size: capacity, free: true})
	}
	if logAlloc {
		debugLogf("new pool: capacity=%d align=%d", capacity, cfg.align)
	}
	return p, nil
}

// acquire obtains the backing buffer per the requested strategy.
func acquire(capacity int, b Backing) ([]byte, func() error, error) {
	switch b {
	case BackingMmap:
		data, release, err := mmbuf.Map(capacity)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrBackingFailed, err)
		}
		return data, release, nil
	case BackingHeap:
		return make([]byte, capacity), nil, nil
	default:
		data, release, err := mmbuf.Map(capacity)
		if err != nil {
			// Mapping unavailable - fall back to the heap.
			return make([]byte, capacity), nil, nil
		}
		return data, release, nil
	}
}

// Close releases the buffer back to the host and discards the ledger.
// It is idempotent; closing an already-closed pool is a no-op. Any payload
// slices obtained before Close become invalid.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.blocks = nil
	p.data = nil

	if p.release != nil {
		release := p.release
		p.release = nil
		if err := release(); err != nil {
			return fmt.Errorf("pool: release backing: %w", err)
		}
	}
	return nil
}

// Capacity returns the fixed pool capacity in bytes. It is zero after Close.
func (p *Pool) Capacity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.data)
}

// Bytes returns the payload view of a live block. The slice covers the
// granted block size, which can exceed the requested size when a split
// would have left an unusable sliver. For ZeroRef it returns an empty
// slice.
func (p *Pool) Bytes(ref Ref) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ref == ZeroRef {
		return nil, nil
	}
	b := p.lookupUsed(ref)
	if b == nil {
		return nil, ErrBadRef
	}
	return p.payload(b), nil
}

// Size returns the granted size of a live block. ZeroRef has size zero.
func (p *Pool) Size(ref Ref) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ref == ZeroRef {
		return 0, nil
	}
	b := p.lookupUsed(ref)
	if b == nil {
		return 0, ErrBadRef
	}
	return b.size, nil
}

// payload returns the user-visible bytes of b. Callers must hold p.mu.
func (p *Pool) payload(b *block) []byte {
	return p.data[b.off : b.off+b.size : b.off+b.size]
}
