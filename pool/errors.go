package pool

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("pool: no free block large enough")

	// ErrBadRef indicates a reference that does not designate a live block.
	ErrBadRef = errors.New("pool: bad block reference")

	// ErrBadSize indicates a negative or out-of-range size.
	ErrBadSize = errors.New("pool: bad size")

	// ErrClosed indicates an operation on a closed pool.
	ErrClosed = errors.New("pool: pool is closed")

	// ErrBackingFailed indicates the host could not supply the backing region.
	ErrBackingFailed = errors.New("pool: backing allocation failed")
)
