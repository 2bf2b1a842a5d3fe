package heap

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("heap: no free block large enough")

	// ErrBadRef indicates an invalid or out-of-bounds block reference.
	ErrBadRef = errors.New("heap: bad block reference")

	// ErrBadAlign indicates an alignment that is zero or not a power of two.
	ErrBadAlign = errors.New("heap: alignment must be a power of two")

	// ErrHeapTooSmall indicates a region too small to hold even one block.
	ErrHeapTooSmall = errors.New("heap: region too small for a single block")

	// ErrClosed indicates an operation on an allocator after Close.
	ErrClosed = errors.New("heap: allocator is closed")
)
