// Package arena provides the fixed-size backing region the allocators carve
// blocks from. An Arena exclusively owns its buffer from construction to
// Close; how the buffer was obtained (heap or anonymous mapping) is hidden
// behind the release hook so teardown always happens exactly once.
package arena

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned when the requested region size cannot be addressed
// with 32-bit offsets.
var ErrTooLarge = errors.New("arena: region size exceeds 32-bit offset range")

// MaxSize is the largest region an Arena can manage. Block offsets are
// uint32 with the top value reserved as a nil sentinel.
const MaxSize = 0xFFFFFFF0

// Arena is a contiguous byte region with single-owner lifetime.
type Arena struct {
	data    []byte
	release func() error
}

// New returns a heap-backed Arena of exactly size bytes.
func New(size uint32) (*Arena, error) {
	if size == 0 {
		return nil, fmt.Errorf("arena: zero-size region")
	}
	if size > MaxSize {
		return nil, ErrTooLarge
	}
	return &Arena{
		data:    make([]byte, size),
		release: func() error { return nil },
	}, nil
}

// newWithRelease wraps an externally acquired buffer with its release hook.
func newWithRelease(data []byte, release func() error) *Arena {
	return &Arena{data: data, release: release}
}

// Bytes returns the backing buffer. Returns nil after Close.
func (a *Arena) Bytes() []byte {
	return a.data
}

// Size returns the region size in bytes, 0 after Close.
func (a *Arena) Size() uint32 {
	return uint32(len(a.data))
}

// Close releases the backing buffer. It is safe to call more than once; the
// buffer is released on the first call only and the Arena is inert afterward.
func (a *Arena) Close() error {
	if a.data == nil {
		return nil
	}
	a.data = nil
	return a.release()
}
