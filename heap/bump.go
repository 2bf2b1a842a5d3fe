package heap

import (
	"github.com/memtools/heapkit/arena"
	"github.com/memtools/heapkit/internal/buf"
	"github.com/memtools/heapkit/internal/format"
)

// Bump is an append-only allocator over the same arena and block layout as
// FreeList. Allocation advances a cursor in O(1); Free only flips the in-use
// flag, so freed space is dead until the whole region is discarded. It keeps
// no free list, no indexes, and no per-block state beyond the header.
//
// Use it for single-pass workloads where the region is torn down as one
// unit; callers hold it through the Allocator interface interchangeably with
// FreeList.
type Bump struct {
	a *arena.Arena

	// cursor is the header offset where the next allocation will be placed.
	cursor uint32

	stats Stats
}

// NewBump creates a Bump allocator over a fresh heap-backed region.
func NewBump(heapSize uint32) (*Bump, error) {
	a, err := arena.New(heapSize)
	if err != nil {
		return nil, err
	}
	return NewBumpWithArena(a)
}

// NewBumpWithArena creates a Bump allocator that adopts ownership of a.
// On error the arena is released before returning.
func NewBumpWithArena(a *arena.Arena) (*Bump, error) {
	data := a.Bytes()
	if data == nil {
		return nil, ErrClosed
	}
	if uint32(len(data)) < format.MinAllocSize {
		_ = a.Close()
		return nil, ErrHeapTooSmall
	}
	return &Bump{a: a}, nil
}

// Close releases the backing region. Further operations return ErrClosed.
func (b *Bump) Close() error {
	b.cursor = 0
	return b.a.Close()
}

// Allocate allocates numBytes with the default 8-byte alignment.
func (b *Bump) Allocate(numBytes uint32) (Ref, []byte, error) {
	return b.AllocateAligned(numBytes, format.DefaultAlignment)
}

// AllocateAligned carves the next block off the cursor. The size computation
// matches FreeList exactly, so the two allocators produce interchangeable
// block layouts.
func (b *Bump) AllocateAligned(numBytes, alignment uint32) (Ref, []byte, error) {
	data := b.a.Bytes()
	if data == nil {
		return NilRef, nil, ErrClosed
	}
	if !format.IsPow2(alignment) {
		return NilRef, nil, ErrBadAlign
	}
	b.stats.AllocCalls++

	sizeNeeded := numBytes
	if sizeNeeded < format.HeaderSize {
		sizeNeeded = format.HeaderSize
	}
	aligned := format.Align(sizeNeeded, alignment)
	if aligned < sizeNeeded || aligned > arena.MaxSize-format.HeaderSize {
		b.stats.FailedAllocs++
		return NilRef, nil, ErrNoSpace
	}
	sizeNeeded = aligned + format.HeaderSize

	limit := format.AlignDown8(uint32(len(data)))
	if b.cursor+sizeNeeded > limit || b.cursor+sizeNeeded < b.cursor {
		// Append-only: no reclamation, no growth. Done is done.
		b.stats.FailedAllocs++
		return NilRef, nil, ErrNoSpace
	}

	block := b.cursor
	b.cursor += sizeNeeded

	format.PutHeader(data, block, format.NilOffset, sizeNeeded-format.HeaderSize)
	format.SetInUse(data, block)

	payloadSize := format.RawSize(data, block)
	payload, ok := buf.Slice(data, int(block+format.HeaderSize), int(payloadSize))
	if !ok {
		return NilRef, nil, ErrBadRef
	}

	b.stats.BytesAllocated += int64(payloadSize)
	return block + format.HeaderSize, payload, nil
}

// Free flips the block's in-use flag and nothing else: the space becomes
// dead until the region is discarded. NilRef and double frees are no-ops.
func (b *Bump) Free(ref Ref) error {
	data := b.a.Bytes()
	if data == nil {
		return ErrClosed
	}
	if ref == NilRef {
		return nil
	}
	if ref < format.HeaderSize {
		return ErrBadRef
	}
	block := ref - format.HeaderSize
	if !buf.Has(data, int(block), format.HeaderSize) {
		return ErrBadRef
	}
	b.stats.FreeCalls++

	if format.IsFree(data, block) {
		debugf("Free(%d): block already free (double free)", ref)
		return nil
	}

	b.stats.BytesFreed += int64(format.RawSize(data, block))
	format.ClearInUse(data, block)
	return nil
}

// GetBlockSize returns the usable payload size of the block at ref.
func (b *Bump) GetBlockSize(ref Ref) uint32 {
	data := b.a.Bytes()
	if data == nil || ref == NilRef || ref < format.HeaderSize {
		debugf("GetBlockSize(%d): invalid reference", ref)
		return 0
	}
	block := ref - format.HeaderSize
	if !buf.Has(data, int(block), format.HeaderSize) {
		debugf("GetBlockSize(%d): reference out of bounds", ref)
		return 0
	}
	return format.RawSize(data, block)
}

// Stats returns a snapshot of the allocator's counters.
func (b *Bump) Stats() Stats {
	return b.stats
}

// Compile-time interface check
var _ Allocator = (*Bump)(nil)
