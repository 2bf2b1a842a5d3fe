package heap

import (
	"github.com/memtools/heapkit/arena"
	"github.com/memtools/heapkit/internal/buf"
	"github.com/memtools/heapkit/internal/format"
)

// FreeList is a first-fit allocator over an address-ordered free list.
//
// The list is threaded through the free blocks' own headers, so bookkeeping
// costs nothing beyond the 8-byte header every block carries anyway. Keeping
// the list sorted by offset is what makes coalescing a pair of O(1) adjacency
// checks instead of a region-wide scan.
type FreeList struct {
	a *arena.Arena

	// firstFree is the header offset of the lowest-addressed free block,
	// format.NilOffset when the region is fully allocated.
	firstFree uint32

	stats Stats
}

// New creates a FreeList over a fresh heap-backed region of heapSize bytes.
func New(heapSize uint32) (*FreeList, error) {
	a, err := arena.New(heapSize)
	if err != nil {
		return nil, err
	}
	return NewWithArena(a)
}

// NewWithArena creates a FreeList that adopts ownership of a. The entire
// region becomes one initial free block. On error the arena is released
// before returning, so construction never leaks the region.
func NewWithArena(a *arena.Arena) (*FreeList, error) {
	data := a.Bytes()
	if data == nil {
		return nil, ErrClosed
	}
	// The region must hold one header plus a minimally useful payload.
	if uint32(len(data)) < format.MinAllocSize {
		_ = a.Close()
		return nil, ErrHeapTooSmall
	}

	// Offset 0 is aligned by construction, so the initial header goes at the
	// very start and the remainder is its payload, rounded down so sizes stay
	// 8-byte multiples throughout. That keeps the flag bit of the size field
	// permanently clear in a raw size. Up to 7 trailing bytes of a
	// misaligned region become unreachable slack.
	usable := format.AlignDown8(uint32(len(data)) - format.HeaderSize)
	format.PutHeader(data, 0, format.NilOffset, usable)

	return &FreeList{a: a, firstFree: 0}, nil
}

// Close releases the backing region. Further operations return ErrClosed.
func (f *FreeList) Close() error {
	f.firstFree = format.NilOffset
	return f.a.Close()
}

// Allocate allocates numBytes with the default 8-byte alignment.
func (f *FreeList) Allocate(numBytes uint32) (Ref, []byte, error) {
	return f.AllocateAligned(numBytes, format.DefaultAlignment)
}

// AllocateAligned allocates numBytes rounded up to alignment.
//
// The request is clamped up to at least one header's worth of bytes: this
// allocator is not meant to service allocations smaller than its own
// bookkeeping overhead (a slab allocator is the right tool for those).
func (f *FreeList) AllocateAligned(numBytes, alignment uint32) (Ref, []byte, error) {
	data := f.a.Bytes()
	if data == nil {
		return NilRef, nil, ErrClosed
	}
	if !format.IsPow2(alignment) {
		return NilRef, nil, ErrBadAlign
	}
	f.stats.AllocCalls++

	sizeNeeded := numBytes
	if sizeNeeded < format.HeaderSize {
		sizeNeeded = format.HeaderSize
	}
	aligned := format.Align(sizeNeeded, alignment)
	if aligned < sizeNeeded || aligned > arena.MaxSize-format.HeaderSize {
		// Rounding wrapped: the request can never be satisfied.
		f.stats.FailedAllocs++
		return NilRef, nil, ErrNoSpace
	}
	sizeNeeded = aligned + format.HeaderSize

	// First fit: walk the free list in address order and take the first
	// block whose recorded size covers the request. Bounded worst-case work
	// per search is deliberately traded against potential fragmentation.
	prev := format.NilOffset
	block := f.firstFree
	for block != format.NilOffset {
		if sizeNeeded <= format.RawSize(data, block) {
			break
		}
		prev = block
		block = format.Next(data, block)
	}

	if block == format.NilOffset {
		// No block large enough. Exhaustion is reported, never escalated.
		f.stats.FailedAllocs++
		return NilRef, nil, ErrNoSpace
	}

	blockSize := format.RawSize(data, block)

	// Split when the remainder could itself be split again later; a smaller
	// remainder is absorbed whole so the list never accumulates free blocks
	// too small to satisfy any future request.
	if sizeNeeded+format.MinAllocSize <= blockSize {
		tail := block + sizeNeeded
		format.PutHeader(data, tail, format.Next(data, block), blockSize-sizeNeeded)
		format.SetNext(data, block, tail)
		format.SetSize(data, block, sizeNeeded-format.HeaderSize)
		f.stats.Splits++
	}

	// Unlink from the free list.
	if prev != format.NilOffset {
		format.SetNext(data, prev, format.Next(data, block))
	} else {
		f.firstFree = format.Next(data, block)
	}

	// Clear the stale list link before handing the block out; a dangling
	// offset inside allocated memory would otherwise survive until the next
	// free and confuse any header dump taken in between.
	format.SetNext(data, block, format.NilOffset)
	format.SetInUse(data, block)

	payloadSize := format.RawSize(data, block)
	payload, ok := buf.Slice(data, int(block+format.HeaderSize), int(payloadSize))
	if !ok {
		// A block recording a span past the arena end means corrupted
		// bookkeeping; refuse to hand out the memory.
		debugf("Allocate(%d): block at %d spans past arena end (size=%d)", numBytes, block, payloadSize)
		return NilRef, nil, ErrBadRef
	}

	f.stats.BytesAllocated += int64(payloadSize)
	return block + format.HeaderSize, payload, nil
}

// Free returns the block at ref to the free list, reinserting it in address
// order and coalescing with address-adjacent free neighbors in both
// directions. Free(NilRef) and double frees are no-ops.
func (f *FreeList) Free(ref Ref) error {
	data := f.a.Bytes()
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
	f.stats.FreeCalls++

	if format.IsFree(data, block) {
		// Double free. A caller defect, but unrecoverable once detected, so
		// release builds ignore it; run with HEAPKIT_DEBUG to catch it.
		debugf("Free(%d): block already free (double free)", ref)
		return nil
	}

	f.stats.BytesFreed += int64(format.RawSize(data, block))
	format.ClearInUse(data, block)

	// Find the insertion point that keeps the list sorted by offset.
	prev := format.NilOffset
	next := f.firstFree
	for next != format.NilOffset && next < block {
		prev = next
		next = format.Next(data, next)
	}

	if prev == format.NilOffset {
		// Lowest-addressed free block: becomes the new list head.
		f.firstFree = block
	} else {
		format.SetNext(data, prev, block)
		// Coalesce backward: the predecessor absorbs this block when its
		// span ends exactly where this block's header starts.
		if prev+format.HeaderSize+format.RawSize(data, prev) == block {
			format.SetSize(data, prev, format.RawSize(data, prev)+format.HeaderSize+format.RawSize(data, block))
			block = prev
			f.stats.CoalesceBackward++
		}
	}

	format.SetNext(data, block, next)

	// Coalesce forward: absorb the successor when this block's span ends
	// exactly at the successor's header.
	if next != format.NilOffset && block+format.HeaderSize+format.RawSize(data, block) == next {
		format.SetSize(data, block, format.RawSize(data, block)+format.HeaderSize+format.RawSize(data, next))
		format.SetNext(data, block, format.Next(data, next))
		f.stats.CoalesceForward++
	}

	return nil
}

// GetBlockSize returns the usable payload size of the outstanding block at
// ref, with the in-use flag masked off. ref must come from a still-live
// allocation; anything else is a caller contract violation and yields 0.
func (f *FreeList) GetBlockSize(ref Ref) uint32 {
	data := f.a.Bytes()
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
func (f *FreeList) Stats() Stats {
	return f.stats
}

// FreeSpan describes one free block for diagnostics.
type FreeSpan struct {
	Offset uint32 `json:"offset"` // header offset within the region
	Size   uint32 `json:"size"`   // usable payload bytes
}

// FreeBlocks returns a snapshot of the free list in address order, for
// diagnostics and tooling. The snapshot is stale as soon as another operation
// runs. The walk is bounds- and cycle-guarded so it stays safe to call even
// on a region a buggy caller has scribbled over.
func (f *FreeList) FreeBlocks() []FreeSpan {
	data := f.a.Bytes()
	if data == nil {
		return nil
	}

	maxBlocks := len(data)/format.MinAllocSize + 1
	var spans []FreeSpan
	for block := f.firstFree; block != format.NilOffset; block = format.Next(data, block) {
		if !buf.Has(data, int(block), format.HeaderSize) || len(spans) >= maxBlocks {
			debugf("FreeBlocks: corrupt list at offset %d", block)
			break
		}
		spans = append(spans, FreeSpan{Offset: block, Size: format.RawSize(data, block)})
	}
	return spans
}

// Compile-time interface check
var _ Allocator = (*FreeList)(nil)
