package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/memtools/heapkit/internal/format"
)

// freeBlock is a snapshot of one free-list entry for assertions.
type freeBlock struct {
	off  uint32
	size uint32
}

// walkFreeList traverses the free list from the head and returns its blocks
// in list order, failing the test if the walk runs off the arena or cycles.
func walkFreeList(t testing.TB, f *FreeList) []freeBlock {
	t.Helper()
	data := f.a.Bytes()
	require.NotNil(t, data, "allocator must not be closed")

	var blocks []freeBlock
	seen := make(map[uint32]bool)
	for off := f.firstFree; off != format.NilOffset; off = format.Next(data, off) {
		require.False(t, seen[off], "free list cycles at offset %d", off)
		seen[off] = true
		require.Less(t, int(off)+format.HeaderSize, len(data)+1,
			"free block header at %d past arena end", off)
		blocks = append(blocks, freeBlock{off: off, size: format.RawSize(data, off)})
	}
	return blocks
}

// assertFreeListInvariants checks the structural invariants that must hold
// after any sequence of operations:
//   - free-list offsets strictly increase from the head
//   - every listed block has its in-use flag clear
//   - no two listed blocks are address-adjacent (coalescing is complete)
//   - blocks tile the region exactly, and a block is free if and only if it
//     is reachable from the list head
func assertFreeListInvariants(t testing.TB, f *FreeList) {
	t.Helper()
	data := f.a.Bytes()
	blocks := walkFreeList(t, f)

	onList := make(map[uint32]bool, len(blocks))
	for i, b := range blocks {
		onList[b.off] = true
		require.True(t, format.IsFree(data, b.off),
			"free-list block at %d has in-use flag set", b.off)
		if i > 0 {
			prev := blocks[i-1]
			require.Greater(t, b.off, prev.off,
				"free list not in ascending address order: %d after %d", b.off, prev.off)
			require.NotEqual(t, prev.off+format.HeaderSize+prev.size, b.off,
				"adjacent free blocks at %d and %d were not coalesced", prev.off, b.off)
		}
	}

	// Region coverage: blocks are contiguous, non-overlapping, and account
	// for every byte up to the aligned region end.
	end := format.AlignDown8(uint32(len(data)))
	off := uint32(0)
	for off < end {
		require.True(t, off+format.HeaderSize <= end,
			"block header at %d would cross region end %d", off, end)
		size := format.RawSize(data, off)
		require.Equal(t, onList[off], format.IsFree(data, off),
			"block at %d: in-use flag disagrees with free-list membership", off)
		next := off + format.HeaderSize + size
		require.Greater(t, next, off, "block at %d has non-advancing span", off)
		off = next
	}
	require.Equal(t, end, off, "blocks do not tile the region exactly")
}

// mustAllocate allocates or fails the test.
func mustAllocate(t testing.TB, f *FreeList, n uint32) (Ref, []byte) {
	t.Helper()
	ref, payload, err := f.Allocate(n)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.NotNil(t, payload)
	return ref, payload
}
