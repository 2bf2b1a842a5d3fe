// Package format defines the in-arena block layout used by the heap
// allocators. The goal is to keep the byte-level mechanics (header encoding,
// size/flag packing, alignment) in one focused place so the allocator
// packages can work in terms of offsets and sizes rather than raw bytes.
package format

const (
	// HeaderSize is the number of bytes used by the block header preceding
	// every allocation (free or in-use) within the arena.
	//
	// Header layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    4     next: arena offset of the next free block's header.
	//	              NilOffset when the block is the last free block or is
	//	              allocated. Only meaningful while the block is free.
	//	0x04    4     size: usable payload bytes, low bit packed as the
	//	              in-use flag (1 = allocated, 0 = free).
	HeaderSize = 8

	// NextFieldOffset and SizeFieldOffset locate the two header fields
	// relative to the start of the header.
	NextFieldOffset = 0x00
	SizeFieldOffset = 0x04

	// DefaultAlignment is the minimum alignment of every block. All sizes are
	// kept a multiple of it, which is what leaves the low bit of the size
	// field permanently clear in a raw size and free for the in-use flag.
	DefaultAlignment = 8

	// AlignmentMask is the bitmask used for aligning to DefaultAlignment
	// boundaries (DefaultAlignment - 1).
	AlignmentMask = DefaultAlignment - 1

	// MinAllocSize is the smallest span worth carving out as a standalone
	// block: one header plus one header's worth of payload. Remainders below
	// this are absorbed by the allocation instead of becoming free blocks
	// that could never satisfy a request.
	MinAllocSize = HeaderSize * 2
)

const (
	// NilOffset is the sentinel for "no block". Arena offsets are always far
	// below it, so it can never collide with a real header offset.
	NilOffset uint32 = 0xFFFFFFFF

	// FreeBitMask isolates the in-use flag packed into the low bit of the
	// size field.
	FreeBitMask uint32 = 0x01
)
