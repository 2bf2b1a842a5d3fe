package format

// Alignment utilities for the block layout. Every block header and every
// block size must land on a DefaultAlignment boundary; callers may request
// stricter power-of-two alignments per allocation.

// Align returns n aligned up to the next multiple of alignment. alignment
// must be a nonzero power of two; see IsPow2.
//
// Example:
//
//	Align(1, 8)   = 8
//	Align(8, 8)   = 8
//	Align(9, 16)  = 16
//	Align(17, 16) = 32
func Align(n, alignment uint32) uint32 {
	return (n + alignment - 1) &^ (alignment - 1)
}

// Align8 returns n aligned up to the next DefaultAlignment (8-byte) boundary.
// Used for block sizes and header placement.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n uint32) uint32 {
	return (n + AlignmentMask) &^ AlignmentMask
}

// AlignDown8 returns n aligned down to the previous DefaultAlignment
// boundary. Used when sizing the initial block from a region whose length
// is not a multiple of the alignment.
func AlignDown8(n uint32) uint32 {
	return n &^ AlignmentMask
}

// IsPow2 reports whether alignment is a nonzero power of two.
func IsPow2(alignment uint32) bool {
	return alignment != 0 && alignment&(alignment-1) == 0
}
