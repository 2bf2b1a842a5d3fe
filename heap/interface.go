package heap

// Ref is the arena offset of a block's first payload byte. The block header
// sits immediately below it. Refs are plain offsets, so they stay valid if
// the arena is copied or serialized wholesale.
type Ref = uint32

// NilRef is the empty reference. Failed allocations return it and Free
// accepts it as a no-op.
const NilRef Ref = 0xFFFFFFFF

// Allocator is the capability interface every allocator variant exposes.
// Callers written against it are agnostic to the concrete strategy behind
// the region (free-list, bump, ...).
type Allocator interface {
	// Allocate allocates numBytes with the default 8-byte alignment.
	// Returns the block reference, a slice aliasing the payload, and any
	// error. ErrNoSpace reports exhaustion without corrupting state.
	Allocate(numBytes uint32) (Ref, []byte, error)

	// AllocateAligned allocates numBytes rounded up to the given
	// power-of-two alignment.
	AllocateAligned(numBytes, alignment uint32) (Ref, []byte, error)

	// Free returns the block at ref to the allocator. Free(NilRef) is a
	// no-op, as is freeing a block that is already free.
	Free(ref Ref) error

	// GetBlockSize returns the usable payload size of the block at ref.
	// ref must be an outstanding allocation from this allocator.
	GetBlockSize(ref Ref) uint32
}
