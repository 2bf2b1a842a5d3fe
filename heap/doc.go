// Package heap provides explicit-free block allocation over a fixed-size
// arena.
//
// # Overview
//
// The package manages a single contiguous byte region and services
// variable-sized allocate/free requests with deterministic, bounded
// bookkeeping: every block carries an 8-byte in-place header, and free blocks
// are threaded into a singly-linked free list kept sorted by ascending arena
// offset. It targets environments that need a predictable, inspectable
// allocator they fully control.
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface with exactly four
// operations:
//
//   - Allocate(numBytes): allocate with the default (8-byte) alignment
//   - AllocateAligned(numBytes, alignment): allocate with a specific
//     power-of-two alignment
//   - Free(ref): return a block to the allocator
//   - GetBlockSize(ref): usable size of an outstanding block
//
// # Implementations
//
// FreeList: the general-purpose allocator
//
//   - First-fit search over an address-ordered free list
//   - Blocks split on allocation when the remainder is worth keeping
//   - Adjacent free blocks coalesce in both directions on Free
//
// Bump: append-only allocator over the same arena
//
//   - O(1) bump-pointer allocation
//   - Free only flips the in-use flag; space is never reused
//   - Suited to single-pass workloads that discard the whole region at once
//
// # Usage Example
//
//	fl, err := heap.New(1 << 20) // 1 MiB region
//	if err != nil {
//		return err
//	}
//	defer fl.Close()
//
//	ref, buf, err := fl.Allocate(256)
//	if err != nil {
//		return err
//	}
//
//	// Use buf (aliases the arena)...
//
//	if err := fl.Free(ref); err != nil {
//		return err
//	}
//
// # References
//
// A Ref is the uint32 arena offset of the first payload byte; the block
// header lives at ref - format.HeaderSize. NilRef is the empty reference:
// Free(NilRef) is a no-op, and failed allocations return NilRef.
//
// # Out of Memory
//
// Allocation is the only operation meant to fail in production: when no free
// block is large enough, Allocate returns ErrNoSpace and the region is left
// untouched. The allocator never grows the region and never panics on
// exhaustion; reacting to ErrNoSpace belongs to the caller.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally, or use one instance per goroutine.
package heap
