package heap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRandomAllocFreeGuardInvariants performs random alloc/free traffic and
// validates the structural invariants and payload integrity after every
// step. Fixed seed for reproducibility.
func TestRandomAllocFreeGuardInvariants(t *testing.T) {
	fl, err := New(1 << 15)
	require.NoError(t, err)
	defer fl.Close()

	rng := rand.New(rand.NewSource(42))
	live := make(map[Ref]uint32) // ref -> requested size

	fill := func(ref Ref) {
		data := fl.a.Bytes()
		size := fl.GetBlockSize(ref)
		pattern := byte(ref)
		for i := uint32(0); i < size; i++ {
			data[ref+i] = pattern
		}
	}
	verify := func(ref Ref) {
		data := fl.a.Bytes()
		size := fl.GetBlockSize(ref)
		pattern := byte(ref)
		for i := uint32(0); i < size; i++ {
			require.Equal(t, pattern, data[ref+i],
				"payload at ref %d corrupted at byte %d", ref, i)
		}
	}

	for step := 0; step < 1000; step++ {
		switch rng.Intn(3) {
		case 0, 1: // Allocate (biased: keeps the region busy)
			size := uint32(rng.Intn(512))
			ref, _, allocErr := fl.Allocate(size)
			if allocErr != nil {
				require.ErrorIs(t, allocErr, ErrNoSpace, "step %d", step)
				break
			}
			require.GreaterOrEqual(t, fl.GetBlockSize(ref), size, "step %d", step)
			_, dup := live[ref]
			require.False(t, dup, "step %d: ref %d handed out twice", step, ref)
			live[ref] = size
			fill(ref)

		case 2: // Free a random live allocation
			for ref := range live {
				verify(ref)
				require.NoError(t, fl.Free(ref), "step %d", step)
				delete(live, ref)
				break
			}
		}

		assertFreeListInvariants(t, fl)
	}

	// Verify all survivors, then drain and confirm full recovery.
	for ref := range live {
		verify(ref)
		require.NoError(t, fl.Free(ref))
	}
	blocks := walkFreeList(t, fl)
	require.Len(t, blocks, 1, "all space must coalesce back into one block")
	require.Equal(t, uint32((1<<15)-8), blocks[0].size)
}

// TestRandomDoubleFreesStayHarmless mixes double frees into random traffic;
// the allocator must shrug them off without list corruption.
func TestRandomDoubleFreesStayHarmless(t *testing.T) {
	fl, err := New(1 << 12)
	require.NoError(t, err)
	defer fl.Close()

	rng := rand.New(rand.NewSource(7))
	var freed []Ref

	for step := 0; step < 300; step++ {
		switch rng.Intn(4) {
		case 0, 1:
			ref, _, allocErr := fl.Allocate(uint32(rng.Intn(256)))
			if allocErr == nil {
				freed = append(freed, ref) // freed later, possibly twice
			}
		case 2:
			if len(freed) > 0 {
				require.NoError(t, fl.Free(freed[rng.Intn(len(freed))]))
			}
		case 3:
			require.NoError(t, fl.Free(NilRef))
		}
		assertFreeListInvariants(t, fl)
	}
}
