package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOwnsRegion(t *testing.T) {
	a, err := New(4096)
	require.NoError(t, err)

	require.Equal(t, uint32(4096), a.Size())
	data := a.Bytes()
	require.Len(t, data, 4096)

	// Writes must land in the owned buffer.
	data[0] = 0xAB
	data[4095] = 0xCD
	assert.Equal(t, byte(0xAB), a.Bytes()[0])
	assert.Equal(t, byte(0xCD), a.Bytes()[4095])

	require.NoError(t, a.Close())
}

func TestNewRejectsZeroSize(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}

func TestNewRejectsOversizedRegion(t *testing.T) {
	_, err := New(MaxSize + 1)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestCloseIsIdempotent(t *testing.T) {
	a, err := New(64)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	assert.Nil(t, a.Bytes(), "Bytes should be nil after Close")
	assert.Equal(t, uint32(0), a.Size())

	// Second close must be a no-op, not a double release.
	require.NoError(t, a.Close())
}

func TestNewAnonLifecycle(t *testing.T) {
	a, err := NewAnon(8192)
	require.NoError(t, err)

	require.Equal(t, uint32(8192), a.Size())
	data := a.Bytes()
	require.Len(t, data, 8192)

	// Anonymous pages arrive zeroed.
	for i := 0; i < len(data); i += 1024 {
		require.Equal(t, byte(0), data[i], "page byte %d should be zero", i)
	}

	// And must be writable.
	data[0] = 0x5A
	assert.Equal(t, byte(0x5A), a.Bytes()[0])

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}
