//go:build !linux && !darwin

package arena

import (
	"fmt"
	"os"
)

// OpenFile falls back to a heap-backed copy of the file when shared mappings
// are not available for the platform: the contents are read at open and
// written back in full on Close.
func OpenFile(path string, size uint32) (*Arena, error) {
	if size == 0 {
		return nil, fmt.Errorf("arena: zero-size region")
	}
	if size > MaxSize {
		return nil, ErrTooLarge
	}

	data := make([]byte, size)
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("arena: read %s: %w", path, err)
	}
	copy(data, existing)

	release := func() error {
		return os.WriteFile(path, data, 0o644)
	}
	return newWithRelease(data, release), nil
}
