//go:build linux || darwin

package arena

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// NewAnon returns an Arena backed by an anonymous private mapping. The pages
// are zero-initialized by the OS and live outside the Go heap, so the region
// never moves and is invisible to the garbage collector. Close unmaps it.
func NewAnon(size uint32) (*Arena, error) {
	if size == 0 {
		return nil, fmt.Errorf("arena: zero-size region")
	}
	if size > MaxSize {
		return nil, ErrTooLarge
	}

	data, err := unix.Mmap(
		-1,
		0,
		int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE,
	)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap failed: %w", err)
	}

	release := func() error {
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return newWithRelease(data, release), nil
}
