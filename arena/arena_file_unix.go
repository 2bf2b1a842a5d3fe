//go:build linux || darwin

package arena

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// OpenFile returns an Arena backed by a shared read-write mapping of the file
// at path, creating the file if needed and truncating it to exactly size
// bytes. Writes land in the page cache and are synced to the file on Close,
// so a region can be torn down and picked up again across runs.
func OpenFile(path string, size uint32) (*Arena, error) {
	if size == 0 {
		return nil, fmt.Errorf("arena: zero-size region")
	}
	if size > MaxSize {
		return nil, ErrTooLarge
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("arena: open %s: %w", path, err)
	}
	defer f.Close() // safe before return; mapping keeps pages alive

	if err := f.Truncate(int64(size)); err != nil {
		return nil, fmt.Errorf("arena: truncate %s: %w", path, err)
	}

	data, err := unix.Mmap(
		int(f.Fd()),
		0,
		int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_SHARED,
	)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap %s: %w", path, err)
	}

	release := func() error {
		if err := unix.Msync(data, unix.MS_SYNC); err != nil {
			_ = unix.Munmap(data)
			return fmt.Errorf("arena: msync %s: %w", path, err)
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return newWithRelease(data, release), nil
}
