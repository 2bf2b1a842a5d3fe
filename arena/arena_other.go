//go:build !linux && !darwin

package arena

// NewAnon falls back to a heap-backed region when anonymous mappings are not
// available for the platform.
func NewAnon(size uint32) (*Arena, error) {
	return New(size)
}
