package format

// Header accessors. The in-use flag is packed into the low bit of the size
// field; these functions are the only place that packing is encoded, so the
// trick stays centralized and independently testable instead of being
// open-coded at every call site.

// Next returns the free-list link stored in the header at off.
func Next(b []byte, off uint32) uint32 {
	return ReadU32(b, int(off)+NextFieldOffset)
}

// SetNext stores the free-list link in the header at off.
func SetNext(b []byte, off, next uint32) {
	PutU32(b, int(off)+NextFieldOffset, next)
}

// RawSize returns the usable payload size recorded in the header at off,
// with the in-use flag masked off.
func RawSize(b []byte, off uint32) uint32 {
	return ReadU32(b, int(off)+SizeFieldOffset) &^ FreeBitMask
}

// IsFree reports whether the block at off is free (in-use flag clear).
func IsFree(b []byte, off uint32) bool {
	return ReadU32(b, int(off)+SizeFieldOffset)&FreeBitMask == 0
}

// SetSize records size as the payload size of the block at off, clearing the
// in-use flag. size must be a multiple of DefaultAlignment.
func SetSize(b []byte, off, size uint32) {
	PutU32(b, int(off)+SizeFieldOffset, size&^FreeBitMask)
}

// SetInUse sets the in-use flag of the block at off, preserving the size.
func SetInUse(b []byte, off uint32) {
	PutU32(b, int(off)+SizeFieldOffset, ReadU32(b, int(off)+SizeFieldOffset)|FreeBitMask)
}

// ClearInUse clears the in-use flag of the block at off, preserving the size.
func ClearInUse(b []byte, off uint32) {
	PutU32(b, int(off)+SizeFieldOffset, ReadU32(b, int(off)+SizeFieldOffset)&^FreeBitMask)
}

// PutHeader writes a complete free-block header at off.
func PutHeader(b []byte, off, next, size uint32) {
	SetNext(b, off, next)
	SetSize(b, off, size)
}
