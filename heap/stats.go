package heap

import jsoniter "github.com/json-iterator/go"

// Stats holds allocator counters for testing and instrumentation. All
// counters are cumulative over the allocator's lifetime.
type Stats struct {
	AllocCalls       int   `json:"allocCalls"`       // Total allocate calls
	FailedAllocs     int   `json:"failedAllocs"`     // Allocations that returned ErrNoSpace
	FreeCalls        int   `json:"freeCalls"`        // Total Free calls (excluding NilRef no-ops)
	Splits           int   `json:"splits"`           // Block splits on allocation
	CoalesceForward  int   `json:"coalesceForward"`  // Forward merges on free
	CoalesceBackward int   `json:"coalesceBackward"` // Backward merges on free
	BytesAllocated   int64 `json:"bytesAllocated"`   // Total payload bytes handed out
	BytesFreed       int64 `json:"bytesFreed"`       // Total payload bytes returned
}

// EncodeJSON renders the snapshot as JSON for diagnostics dashboards and
// test fixtures.
func (s Stats) EncodeJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(s)
}
