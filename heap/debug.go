package heap

import (
	"fmt"
	"os"
)

// Runtime debug flag for misuse diagnostics - controlled by HEAPKIT_DEBUG env var.
// Double frees and bad references are silent no-ops in production; with the
// flag set they are reported to stderr so the caller bug can be found during
// development.
var debugLog = os.Getenv("HEAPKIT_DEBUG") != ""

// debugf prints a diagnostic if debug logging is enabled.
func debugf(format string, args ...any) {
	if debugLog {
		fmt.Fprintf(os.Stderr, "[heap] "+format+"\n", args...)
	}
}
