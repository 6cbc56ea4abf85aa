package heap

import (
	"fmt"
	"os"
)

// debugAlloc is a compile-time toggle for verbose allocation logging.
const debugAlloc = false

// logAlloc is a runtime toggle, controlled by HEAP_LOG_ALLOC, that lets
// tests and cmd/heapreplay turn on the same logging without a rebuild.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// debugLogf prints debug messages when either debug flag is enabled.
func debugLogf(format string, args ...any) {
	if debugAlloc || logAlloc {
		fmt.Fprintf(os.Stderr, "[heap] "+format+"\n", args...)
	}
}
