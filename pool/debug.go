package pool

import (
	"fmt"
	"os"
)

// Allocation tracing - controlled by the POOLKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("POOLKIT_LOG_ALLOC") != ""

func debugLogf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[pool] "+format+"\n", args...)
}
