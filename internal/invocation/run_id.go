// Package invocation generates identifiers for single deploy runs.
// Run IDs are attached to every log line of an invocation so interleaved
// output from concurrent runs can be told apart.
package invocation

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	runCounter uint64
	runMutex   sync.Mutex
)

// NewRunID returns a random UUID, or a deterministic one in test mode.
// Deterministic IDs keep the v4 layout: 00000001-0000-4000-8000-000000000001.
func NewRunID(testMode bool) string {
	if testMode {
		return deterministicRunID()
	}
	return uuid.New().String()
}

// ResetForTest restarts the deterministic sequence.
func ResetForTest() {
	runMutex.Lock()
	defer runMutex.Unlock()
	runCounter = 0
}

func deterministicRunID() string {
	runMutex.Lock()
	defer runMutex.Unlock()

	runCounter++
	return fmt.Sprintf("%08x-0000-4000-8000-%012x", runCounter, runCounter)
}
