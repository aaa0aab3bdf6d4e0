package ledger

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned when the ledger is queried before the first
// successful Load.
var ErrNotInitialized = errors.New("ledger not initialized")

// ValidationError rejects malformed intake input before any state mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError wraps a failed gateway call. The local mutation that
// preceded the call is kept; see Record.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
