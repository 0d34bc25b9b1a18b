package purchaseorder

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("purchase order not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrLocked            = errors.New("purchase order is locked")
	ErrRevisionExhausted = errors.New("draft revisions exhausted")
	ErrInvalidRevision   = errors.New("invalid revision")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("purchase order was modified concurrently")
)

// StoreError wraps a failure reported by the backing store together with
// the operation that produced it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
