package purchaseorder

import (
	"errors"
	"time"
)

// Write paths reported to the Recorder.
const (
	PathNone     = "none"
	PathCreate   = "create"
	PathSnapshot = "snapshot"
	PathPatch    = "patch"
)

// Recorder receives one observation per Create or Save call.
type Recorder interface {
	ObserveSave(path, outcome string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSave(string, string, time.Duration) {}

// Outcome classifies err into a low-cardinality label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrLocked):
		return "locked"
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrIllegalTransition):
		return "illegal_transition"
	case errors.Is(err, ErrRevisionExhausted), errors.Is(err, ErrInvalidRevision):
		return "revision"
	case errors.Is(err, ErrValidation):
		return "invalid"
	}

	return "error"
}
