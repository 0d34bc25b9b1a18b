package purchaseorder

import (
	"fmt"
	"strings"
)

// Status represents the lifecycle state of a purchase order.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusApproved  Status = "approved"
	StatusIssued    Status = "issued"
	StatusComplete  Status = "complete"
	StatusCancelled Status = "cancelled"
)

// flow is the linear forward order. Cancelled is reachable from any
// non-terminal status and sits outside it.
var flow = []Status{StatusDraft, StatusApproved, StatusIssued, StatusComplete}

// Statuses returns every known status in display order.
func Statuses() []Status {
	return []Status{StatusDraft, StatusApproved, StatusIssued, StatusComplete, StatusCancelled}
}

// ParseStatus normalises s and checks it against the known set.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}

	return st, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusApproved, StatusIssued, StatusComplete, StatusCancelled:
		return true
	}

	return false
}

// IsTerminal reports whether no further edits are permitted.
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusCancelled
}

func (s Status) flowIndex() int {
	for i, f := range flow {
		if f == s {
			return i
		}
	}

	return -1
}

// AllowedNextStatuses lists the statuses a PO in current may move to,
// current included. Terminal statuses are frozen.
func AllowedNextStatuses(current Status) []Status {
	if !current.Valid() {
		return nil
	}

	if current.IsTerminal() {
		return []Status{current}
	}

	idx := current.flowIndex()
	next := make([]Status, 0, len(flow)-idx+1)
	next = append(next, flow[idx:]...)

	return append(next, StatusCancelled)
}

// IsForwardOrSame guards against moving a PO backwards. Unknown statuses
// never pass.
func IsForwardOrSame(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}

	if from.IsTerminal() {
		return to == from
	}

	if to == StatusCancelled {
		return true
	}

	return to.flowIndex() >= from.flowIndex()
}

// CheckTransition returns nil when from -> to is allowed, and the error
// a caller should surface otherwise.
func CheckTransition(from, to Status) error {
	if from.IsTerminal() {
		return fmt.Errorf("%w: status is %s", ErrLocked, from)
	}

	if !to.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	if !IsForwardOrSame(from, to) {
		if to == StatusDraft {
			return fmt.Errorf("%w: a %s purchase order cannot go back to draft", ErrIllegalTransition, from)
		}

		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	return nil
}
