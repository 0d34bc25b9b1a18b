package purchaseorder

import (
	"fmt"
	"strconv"
	"strings"
)

// InitialRevision is the label of every newly created purchase order.
const InitialRevision = "a"

// Decision is the outcome of the revision policy for a single save.
type Decision struct {
	Revision string
	// NewSnapshot is false only for same-status edits without a bump,
	// which patch the existing row in place.
	NewSnapshot bool
}

// NextDraftRevision advances a draft letter by one. An empty revision
// starts the sequence at "a".
func NextDraftRevision(rev string) (string, error) {
	r := strings.TrimSpace(rev)
	if r == "" {
		return InitialRevision, nil
	}

	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return "", fmt.Errorf("%w: %q is not a draft revision", ErrInvalidRevision, rev)
	}

	if r == "z" {
		return "", fmt.Errorf("%w: revision z reached", ErrRevisionExhausted)
	}

	return string(r[0] + 1), nil
}

// IsNumericRevision reports whether rev is a released (numeric) label.
func IsNumericRevision(rev string) bool {
	_, ok := parseNumericRevision(rev)
	return ok
}

// DecideRevision maps the current revision and the requested status change
// to the revision the saved snapshot carries.
func DecideRevision(current string, from, to Status, bump bool) (Decision, error) {
	if from.IsTerminal() {
		return Decision{}, fmt.Errorf("%w: status is %s", ErrLocked, from)
	}

	if !to.Valid() {
		return Decision{}, fmt.Errorf("%w: %q", ErrInvalidStatus, to)
	}

	if from == StatusDraft {
		if to == StatusDraft {
			// A draft that already carries a number stays numeric.
			if n, ok := parseNumericRevision(current); ok {
				return Decision{Revision: strconv.Itoa(n + 1), NewSnapshot: true}, nil
			}

			next, err := NextDraftRevision(current)
			if err != nil {
				return Decision{}, err
			}

			return Decision{Revision: next, NewSnapshot: true}, nil
		}

		if n, ok := parseNumericRevision(current); ok && n >= 1 {
			return Decision{Revision: strconv.Itoa(n), NewSnapshot: true}, nil
		}

		return Decision{Revision: "1", NewSnapshot: true}, nil
	}

	if to == StatusDraft {
		return Decision{}, fmt.Errorf("%w: a %s purchase order cannot go back to draft", ErrIllegalTransition, from)
	}

	if to == from && !bump {
		return Decision{Revision: strings.TrimSpace(current), NewSnapshot: false}, nil
	}

	n, ok := parseNumericRevision(current)
	if !ok {
		return Decision{Revision: "1", NewSnapshot: true}, nil
	}

	return Decision{Revision: strconv.Itoa(n + 1), NewSnapshot: true}, nil
}

func parseNumericRevision(rev string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(rev))
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}
