package des

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedStateLabel is returned when a state name is not a parenthesized, comma-separated tuple,
	// or when its arity does not fit the pass (odd arity for Canonicalize).
	ErrMalformedStateLabel = errors.New("malformed state label")

	// ErrInitialStateRemoved is returned when a filter predicate matches the initial state.
	ErrInitialStateRemoved = errors.New("initial state removed")

	// ErrDuplicateCanonicalLabel is returned when two states halve to the same canonical name.
	ErrDuplicateCanonicalLabel = errors.New("duplicate canonical label")

	ErrInvalidAutomaton = errors.New("invalid automaton")
	ErrUnknownState     = errors.New("unknown state")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrDuplicateState   = errors.New("duplicate state")
	ErrDuplicateEvent   = errors.New("duplicate event")
)

// LabelError reports a pass failure tied to one state label.
type LabelError struct {
	State  string // Name of the offending state
	Reason string // Human-readable detail
	Err    error  // One of the label sentinels
}

func (e *LabelError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("state %q: %v", e.State, e.Err)
	}
	return fmt.Sprintf("state %q: %v: %s", e.State, e.Err, e.Reason)
}

func (e *LabelError) Unwrap() error {
	return e.Err
}
