package des

import "strings"

// TupleLabel is the parsed view of a product state name: its component substate names in order.
//
// Parsing strips the enclosing parenthesis pair and splits on every comma, without regard to nesting.
// A doubled synthesis label such as ((A,B),(A,B)) therefore parses as ["(A", "B)", "(A", "B)"]; its
// first half still carries the inner parentheses and rejoins to (A,B).
type TupleLabel []string

// ParseTupleLabel Parses a state name of the form (c1,c2,...,cn).
func ParseTupleLabel(name string) (TupleLabel, error) {
	if len(name) < 2 || name[0] != '(' || name[len(name)-1] != ')' {
		return nil, &LabelError{State: name, Reason: "missing enclosing parentheses", Err: ErrMalformedStateLabel}
	}
	inner := name[1 : len(name)-1]
	if inner == "" {
		return nil, &LabelError{State: name, Reason: "empty tuple", Err: ErrMalformedStateLabel}
	}
	return strings.Split(inner, ","), nil
}

// Arity Returns the number of components.
func (l TupleLabel) Arity() int {
	return len(l)
}

// String Returns the state name the label was parsed from.
func (l TupleLabel) String() string {
	return "(" + strings.Join(l, ",") + ")"
}

// IsDoubled Returns true if the label is a doubled tuple: even arity with a first half that forms a
// parenthesized group of its own.
func (l TupleLabel) IsDoubled() bool {
	n := len(l)
	if n == 0 || n%2 != 0 {
		return false
	}
	half := l[:n/2]
	return strings.HasPrefix(half[0], "(") && strings.HasSuffix(half[len(half)-1], ")")
}

// Halve Returns the canonical name of a doubled label: the comma-joined first half. The second half is
// discarded without comparing it to the first.
func (l TupleLabel) Halve() (string, error) {
	if len(l)%2 != 0 {
		return "", &LabelError{State: l.String(), Reason: "odd arity", Err: ErrMalformedStateLabel}
	}
	if !l.IsDoubled() {
		return "", &LabelError{State: l.String(), Reason: "not a doubled tuple", Err: ErrMalformedStateLabel}
	}
	return strings.Join(l[:len(l)/2], ","), nil
}
