package des

import (
	"fmt"
	"log/slog"
)

// Canonicalize Rewrites every doubled state name ((c1,c2),(c1,c2)) to its first half (c1,c2), and the
// text of the state's layout annotation along with it. Transitions, marking, events and the initial
// state are not touched.
//
// The two halves are not compared; a mismatching second half is silently dropped. Canonical names must
// be pairwise distinct, otherwise ErrDuplicateCanonicalLabel is returned. A name that is not doubled
// (including one that was already canonicalized) yields ErrMalformedStateLabel. On error the automaton
// is left as it was.
func Canonicalize(a *Automaton, opts ...Option) error {
	return canonicalize(a, newOptions(opts).logger)
}

func canonicalize(a *Automaton, logger *slog.Logger) error {
	names := make([]string, len(a.states))
	owner := make(map[string]int, len(a.states))

	for s, st := range a.states {
		label, err := ParseTupleLabel(st.Name)
		if err != nil {
			return err
		}
		name, err := label.Halve()
		if err != nil {
			return err
		}
		if prev, ok := owner[name]; ok {
			return &LabelError{
				State:  st.Name,
				Reason: fmt.Sprintf("%q and %q both map to %q", a.states[prev].Name, st.Name, name),
				Err:    ErrDuplicateCanonicalLabel,
			}
		}
		owner[name] = s
		names[s] = name
	}

	// Every name is valid; commit.
	for s := range a.states {
		a.states[s].Name = names[s]
		if ann := a.states[s].Annotation; ann != nil {
			ann.Text = names[s]
		}
	}
	a.stateIndex = owner

	logger.Debug("canonicalized automaton", "automaton", a.Name, "states", len(names))
	return nil
}
