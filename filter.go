package des

import (
	"log/slog"

	"github.com/bits-and-blooms/bitset"
)

// Predicate decides whether a state label is illegal and the state must be removed.
type Predicate func(TupleLabel) bool

// FilterReport describes what a filter pass removed.
type FilterReport struct {
	Examined           int
	Removed            []string
	TransitionsRemoved int
}

// ComponentsEqual Returns a predicate matching labels whose i-th and j-th components are equal. Labels
// too short to have both components never match.
func ComponentsEqual(i, j int) Predicate {
	return func(l TupleLabel) bool {
		if i < 0 || j < 0 || i >= len(l) || j >= len(l) {
			return false
		}
		return l[i] == l[j]
	}
}

// AllComponentsEqual Returns a predicate matching labels whose components are all the same.
func AllComponentsEqual() Predicate {
	return func(l TupleLabel) bool {
		if len(l) == 0 {
			return false
		}
		for _, c := range l[1:] {
			if c != l[0] {
				return false
			}
		}
		return true
	}
}

// AnyComponentsEqual Returns a predicate matching labels where at least two components are equal.
func AnyComponentsEqual() Predicate {
	return func(l TupleLabel) bool {
		seen := make(map[string]struct{}, len(l))
		for _, c := range l {
			if _, ok := seen[c]; ok {
				return true
			}
			seen[c] = struct{}{}
		}
		return false
	}
}

// Not Negates a predicate.
func Not(p Predicate) Predicate {
	return func(l TupleLabel) bool {
		return !p(l)
	}
}

// Filter Returns a new automaton without the states whose label matches pred, and without every
// transition leaving or entering such a state. Events are kept even if no transition uses them any
// more. The input is left unchanged. No reachability restriction is applied.
func Filter(a *Automaton, pred Predicate, opts ...Option) (*Automaton, error) {
	result, _, err := FilterWithReport(a, pred, opts...)
	return result, err
}

// FilterInPlace Like Filter, but replaces the contents of a with the result. On error a is untouched.
func FilterInPlace(a *Automaton, pred Predicate, opts ...Option) error {
	result, err := Filter(a, pred, opts...)
	if err != nil {
		return err
	}
	*a = *result
	return nil
}

// FilterWithReport Like Filter, and also reports the removed states.
func FilterWithReport(a *Automaton, pred Predicate, opts ...Option) (*Automaton, FilterReport, error) {
	return filter(a, pred, newOptions(opts).logger)
}

func filter(a *Automaton, pred Predicate, logger *slog.Logger) (*Automaton, FilterReport, error) {
	numStates := a.NumStates()
	report := FilterReport{Examined: numStates}

	// Decide on a read-only pass; states are only dropped while rebuilding below.
	removed := bitset.New(uint(numStates))
	for s := 0; s < numStates; s++ {
		label, err := ParseTupleLabel(a.states[s].Name)
		if err != nil {
			return nil, FilterReport{}, err
		}
		if pred(label) {
			removed.Set(uint(s))
		}
	}

	if a.initial >= 0 && removed.Test(uint(a.initial)) {
		return nil, FilterReport{}, &LabelError{State: a.states[a.initial].Name, Err: ErrInitialStateRemoved}
	}

	transitions := a.sortedTransitions()
	mp := make([]int, numStates)

	result := NewWithCapacity(a.Name, numStates-int(removed.Count()), len(transitions))
	for _, ev := range a.events {
		_, _ = result.addEvent(ev)
	}
	for s := 0; s < numStates; s++ {
		if removed.Test(uint(s)) {
			mp[s] = -1
			report.Removed = append(report.Removed, a.states[s].Name)
			continue
		}
		mp[s], _ = result.createState(a.states[s].clone())
		result.SetMarked(mp[s], a.IsMarked(s))
	}
	if a.initial >= 0 {
		result.initial = mp[a.initial]
	}

	// Keep transitions whose endpoints both survive:
	for _, t := range transitions {
		if mp[t.Source] == -1 || mp[t.Dest] == -1 {
			report.TransitionsRemoved++
			continue
		}
		result.transitions = append(result.transitions, Transition{Source: mp[t.Source], Event: t.Event, Dest: mp[t.Dest]})
	}

	logger.Debug("filtered automaton",
		"automaton", a.Name,
		"examined", report.Examined,
		"removed", len(report.Removed),
		"transitions_removed", report.TransitionsRemoved)

	return result, report, nil
}
