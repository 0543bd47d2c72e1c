package des

import "github.com/bits-and-blooms/bitset"

// Run Returns true if trace, a sequence of event names, can be executed from the initial state and
// some run ends in a marked state.
func Run(a *Automaton, trace []string) bool {
	if a.initial < 0 {
		return false
	}

	numStates := uint(a.NumStates())
	current := bitset.New(numStates)
	next := bitset.New(numStates)
	current.Set(uint(a.initial))

	for _, name := range trace {
		event, ok := a.eventIndex[name]
		if !ok {
			return false
		}
		for s, ok := current.NextSet(0); ok; s, ok = current.NextSet(s + 1) {
			for _, dest := range a.Step(int(s), event) {
				next.Set(uint(dest))
			}
		}
		if next.None() {
			return false
		}
		// swap "current" with "next", clear "next"
		current, next = next, current
		next.ClearAll()
	}

	for s, ok := current.NextSet(0); ok; s, ok = current.NextSet(s + 1) {
		if a.IsMarked(int(s)) {
			return true
		}
	}
	return false
}

// Reachable Returns the set of states reachable from the initial state.
func Reachable(a *Automaton) *bitset.BitSet {
	numStates := a.NumStates()
	live := bitset.New(uint(numStates))
	if a.initial < 0 {
		return live
	}

	workList := []int{a.initial}
	live.Set(uint(a.initial))

	for len(workList) > 0 {
		s := workList[0]
		workList = workList[1:]
		for e := range a.events {
			for _, dest := range a.Step(s, e) {
				if !live.Test(uint(dest)) {
					live.Set(uint(dest))
					workList = append(workList, dest)
				}
			}
		}
	}
	return live
}
