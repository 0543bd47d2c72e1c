package des

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Automaton Represents a discrete-event system automaton: its states, events and transitions. States are
// integers and must be created using CreateState; each state carries a unique name (for product and
// synthesis results a tuple-encoded label, see TupleLabel). Mark a state using SetMarked and choose the
// initial state using SetInitial. Transitions are (source, event, dest) triples and may be
// nondeterministic; duplicate triples are collapsed once the automaton is finished.
type Automaton struct {
	// Name identifies the model in a workspace.
	Name string

	states []State

	// Maps a state name to its index in states.
	stateIndex map[string]int

	events     []Event
	eventIndex map[string]int

	// Holds source, event, dest for each transition. Sorted and reduced lazily, see finish.
	transitions []Transition

	// True if transitions are sorted by source, then event, then dest, with no duplicates.
	sorted bool

	// Index of the initial state, or -1 if not set yet.
	initial int

	isMarked *bitset.BitSet
}

// State is a single state of an automaton.
type State struct {
	Name string

	// Annotation is the optional layout element shown for this state. It is presentation only and
	// never takes part in the semantics of a pass.
	Annotation *Annotation
}

// Annotation is the display text attached to a state by a presentation layer.
type Annotation struct {
	Text string
}

// Event is an event of the alphabet. Uncontrollable events cannot be disabled by a supervisor.
type Event struct {
	Name         string
	Controllable bool
	Observable   bool
}

// Transition is a single (source, event, dest) triple, by state and event index.
type Transition struct {
	Source int
	Event  int
	Dest   int
}

func New(name string) *Automaton {
	return NewWithCapacity(name, 2, 2)
}

func NewWithCapacity(name string, numStates, numTransitions int) *Automaton {
	return &Automaton{
		Name:        name,
		states:      make([]State, 0, numStates),
		stateIndex:  make(map[string]int, numStates),
		eventIndex:  make(map[string]int),
		transitions: make([]Transition, 0, numTransitions),
		sorted:      true,
		initial:     -1,
		isMarked:    bitset.New(uint(numStates)),
	}
}

// CreateState Create a new state with the given name. Names must be unique.
func (a *Automaton) CreateState(name string) (int, error) {
	return a.createState(State{Name: name})
}

func (a *Automaton) createState(st State) (int, error) {
	if _, ok := a.stateIndex[st.Name]; ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateState, st.Name)
	}
	state := len(a.states)
	a.states = append(a.states, st)
	a.stateIndex[st.Name] = state
	return state, nil
}

// AddEvent Add a new event to the alphabet. Events are observable unless changed with SetObservable.
func (a *Automaton) AddEvent(name string, controllable bool) (int, error) {
	return a.addEvent(Event{Name: name, Controllable: controllable, Observable: true})
}

func (a *Automaton) addEvent(ev Event) (int, error) {
	if _, ok := a.eventIndex[ev.Name]; ok {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateEvent, ev.Name)
	}
	event := len(a.events)
	a.events = append(a.events, ev)
	a.eventIndex[ev.Name] = event
	return event, nil
}

// SetObservable Set or clear the observable flag of an event.
func (a *Automaton) SetObservable(event int, observable bool) {
	a.events[event].Observable = observable
}

// SetMarked Set or clear this state as a marked state.
func (a *Automaton) SetMarked(state int, marked bool) {
	a.isMarked.SetTo(uint(state), marked)
}

// IsMarked Returns true if this state is a marked state.
func (a *Automaton) IsMarked(state int) bool {
	return a.isMarked.Test(uint(state))
}

// SetInitial Set the initial state.
func (a *Automaton) SetInitial(state int) error {
	if state < 0 || state >= len(a.states) {
		return fmt.Errorf("%w: index %d", ErrUnknownState, state)
	}
	a.initial = state
	return nil
}

// Initial Returns the initial state, or -1 if none was set.
func (a *Automaton) Initial() int {
	return a.initial
}

// SetAnnotation Attach a layout annotation with the given text to a state.
func (a *Automaton) SetAnnotation(state int, text string) {
	a.states[state].Annotation = &Annotation{Text: text}
}

// AddTransition Add a new transition with the specified source, event and dest.
func (a *Automaton) AddTransition(source, event, dest int) error {
	if source < 0 || source >= len(a.states) {
		return fmt.Errorf("%w: source index %d", ErrUnknownState, source)
	}
	if dest < 0 || dest >= len(a.states) {
		return fmt.Errorf("%w: dest index %d", ErrUnknownState, dest)
	}
	if event < 0 || event >= len(a.events) {
		return fmt.Errorf("%w: index %d", ErrUnknownEvent, event)
	}
	a.transitions = append(a.transitions, Transition{Source: source, Event: event, Dest: dest})
	a.sorted = false
	return nil
}

// Connect Add a new transition by state and event names.
func (a *Automaton) Connect(source, event, dest string) error {
	s, ok := a.stateIndex[source]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, source)
	}
	d, ok := a.stateIndex[dest]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, dest)
	}
	e, ok := a.eventIndex[event]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return a.AddTransition(s, e, d)
}

// State Returns the state with the given index.
func (a *Automaton) State(state int) State {
	return a.states[state]
}

// StateIndex Returns the index of the named state.
func (a *Automaton) StateIndex(name string) (int, bool) {
	s, ok := a.stateIndex[name]
	return s, ok
}

// EventIndex Returns the index of the named event.
func (a *Automaton) EventIndex(name string) (int, bool) {
	e, ok := a.eventIndex[name]
	return e, ok
}

// Event Returns the event with the given index.
func (a *Automaton) Event(event int) Event {
	return a.events[event]
}

// Events Returns a copy of the alphabet.
func (a *Automaton) Events() []Event {
	events := make([]Event, len(a.events))
	copy(events, a.events)
	return events
}

// StateNames Returns state names in index order.
func (a *Automaton) StateNames() []string {
	names := make([]string, len(a.states))
	for i, st := range a.states {
		names[i] = st.Name
	}
	return names
}

// MarkedStates Returns the names of all marked states in index order.
func (a *Automaton) MarkedStates() []string {
	names := make([]string, 0, a.isMarked.Count())
	for s, ok := a.isMarked.NextSet(0); ok && s < uint(len(a.states)); s, ok = a.isMarked.NextSet(s + 1) {
		names = append(names, a.states[s].Name)
	}
	return names
}

// NumStates How many states this automaton has.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// NumEvents How many events the alphabet has.
func (a *Automaton) NumEvents() int {
	return len(a.events)
}

// NumTransitions How many distinct transitions this automaton has.
func (a *Automaton) NumTransitions() int {
	a.finish()
	return len(a.transitions)
}

// Transitions Returns all transitions, sorted by source, then event, then dest.
func (a *Automaton) Transitions() []Transition {
	a.finish()
	transitions := make([]Transition, len(a.transitions))
	copy(transitions, a.transitions)
	return transitions
}

// Step Returns the destinations reachable from state on event.
func (a *Automaton) Step(state, event int) []int {
	a.finish()
	from := sort.Search(len(a.transitions), func(i int) bool {
		t := a.transitions[i]
		return t.Source > state || (t.Source == state && t.Event >= event)
	})

	var dests []int
	for i := from; i < len(a.transitions); i++ {
		t := a.transitions[i]
		if t.Source != state || t.Event != event {
			break
		}
		dests = append(dests, t.Dest)
	}
	return dests
}

// Clone Returns a deep copy of the automaton, annotations included.
func (a *Automaton) Clone() *Automaton {
	a.finish()
	c := NewWithCapacity(a.Name, len(a.states), len(a.transitions))
	for _, st := range a.states {
		_, _ = c.createState(st.clone())
	}
	for _, ev := range a.events {
		_, _ = c.addEvent(ev)
	}
	c.transitions = append(c.transitions, a.transitions...)
	c.initial = a.initial
	c.isMarked = a.isMarked.Clone()
	return c
}

// Validate Checks that the initial state is set and that every transition references existing states
// and events.
func (a *Automaton) Validate() error {
	if a.initial < 0 || a.initial >= len(a.states) {
		return fmt.Errorf("%w: no initial state", ErrInvalidAutomaton)
	}
	for _, t := range a.transitions {
		if t.Source < 0 || t.Source >= len(a.states) || t.Dest < 0 || t.Dest >= len(a.states) {
			return fmt.Errorf("%w: transition %v references a missing state", ErrInvalidAutomaton, t)
		}
		if t.Event < 0 || t.Event >= len(a.events) {
			return fmt.Errorf("%w: transition %v references a missing event", ErrInvalidAutomaton, t)
		}
	}
	return nil
}

func (a *Automaton) String() string {
	return fmt.Sprintf("%s{states: %d, events: %d, transitions: %d}",
		a.Name, a.NumStates(), a.NumEvents(), a.NumTransitions())
}

func (st State) clone() State {
	if st.Annotation != nil {
		ann := *st.Annotation
		st.Annotation = &ann
	}
	return st
}

// Sorts the transitions (first by source, then event, then dest) and drops duplicates.
func (a *Automaton) finish() {
	if a.sorted {
		return
	}
	a.transitions = reduceTransitions(a.transitions)
	a.sorted = true
}

// Returns the finished transitions without finishing a: the backing slice itself when already sorted,
// otherwise a sorted and reduced copy.
func (a *Automaton) sortedTransitions() []Transition {
	if a.sorted {
		return a.transitions
	}
	transitions := make([]Transition, len(a.transitions))
	copy(transitions, a.transitions)
	return reduceTransitions(transitions)
}

// Sorts transitions in place and drops duplicates, returning the shortened slice.
func reduceTransitions(transitions []Transition) []Transition {
	sort.Sort(sourceEventDestSorter(transitions))

	upto := 0
	for i, t := range transitions {
		if i > 0 && t == transitions[upto-1] {
			continue
		}
		transitions[upto] = t
		upto++
	}
	return transitions[:upto]
}

// Sorts transitions by source, ascending, then event ascending, then dest ascending
type sourceEventDestSorter []Transition

func (r sourceEventDestSorter) Len() int {
	return len(r)
}

func (r sourceEventDestSorter) Less(i, j int) bool {
	// First source:
	if r[i].Source != r[j].Source {
		return r[i].Source < r[j].Source
	}

	// Then event:
	if r[i].Event != r[j].Event {
		return r[i].Event < r[j].Event
	}

	// Then dest:
	return r[i].Dest < r[j].Dest
}

func (r sourceEventDestSorter) Swap(i, j int) {
	r[i], r[j] = r[j], r[i]
}
