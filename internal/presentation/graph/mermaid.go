package graph

import (
	"fmt"
	"strings"

	"github.com/geange/des"
)

// GenerateMermaid produces a Mermaid flowchart for an automaton. This is the layout a workspace derives
// when a model is inserted.
// It applies DES styling:
// - Initial: entry arrow from a start point
// - Marked: (((Double circle)))
// - Default: ((Circle))
// - Uncontrollable transition: dotted arrow
// State labels come from the layout annotation when present, the state name otherwise.
func GenerateMermaid(a *des.Automaton) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	if initial := a.Initial(); initial >= 0 {
		sb.WriteString(fmt.Sprintf("    start_(( )) --> %s\n", stateID(initial)))
	}

	for s := 0; s < a.NumStates(); s++ {
		opener, closer := "((", "))"
		if a.IsMarked(s) {
			opener, closer = "(((", ")))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", stateID(s), opener, escape(label(a.State(s))), closer))
	}

	for _, t := range a.Transitions() {
		ev := a.Event(t.Event)
		arrow := fmt.Sprintf("-- \"%s\" -->", escape(ev.Name))
		if !ev.Controllable {
			arrow = fmt.Sprintf("-. \"%s\" .->", escape(ev.Name))
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", stateID(t.Source), arrow, stateID(t.Dest)))
	}

	return sb.String()
}

func label(st des.State) string {
	if st.Annotation != nil {
		return st.Annotation.Text
	}
	return st.Name
}

func stateID(s int) string {
	return fmt.Sprintf("s%d", s)
}

// Escape double quotes for Mermaid labels
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
