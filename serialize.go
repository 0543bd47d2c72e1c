package des

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// modelFile is the on-disk shape of an automaton.
type modelFile struct {
	Name        string           `yaml:"name"`
	Events      []eventEntry     `yaml:"events"`
	States      []stateEntry     `yaml:"states"`
	Transitions []transitionItem `yaml:"transitions"`
}

type eventEntry struct {
	Name         string `yaml:"name"`
	Controllable bool   `yaml:"controllable"`
	Observable   *bool  `yaml:"observable,omitempty"`
}

type stateEntry struct {
	Name    string  `yaml:"name"`
	Initial bool    `yaml:"initial,omitempty"`
	Marked  bool    `yaml:"marked,omitempty"`
	Layout  *string `yaml:"layout,omitempty"`
}

type transitionItem struct {
	Source string `yaml:"source"`
	Event  string `yaml:"event"`
	Target string `yaml:"target"`
}

// ReadYAML Decodes an automaton from YAML and validates it.
func ReadYAML(r io.Reader) (*Automaton, error) {
	var mf modelFile
	if err := yaml.NewDecoder(r).Decode(&mf); err != nil {
		return nil, fmt.Errorf("failed to decode model: %w", err)
	}

	a := NewWithCapacity(mf.Name, len(mf.States), len(mf.Transitions))
	for _, e := range mf.Events {
		observable := true
		if e.Observable != nil {
			observable = *e.Observable
		}
		if _, err := a.addEvent(Event{Name: e.Name, Controllable: e.Controllable, Observable: observable}); err != nil {
			return nil, err
		}
	}

	for _, st := range mf.States {
		s, err := a.CreateState(st.Name)
		if err != nil {
			return nil, err
		}
		if st.Layout != nil {
			a.SetAnnotation(s, *st.Layout)
		}
		a.SetMarked(s, st.Marked)
		if st.Initial {
			if a.initial != -1 {
				return nil, fmt.Errorf("%w: more than one initial state", ErrInvalidAutomaton)
			}
			a.initial = s
		}
	}

	for _, t := range mf.Transitions {
		if err := a.Connect(t.Source, t.Event, t.Target); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAutomaton, err)
		}
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// WriteYAML Encodes the automaton as YAML.
func WriteYAML(w io.Writer, a *Automaton) error {
	mf := modelFile{Name: a.Name}

	for _, ev := range a.events {
		entry := eventEntry{Name: ev.Name, Controllable: ev.Controllable}
		if !ev.Observable {
			observable := false
			entry.Observable = &observable
		}
		mf.Events = append(mf.Events, entry)
	}

	for s, st := range a.states {
		entry := stateEntry{Name: st.Name, Initial: s == a.initial, Marked: a.IsMarked(s)}
		if st.Annotation != nil {
			text := st.Annotation.Text
			entry.Layout = &text
		}
		mf.States = append(mf.States, entry)
	}

	for _, t := range a.Transitions() {
		mf.Transitions = append(mf.Transitions, transitionItem{
			Source: a.states[t.Source].Name,
			Event:  a.events[t.Event].Name,
			Target: a.states[t.Dest].Name,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&mf); err != nil {
		return fmt.Errorf("failed to encode model: %w", err)
	}
	return enc.Close()
}

// LoadFile Reads an automaton from a YAML file.
func LoadFile(path string) (*Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := ReadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// SaveFile Writes an automaton to a YAML file.
func SaveFile(path string, a *Automaton) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteYAML(f, a); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
