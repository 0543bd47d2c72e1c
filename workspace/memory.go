package workspace

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/geange/des"
	"github.com/geange/des/internal/presentation/graph"
)

type entry struct {
	model  *des.Automaton
	layout string
	saved  bool
}

// Memory implements Sink in memory.
// Safe for concurrent use.
type Memory struct {
	entries map[string]*entry
	mu      sync.RWMutex
}

// NewMemory creates a new empty in-memory workspace.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]*entry),
	}
}

func newEntry(a *des.Automaton) (*entry, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	model := a.Clone()
	return &entry{model: model, layout: graph.GenerateMermaid(model)}, nil
}

func (m *Memory) Add(ctx context.Context, a *des.Automaton) error {
	e, err := newEntry(a)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[a.Name]; ok {
		return fmt.Errorf("%w: %q", ErrModelExists, a.Name)
	}
	m.entries[a.Name] = e
	return nil
}

func (m *Memory) Remove(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	if !e.saved {
		return fmt.Errorf("%w: %q", ErrUnsaved, name)
	}
	delete(m.entries, name)
	return nil
}

func (m *Memory) Replace(ctx context.Context, name string, a *des.Automaton) error {
	e, err := newEntry(a)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	if _, ok := m.entries[a.Name]; ok && a.Name != name {
		return fmt.Errorf("%w: %q", ErrModelExists, a.Name)
	}
	delete(m.entries, name)
	m.entries[a.Name] = e
	return nil
}

func (m *Memory) NotifySaved(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[name]; ok {
		e.saved = true
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, name string) (*des.Automaton, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	// Copy on read so callers cannot reach the stored model
	return e.model.Clone(), nil
}

func (m *Memory) Layout(ctx context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return e.layout, nil
}

func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*entry)
	return nil
}
