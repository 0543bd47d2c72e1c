// Package workspace holds finished automata for presentation.
//
// A sink derives the layout of a model (its Mermaid diagram) only when the model is inserted. Mutating
// an automaton after Add is not observed: the sink keeps its own copy. To show a rewritten model, call
// Replace, which is Remove followed by Add.
package workspace

import (
	"context"
	"errors"

	"github.com/geange/des"
)

var (
	// ErrUnknownModel is returned when a name is not present in the workspace.
	ErrUnknownModel = errors.New("unknown model")

	// ErrModelExists is returned when adding a model whose name is already taken.
	ErrModelExists = errors.New("model already exists")

	// ErrUnsaved is returned by Remove for a model that was not marked saved.
	ErrUnsaved = errors.New("model has unsaved changes")
)

// Sink is a workspace that accepts finished automata for display.
type Sink interface {
	// Add inserts a copy of a under a.Name and derives its layout. The model starts out unsaved.
	// Models that fail Validate are refused with des.ErrInvalidAutomaton.
	Add(ctx context.Context, a *des.Automaton) error

	// Remove drops a model. Unsaved models are refused with ErrUnsaved.
	Remove(ctx context.Context, name string) error

	// Replace removes the model called name, regardless of its saved state, and adds a in its place. a is
	// validated as in Add.
	// Returns ErrUnknownModel if name is not present.
	Replace(ctx context.Context, name string, a *des.Automaton) error

	// NotifySaved marks a model as saved so it can be removed without a prompt. Idempotent; a no-op
	// for names that are not present.
	NotifySaved(ctx context.Context, name string) error

	// Get returns a copy of a model.
	Get(ctx context.Context, name string) (*des.Automaton, error)

	// Layout returns the layout derived when the model was inserted.
	Layout(ctx context.Context, name string) (string, error)

	// List returns the names of all models, sorted.
	List(ctx context.Context) ([]string, error)

	// Clear drops every model without prompting.
	Clear(ctx context.Context) error
}

var _ des.Workspace = Sink(nil)
