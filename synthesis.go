package des

import (
	"context"
	"fmt"
)

// Synthesizer is the external supervisory-control toolkit. Implementations are provided by the caller.
type Synthesizer interface {
	// Sync returns the synchronous product of a and b. Every state of the result is named by the
	// 2-tuple (a-state,b-state).
	Sync(ctx context.Context, a, b *Automaton) (*Automaton, error)

	// Trim returns the reachable and coreachable part of a. States are never renamed.
	Trim(ctx context.Context, a *Automaton) (*Automaton, error)

	// Supcon returns the supremal controllable sublanguage of spec with respect to plant. Every state
	// of the result is named by a doubled tuple ((g1,g2),(e1,e2)).
	Supcon(ctx context.Context, plant, spec *Automaton) (*Automaton, error)
}

// Workspace is the presentation sink the pipeline publishes results to. See package workspace.
type Workspace interface {
	Add(ctx context.Context, a *Automaton) error
	Remove(ctx context.Context, name string) error
	NotifySaved(ctx context.Context, name string) error
}

// Result holds the automata produced by Synthesize.
type Result struct {
	Joint      *Automaton
	Spec       *Automaton
	Supervisor *Automaton
}

// Synthesize Solves the control problem for two plants: it builds their joint behaviour, derives the
// legal specification by removing the states matched by illegal and trimming, computes the supervisor
// and publishes all three to ws. The supervisor's doubled state names are canonicalized before it is
// shown.
func Synthesize(ctx context.Context, engine Synthesizer, ws Workspace, plantA, plantB *Automaton, illegal Predicate, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	logger := o.logger

	joint, err := engine.Sync(ctx, plantA, plantB)
	if err != nil {
		return nil, fmt.Errorf("sync %s, %s: %w", plantA.Name, plantB.Name, err)
	}
	joint.Name = o.jointName
	logger.Info("computed joint behaviour", "automaton", joint.Name, "states", joint.NumStates())

	spec, report, err := filter(joint, illegal, logger)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", joint.Name, err)
	}
	logger.Info("removed illegal states", "removed", len(report.Removed), "transitions_removed", report.TransitionsRemoved)

	spec, err = engine.Trim(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("trim %s: %w", o.specName, err)
	}
	spec.Name = o.specName
	logger.Info("computed specification", "automaton", spec.Name, "states", spec.NumStates())

	sup, err := engine.Supcon(ctx, joint, spec)
	if err != nil {
		return nil, fmt.Errorf("supcon: %w", err)
	}
	sup.Name = o.supervisor
	logger.Info("computed supervisor", "automaton", sup.Name, "states", sup.NumStates())

	for _, a := range []*Automaton{joint, spec, sup} {
		if err := ws.Add(ctx, a); err != nil {
			return nil, fmt.Errorf("publish %s: %w", a.Name, err)
		}
	}

	// A failing rewrite must leave the published supervisor in place.
	canonical := sup.Clone()
	if err := canonicalize(canonical, logger); err != nil {
		return nil, fmt.Errorf("canonicalize %s: %w", sup.Name, err)
	}

	// The workspace derives its layout on insertion only, so the supervisor is taken out and inserted
	// again. Marking it saved first keeps Remove from refusing an unsaved model.
	if err := ws.NotifySaved(ctx, sup.Name); err != nil {
		return nil, err
	}
	if err := ws.Remove(ctx, sup.Name); err != nil {
		return nil, fmt.Errorf("withdraw %s: %w", sup.Name, err)
	}
	if err := ws.Add(ctx, canonical); err != nil {
		return nil, fmt.Errorf("publish %s: %w", sup.Name, err)
	}
	sup = canonical
	logger.Info("published supervisor", "automaton", sup.Name)

	return &Result{Joint: joint, Spec: spec, Supervisor: sup}, nil
}
