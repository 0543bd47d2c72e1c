package workspace

import (
	"context"
	"strings"
	"testing"

	"github.com/geange/des"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractModel(t *testing.T, name, state string) *des.Automaton {
	t.Helper()

	a := des.New(name)
	s, err := a.CreateState(state)
	require.NoError(t, err)
	a.SetAnnotation(s, state)
	a.SetMarked(s, true)
	require.NoError(t, a.SetInitial(s))
	e, err := a.AddEvent("e", true)
	require.NoError(t, err)
	require.NoError(t, a.AddTransition(s, e, s))
	return a
}

// RunSinkContract runs a suite of tests to verify that a Sink implementation
// adheres to the defined interface contract.
func RunSinkContract(t *testing.T, sink Sink) {
	ctx := context.Background()
	require.NoError(t, sink.Clear(ctx))

	t.Run("Add and Get", func(t *testing.T) {
		defer func() { _ = sink.Clear(ctx) }()

		a := contractModel(t, "G", "(A,B)")
		require.NoError(t, sink.Add(ctx, a))

		got, err := sink.Get(ctx, "G")
		require.NoError(t, err)
		assert.Equal(t, []string{"(A,B)"}, got.StateNames())
		assert.Equal(t, 1, got.NumTransitions())

		err = sink.Add(ctx, a)
		assert.ErrorIs(t, err, ErrModelExists)
	})

	t.Run("Mutation After Add Is Not Observed", func(t *testing.T) {
		defer func() { _ = sink.Clear(ctx) }()

		a := contractModel(t, "G", "(A,B)")
		require.NoError(t, sink.Add(ctx, a))

		a.SetAnnotation(0, "changed")
		layout, err := sink.Layout(ctx, "G")
		require.NoError(t, err)
		assert.Contains(t, layout, "(A,B)")
		assert.NotContains(t, layout, "changed")
	})

	t.Run("Remove Requires Saved", func(t *testing.T) {
		defer func() { _ = sink.Clear(ctx) }()

		require.NoError(t, sink.Add(ctx, contractModel(t, "G", "(A,B)")))

		err := sink.Remove(ctx, "G")
		assert.ErrorIs(t, err, ErrUnsaved)

		require.NoError(t, sink.NotifySaved(ctx, "G"))
		require.NoError(t, sink.NotifySaved(ctx, "G"), "NotifySaved should be idempotent")
		require.NoError(t, sink.Remove(ctx, "G"))

		_, err = sink.Get(ctx, "G")
		assert.ErrorIs(t, err, ErrUnknownModel)
	})

	t.Run("Remove Unknown", func(t *testing.T) {
		err := sink.Remove(ctx, "missing")
		assert.ErrorIs(t, err, ErrUnknownModel)
	})

	t.Run("NotifySaved Unknown", func(t *testing.T) {
		assert.NoError(t, sink.NotifySaved(ctx, "missing"))
	})

	t.Run("Replace", func(t *testing.T) {
		defer func() { _ = sink.Clear(ctx) }()

		require.NoError(t, sink.Add(ctx, contractModel(t, "SG", "((A,B),(A,B))")))

		err := sink.Replace(ctx, "missing", contractModel(t, "missing", "(A,B)"))
		assert.ErrorIs(t, err, ErrUnknownModel)

		require.NoError(t, sink.Replace(ctx, "SG", contractModel(t, "SG", "(A,B)")))

		layout, err := sink.Layout(ctx, "SG")
		require.NoError(t, err)
		assert.Contains(t, layout, "\"(A,B)\"")
		assert.False(t, strings.Contains(layout, "((A,B),(A,B))"))
	})

	t.Run("Invalid Model Is Rejected", func(t *testing.T) {
		defer func() { _ = sink.Clear(ctx) }()

		broken := des.New("broken")
		_, err := broken.CreateState("(A,B)")
		require.NoError(t, err)

		err = sink.Add(ctx, broken)
		assert.ErrorIs(t, err, des.ErrInvalidAutomaton)
		_, err = sink.Get(ctx, "broken")
		assert.ErrorIs(t, err, ErrUnknownModel)

		require.NoError(t, sink.Add(ctx, contractModel(t, "G", "(A,B)")))
		broken.Name = "G"
		err = sink.Replace(ctx, "G", broken)
		assert.ErrorIs(t, err, des.ErrInvalidAutomaton)

		got, err := sink.Get(ctx, "G")
		require.NoError(t, err)
		assert.Equal(t, 0, got.Initial())
	})

	t.Run("List and Clear", func(t *testing.T) {
		require.NoError(t, sink.Add(ctx, contractModel(t, "b", "(A,B)")))
		require.NoError(t, sink.Add(ctx, contractModel(t, "a", "(A,B)")))

		names, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, names)

		require.NoError(t, sink.Clear(ctx))
		names, err = sink.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}
