package des

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/geange/des/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	t.Run("SingleSelfLoop", func(t *testing.T) {
		a := New("SG")
		s, err := a.CreateState("((A,B),(A,B))")
		require.NoError(t, err)
		require.NoError(t, a.SetInitial(s))
		a.SetAnnotation(s, "((A,B),(A,B))")
		_, err = a.AddEvent("e", true)
		require.NoError(t, err)
		require.NoError(t, a.Connect("((A,B),(A,B))", "e", "((A,B),(A,B))"))

		require.NoError(t, Canonicalize(a))

		assert.Equal(t, []string{"(A,B)"}, a.StateNames())
		assert.Equal(t, "(A,B)", a.State(0).Annotation.Text)
		assert.Equal(t, [][3]string{{"(A,B)", "e", "(A,B)"}}, transitionNames(a))
		idx, ok := a.StateIndex("(A,B)")
		assert.True(t, ok)
		assert.Equal(t, 0, idx)
		_, ok = a.StateIndex("((A,B),(A,B))")
		assert.False(t, ok)
	})

	t.Run("LogsToGivenLogger", func(t *testing.T) {
		var buf bytes.Buffer
		a := newProduct(t, "((0,1),(0,1))")

		require.NoError(t, Canonicalize(a, WithLogger(logging.NewWithWriter(&buf, slog.LevelDebug))))
		assert.Contains(t, buf.String(), "canonicalized automaton")
	})

	t.Run("PreservesStructure", func(t *testing.T) {
		a := newProduct(t, "((0,1),(0,1))", "((1,2),(1,2))", "((2,0),(2,0))")
		a.SetMarked(1, true)
		a.SetAnnotation(2, "anything")
		events := a.Events()
		transitions := a.Transitions()
		marked := []int{}
		for s := 0; s < a.NumStates(); s++ {
			if a.IsMarked(s) {
				marked = append(marked, s)
			}
		}

		require.NoError(t, Canonicalize(a))

		assert.Equal(t, []string{"(0,1)", "(1,2)", "(2,0)"}, a.StateNames())
		assert.Equal(t, events, a.Events())
		assert.Equal(t, transitions, a.Transitions())
		assert.Equal(t, 0, a.Initial())
		for _, s := range marked {
			assert.True(t, a.IsMarked(s))
		}
		assert.Equal(t, []string{"(1,2)", "(2,0)"}, a.MarkedStates())
		assert.Nil(t, a.State(0).Annotation)
		assert.Equal(t, "(2,0)", a.State(2).Annotation.Text)
		assert.True(t, Run(a, []string{"e", "u", "e"}))
	})

	t.Run("DuplicateCanonicalLabel", func(t *testing.T) {
		a := newProduct(t, "((A,B),(A,B))", "((A,B),(C,D))")

		err := Canonicalize(a)
		assert.ErrorIs(t, err, ErrDuplicateCanonicalLabel)
		assert.Equal(t, []string{"((A,B),(A,B))", "((A,B),(C,D))"}, a.StateNames())
	})

	t.Run("OddArity", func(t *testing.T) {
		a := newProduct(t, "((A,B),(A,B))", "(A,B,C)")

		err := Canonicalize(a)
		assert.ErrorIs(t, err, ErrMalformedStateLabel)
		assert.Equal(t, "((A,B),(A,B))", a.State(0).Name)
	})

	t.Run("TwiceFails", func(t *testing.T) {
		a := newProduct(t, "((A,B),(A,B))", "((B,A),(B,A))")

		require.NoError(t, Canonicalize(a))
		err := Canonicalize(a)
		assert.ErrorIs(t, err, ErrMalformedStateLabel)
		assert.Equal(t, []string{"(A,B)", "(B,A)"}, a.StateNames())
	})
}
