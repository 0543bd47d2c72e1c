package des

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catModel = `
name: Plant - Cat
events:
  - {name: c1, controllable: true}
  - {name: c7, controllable: false, observable: false}
states:
  - {name: "0", marked: true}
  - {name: "1"}
  - {name: "2", initial: true, layout: "2"}
transitions:
  - {source: "2", event: c1, target: "0"}
  - {source: "0", event: c7, target: "1"}
  - {source: "1", event: c7, target: "2"}
`

func TestReadYAML(t *testing.T) {
	a, err := ReadYAML(strings.NewReader(catModel))
	require.NoError(t, err)

	assert.Equal(t, "Plant - Cat", a.Name)
	assert.Equal(t, []string{"0", "1", "2"}, a.StateNames())
	assert.Equal(t, 2, a.Initial())
	assert.Equal(t, []string{"0"}, a.MarkedStates())
	assert.Equal(t, []Event{
		{Name: "c1", Controllable: true, Observable: true},
		{Name: "c7", Controllable: false, Observable: false},
	}, a.Events())
	assert.Equal(t, 3, a.NumTransitions())
	require.NotNil(t, a.State(2).Annotation)
	assert.Equal(t, "2", a.State(2).Annotation.Text)
	assert.True(t, Run(a, []string{"c1"}))

	t.Run("RoundTrip", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteYAML(&buf, a))

		b, err := ReadYAML(&buf)
		require.NoError(t, err)
		assert.Equal(t, a.StateNames(), b.StateNames())
		assert.Equal(t, a.Events(), b.Events())
		assert.Equal(t, a.Transitions(), b.Transitions())
		assert.Equal(t, a.MarkedStates(), b.MarkedStates())
		assert.Equal(t, a.Initial(), b.Initial())
	})
}

func TestReadYAML_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{
			name:  "no initial state",
			input: "name: x\nstates:\n  - {name: a}\n",
			want:  ErrInvalidAutomaton,
		},
		{
			name:  "two initial states",
			input: "name: x\nstates:\n  - {name: a, initial: true}\n  - {name: b, initial: true}\n",
			want:  ErrInvalidAutomaton,
		},
		{
			name:  "dangling transition",
			input: "name: x\nevents:\n  - {name: e}\nstates:\n  - {name: a, initial: true}\ntransitions:\n  - {source: a, event: e, target: b}\n",
			want:  ErrUnknownState,
		},
		{
			name:  "duplicate state",
			input: "name: x\nstates:\n  - {name: a, initial: true}\n  - {name: a}\n",
			want:  ErrDuplicateState,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadYAML(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	a, err := ReadYAML(strings.NewReader(catModel))
	require.NoError(t, err)

	path := t.TempDir() + "/cat.yml"
	require.NoError(t, SaveFile(path, a))

	b, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.StateNames(), b.StateNames())

	_, err = LoadFile(t.TempDir() + "/missing.yml")
	assert.Error(t, err)
}
