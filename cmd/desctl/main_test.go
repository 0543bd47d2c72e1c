package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/geange/des"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productModel = `
name: Joint Behaviour
events:
  - {name: e, controllable: true}
states:
  - {name: "(A,B)", initial: true}
  - {name: "(A,A)"}
  - {name: "(B,A)", marked: true}
  - {name: "(B,B)"}
transitions:
  - {source: "(A,B)", event: e, target: "(A,A)"}
  - {source: "(A,A)", event: e, target: "(B,A)"}
  - {source: "(A,B)", event: e, target: "(B,A)"}
  - {source: "(B,A)", event: e, target: "(B,B)"}
`

const supconModel = `
name: SG
events:
  - {name: e, controllable: true}
states:
  - {name: "((A,B),(A,B))", initial: true, layout: "((A,B),(A,B))"}
transitions:
  - {source: "((A,B),(A,B))", event: e, target: "((A,B),(A,B))"}
`

func run(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--log-level", "error", "-o", "-"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFilterCommand(t *testing.T) {
	out, err := run(t, productModel, "filter", "--rule", "equal", "--components", "0,1", "--name", "Specification")
	require.NoError(t, err)

	a, err := des.ReadYAML(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "Specification", a.Name)
	assert.Equal(t, []string{"(A,B)", "(B,A)"}, a.StateNames())
	assert.Equal(t, 1, a.NumTransitions())
}

func TestFilterCommand_UnknownRule(t *testing.T) {
	_, err := run(t, productModel, "filter", "--rule", "nope", "--name", "")
	assert.Error(t, err)
}

func TestCanonicalizeCommand(t *testing.T) {
	out, err := run(t, supconModel, "canonicalize")
	require.NoError(t, err)

	a, err := des.ReadYAML(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, []string{"(A,B)"}, a.StateNames())
	assert.Equal(t, "(A,B)", a.State(0).Annotation.Text)
	assert.Equal(t, 1, a.NumTransitions())

	_, err = run(t, out, "canonicalize")
	assert.ErrorIs(t, err, des.ErrMalformedStateLabel)
}

func TestGraphCommand(t *testing.T) {
	out, err := run(t, supconModel, "graph")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, "s0 -- \"e\" --> s0")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, productModel, "validate", "--tuple")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = run(t, "name: x\nstates:\n  - {name: a, initial: true}\n", "validate", "--tuple")
	assert.ErrorIs(t, err, des.ErrMalformedStateLabel)
}
