package des

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTupleLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TupleLabel
		wantErr bool
	}{
		{name: "pair", input: "(A,B)", want: TupleLabel{"A", "B"}},
		{name: "triple", input: "(0,1,2)", want: TupleLabel{"0", "1", "2"}},
		{name: "doubled", input: "((A,B),(A,B))", want: TupleLabel{"(A", "B)", "(A", "B)"}},
		{name: "single", input: "(A)", want: TupleLabel{"A"}},
		{name: "no parentheses", input: "A,B", wantErr: true},
		{name: "unclosed", input: "(A,B", wantErr: true},
		{name: "empty tuple", input: "()", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTupleLabel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedStateLabel)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, got.String())
		})
	}
}

func TestTupleLabel_Halve(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "doubled pair", input: "((A,B),(A,B))", want: "(A,B)"},
		{name: "doubled single", input: "((A),(A))", want: "(A)"},
		{name: "halves differ", input: "((A,B),(C,D))", want: "(A,B)"},
		{name: "odd arity", input: "((A,B),(A,B),C)", wantErr: true},
		{name: "already canonical", input: "(A,B)", wantErr: true},
		{name: "flat even arity", input: "(A,B,A,B)", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, err := ParseTupleLabel(tt.input)
			assert.NoError(t, err)

			got, err := label.Halve()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedStateLabel)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
