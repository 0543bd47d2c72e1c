package des

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	a := newProduct(t, "(0,0)", "(0,1)", "(1,1)")

	tests := []struct {
		name  string
		trace []string
		want  bool
	}{
		{name: "reaches marked", trace: []string{"e", "e"}, want: true},
		{name: "with self-loops", trace: []string{"u", "e", "u", "e", "u"}, want: true},
		{name: "stops short", trace: []string{"e"}, want: false},
		{name: "blocked", trace: []string{"e", "e", "e"}, want: false},
		{name: "unknown event", trace: []string{"x"}, want: false},
		{name: "empty", trace: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equalf(t, tt.want, Run(a, tt.trace), "Run(%v)", tt.trace)
		})
	}
}

func TestReachable(t *testing.T) {
	a := newProduct(t, "(0,0)", "(0,1)", "(1,1)")
	_, err := a.CreateState("(9,9)")
	assert.NoError(t, err)

	live := Reachable(a)
	assert.Equal(t, uint(3), live.Count())
	assert.False(t, live.Test(3))
}
