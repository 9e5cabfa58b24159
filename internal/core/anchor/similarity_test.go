package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "func main() {", b: "func main() {", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "one empty", a: "", b: "abc", want: 0.0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0.0},
		{name: "one char differs", a: "abcd", b: "abce", want: 0.75},
		{name: "prefix", a: "ab", b: "abcd", want: 2.0 * 2 / 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"tide", "diet"},
		{"return nil", "return err"},
		{"	x := 1", "x := 2"},
		{"", "something"},
	}

	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestSimilarity_Bounds(t *testing.T) {
	inputs := []string{"", "a", "hello world", "hello, world!", "// comment", "日本語", "日本"}

	for _, a := range inputs {
		assert.Equal(t, 1.0, Similarity(a, a))
		for _, b := range inputs {
			s := Similarity(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestSequenceSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{name: "both empty", a: nil, b: nil, want: 0.0},
		{name: "equal", a: []string{"a", "b"}, b: []string{"a", "b"}, want: 1.0},
		{name: "shrunk window is penalised", a: []string{"a"}, b: []string{"a", "b"}, want: 0.5},
		{name: "one side empty", a: nil, b: []string{"a", "b"}, want: 0.0},
		{name: "positional pairing", a: []string{"a", "b"}, b: []string{"b", "a"}, want: 0.0},
		{name: "partial", a: []string{"abcd", "x"}, b: []string{"abce", "x"}, want: (0.75 + 1.0) / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SequenceSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
