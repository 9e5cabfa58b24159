package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "empty", in: "", want: []string{}},
		{name: "single without newline", in: "a", want: []string{"a"}},
		{name: "trailing newline", in: "a\nb\n", want: []string{"a", "b"}},
		{name: "no trailing newline", in: "a\nb", want: []string{"a", "b"}},
		{name: "crlf", in: "a\r\nb\r\n", want: []string{"a", "b"}},
		{name: "blank lines kept", in: "a\n\n\nb\n", want: []string{"a", "", "", "b"}},
		{name: "only newline", in: "\n", want: []string{""}},
		{name: "whitespace kept", in: "  a \t\n", want: []string{"  a \t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitLines(tt.in))
		})
	}
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)

	_, err = ReadLines(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
