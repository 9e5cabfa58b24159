package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_String(t *testing.T) {
	assert.Equal(t, "/src/main.go:4", Key{Path: "/src/main.go", Line: 4}.String())
}

func TestKey_Location(t *testing.T) {
	assert.Equal(t, "/src/main.go:5", Key{Path: "/src/main.go", Line: 4}.Location())
	assert.Equal(t, "a.txt:1", Key{Path: "a.txt", Line: 0}.Location())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: "/src/main.go:4", want: Key{Path: "/src/main.go", Line: 4}},
		{in: "C:/work/a.txt:0", want: Key{Path: "C:/work/a.txt", Line: 0}},
		{in: "noline", wantErr: true},
		{in: ":3", wantErr: true},
		{in: "a.txt:-1", wantErr: true},
		{in: "a.txt:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKey(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestSortKeys(t *testing.T) {
	keys := []Key{
		{Path: "/b", Line: 1},
		{Path: "/a", Line: 10},
		{Path: "/a", Line: 2},
	}

	SortKeys(keys)

	assert.Equal(t, []Key{
		{Path: "/a", Line: 2},
		{Path: "/a", Line: 10},
		{Path: "/b", Line: 1},
	}, keys)
}
