package iojson

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteLine(&buf, map[string]int{"line": 3}))
	require.NoError(t, WriteLine(&buf, map[string]int{"line": 4}))

	assert.Equal(t, "{\"line\":3}\n{\"line\":4}\n", buf.String())
}

func TestWriteLine_Unmarshalable(t *testing.T) {
	var buf bytes.Buffer

	err := WriteLine(&buf, map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, map[string]string{"text": "hi"}))
	assert.Equal(t, "{\n  \"text\": \"hi\"\n}\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestWriteWith_Unmarshalable(t *testing.T) {
	var out, errOut bytes.Buffer

	require.NoError(t, WriteWith(&out, &errOut, make(chan int)))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}
