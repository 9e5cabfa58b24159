package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponent(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf).Level(zerolog.InfoLevel).Hook(ContextHook{})

	logger := Component(ComponentNotes)
	logger.Debug().Msg("dropped")

	ctx := WithFile(context.Background(), "/src/widget.go")
	logger.Info().Ctx(ctx).Msg("annotation moved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "expected a single event")
	assert.Equal(t, "notes", entry["cmp"])
	assert.Equal(t, "/src/widget.go", entry["file"])
	assert.Equal(t, "annotation moved", entry["message"])
}
