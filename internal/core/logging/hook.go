package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the file and command stored in an event's context onto
// the event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if cmd := GetCommand(ctx); cmd != "" {
		e.Str("command", cmd)
	}

	if file := GetFile(ctx); file != "" {
		e.Str("file", file)
	}
}
