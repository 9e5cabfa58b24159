package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ComponentNotes tags events from the annotation service.
const ComponentNotes = "notes"

// Component returns a child of the global logger tagged with cmp=name. It
// inherits the global logger's level, output and hooks, so events logged
// with a context still carry the command and file fields.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
