// Package docnote wires the annotation store and the reanchoring core into
// the operations exposed by the command line.
package docnote

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hay-kot/docnote/internal/core/config"
	"github.com/hay-kot/docnote/internal/core/note"
	"github.com/hay-kot/docnote/internal/data/db"
	"github.com/hay-kot/docnote/internal/data/stores"
	"github.com/hay-kot/docnote/internal/store/jsonfile"
)

// App is the central entry point for all docnote operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Notes  *Service
	Config *config.Config
	Store  note.Store
}

// NewApp constructs an App from explicit dependencies.
func NewApp(store note.Store, cfg *config.Config, log zerolog.Logger) *App {
	return &App{
		Notes:  NewService(store, cfg, log),
		Config: cfg,
		Store:  store,
	}
}

// Close releases the store, flushing pending writes.
func (a *App) Close() error {
	if a == nil || a.Store == nil {
		return nil
	}
	return a.Store.Close()
}

// OpenStore opens the store selected by cfg.
func OpenStore(cfg *config.Config) (note.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		opts := db.DefaultOpenOptions()
		opts.BusyTimeout = cfg.Store.BusyTimeout

		database, err := db.Open(cfg.StorePath(), opts)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		return stores.NewNoteStore(database), nil
	case config.BackendJSON:
		s, err := jsonfile.Open(cfg.StorePath())
		if err != nil {
			return nil, fmt.Errorf("open notes file: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
