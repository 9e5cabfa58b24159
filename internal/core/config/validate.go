package config

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/docnote/internal/core/styles"
)

const maxContextLines = 50

// Validate checks that the configuration is valid. All field problems are
// reported together.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("data_dir", c.DataDir, notEmpty),
		criterio.Run("store.backend", c.Store.Backend, knownBackend),
		criterio.Run("render.theme", c.Render.Theme, knownTheme),
		c.validateRanges(),
	)
}

// validateRanges checks the numeric settings.
func (c *Config) validateRanges() error {
	var errs criterio.FieldErrorsBuilder

	if err := contextLinesInRange(c.ContextLines); err != nil {
		errs = errs.Append("context_lines", err)
	}
	if err := thresholdInRange(c.SimilarityThreshold); err != nil {
		errs = errs.Append("similarity_threshold", err)
	}
	if err := notNegative(c.Store.BusyTimeout); err != nil {
		errs = errs.Append("store.busy_timeout", err)
	}
	if err := notNegative(c.Render.WordWrap); err != nil {
		errs = errs.Append("render.word_wrap", err)
	}

	return errs.ToError()
}

func notEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("cannot be empty")
	}
	return nil
}

func contextLinesInRange(n int) error {
	if n < 0 || n > maxContextLines {
		return fmt.Errorf("must be between 0 and %d, got %d", maxContextLines, n)
	}
	return nil
}

func thresholdInRange(f float64) error {
	if f <= 0 || f > 1 {
		return fmt.Errorf("must be greater than 0 and at most 1, got %g", f)
	}
	return nil
}

func knownBackend(b string) error {
	switch b {
	case BackendJSON, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", b, BackendJSON, BackendSQLite)
	}
}

func notNegative(n int) error {
	if n < 0 {
		return fmt.Errorf("cannot be negative, got %d", n)
	}
	return nil
}

func knownTheme(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}
