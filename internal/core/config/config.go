// Package config handles configuration loading and validation for docnote.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/docnote/internal/core/styles"
)

// Store backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	// ContextLines is the number of lines recorded before and after an
	// annotated line.
	ContextLines int `yaml:"context_lines"`
	// SimilarityThreshold is the minimum score a relocated line needs.
	SimilarityThreshold float64      `yaml:"similarity_threshold"`
	Store               StoreConfig  `yaml:"store"`
	Render              RenderConfig `yaml:"render"`
	DataDir             string       `yaml:"-"` // set by caller, not from config file
}

// StoreConfig selects and tunes the annotation store.
type StoreConfig struct {
	Backend     string `yaml:"backend"`      // json or sqlite
	Path        string `yaml:"path"`         // defaults to a file in the data dir
	BusyTimeout int    `yaml:"busy_timeout"` // sqlite only, milliseconds
}

// RenderConfig controls markdown rendering of annotation text.
type RenderConfig struct {
	// Style is a glamour style name or path, or "theme" to follow Theme.
	Style    string `yaml:"style"`
	Theme    string `yaml:"theme"`
	WordWrap int    `yaml:"word_wrap"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ContextLines:        2,
		SimilarityThreshold: 0.75,
		Store: StoreConfig{
			Backend:     BackendJSON,
			BusyTimeout: 5000,
		},
		Render: RenderConfig{
			Style:    "dark",
			Theme:    styles.DefaultTheme,
			WordWrap: 80,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
// context_lines is left alone because zero is a valid radius.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.SimilarityThreshold == 0 {
		c.SimilarityThreshold = defaults.SimilarityThreshold
	}
	if c.Store.Backend == "" {
		c.Store.Backend = defaults.Store.Backend
	}
	if c.Store.BusyTimeout == 0 {
		c.Store.BusyTimeout = defaults.Store.BusyTimeout
	}
	if c.Render.Style == "" {
		c.Render.Style = defaults.Render.Style
	}
	if c.Render.Theme == "" {
		c.Render.Theme = defaults.Render.Theme
	}
}

// StorePath returns the file backing the configured store.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	if c.Store.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, "docnote.db")
	}
	return filepath.Join(c.DataDir, "notes.json")
}
