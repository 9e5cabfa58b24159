package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), dataDir)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.ContextLines)
	assert.Equal(t, 0.75, cfg.SimilarityThreshold)
	assert.Equal(t, BackendJSON, cfg.Store.Backend)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "notes.json"), cfg.StorePath())
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().ContextLines, cfg.ContextLines)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
context_lines: 0
similarity_threshold: 0.9
store:
  backend: sqlite
render:
  word_wrap: 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.ContextLines, "explicit zero radius is kept")
	assert.Equal(t, 0.9, cfg.SimilarityThreshold)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 5000, cfg.Store.BusyTimeout, "unset busy timeout gets the default")
	assert.Equal(t, "dark", cfg.Render.Style)
	assert.Equal(t, 100, cfg.Render.WordWrap)
	assert.Equal(t, filepath.Join(dir, "docnote.db"), cfg.StorePath())
}

func TestLoad_CustomStorePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  path: /tmp/custom.json\n"), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", cfg.StorePath())
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("context_lines: [nope"), 0o644))

	_, err := Load(path, dir)
	assert.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "missing data dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: "data_dir"},
		{name: "negative context", mutate: func(c *Config) { c.ContextLines = -1 }, wantErr: "context_lines"},
		{name: "huge context", mutate: func(c *Config) { c.ContextLines = 500 }, wantErr: "context_lines"},
		{name: "threshold above one", mutate: func(c *Config) { c.SimilarityThreshold = 1.5 }, wantErr: "similarity_threshold"},
		{name: "negative threshold", mutate: func(c *Config) { c.SimilarityThreshold = -0.1 }, wantErr: "similarity_threshold"},
		{name: "threshold of one", mutate: func(c *Config) { c.SimilarityThreshold = 1 }},
		{name: "unknown backend", mutate: func(c *Config) { c.Store.Backend = "anydbm" }, wantErr: "store.backend"},
		{name: "unknown theme", mutate: func(c *Config) { c.Render.Theme = "solarized-ish" }, wantErr: "render.theme"},
		{name: "negative wrap", mutate: func(c *Config) { c.Render.WordWrap = -1 }, wantErr: "render.word_wrap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = "/data"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Contains(t, fieldNames(t, err), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	cfg.ContextLines = -3
	cfg.Store.Backend = "bogus"

	fields := fieldNames(t, cfg.Validate())
	assert.Contains(t, fields, "context_lines")
	assert.Contains(t, fields, "store.backend")
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)

	names := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		names = append(names, fe.Field)
	}
	return names
}
