package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, DefaultTheme)
}

func TestGlamourStyleFollowsTheme(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	p, ok := GetPalette("gruvbox")
	require.True(t, ok)
	SetTheme(p)

	cfg := GlamourStyle()
	require.NotNil(t, cfg.H2.Color)
	assert.Equal(t, string(p.Primary), *cfg.H2.Color)
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, string(p.Foreground), *cfg.Document.Color)
}

func TestGetPaletteUnknown(t *testing.T) {
	_, ok := GetPalette("nope")
	assert.False(t, ok)
}
