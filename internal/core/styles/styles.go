// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ThemeStyle is the render style name that derives the markdown style from
// the active palette instead of a built-in glamour style.
const ThemeStyle = "theme"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	PathStyle     lipgloss.Style
	LineStyle     lipgloss.Style
	MutedStyle    lipgloss.Style
	MatchedStyle  lipgloss.Style
	MovedStyle    lipgloss.Style
	OrphanedStyle lipgloss.Style
	SummaryStyle  lipgloss.Style
	DividerStyle  lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	PathStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	LineStyle = lipgloss.NewStyle().
		Foreground(p.Secondary)
	MutedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MatchedStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	MovedStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	OrphanedStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	SummaryStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Surface)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

func colorHexPtr(c lipgloss.Color) *string {
	if c == "" {
		return nil
	}
	hex := string(c)
	return &hex
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(CurrentPalette.Foreground)
	primary := colorHexPtr(CurrentPalette.Primary)
	secondary := colorHexPtr(CurrentPalette.Secondary)
	muted := colorHexPtr(CurrentPalette.Muted)
	surface := colorHexPtr(CurrentPalette.Surface)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary
	cfg.H4.Color = primary
	cfg.H5.Color = primary
	cfg.H6.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Link.Color = secondary
	cfg.LinkText.Color = secondary

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	return cfg
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(CurrentPalette.Primary)
	t.Focused.Title = t.Focused.Title.Foreground(CurrentPalette.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(CurrentPalette.Muted)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(CurrentPalette.Error)
	t.Blurred.Title = t.Blurred.Title.Foreground(CurrentPalette.Muted)

	return t
}
