// Package styles holds the colour theme shared by the terminal views.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette plus styles built from it.
type Theme struct {
	Primary   lipgloss.Color // selected entry, focused pane
	Secondary lipgloss.Color // band headers

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error   lipgloss.Color
	Warning lipgloss.Color

	styles *Styles
}

// Styles are ready-made lipgloss styles.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Band    lipgloss.Style
	Album   lipgloss.Style
	Current lipgloss.Style // entry shown in the viewer
	Cursor  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Error:   lipgloss.Color("#ff5555"),
	Warning: lipgloss.Color("#f1a208"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.build()
	}
	return t.styles
}

func (t *Theme) build() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:    base,
		Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:   base.Bold(true),
		Band:    lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Album:   lipgloss.NewStyle().Foreground(t.FgMuted).Italic(true),
		Current: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
		Error:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

// Pane returns the bordered style of a pane.
func (t *Theme) Pane(focused bool) lipgloss.Style {
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
