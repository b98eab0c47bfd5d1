package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Gradient colours each grapheme of text along a blend from one colour to
// another. Colours must be "#rrggbb"; anything else renders as grey.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	start, end := parseHex(from), parseHex(to)
	var b strings.Builder
	for i, cluster := range clusters {
		c := start
		if len(clusters) > 1 {
			c = start.BlendHcl(end, float64(i)/float64(len(clusters)-1)).Clamped()
		}
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Hex())).
			Bold(bold).
			Render(cluster))
	}
	return b.String()
}

// Title renders the application name with the theme's accent gradient.
func (t *Theme) Title(text string) string {
	return Gradient(text, t.Primary, t.Secondary, true)
}

func graphemes(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func parseHex(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 0.5, G: 0.5, B: 0.5}
	}
	return col
}
