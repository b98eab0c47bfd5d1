package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestGradient_KeepsText(t *testing.T) {
	out := Gradient("tablib", "#a78bfa", "#f1a208", true)

	assert.Equal(t, "tablib", ansi.Strip(out))
	assert.Equal(t, 6, lipgloss.Width(out))
}

func TestGradient_Graphemes(t *testing.T) {
	out := Gradient("éte", "#000000", "#ffffff", false)

	assert.Equal(t, "éte", ansi.Strip(out))
}

func TestGradient_Empty(t *testing.T) {
	assert.Empty(t, Gradient("", "#000000", "#ffffff", false))
}

func TestGradient_NonHexFallsBack(t *testing.T) {
	assert.Equal(t, "ab", ansi.Strip(Gradient("ab", "39", "240", false)))
}

func TestTheme_StylesCached(t *testing.T) {
	th := T()

	assert.Same(t, th.S(), th.S())
}
