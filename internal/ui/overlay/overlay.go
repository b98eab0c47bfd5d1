// Package overlay draws a box on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center draws box in the middle of base.
func Center(base, box string, width, height int) string {
	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
	return Compose(base, placed, width)
}

// Compose writes the visible part of each overlay line over the same line
// of base. Leading and trailing blanks of the overlay let base show
// through. Styled text is measured and cut without breaking escapes.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")
	overLines := strings.Split(overlay, "\n")

	for i, line := range overLines {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		start := len(plain) - len(strings.TrimLeft(plain, " "))
		end := start + ansi.StringWidth(strings.TrimRight(plain[start:], " "))

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		out := ansi.Cut(under, 0, start) + ansi.Cut(line, start, end)
		if end < width {
			out += ansi.Cut(under, end, width)
		}
		baseLines[i] = out
	}
	return strings.Join(baseLines, "\n")
}
