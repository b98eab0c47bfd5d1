// Package render provides text helpers for laying out terminal output.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DefaultTabWidth is the tab stop distance used for documents.
const DefaultTabWidth = 8

// Sanitize drops control characters other than tab and invalid UTF-8
// bytes, and turns non-breaking spaces into plain spaces. Catalog fields
// and document text come from file names and file contents, so anything
// can be in them.
func Sanitize(s string) string {
	if utf8.ValidString(s) && !hasControl(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return r
		case r == '\u00a0':
			return ' '
		case r == utf8.RuneError, unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

func hasControl(s string) bool {
	for _, r := range s {
		if r != '\t' && (unicode.IsControl(r) || r == '\u00a0') {
			return true
		}
	}
	return false
}

// ExpandTabs replaces tabs with spaces up to the next multiple of width,
// measuring columns in terminal cells.
func ExpandTabs(s string, width int) string {
	if width <= 0 || !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Lines splits text into display lines: line endings are normalized, tabs
// expanded and each line sanitized.
func Lines(text string, tabWidth int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = ExpandTabs(Sanitize(l), tabWidth)
	}
	return lines
}

// Truncate shortens s to maxWidth cells, ending with "..." when cut.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Pad fills s with spaces on the right up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad returns s at exactly width cells.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row puts left and right at either end of a width-wide line, keeping at
// least one space between them. Styled strings are measured without their
// escape sequences.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator is a horizontal rule of width cells.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}
