package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean string unchanged", "Master of Puppets", "Master of Puppets"},
		{"tab kept", "a\tb", "a\tb"},
		{"control characters dropped", "a\x1b[31mb\x07", "a[31mb"},
		{"invalid bytes dropped", "caf\xe9", "caf"},
		{"nbsp becomes space", "Guns\u00a0N' Roses", "Guns N' Roses"},
		{"C1 control dropped", "x\u0085y", "xy"},
		{"wide characters kept", "日本語", "日本語"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestExpandTabs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"no tabs", "e|---0---|", 4, "e|---0---|"},
		{"leading tab", "\tx", 4, "    x"},
		{"tab aligns to stop", "ab\tc", 4, "ab  c"},
		{"tab at stop is full width", "abcd\te", 4, "abcd    e"},
		{"wide runes count two cells", "日\tx", 4, "日  x"},
		{"zero width disables", "a\tb", 0, "a\tb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandTabs(tt.input, tt.width))
		})
	}
}

func TestLines(t *testing.T) {
	got := Lines("e|--\t0|\r\nB|--1--|\rG|\x1b--|\n", 4)

	assert.Equal(t, []string{"e|--    0|", "B|--1--|", "G|--|"}, got)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"empty string", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.input, tt.maxWidth))
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "hello     ", TruncateAndPad("hello", 10))
	assert.Equal(t, "hello...", TruncateAndPad("hello world", 8))
	assert.Equal(t, "     ", TruncateAndPad("", 5))
}

func TestRow(t *testing.T) {
	assert.Equal(t, "left    right", Row("left", "right", 13))
	assert.Equal(t, "left right", Row("left", "right", 3))
}

func TestSeparator(t *testing.T) {
	assert.Equal(t, "───", Separator(3))
	assert.Empty(t, Separator(-1))
}
