package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	base := "aaaaaaaa\nbbbbbbbb\ncccccccc"
	over := "\n  XY\n"

	got := Compose(base, over, 8)

	assert.Equal(t, "aaaaaaaa\nbbXYbbbb\ncccccccc", got)
}

func TestCompose_PadsShortBase(t *testing.T) {
	got := Compose("ab", "    Z", 6)

	assert.Equal(t, "ab  Z ", got)
}

func TestCompose_StyledOverlay(t *testing.T) {
	over := "  \x1b[1mOK\x1b[0m"

	got := Compose("........", over, 8)

	assert.Contains(t, got, "\x1b[1mOK")
	assert.True(t, strings.HasPrefix(got, ".."))
	assert.True(t, strings.HasSuffix(got, "...."))
}

func TestCenter(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 9)+"\n", 2) + strings.Repeat(".", 9)

	got := Center(base, "#", 9, 3)

	lines := strings.Split(got, "\n")
	assert.Equal(t, ".........", lines[0])
	assert.Equal(t, "....#....", lines[1])
}
