package sidebar

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/grouping"
)

func library() []catalog.Entry {
	return []catalog.Entry{
		{ID: "1", Band: "Metallica", Album: "Master of Puppets", Song: "Battery", LastModified: 1},
		{ID: "2", Band: "Metallica", Album: "Master of Puppets", Song: "Orion", LastModified: 2},
		{ID: "3", Band: "Metallica", Song: "One", LastModified: 3},
		{ID: "4", Band: "Slayer", Album: "Reign in Blood", Song: "Angel of Death", LastModified: 4},
	}
}

func build(t *testing.T, entries []catalog.Entry) Model {
	t.Helper()
	m := New()
	m.SetSize(40, 20)
	m.SetFocused(true)
	m.SetProjection(grouping.Build(entries, grouping.DefaultCriteria()))
	return m
}

func selectedID(m Model) string {
	e, _ := m.Selected()
	return e.ID
}

func TestSetProjection_Rows(t *testing.T) {
	m := build(t, library())

	var got []string
	for _, r := range m.Rows() {
		got = append(got, r.Text)
	}
	assert.Equal(t, []string{
		"Metallica", "Master of Puppets", "Battery", "Orion", "Single", "One",
		"Slayer", "Reign in Blood", "Angel of Death",
	}, got)
	assert.Equal(t, 4, m.SongCount())
	assert.Equal(t, "1", selectedID(m))
}

func TestMove_SkipsHeaders(t *testing.T) {
	m := build(t, library())

	var visited []string
	for range 5 {
		visited = append(visited, selectedID(m))
		m.Move(1)
	}

	assert.Equal(t, []string{"1", "2", "3", "4", "4"}, visited)

	m.Move(-10)
	assert.Equal(t, "1", selectedID(m))
}

func TestJumpStartEnd(t *testing.T) {
	m := build(t, library())

	m.JumpEnd()
	assert.Equal(t, "4", selectedID(m))

	m.JumpStart()
	assert.Equal(t, "1", selectedID(m))
}

func TestSelect(t *testing.T) {
	m := build(t, library())

	require.True(t, m.Select("3"))
	assert.Equal(t, "3", selectedID(m))

	assert.False(t, m.Select("missing"))
	assert.Equal(t, "3", selectedID(m))
}

func TestSetProjection_KeepsSelection(t *testing.T) {
	m := build(t, library())
	m.Select("2")

	c := grouping.DefaultCriteria()
	c.Ascending = false
	m.SetProjection(grouping.Build(library(), c))

	assert.Equal(t, "2", selectedID(m))
}

func TestSetProjection_SelectionFilteredOut(t *testing.T) {
	m := build(t, library())
	m.Select("4")

	m.SetProjection(grouping.Build(library(), grouping.DefaultCriteria().WithBand("Metallica")))

	assert.Equal(t, "3", selectedID(m), "clamped to the last remaining song")
}

func TestEmpty(t *testing.T) {
	m := build(t, nil)

	_, ok := m.Selected()
	assert.False(t, ok)
	m.Move(1)
	m.JumpEnd()
	assert.Contains(t, ansi.Strip(m.View()), "import a folder")
}

func TestView(t *testing.T) {
	m := build(t, library())
	m.SetTitle("Library")
	m.SetCurrent("2")

	view := ansi.Strip(m.View())

	assert.Contains(t, view, "Library")
	assert.Contains(t, view, "Metallica")
	assert.Contains(t, view, "    Orion")
	assert.Len(t, strings.Split(view, "\n"), 20)
}

func TestView_ScrollsWithCursor(t *testing.T) {
	var entries []catalog.Entry
	for i := range 30 {
		id := fmt.Sprintf("%02d", i+1)
		entries = append(entries, catalog.Entry{ID: id, Band: "Band", Song: "Song " + id})
	}
	m := New()
	m.SetSize(30, 10)
	m.SetProjection(grouping.Build(entries, grouping.DefaultCriteria()))

	m.JumpEnd()

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Song 30")
	assert.NotContains(t, view, "Song 01")
}
