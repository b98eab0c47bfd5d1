// Package sidebar renders the grouped library as a band, album and song
// list with a cursor that stops on songs only.
package sidebar

import (
	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/grouping"
	"github.com/llehouerou/tablib/internal/ui"
	"github.com/llehouerou/tablib/internal/ui/cursor"
)

// RowKind tells what a row shows.
type RowKind int

const (
	RowBand RowKind = iota
	RowAlbum
	RowSong
)

// Row is one line of the flattened projection.
type Row struct {
	Kind  RowKind
	Text  string
	Entry catalog.Entry // RowSong only
}

// Model is the library pane.
type Model struct {
	ui.Base
	rows    []Row
	songs   []int // row index of each song, in sequence order
	cursor  cursor.Cursor
	sel     int // index into songs
	current string
	title   string
}

// New returns an empty sidebar.
func New() Model {
	return Model{cursor: cursor.New(ui.ScrollMargin)}
}

// SetProjection replaces the rows. The cursor stays on the same entry if it
// is still listed, otherwise on the same position clamped to the list.
func (m *Model) SetProjection(p grouping.Projection) {
	selected, hadSelection := m.Selected()

	m.rows = make([]Row, 0, p.Len()+2*len(p))
	m.songs = make([]int, 0, p.Len())
	for _, band := range p {
		m.rows = append(m.rows, Row{Kind: RowBand, Text: band.Band})
		for _, album := range band.Albums {
			m.rows = append(m.rows, Row{Kind: RowAlbum, Text: album.Album})
			for _, e := range album.Entries {
				m.songs = append(m.songs, len(m.rows))
				m.rows = append(m.rows, Row{Kind: RowSong, Text: e.Song, Entry: e})
			}
		}
	}

	if hadSelection && m.Select(selected.ID) {
		return
	}
	m.moveTo(m.sel)
}

// SetTitle sets the pane header.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// SetCurrent marks the entry shown in the viewer.
func (m *Model) SetCurrent(id string) {
	m.current = id
}

// Rows returns the flattened rows.
func (m Model) Rows() []Row {
	return m.rows
}

// SongCount returns the number of selectable rows.
func (m Model) SongCount() int {
	return len(m.songs)
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (catalog.Entry, bool) {
	if len(m.songs) == 0 {
		return catalog.Entry{}, false
	}
	return m.rows[m.songs[m.sel]].Entry, true
}

// Select moves the cursor to the entry with id and reports whether it is
// listed.
func (m *Model) Select(id string) bool {
	for i, row := range m.songs {
		if m.rows[row].Entry.ID == id {
			m.moveTo(i)
			return true
		}
	}
	return false
}

// Move moves the cursor by delta songs.
func (m *Model) Move(delta int) {
	m.moveTo(m.sel + delta)
}

// JumpStart moves to the first song and scrolls to the top.
func (m *Model) JumpStart() {
	m.moveTo(0)
	m.cursor.Reset()
}

// JumpEnd moves to the last song.
func (m *Model) JumpEnd() {
	m.moveTo(len(m.songs) - 1)
}

func (m *Model) moveTo(sel int) {
	if len(m.songs) == 0 {
		m.sel = 0
		m.cursor.Reset()
		return
	}
	m.sel = max(0, min(sel, len(m.songs)-1))
	m.cursor.Jump(m.songs[m.sel], len(m.rows), m.listHeight())
}

func (m Model) listHeight() int {
	return m.InnerHeight(ui.PaneOverhead)
}
