package sidebar

import (
	"strings"

	"github.com/llehouerou/tablib/internal/ui"
	"github.com/llehouerou/tablib/internal/ui/render"
	"github.com/llehouerou/tablib/internal/ui/styles"
)

const (
	albumIndent = "  "
	songIndent  = "    "
)

// View renders the pane with its border.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderSize
	innerHeight := m.Height() - ui.BorderSize
	th := styles.T()

	header := th.S().Title.Render(render.TruncateAndPad(m.title, innerWidth))
	content := header + "\n" + th.S().Subtle.Render(render.Separator(innerWidth)) + "\n" +
		m.renderRows(innerWidth, m.listHeight())

	return th.Pane(m.IsFocused()).
		Width(innerWidth).
		Height(innerHeight).
		Render(content)
}

func (m Model) renderRows(width, height int) string {
	if height <= 0 {
		return ""
	}
	st := styles.T().S()
	if len(m.rows) == 0 {
		lines := make([]string, height)
		lines[height/2] = st.Muted.Render(render.TruncateAndPad("Empty. Press i to import a folder.", width))
		return strings.Join(lines, "\n")
	}

	cursorRow := -1
	if len(m.songs) > 0 {
		cursorRow = m.songs[m.sel]
	}

	lines := make([]string, 0, height)
	start, end := m.cursor.VisibleRange(len(m.rows), height)
	for i := start; i < end; i++ {
		row := m.rows[i]
		switch row.Kind {
		case RowBand:
			lines = append(lines, st.Band.Render(render.TruncateAndPad(row.Text, width)))
		case RowAlbum:
			lines = append(lines, st.Album.Render(render.TruncateAndPad(albumIndent+row.Text, width)))
		case RowSong:
			text := render.TruncateAndPad(songIndent+row.Text, width)
			style := st.Base
			if row.Entry.ID == m.current {
				style = st.Current
			}
			if i == cursorRow && m.IsFocused() {
				style = style.Background(styles.T().BgCursor)
			}
			lines = append(lines, style.Render(text))
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
