package app

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/errmsg"
	"github.com/llehouerou/tablib/internal/grouping"
	"github.com/llehouerou/tablib/internal/keymap"
	"github.com/llehouerou/tablib/internal/mpris"
	"github.com/llehouerou/tablib/internal/navctl"
	"github.com/llehouerou/tablib/internal/notify"
)

// refresh rebuilds the projection and sequence from the catalog and the
// current criteria.
func (m *Model) refresh() {
	p := grouping.Build(m.catalog.Entries(), m.criteria)
	m.seq = grouping.Linearize(p)
	m.sidebar.SetProjection(p)
	m.sidebar.SetTitle(m.libraryTitle())
	m.sidebar.SetCurrent(m.nav.State().CurrentID)
	m.syncRemote()
}

func (m Model) libraryTitle() string {
	arrow := "↑"
	if !m.criteria.Ascending {
		arrow = "↓"
	}
	parts := []string{
		fmt.Sprintf("Library (%d)", len(m.seq)),
		m.criteria.Key.Title() + " " + arrow,
	}
	f := m.criteria.Filters
	if f.Band != "" {
		parts = append(parts, f.Band)
	}
	if f.Album != "" {
		parts = append(parts, f.Album)
	}
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("%q", f.Query))
	}
	return strings.Join(parts, " · ")
}

// syncRemote publishes what the viewer shows for MPRIS clients.
func (m *Model) syncRemote() {
	st := m.nav.State()
	pos := m.nav.Position(m.seq)
	now := mpris.NowShowing{
		ID:          st.CurrentID,
		Loading:     st.Loading,
		CanNext:     pos.CanNext,
		CanPrevious: pos.CanPrevious,
	}
	if e, ok := m.catalog.Get(st.CurrentID); ok {
		now.Band = e.Band
		now.Album = e.AlbumOrSingle()
		now.Song = e.Song
	} else if m.rawName != "" {
		now.Song = m.rawName
	}
	m.remote.publish(now)
}

// openEntry selects e and starts loading it.
func (m *Model) openEntry(e catalog.Entry) tea.Cmd {
	return m.load(m.nav.Open(e))
}

// step moves to the next or previous document of the sequence. It does
// nothing at either end or while a document is loading.
func (m *Model) step(forward bool) tea.Cmd {
	move := m.nav.Previous
	if forward {
		move = m.nav.Next
	}
	req, ok := move(m.seq)
	if !ok {
		return nil
	}
	m.sidebar.Select(req.Entry.ID)
	return m.load(req)
}

func (m *Model) load(req navctl.Request) tea.Cmd {
	m.rawSeq++
	m.rawName = ""
	m.notice = ""
	m.sidebar.SetCurrent(req.Entry.ID)
	m.syncRemote()
	slog.Debug("open", "id", req.Entry.ID, "token", req.Token)
	return tea.Batch(fetchCmd(m.ctx, m.files, req), m.spinner.Tick)
}

// documentLoaded completes a library fetch.
func (m *Model) documentLoaded(msg DocumentLoadedMsg) {
	outcome := m.nav.Complete(navctl.Result(msg))
	slog.Debug("document loaded", "id", msg.EntryID, "token", msg.Token, "outcome", outcome)
	if notice := m.nav.Notice(); notice != "" {
		m.notice = notice
	}
	m.syncRemote()
}

func (m *Model) setCriteria(c grouping.Criteria) {
	m.criteria = c
	m.refresh()
}

// cycle returns the value after current in values, wrapping through "".
func cycle(values []string, current string) string {
	if len(values) == 0 {
		return ""
	}
	i := slices.Index(values, current)
	if i == len(values)-1 {
		return ""
	}
	return values[i+1]
}

func (m *Model) cycleBand() {
	next := cycle(grouping.Bands(m.catalog.Entries()), m.criteria.Filters.Band)
	m.setCriteria(m.criteria.WithBand(next))
}

func (m *Model) cycleAlbum() {
	band := m.criteria.Filters.Band
	if band == "" {
		m.notice = "Select a band before filtering by album"
		return
	}
	c := m.criteria
	c.Filters.Album = cycle(grouping.Albums(m.catalog.Entries(), band), c.Filters.Album)
	m.setCriteria(c)
}

func (m *Model) clearFilters() {
	c := m.criteria
	c.Filters = grouping.Filters{}
	m.setCriteria(c)
}

func (m *Model) cycleSort() {
	c := m.criteria
	c.Key = c.Key.Next()
	m.setCriteria(c)
}

func (m *Model) toggleOrder() {
	c := m.criteria
	c.Ascending = !c.Ascending
	m.setCriteria(c)
}

func (m *Model) search(query string) {
	c := m.criteria
	c.Filters.Query = strings.TrimSpace(query)
	m.setCriteria(c)
}

// askRemove asks before removing the selected entry.
func (m *Model) askRemove() {
	e, ok := m.sidebar.Selected()
	if !ok {
		return
	}
	m.dialog.Ask(
		"Remove from library?",
		e.Label(),
		keymap.Help(keymap.ByContext("dialog"), " · "),
		e.ID,
	)
}

func (m *Model) removeEntry(id string) {
	if err := m.catalog.Remove(m.ctx, id); err != nil {
		slog.Error("remove entry", "id", id, "error", err)
		m.notice = errmsg.Format(errmsg.OpEntryRemove, err)
	}
	m.refresh()
}

// imported merges a finished import and opens its first document.
func (m *Model) imported(msg ImportedMsg) tea.Cmd {
	m.importing = false
	path := m.files.Path(msg.Root)
	if msg.Err != nil {
		m.showAccessError(errmsg.OpImportFolder, msg.Root, msg.Err)
		return notifyCmd(m.notifier, notify.Notification{
			Title:   "Import failed",
			Body:    path,
			Urgency: notify.UrgencyCritical,
			Timeout: -1,
		})
	}

	notice := fmt.Sprintf("Imported %d documents", len(msg.Entries))
	if err := m.catalog.ImportMerge(m.ctx, msg.Entries); err != nil {
		slog.Error("save import", "root", path, "error", err)
		notice = errmsg.Format(errmsg.OpImportFolder, err)
	}
	m.refresh()
	done := notifyCmd(m.notifier, notify.Notification{
		Title:   "Import finished",
		Body:    fmt.Sprintf("%d documents from %s", len(msg.Entries), path),
		Urgency: notify.UrgencyLow,
		Timeout: -1,
	})
	if len(msg.Entries) == 0 {
		m.notice = notice
		return done
	}

	first, ok := m.catalog.Get(msg.Entries[0].ID)
	if !ok {
		m.notice = notice
		return done
	}
	m.sidebar.Select(first.ID)
	open := m.openEntry(first)
	// opening clears the status line
	m.notice = notice
	return tea.Batch(open, done)
}
