package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/errmsg"
	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/grouping"
	"github.com/llehouerou/tablib/internal/importer"
	"github.com/llehouerou/tablib/internal/notify"
	"github.com/llehouerou/tablib/internal/state"
)

var modTime = time.UnixMilli(1_700_000_000_000)

type fixture struct {
	files   *fsaccess.Memory
	catalog *catalog.Store
	kv      *state.Mock
	remote  *Remote
	notes   *recorder
}

type recorder struct {
	sent []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) (uint32, error) {
	r.sent = append(r.sent, n)
	return uint32(len(r.sent)), nil
}

func (r *recorder) Close(uint32) error { return nil }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	files := fsaccess.NewMemory()
	files.AddFile("tabs/Metallica/Master of Puppets/Battery.pdf", []byte("%PDF-1.7\n/Type /Page"), modTime)
	files.AddFile("tabs/Metallica/Master of Puppets/Orion.txt", []byte("e|--0--|"), modTime.Add(time.Minute))
	files.AddFile("tabs/Metallica/One.txt", []byte("e|--7--|"), modTime.Add(2*time.Minute))
	files.AddFile("tabs/Pantera/Vulgar Display of Power/Walk.txt", []byte("e|--5--|"), modTime.Add(3*time.Minute))
	files.AddFile("loose/Track 10.txt", []byte("ten"), modTime)
	files.AddFile("loose/Track 2.txt", []byte("two"), modTime)

	kv := state.NewMock()
	store := catalog.New(kv)
	store.Load(context.Background())
	return &fixture{files: files, catalog: store, kv: kv, remote: NewRemote(), notes: &recorder{}}
}

func (f *fixture) model(root string) Model {
	m := New(context.Background(), Options{
		Catalog:     f.catalog,
		Files:       f.files,
		Extensions:  []string{".pdf", ".txt"},
		Criteria:    grouping.DefaultCriteria(),
		LibraryRoot: root,
		Remote:      f.remote,
		Notifier:    f.notes,
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends one key and returns the command without running it.
func press(m Model, s string) (Model, tea.Cmd) {
	next, cmd := m.Update(key(s))
	return next.(Model), cmd
}

// typeText sends each rune as a key press, dropping cursor blink commands.
func typeText(m Model, text string) Model {
	for _, r := range text {
		m, _ = press(m, string(r))
	}
	return m
}

// drain runs cmd and feeds every resulting message back into the model
// until nothing is left. Spinner ticks are dropped.
func drain(m Model, cmd tea.Cmd) Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			next, more := m.Update(msg)
			m = next.(Model)
			queue = append(queue, more)
		}
	}
	return m
}

// pending runs cmd and returns the document fetch it carries.
func pending(t *testing.T, cmd tea.Cmd) DocumentLoadedMsg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case DocumentLoadedMsg:
			return msg
		}
	}
	t.Fatal("no document fetch in command")
	return DocumentLoadedMsg{}
}

func imported(t *testing.T, f *fixture) Model {
	t.Helper()
	m := f.model("/tabs")
	m, _ = press(m, "i")
	m, cmd := press(m, "enter")
	require.NotNil(t, cmd)
	return drain(m, cmd)
}

func songs(seq []catalog.Entry) []string {
	out := make([]string, len(seq))
	for i, e := range seq {
		out[i] = e.Song
	}
	return out
}

func TestImport_PopulatesLibraryAndOpensFirst(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)

	assert.Equal(t, 4, f.catalog.Len())
	assert.Len(t, m.Sequence(), 4)
	assert.Equal(t, "Imported 4 documents", m.Notice())

	st := m.Session()
	assert.NotEmpty(t, st.CurrentID)
	assert.False(t, st.Loading)
	assert.Equal(t, uint64(1), st.Version)

	e, ok := f.catalog.Get(st.CurrentID)
	require.True(t, ok)
	assert.Equal(t, "Metallica", e.Band)
}

func TestImport_SaveFailureOpensNothing(t *testing.T) {
	f := newFixture(t)
	f.kv.SetErr = errors.New("disk full")
	m := imported(t, f)

	assert.Zero(t, f.catalog.Len())
	assert.Empty(t, m.Sequence())
	assert.Empty(t, m.Session().CurrentID, "nothing to open outside the catalog")
	assert.Contains(t, m.Notice(), "disk full")
}

func TestImport_NotifiesDesktop(t *testing.T) {
	f := newFixture(t)
	imported(t, f)

	require.Len(t, f.notes.sent, 1)
	assert.Equal(t, "Import finished", f.notes.sent[0].Title)
	assert.Equal(t, "4 documents from /tabs", f.notes.sent[0].Body)
}

func TestImport_Idempotent(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)

	m, _ = press(m, "i")
	m, cmd := press(m, "enter")
	m = drain(m, cmd)

	assert.Equal(t, 4, f.catalog.Len())
	assert.Len(t, m.Sequence(), 4)
}

func TestImport_PermissionDeniedBlocks(t *testing.T) {
	f := newFixture(t)
	f.files.Deny("/tabs")
	m := f.model("/tabs")

	m, _ = press(m, "i")
	m, cmd := press(m, "enter")
	m = drain(m, cmd)

	assert.Equal(t, errmsg.PermissionDenied, m.Modal())
	assert.Zero(t, f.catalog.Len())
	require.Len(t, f.notes.sent, 1)
	assert.Equal(t, notify.UrgencyCritical, f.notes.sent[0].Urgency)

	m, _ = press(m, "j")
	assert.NotEmpty(t, m.Modal(), "other keys do not dismiss the notice")

	m, _ = press(m, "enter")
	assert.Empty(t, m.Modal())
}

func TestOpenAndStep(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	seq := m.Sequence()

	m, _ = press(m, "g")
	m, cmd := press(m, "enter")
	m = drain(m, cmd)
	assert.Equal(t, seq[0].ID, m.Session().CurrentID)

	m, cmd = press(m, "left")
	assert.Nil(t, cmd, "nothing before the first document")

	for i := 1; i < len(seq); i++ {
		m, cmd = press(m, "right")
		m = drain(m, cmd)
		assert.Equal(t, seq[i].ID, m.Session().CurrentID)
	}

	m, cmd = press(m, "right")
	assert.Nil(t, cmd, "nothing after the last document")
	assert.Equal(t, seq[len(seq)-1].ID, m.Session().CurrentID)

	m, cmd = press(m, "h")
	m = drain(m, cmd)
	assert.Equal(t, seq[len(seq)-2].ID, m.Session().CurrentID)
}

func TestStep_RejectedWhileLoading(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	seq := m.Sequence()

	m, _ = press(m, "g")
	m, _ = press(m, "enter")
	require.True(t, m.Session().Loading)

	m, cmd := press(m, "right")
	assert.Nil(t, cmd)
	assert.Equal(t, seq[0].ID, m.Session().CurrentID)
}

func TestStaleResultIgnored(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	seq := m.Sequence()
	version := m.Session().Version

	m, _ = press(m, "g")
	m, first := press(m, "enter")
	m, _ = press(m, "j")
	m, second := press(m, "enter")

	slow := pending(t, first)
	fast := pending(t, second)

	next, _ := m.Update(fast)
	m = next.(Model)
	next, _ = m.Update(slow)
	m = next.(Model)

	st := m.Session()
	assert.Equal(t, seq[1].ID, st.CurrentID)
	assert.False(t, st.Loading)
	assert.Equal(t, version+1, st.Version, "only the latest request is published")
}

func TestOpen_MovedDocument(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	seq := m.Sequence()
	f.files.RemoveFile(seq[1].Ref)

	m, _ = press(m, "g")
	m, _ = press(m, "j")
	m, cmd := press(m, "enter")
	m = drain(m, cmd)

	assert.Equal(t, errmsg.StaleDocument, m.Notice())
	assert.Equal(t, seq[1].ID, m.Session().CurrentID)
	assert.False(t, m.Session().Loading)
}

func TestFilters(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)

	m, _ = press(m, "a")
	assert.Equal(t, "Select a band before filtering by album", m.Notice())

	m, _ = press(m, "b")
	assert.Equal(t, "Metallica", m.Criteria().Filters.Band)
	assert.Len(t, m.Sequence(), 3)

	m, _ = press(m, "a")
	assert.Equal(t, "Master of Puppets", m.Criteria().Filters.Album)
	assert.ElementsMatch(t, []string{"Battery", "Orion"}, songs(m.Sequence()))

	m, _ = press(m, "b")
	assert.Equal(t, "Pantera", m.Criteria().Filters.Band)
	assert.Empty(t, m.Criteria().Filters.Album, "changing band clears the album")
	assert.Equal(t, []string{"Walk"}, songs(m.Sequence()))

	m, _ = press(m, "b")
	assert.Empty(t, m.Criteria().Filters.Band)
	assert.Len(t, m.Sequence(), 4)

	m, _ = press(m, "b")
	m, _ = press(m, "c")
	assert.True(t, m.Criteria().Filters.IsEmpty())
}

func TestFilter_CurrentFilteredOutDisablesStepping(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	current := m.Session().CurrentID

	m, _ = press(m, "b")
	m, _ = press(m, "b")
	require.Equal(t, "Pantera", m.Criteria().Filters.Band)

	_, cmd := press(m, "right")
	assert.Nil(t, cmd)
	assert.Equal(t, current, m.Session().CurrentID, "filtering does not change the current document")
}

func TestSortAndDirection(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)

	m, _ = press(m, "s")
	assert.Equal(t, grouping.SortAlbum, m.Criteria().Key)

	m, _ = press(m, "s")
	m, _ = press(m, "s")
	assert.Equal(t, grouping.SortLastModified, m.Criteria().Key)
	assert.Equal(t, []string{"Battery", "Orion", "One", "Walk"}, songs(m.Sequence()))

	m, _ = press(m, "o")
	assert.False(t, m.Criteria().Ascending)
	assert.Equal(t, []string{"Walk", "One", "Orion", "Battery"}, songs(m.Sequence()))
}

func TestSearch(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)

	m, _ = press(m, "/")
	m = typeText(m, "ORI")
	assert.Equal(t, []string{"Orion"}, songs(m.Sequence()), "search filters as you type")

	m, _ = press(m, "esc")
	assert.Empty(t, m.Criteria().Filters.Query)
	assert.Len(t, m.Sequence(), 4)

	m, _ = press(m, "/")
	m = typeText(m, "pantera")
	m, _ = press(m, "enter")
	assert.Equal(t, "pantera", m.Criteria().Filters.Query)
	assert.Equal(t, []string{"Walk"}, songs(m.Sequence()))

	m, cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd(), "keys act again once the prompt is closed")
}

func TestRemove(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	target := m.Sequence()[0]

	m, _ = press(m, "g")
	m, _ = press(m, "d")
	m, _ = press(m, "n")
	assert.Equal(t, 4, f.catalog.Len(), "cancelled")

	m, _ = press(m, "d")
	assert.Contains(t, m.View(), "Remove from library?")
	m, _ = press(m, "y")

	assert.Equal(t, 3, f.catalog.Len())
	_, ok := f.catalog.Get(target.ID)
	assert.False(t, ok)
	assert.Len(t, m.Sequence(), 3)
}

func TestQuickOpenFolder(t *testing.T) {
	f := newFixture(t)
	m := f.model("/loose")

	m, _ = press(m, "f")
	m, cmd := press(m, "enter")
	m = drain(m, cmd)

	assert.Equal(t, PaneFolder, m.ActivePane())
	require.Len(t, m.folder.docs, 2)
	assert.Equal(t, "Track 2.txt", m.folder.docs[0].Name, "numbers sort by value")

	ref, ok := f.catalog.LastFolder()
	require.True(t, ok)
	assert.Equal(t, fsaccess.Ref("/loose"), ref)

	st := m.Session()
	assert.Empty(t, st.CurrentID, "folder documents are not library entries")
	assert.Equal(t, uint64(1), st.Version)
	assert.Equal(t, "Track 2.txt", m.caption())
	assert.Zero(t, f.catalog.Len())

	m, _ = press(m, "j")
	m, cmd = press(m, "enter")
	m = drain(m, cmd)
	assert.Equal(t, "Track 10.txt", m.caption())
	assert.Equal(t, uint64(2), m.Session().Version)

	m, _ = press(m, "tab")
	assert.Equal(t, PaneLibrary, m.ActivePane())
}

func TestInit_RestoresLastFolder(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.RememberFolder(context.Background(), "/loose"))
	m := f.model("")

	m = drain(m, m.Init())

	assert.Equal(t, PaneLibrary, m.ActivePane())
	assert.Len(t, m.folder.docs, 2)
	assert.Equal(t, "Track 2.txt", m.caption())
}

func TestInit_RestoreFailureIsQuiet(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.RememberFolder(context.Background(), "/gone"))
	f.files.Deny("/gone")
	m := f.model("")

	m = drain(m, m.Init())

	assert.Empty(t, m.Modal())
	assert.Empty(t, m.Notice())
	assert.Empty(t, m.folder.docs)
}

func TestForgetFolder(t *testing.T) {
	f := newFixture(t)
	m := f.model("/loose")
	m, _ = press(m, "f")
	m, cmd := press(m, "enter")
	m = drain(m, cmd)

	m, _ = press(m, "F")

	_, ok := f.catalog.LastFolder()
	assert.False(t, ok)
	assert.Equal(t, PaneLibrary, m.ActivePane())
	assert.Empty(t, m.folder.docs)
	assert.Nil(t, m.Init())
}

func TestRawLoad_SupersededByLibraryOpen(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	seq := m.Sequence()

	m, _ = press(m, "g")
	raw := m.openRaw(importer.Document{Name: "Track 2.txt", Ref: "/loose/Track 2.txt"})
	m, open := press(m, "enter")

	m = drain(m, open)
	m = drain(m, raw)

	assert.Equal(t, seq[0].ID, m.Session().CurrentID)
	assert.NotEqual(t, "Track 2.txt", m.caption())
}

func TestRemote(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	seq := m.Sequence()

	m, _ = press(m, "g")
	m, cmd := press(m, "enter")
	m = drain(m, cmd)

	now := f.remote.Now()
	assert.Equal(t, seq[0].ID, now.ID)
	assert.Equal(t, seq[0].Song, now.Song)
	assert.True(t, now.CanNext)
	assert.False(t, now.CanPrevious)

	var sent []tea.Msg
	f.remote.Attach(func(msg tea.Msg) { sent = append(sent, msg) })
	f.remote.Next()
	require.Len(t, sent, 1)

	next, cmd := m.Update(sent[0])
	m = drain(next.(Model), cmd)
	assert.Equal(t, seq[1].ID, m.Session().CurrentID)
	assert.Equal(t, seq[1].ID, f.remote.Now().ID)
}

func TestRemote_DetachedDropsRequests(t *testing.T) {
	r := NewRemote()
	assert.NotPanics(t, r.Next)
	assert.Empty(t, r.Now().ID)
}

func TestView(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)

	view := m.View()

	assert.Contains(t, view, "Library (4)")
	assert.Contains(t, view, "Metallica")
	assert.Contains(t, view, m.caption())
}

func TestHelpPopup(t *testing.T) {
	f := newFixture(t)
	m := imported(t, f)
	selected, _ := m.sidebar.Selected()

	m, _ = press(m, "?")
	view := m.View()
	assert.Contains(t, view, "Toggle help")
	assert.Contains(t, view, "Cycle band filter")

	m, cmd := press(m, "j")
	assert.Nil(t, cmd)
	after, _ := m.sidebar.Selected()
	assert.Equal(t, selected.ID, after.ID, "keys go to the popup")

	m, cmd = press(m, "q")
	assert.Nil(t, cmd, "q closes the popup instead of quitting")
	assert.NotContains(t, m.View(), "Toggle help")
}
