package app

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tablib/internal/errmsg"
	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/importer"
	"github.com/llehouerou/tablib/internal/ui"
	"github.com/llehouerou/tablib/internal/ui/cursor"
	"github.com/llehouerou/tablib/internal/ui/render"
	"github.com/llehouerou/tablib/internal/ui/styles"
)

// folderPane lists the documents of the quick-open folder. Documents opened
// from it are shown without being added to the library.
type folderPane struct {
	ui.Base
	dir    fsaccess.Ref
	label  string
	docs   []importer.Document
	cursor cursor.Cursor
}

func newFolderPane() folderPane {
	return folderPane{cursor: cursor.New(ui.ScrollMargin)}
}

func (f *folderPane) set(dir fsaccess.Ref, label string, docs []importer.Document) {
	f.dir = dir
	f.label = label
	f.docs = docs
	f.cursor.Reset()
}

func (f *folderPane) clear() {
	f.set("", "", nil)
}

func (f folderPane) selected() (importer.Document, bool) {
	if len(f.docs) == 0 {
		return importer.Document{}, false
	}
	return f.docs[f.cursor.Pos()], true
}

func (f *folderPane) move(delta int) {
	f.cursor.Jump(f.cursor.Pos()+delta, len(f.docs), f.listHeight())
}

func (f *folderPane) jump(pos int) {
	f.cursor.Jump(pos, len(f.docs), f.listHeight())
}

func (f folderPane) listHeight() int {
	return f.InnerHeight(ui.PaneOverhead)
}

func (f folderPane) View(current string) string {
	if f.Width() == 0 || f.Height() == 0 {
		return ""
	}
	innerWidth := f.Width() - ui.BorderSize
	innerHeight := f.Height() - ui.BorderSize
	st := styles.T().S()

	title := "Folder"
	if f.label != "" {
		title = "Folder · " + f.label
	}
	height := f.listHeight()
	lines := make([]string, 0, height+2)
	lines = append(lines,
		st.Title.Render(render.TruncateAndPad(title, innerWidth)),
		st.Subtle.Render(render.Separator(innerWidth)),
	)

	if len(f.docs) == 0 {
		msg := "No folder. Press f to pick one."
		if f.dir != "" {
			msg = "No documents in this folder."
		}
		lines = append(lines, st.Muted.Render(render.TruncateAndPad(msg, innerWidth)))
	}
	start, end := f.cursor.VisibleRange(len(f.docs), height)
	for i := start; i < end; i++ {
		doc := f.docs[i]
		style := st.Base
		if doc.Name == current {
			style = st.Current
		}
		if i == f.cursor.Pos() && f.IsFocused() {
			style = style.Background(styles.T().BgCursor)
		}
		lines = append(lines, style.Render(render.TruncateAndPad(doc.Name, innerWidth)))
	}

	return styles.T().Pane(f.IsFocused()).
		Width(innerWidth).
		Height(innerHeight).
		Render(strings.Join(lines, "\n"))
}

// openFolder starts listing the folder at path.
func (m *Model) openFolder(path string) tea.Cmd {
	ref, err := m.files.RefFor(path)
	if err != nil {
		m.notice = errmsg.FormatWith(errmsg.OpFolderOpen, path, err)
		return nil
	}
	return listFolderCmd(m.ctx, m.importer, ref, false)
}

// folderListed shows a listed folder and opens its first document.
func (m *Model) folderListed(msg FolderListedMsg) tea.Cmd {
	if msg.Err != nil {
		if msg.Restore {
			slog.Warn("restore last folder", "dir", msg.Dir, "error", msg.Err)
			return nil
		}
		m.showAccessError(errmsg.OpFolderOpen, msg.Dir, msg.Err)
		return nil
	}

	path := m.files.Path(msg.Dir)
	m.folder.set(msg.Dir, filepath.Base(path), msg.Docs)
	if !msg.Restore {
		if err := m.catalog.RememberFolder(m.ctx, msg.Dir); err != nil {
			slog.Error("remember folder", "dir", path, "error", err)
			m.notice = errmsg.Format(errmsg.OpFolderOpen, err)
		}
		m.focusPane(PaneFolder)
	}
	if len(msg.Docs) == 0 {
		return nil
	}
	return m.openRaw(msg.Docs[0])
}

// openRaw starts reading a folder document. Any pending library load is
// dropped.
func (m *Model) openRaw(doc importer.Document) tea.Cmd {
	m.nav.Abandon()
	m.rawSeq++
	m.rawLoading = true
	m.notice = ""
	return tea.Batch(readRawCmd(m.ctx, m.files, m.rawSeq, doc), m.spinner.Tick)
}

func (m *Model) rawLoaded(msg RawLoadedMsg) {
	if msg.Seq != m.rawSeq {
		return
	}
	m.rawLoading = false
	if msg.Err != nil {
		if errors.Is(msg.Err, fsaccess.ErrStaleReference) {
			m.notice = errmsg.StaleDocument
		} else {
			m.notice = errmsg.FormatWith(errmsg.OpDocumentOpen, msg.Name, msg.Err)
		}
		return
	}
	m.nav.OpenRaw(msg.Content)
	m.rawName = msg.Name
	m.sidebar.SetCurrent("")
	m.syncRemote()
}

func (m *Model) forgetFolder() {
	if err := m.catalog.ForgetFolder(m.ctx); err != nil {
		slog.Error("forget folder", "error", err)
		m.notice = errmsg.Format(errmsg.OpFolderForget, err)
		return
	}
	m.folder.clear()
	m.focusPane(PaneLibrary)
	m.notice = "Folder forgotten"
}

// showAccessError reports a failed folder access. Denied permission blocks
// until dismissed.
func (m *Model) showAccessError(op errmsg.Op, ref fsaccess.Ref, err error) {
	slog.Warn("folder access failed", "op", op, "ref", ref, "error", err)
	if errors.Is(err, fsaccess.ErrPermissionDenied) {
		m.dialog.Notify("", errmsg.PermissionDenied, "enter ok")
		return
	}
	m.notice = errmsg.FormatWith(op, m.files.Path(ref), err)
}

func (m *Model) focusPane(p Pane) {
	m.pane = p
	m.sidebar.SetFocused(p == PaneLibrary)
	m.folder.SetFocused(p == PaneFolder)
}
