// Package app is the terminal front end: the grouped library, the document
// viewer and the controls that filter, sort and page through them.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tablib/internal/catalog"
	"github.com/llehouerou/tablib/internal/fsaccess"
	"github.com/llehouerou/tablib/internal/grouping"
	"github.com/llehouerou/tablib/internal/importer"
	"github.com/llehouerou/tablib/internal/keymap"
	"github.com/llehouerou/tablib/internal/navctl"
	"github.com/llehouerou/tablib/internal/notify"
	"github.com/llehouerou/tablib/internal/ui/confirm"
	"github.com/llehouerou/tablib/internal/ui/helpbindings"
	"github.com/llehouerou/tablib/internal/ui/render"
	"github.com/llehouerou/tablib/internal/ui/sidebar"
	"github.com/llehouerou/tablib/internal/viewer"
)

// Files is the file-access provider plus the conversion between the paths
// a user types and references.
type Files interface {
	fsaccess.Provider
	RefFor(path string) (fsaccess.Ref, error)
	Path(ref fsaccess.Ref) string
}

// Options configures a new Model.
type Options struct {
	Catalog     *catalog.Store
	Files       Files
	Extensions  []string
	Criteria    grouping.Criteria
	LibraryRoot string
	TabWidth    int
	Remote      *Remote         // optional
	Notifier    notify.Notifier // optional, told when imports finish
}

// Pane is the list shown on the left.
type Pane int

const (
	PaneLibrary Pane = iota
	PaneFolder
)

// Model is the root application model.
type Model struct {
	ctx      context.Context
	catalog  *catalog.Store
	files    Files
	importer *importer.Importer
	nav      *navctl.Controller
	viewer   *viewer.Surface
	remote   *Remote
	notifier notify.Notifier

	criteria grouping.Criteria
	seq      []catalog.Entry
	sidebar  sidebar.Model
	folder   folderPane
	pane     Pane

	// raw documents opened from a folder, outside the catalog
	rawSeq     uint64
	rawName    string
	rawLoading bool

	importing bool

	input       textinput.Model
	prompt      promptMode
	spinner     spinner.Model
	keys        *keymap.Resolver
	dialogKeys  *keymap.Resolver
	notice      string
	dialog      confirm.Model
	help        helpbindings.Model
	showHelp    bool
	libraryRoot string

	width, height int
}

// New builds the model. The catalog must already be loaded.
func New(ctx context.Context, opts Options) Model {
	if opts.TabWidth <= 0 {
		opts.TabWidth = render.DefaultTabWidth
	}
	if opts.Remote == nil {
		opts.Remote = NewRemote()
	}

	surface := viewer.New(opts.TabWidth)
	ti := textinput.New()
	ti.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := Model{
		ctx:         ctx,
		catalog:     opts.Catalog,
		files:       opts.Files,
		importer:    importer.New(opts.Files, opts.Extensions),
		nav:         navctl.New(surface),
		viewer:      surface,
		remote:      opts.Remote,
		notifier:    opts.Notifier,
		criteria:    opts.Criteria,
		sidebar:     sidebar.New(),
		dialog:      confirm.New(),
		help:        helpbindings.New("global", "library", "dialog"),
		folder:      newFolderPane(),
		input:       ti,
		spinner:     sp,
		keys:        keymap.ForContexts("global", "library"),
		dialogKeys:  keymap.ForContexts("dialog"),
		libraryRoot: opts.LibraryRoot,
	}
	m.sidebar.SetFocused(true)
	m.refresh()
	return m
}

// Init restores the last quick-open folder, if any.
func (m Model) Init() tea.Cmd {
	ref, ok := m.catalog.LastFolder()
	if !ok {
		return nil
	}
	return listFolderCmd(m.ctx, m.importer, ref, true)
}

// Session exposes the navigation state.
func (m Model) Session() navctl.Session {
	return m.nav.State()
}

// Sequence is the navigable order of the library under current criteria.
func (m Model) Sequence() []catalog.Entry {
	return m.seq
}

// Criteria returns the current filter and sort criteria.
func (m Model) Criteria() grouping.Criteria {
	return m.criteria
}

// Notice returns the status line message.
func (m Model) Notice() string {
	return m.notice
}

// Modal returns the blocking notice, if one is shown.
func (m Model) Modal() string {
	if !m.dialog.IsNotice() {
		return ""
	}
	return m.dialog.Message()
}

// ActivePane returns the pane shown on the left.
func (m Model) ActivePane() Pane {
	return m.pane
}
