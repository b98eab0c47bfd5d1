package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tablib/internal/app/handler"
	"github.com/llehouerou/tablib/internal/config"
	"github.com/llehouerou/tablib/internal/errmsg"
	"github.com/llehouerou/tablib/internal/keymap"
)

type promptMode int

const (
	promptNone promptMode = iota
	promptSearch
	promptImport
	promptFolder
)

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case DocumentLoadedMsg:
		m.documentLoaded(msg)
		return m, nil

	case ImportedMsg:
		cmd := m.imported(msg)
		return m, cmd

	case FolderListedMsg:
		cmd := m.folderListed(msg)
		return m, cmd

	case RawLoadedMsg:
		m.rawLoaded(msg)
		return m, nil

	case RemoteMsg:
		cmd := m.step(msg.Forward)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// busy reports whether anything is loading.
func (m Model) busy() bool {
	return m.nav.State().Loading || m.rawLoading || m.importing
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	_, cmd := handler.Chain(
		func() handler.Result { return m.handleDialog(key) },
		func() handler.Result { return m.handleHelp(key) },
		func() handler.Result { return m.handlePrompt(msg) },
		func() handler.Result { return m.handleAction(key) },
		func() handler.Result { return m.handleViewer(msg) },
	)
	return m, cmd
}

// handleDialog answers the open dialog. Other keys are swallowed.
func (m *Model) handleDialog(key string) handler.Result {
	if !m.dialog.Active() {
		return handler.NotHandled
	}
	switch m.dialogKeys.Resolve(key) {
	case keymap.ActionConfirm:
		if r := m.dialog.Answer(true); r.Confirmed {
			if id, ok := r.Context.(string); ok {
				m.removeEntry(id)
			}
		}
	case keymap.ActionCancel:
		m.dialog.Answer(false)
	}
	return handler.HandledNoCmd
}

// handleHelp scrolls or closes the help popup. Other keys are swallowed.
func (m *Model) handleHelp(key string) handler.Result {
	if !m.showHelp {
		return handler.NotHandled
	}
	switch key {
	case "?", "esc", "q":
		m.showHelp = false
	case "j", "down":
		m.help.Scroll(1)
	case "k", "up":
		m.help.Scroll(-1)
	}
	return handler.HandledNoCmd
}

func (m *Model) handlePrompt(msg tea.KeyMsg) handler.Result {
	if m.prompt == promptNone {
		return handler.NotHandled
	}
	switch msg.Type {
	case tea.KeyEnter:
		return handler.Handled(m.submitPrompt())
	case tea.KeyEsc:
		if m.prompt == promptSearch {
			m.search("")
		}
		m.closePrompt()
		return handler.HandledNoCmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.prompt == promptSearch {
		m.search(m.input.Value())
	}
	return handler.Handled(cmd)
}

func (m *Model) openPrompt(mode promptMode, prompt, value string) tea.Cmd {
	m.prompt = mode
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.layout()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")
	m.layout()
}

func (m *Model) submitPrompt() tea.Cmd {
	mode := m.prompt
	value := strings.TrimSpace(m.input.Value())
	m.closePrompt()

	switch mode {
	case promptSearch:
		m.search(value)
	case promptImport:
		if value != "" {
			return m.startImport(config.ExpandPath(value))
		}
	case promptFolder:
		if value != "" {
			return m.openFolder(config.ExpandPath(value))
		}
	}
	return nil
}

func (m *Model) startImport(path string) tea.Cmd {
	ref, err := m.files.RefFor(path)
	if err != nil {
		m.notice = errmsg.FormatWith(errmsg.OpImportFolder, path, err)
		return nil
	}
	m.importing = true
	m.notice = ""
	return tea.Batch(importCmd(m.ctx, m.importer, ref), m.spinner.Tick)
}

func (m *Model) handleAction(key string) handler.Result {
	action := m.keys.Resolve(key)
	if action == "" {
		return handler.NotHandled
	}

	switch action {
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.help.Reset()
		m.showHelp = true
	case keymap.ActionSearch:
		return handler.Handled(m.openPrompt(promptSearch, "/ ", m.criteria.Filters.Query))
	case keymap.ActionSwitch:
		if m.pane == PaneLibrary {
			m.focusPane(PaneFolder)
		} else {
			m.focusPane(PaneLibrary)
		}

	case keymap.ActionMoveDown:
		m.moveCursor(1)
	case keymap.ActionMoveUp:
		m.moveCursor(-1)
	case keymap.ActionJumpStart:
		m.jumpCursor(false)
	case keymap.ActionJumpEnd:
		m.jumpCursor(true)
	case keymap.ActionOpen:
		return handler.Handled(m.openSelected())

	case keymap.ActionNext:
		return handler.Handled(m.step(true))
	case keymap.ActionPrevious:
		return handler.Handled(m.step(false))

	case keymap.ActionCycleBand:
		m.cycleBand()
	case keymap.ActionCycleAlbum:
		m.cycleAlbum()
	case keymap.ActionClearFilters:
		m.clearFilters()
	case keymap.ActionCycleSort:
		m.cycleSort()
	case keymap.ActionToggleOrder:
		m.toggleOrder()

	case keymap.ActionImport:
		return handler.Handled(m.openPrompt(promptImport, "Import folder: ", m.libraryRoot))
	case keymap.ActionOpenFolder:
		start := m.libraryRoot
		if ref, ok := m.catalog.LastFolder(); ok {
			start = m.files.Path(ref)
		}
		return handler.Handled(m.openPrompt(promptFolder, "Open folder: ", start))
	case keymap.ActionForgetFolder:
		m.forgetFolder()
	case keymap.ActionRemove:
		if m.pane == PaneLibrary {
			m.askRemove()
		}

	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

// handleViewer scrolls the document pane.
func (m *Model) handleViewer(msg tea.KeyMsg) handler.Result {
	return handler.Handled(m.viewer.Update(msg))
}

func (m *Model) moveCursor(delta int) {
	if m.pane == PaneFolder {
		m.folder.move(delta)
		return
	}
	m.sidebar.Move(delta)
}

func (m *Model) jumpCursor(end bool) {
	switch {
	case m.pane == PaneFolder && end:
		m.folder.jump(len(m.folder.docs) - 1)
	case m.pane == PaneFolder:
		m.folder.jump(0)
	case end:
		m.sidebar.JumpEnd()
	default:
		m.sidebar.JumpStart()
	}
}

func (m *Model) openSelected() tea.Cmd {
	if m.pane == PaneFolder {
		if doc, ok := m.folder.selected(); ok {
			return m.openRaw(doc)
		}
		return nil
	}
	if e, ok := m.sidebar.Selected(); ok {
		return m.openEntry(e)
	}
	return nil
}
