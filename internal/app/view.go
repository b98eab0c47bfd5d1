package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tablib/internal/ui"
	"github.com/llehouerou/tablib/internal/ui/overlay"
	"github.com/llehouerou/tablib/internal/ui/render"
	"github.com/llehouerou/tablib/internal/ui/styles"
	"github.com/llehouerou/tablib/internal/viewer"
)

const headerLines = 1

// layout sizes the panes for the current terminal.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	bodyHeight := max(m.height-headerLines-lipgloss.Height(m.footerView()), 0)
	sidebarWidth := max(m.width/ui.SidebarDivisor, ui.MinSidebarWidth)
	sidebarWidth = min(sidebarWidth, m.width)

	m.sidebar.SetSize(sidebarWidth, bodyHeight)
	m.folder.SetSize(sidebarWidth, bodyHeight)
	m.viewer.SetSize(
		m.width-sidebarWidth-ui.BorderSize,
		bodyHeight-ui.PaneOverhead,
	)
	m.help.SetSize(m.width, m.height)
	m.input.Width = max(m.width-lipgloss.Width(m.input.Prompt)-1, 1)
}

// View renders the screen.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	left := m.sidebar.View()
	if m.pane == PaneFolder {
		left = m.folder.View(m.rawName)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.documentView())

	screen := lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.footerView())
	switch {
	case m.dialog.Active():
		screen = overlay.Center(screen, m.dialog.View(), m.width, m.height)
	case m.showHelp:
		screen = overlay.Center(screen, m.help.View(), m.width, m.height)
	}
	return screen
}

func (m Model) headerView() string {
	th := styles.T()
	title := th.Title("tablib")
	status := ""
	if m.busy() {
		status = m.spinner.View() + " Loading…"
		if m.importing {
			status = m.spinner.View() + " Importing…"
		}
	}
	return render.Row(title, th.S().Muted.Render(status), m.width)
}

// documentView is the viewer pane with its caption.
func (m Model) documentView() string {
	width := m.width - m.sidebar.Width()
	height := m.sidebar.Height()
	if width <= ui.BorderSize || height <= ui.BorderSize {
		return ""
	}
	innerWidth := width - ui.BorderSize
	st := styles.T().S()

	status := m.documentStatus()
	caption := render.Row(
		st.Title.Render(render.Truncate(m.caption(), max(innerWidth-lipgloss.Width(status)-1, 0))),
		st.Muted.Render(status),
		innerWidth,
	)
	content := caption + "\n" + st.Subtle.Render(render.Separator(innerWidth)) + "\n" + m.viewer.View()

	return styles.T().Pane(false).
		Width(innerWidth).
		Height(height - ui.BorderSize).
		Render(content)
}

// caption names what the viewer shows.
func (m Model) caption() string {
	st := m.nav.State()
	if e, ok := m.catalog.Get(st.CurrentID); ok {
		return e.Label()
	}
	if m.rawName != "" {
		return m.rawName
	}
	return "No document"
}

func (m Model) documentStatus() string {
	st := m.nav.State()
	if st.Loading {
		return m.spinner.View() + " loading"
	}
	if !m.viewer.Showing() {
		return ""
	}
	parts := []string{viewer.Describe(m.viewer.Document())}
	if pos := m.nav.Position(m.seq); pos.Index >= 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", pos.Index+1, len(m.seq)))
	}
	parts = append(parts, fmt.Sprintf("v%d", st.Version))
	return strings.Join(parts, " · ")
}

func (m Model) footerView() string {
	st := styles.T().S()
	switch {
	case m.prompt != promptNone:
		return m.input.View()
	case m.notice != "":
		return st.Warning.Render(render.Truncate(m.notice, m.width))
	default:
		return st.Muted.Render(render.Truncate(m.hint(), m.width))
	}
}

func (m Model) hint() string {
	if m.pane == PaneFolder {
		return "enter open · tab library · f another folder · F forget · ? help"
	}
	return "enter open · ←/→ previous/next · / search · b/a band/album · s sort · i import · ? help"
}
