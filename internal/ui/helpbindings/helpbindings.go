// Package helpbindings renders the scrollable list of key bindings shown
// over the library.
package helpbindings

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tablib/internal/keymap"
	"github.com/llehouerou/tablib/internal/ui"
	"github.com/llehouerou/tablib/internal/ui/styles"
)

// categoryOrder is the display order of binding contexts.
var categoryOrder = []string{"global", "library", "dialog"}

var categoryLabels = map[string]string{
	"global":  "Global",
	"library": "Library",
	"dialog":  "Dialogs",
}

// chrome is the space taken by the title, the footer and the frame.
const chrome = 10

// Model is the help popup.
type Model struct {
	ui.Base
	bindings []keymap.Binding
	offset   int
}

// New lists the bindings of contexts, in display order.
func New(contexts ...string) Model {
	var m Model
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	return m
}

// Scroll moves the list by delta lines, within bounds.
func (m *Model) Scroll(delta int) {
	m.offset = max(0, min(m.offset+delta, m.maxScroll()))
}

// Reset scrolls back to the top.
func (m *Model) Reset() {
	m.offset = 0
}

// View renders the framed popup.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	st := styles.T().S()
	lines := m.lines()

	// pad to the widest line so the frame does not change size while scrolling
	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}
	end := min(m.offset+m.visibleHeight(), len(lines))
	visible := slices.Clone(lines[min(m.offset, len(lines)):end])
	for i, l := range visible {
		visible[i] = l + strings.Repeat(" ", width-lipgloss.Width(l))
	}

	footer := "?/esc close"
	if m.maxScroll() > 0 {
		footer = "j/k scroll · " + footer
	}

	content := st.Title.Render("Help") + "\n\n" +
		strings.Join(visible, "\n") + "\n\n" +
		st.Muted.Render(footer)
	return styles.T().Pane(true).Padding(0, 1).Render(content)
}

func (m Model) lines() []string {
	th := styles.T()
	st := th.S()
	keyStyle := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(strings.Join(b.Keys, ", ")))
	}

	var lines []string
	current := ""
	for _, b := range m.bindings {
		if b.Context != current {
			if current != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines,
				st.Band.Render(label),
				st.Subtle.Render(strings.Repeat("─", keyWidth+20)),
			)
			current = b.Context
		}
		keys := strings.Join(b.Keys, ", ")
		lines = append(lines, keyStyle.Render(keys+strings.Repeat(" ", keyWidth-lipgloss.Width(keys)))+
			"  "+st.Base.Render(b.Description))
	}
	return lines
}

func (m Model) visibleHeight() int {
	return max(m.Height()-chrome, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines())-m.visibleHeight(), 0)
}
