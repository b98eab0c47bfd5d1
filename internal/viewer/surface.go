package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tablib/internal/navctl"
	"github.com/llehouerou/tablib/internal/ui/styles"
)

var _ navctl.Surface = (*Surface)(nil)

// Surface shows one document at a time in a scrollable pane. Every new
// version starts at the top.
type Surface struct {
	vp       viewport.Model
	doc      Document
	version  uint64
	shown    bool
	tabWidth int
}

// New returns an empty surface.
func New(tabWidth int) *Surface {
	vp := viewport.New(0, 0)
	vp.KeyMap = KeyMap()
	return &Surface{vp: vp, tabWidth: tabWidth}
}

// KeyMap is the scrolling keys of the document pane. Plain letters are
// left to the library controls.
func KeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " "), key.WithHelp("pgdn", "page down")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		Down:         key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "scroll down")),
		Up:           key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "scroll up")),
	}
}

// Render implements navctl.Surface.
func (s *Surface) Render(content []byte, version uint64) {
	s.doc = Parse(content, s.tabWidth)
	s.shown = true
	s.vp.SetContent(s.body())
	if version != s.version {
		s.vp.GotoTop()
	}
	s.version = version
}

// Clear implements navctl.Surface.
func (s *Surface) Clear() {
	s.doc = Document{}
	s.shown = false
	s.vp.SetContent("")
	s.vp.GotoTop()
}

// Version is the version of the document on screen, or of the last one
// shown if the surface has been cleared since.
func (s *Surface) Version() uint64 {
	return s.version
}

// Showing reports whether a document is on screen.
func (s *Surface) Showing() bool {
	return s.shown
}

// Document returns the parsed document on screen.
func (s *Surface) Document() Document {
	return s.doc
}

// SetSize resizes the pane.
func (s *Surface) SetSize(width, height int) {
	s.vp.Width = max(width, 0)
	s.vp.Height = max(height, 0)
}

// YOffset is the first visible line.
func (s *Surface) YOffset() int {
	return s.vp.YOffset
}

// ScrollPercent is how far down the document the pane is, from 0 to 1.
func (s *Surface) ScrollPercent() float64 {
	return s.vp.ScrollPercent()
}

// Update scrolls the pane.
func (s *Surface) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

// View renders the pane.
func (s *Surface) View() string {
	return s.vp.View()
}

// Summary describes the document on screen in one line.
func (s *Surface) Summary() string {
	if !s.shown {
		return "nothing shown"
	}
	return Describe(s.doc)
}

// Describe is a one-line description of doc.
func Describe(doc Document) string {
	size := humanize.Bytes(uint64(max(doc.Size, 0)))
	switch doc.Kind {
	case KindText:
		return fmt.Sprintf("text, %d lines, %s", len(doc.Lines), size)
	case KindPDF:
		parts := []string{"PDF"}
		if doc.PDF.Version != "" {
			parts[0] += " " + doc.PDF.Version
		}
		if doc.PDF.Pages > 0 {
			parts = append(parts, humanize.Comma(int64(doc.PDF.Pages))+" "+plural(doc.PDF.Pages, "page", "pages"))
		}
		parts = append(parts, size)
		return strings.Join(parts, ", ")
	case KindBinary:
		return "binary, " + size
	}
	return "empty"
}

func (s *Surface) body() string {
	switch s.doc.Kind {
	case KindText:
		return strings.Join(s.doc.Lines, "\n")
	case KindPDF:
		return pdfCard(s.doc)
	case KindBinary:
		return styles.T().S().Muted.Render("No preview for this document (" + humanize.Bytes(uint64(s.doc.Size)) + ").")
	}
	return styles.T().S().Muted.Render("Empty document.")
}

func pdfCard(doc Document) string {
	st := styles.T().S()
	row := func(label, value string) string {
		return st.Muted.Render(fmt.Sprintf("%-8s", label)) + " " + st.Base.Render(value)
	}

	lines := []string{st.Title.Render("PDF document"), ""}
	if doc.PDF.Title != "" {
		lines = append(lines, row("Title", doc.PDF.Title))
	}
	if doc.PDF.Version != "" {
		lines = append(lines, row("Version", doc.PDF.Version))
	}
	pages := "unknown"
	if doc.PDF.Pages > 0 {
		pages = fmt.Sprintf("about %d", doc.PDF.Pages)
	}
	lines = append(lines,
		row("Pages", pages),
		row("Size", humanize.Bytes(uint64(doc.Size))),
		"",
		st.Subtle.Render("PDF pages are not drawn in the terminal."),
	)
	return strings.Join(lines, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
