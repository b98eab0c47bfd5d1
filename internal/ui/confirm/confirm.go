// Package confirm provides the yes/no dialog and the blocking notice shown
// on top of the library.
package confirm

import (
	"github.com/llehouerou/tablib/internal/ui/styles"
)

// Result is the answer to a dialog.
type Result struct {
	Confirmed bool
	Context   any // passed through from Ask
}

// Model is a dialog. At most one is shown at a time.
type Model struct {
	title   string
	message string
	hint    string
	context any
	notice  bool
	active  bool
}

// New returns a hidden dialog.
func New() Model {
	return Model{}
}

// Ask shows a yes/no question. context is handed back with the answer.
func (m *Model) Ask(title, message, hint string, context any) {
	*m = Model{title: title, message: message, hint: hint, context: context, active: true}
}

// Notify shows a notice that blocks until acknowledged.
func (m *Model) Notify(title, message, hint string) {
	*m = Model{title: title, message: message, hint: hint, notice: true, active: true}
}

// Reset hides the dialog.
func (m *Model) Reset() {
	*m = Model{}
}

// Active reports whether a dialog is shown.
func (m Model) Active() bool {
	return m.active
}

// IsNotice reports whether the shown dialog is a notice.
func (m Model) IsNotice() bool {
	return m.active && m.notice
}

// Message returns the text of the shown dialog.
func (m Model) Message() string {
	if !m.active {
		return ""
	}
	return m.message
}

// Answer closes the dialog. A notice is never confirmed.
func (m *Model) Answer(yes bool) Result {
	r := Result{Confirmed: yes && !m.notice, Context: m.context}
	m.Reset()
	return r
}

// View renders the framed dialog, or nothing when hidden.
func (m Model) View() string {
	if !m.active {
		return ""
	}
	st := styles.T().S()
	message := st.Base.Render(m.message)
	if m.notice {
		message = st.Error.Render(m.message)
	}

	content := message
	if m.title != "" {
		content = st.Title.Render(m.title) + "\n\n" + message
	}
	if m.hint != "" {
		content += "\n\n" + st.Muted.Render(m.hint)
	}
	return styles.T().Pane(true).Padding(1, 2).Render(content)
}
