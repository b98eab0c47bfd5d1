package app

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tablib/internal/mpris"
)

var _ mpris.Controls = (*Remote)(nil)

// Remote bridges the MPRIS server and the UI loop. Requests are forwarded
// as messages; status is read from a snapshot the loop publishes.
type Remote struct {
	now  atomic.Pointer[mpris.NowShowing]
	send atomic.Pointer[func(tea.Msg)]
}

// NewRemote returns a remote that drops requests until attached.
func NewRemote() *Remote {
	r := &Remote{}
	r.now.Store(&mpris.NowShowing{})
	return r
}

// Attach sets where requests are sent, usually Program.Send.
func (r *Remote) Attach(send func(tea.Msg)) {
	r.send.Store(&send)
}

func (r *Remote) Next()     { r.forward(RemoteMsg{Forward: true}) }
func (r *Remote) Previous() { r.forward(RemoteMsg{Forward: false}) }

// Now returns the last published snapshot.
func (r *Remote) Now() mpris.NowShowing {
	return *r.now.Load()
}

func (r *Remote) publish(now mpris.NowShowing) {
	r.now.Store(&now)
}

func (r *Remote) forward(msg tea.Msg) {
	if send := r.send.Load(); send != nil {
		(*send)(msg)
	}
}
