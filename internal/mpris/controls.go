// Package mpris exposes document navigation over MPRIS so media keys,
// headset buttons and pedals that send next/previous turn the page.
package mpris

// NowShowing is a snapshot of the viewer for remote clients.
type NowShowing struct {
	ID          string
	Band        string
	Album       string
	Song        string
	Loading     bool
	CanNext     bool
	CanPrevious bool
}

// Controls is what the remote drives. Next and Previous are called from
// D-Bus goroutines and must hand the request over to the UI loop; Now must
// be safe to call concurrently.
type Controls interface {
	Next()
	Previous()
	Now() NowShowing
}
