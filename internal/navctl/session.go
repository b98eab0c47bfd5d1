// Package navctl drives opening documents from the library and moving to
// the previous or next one, discarding results of loads that were
// superseded while in flight.
package navctl

// Session is the navigation state of one viewer.
type Session struct {
	// CurrentID is the selected entry, empty when nothing from the library
	// is selected.
	CurrentID string
	// Loading is true while the current request has not completed.
	Loading bool
	// Token increases on every navigation attempt. A result is applied
	// only if it carries the current token.
	Token uint64
	// Version increases each time content is handed to the surface.
	Version uint64
}

// Position is where the current entry sits in the navigation sequence.
type Position struct {
	Index       int // -1 when the current entry is not in the sequence
	CanPrevious bool
	CanNext     bool
}
