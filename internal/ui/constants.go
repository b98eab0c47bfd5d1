// Package ui provides shared layout constants and pane helpers.
package ui

// Layout constants for consistent sizing across panes.
const (
	// ScrollMargin is the number of rows kept visible above/below the cursor.
	ScrollMargin = 3

	// BorderSize is the space a rounded pane border takes on each axis.
	BorderSize = 2

	// HeaderHeight is the space for a pane title plus its separator.
	HeaderHeight = 2

	// PaneOverhead is the vertical space a pane spends on chrome.
	PaneOverhead = BorderSize + HeaderHeight

	// SidebarDivisor gives the library list 1/SidebarDivisor of the width.
	SidebarDivisor = 3

	// MinSidebarWidth keeps song titles readable on narrow terminals.
	MinSidebarWidth = 24
)
