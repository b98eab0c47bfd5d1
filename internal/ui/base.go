package ui

// Base holds the size and focus every pane needs. Embed it in pane models.
type Base struct {
	width, height int
	focused       bool
}

// SetFocused sets whether the pane has focus.
func (b *Base) SetFocused(focused bool) {
	b.focused = focused
}

// IsFocused returns whether the pane has focus.
func (b Base) IsFocused() bool {
	return b.focused
}

// SetSize sets the outer dimensions.
func (b *Base) SetSize(width, height int) {
	b.width = max(width, 0)
	b.height = max(height, 0)
}

// Width returns the outer width.
func (b Base) Width() int {
	return b.width
}

// Height returns the outer height.
func (b Base) Height() int {
	return b.height
}

// InnerHeight returns the height left after subtracting overhead rows.
func (b Base) InnerHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
