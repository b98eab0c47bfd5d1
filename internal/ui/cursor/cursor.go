// Package cursor tracks a cursor and scroll offset over a list whose length
// and visible height are supplied by the caller on each call.
package cursor

// Cursor is a position plus the first visible row.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above/below the cursor
}

// New creates a cursor with the given scroll margin.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the cursor position.
func (c Cursor) Pos() int {
	return c.pos
}

// Offset returns the first visible row.
func (c Cursor) Offset() int {
	return c.offset
}

// Jump moves the cursor to pos, clamped to the list, and scrolls it into
// view. It does nothing on an empty list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.EnsureVisible(listLen, height)
}

// Reset moves to the top.
func (c *Cursor) Reset() {
	c.pos = 0
	c.offset = 0
}

// EnsureVisible scrolls so the cursor sits outside the margins where
// possible.
func (c *Cursor) EnsureVisible(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	margin := min(c.margin, (height-1)/2)

	if c.pos < c.offset+margin {
		c.offset = max(c.pos-margin, 0)
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

// VisibleRange returns the visible rows [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	start = min(c.offset, max(listLen-1, 0))
	return start, min(start+height, listLen)
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
