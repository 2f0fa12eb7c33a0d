// SPDX-License-Identifier: EPL-2.0

package loop

// Cursor is the read position of an Engine, counted in frames, over a
// buffer of length frames. Position is always in [0, length).
type Cursor struct {
	position int
	length   int
}

func NewCursor(length int) Cursor {
	return Cursor{length: length}
}

func (c Cursor) Position() int { return c.position }
func (c Cursor) Length() int   { return c.length }

// span returns how many frames can be read from the current position
// before wrapping, capped at want.
func (c Cursor) span(want int) int {
	return min(want, c.length-c.position)
}

// advance moves the cursor n frames forward, wrapping to the start.
func (c *Cursor) advance(n int) {
	c.position = (c.position + n) % c.length
}
