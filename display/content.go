// Package display is the render boundary of the page engine. Pages
// draw into a bounded Content grid; adapters flush that grid to real
// devices (character LCD, terminal) and never expose pixels or cell
// addressing to the pages.
package display

import (
	"bytes"
	"fmt"
)

const MaxWidth = 40
const MaxHeight = 8

var spaceBytes = bytes.Repeat([]byte{' '}, MaxWidth)

// Content is the device-agnostic render sink: a fixed number of text
// lines plus selection and cursor hints for adapters that can show
// them. Allocated once, rewritten by pages on every render.
type Content struct {
	store []byte
	lines [][]byte
	width uint8
	sel   int8
	curY  int8
	curX  int8
}

func NewContent(height, width uint8) *Content {
	if height < 1 || height > MaxHeight || width < 1 || width > MaxWidth {
		panic(fmt.Sprintf("code error display content size=%dx%d", height, width))
	}
	c := &Content{
		store: make([]byte, int(height)*int(width)),
		lines: make([][]byte, height),
		width: width,
	}
	for i := range c.lines {
		begin := i * int(width)
		c.lines[i] = c.store[begin:begin : begin+int(width)]
	}
	c.Reset()
	return c
}

func (c *Content) Height() int { return len(c.lines) }
func (c *Content) Width() int  { return int(c.width) }

func (c *Content) Reset() {
	for i := range c.lines {
		c.lines[i] = c.lines[i][:0]
	}
	c.sel, c.curY, c.curX = -1, -1, -1
}

// SetLine copies s into line i, clipped to width. Out of range i is
// ignored so pages degrade to clipping on smaller displays.
func (c *Content) SetLine(i int, s string) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	n := len(s)
	if n > int(c.width) {
		n = int(c.width)
	}
	c.lines[i] = append(c.lines[i][:0], s[:n]...)
}

func (c *Content) Linef(i int, format string, args ...interface{}) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	b := fmt.Appendf(c.lines[i][:0], format, args...)
	if len(b) > int(c.width) {
		b = b[:c.width]
	}
	c.lines[i] = b
}

// Line returns the shared line buffer, callers must not retain it
// across Reset.
func (c *Content) Line(i int) []byte {
	if i < 0 || i >= len(c.lines) {
		return nil
	}
	return c.lines[i]
}

func (c *Content) Lines() [][]byte { return c.lines }

// Select marks line i as the highlighted one. Character adapters
// ignore it (pages bracket their own selection), richer adapters
// use it for styling.
func (c *Content) Select(i int) {
	if i < 0 || i >= len(c.lines) {
		c.sel = -1
		return
	}
	c.sel = int8(i)
}

func (c *Content) Selected() int { return int(c.sel) }

// SetCursor places the hardware/editing cursor, -1 hides it.
func (c *Content) SetCursor(y, x int) {
	if y < 0 || y >= len(c.lines) || x < 0 || x >= int(c.width) {
		c.curY, c.curX = -1, -1
		return
	}
	c.curY, c.curX = int8(y), int8(x)
}

func (c *Content) Cursor() (y, x int, ok bool) {
	if c.curY < 0 {
		return -1, -1, false
	}
	return int(c.curY), int(c.curX), true
}

func (c *Content) Equal(o *Content) bool {
	if c == nil || o == nil {
		return c == o
	}
	if len(c.lines) != len(o.lines) || c.width != o.width ||
		c.sel != o.sel || c.curY != o.curY || c.curX != o.curX {
		return false
	}
	for i := range c.lines {
		if !bytes.Equal(c.lines[i], o.lines[i]) {
			return false
		}
	}
	return true
}

func (c *Content) Clone() *Content {
	clone := NewContent(uint8(len(c.lines)), c.width)
	for i := range c.lines {
		clone.lines[i] = append(clone.lines[i][:0], c.lines[i]...)
	}
	clone.sel, clone.curY, clone.curX = c.sel, c.curY, c.curX
	return clone
}

// String joins lines unpadded, mostly for logs and test failures.
func (c *Content) String() string {
	buf := make([]byte, 0, len(c.store)+len(c.lines))
	for i := range c.lines {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, c.lines[i]...)
	}
	return string(buf)
}

// Format pads every line to full width, the shape a character display
// would show.
func (c *Content) Format() string {
	buf := make([]byte, 0, len(c.store)+len(c.lines))
	for i := range c.lines {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, PadSpace(c.lines[i], uint32(c.width))...)
	}
	return string(buf)
}

func PadSpace(b []byte, width uint32) []byte {
	l := uint32(len(b))

	if l == 0 {
		return spaceBytes[:width]
	}
	if l >= width {
		return b
	}
	buf := make([]byte, 0, width)
	buf = append(append(buf, b...), spaceBytes[:width-l]...)
	return buf
}
