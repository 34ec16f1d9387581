package page

import (
	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/helpers"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
)

const DefaultCharset = "abcdefghijklmnopqrstuvwxyz0123456789-_."

// EnterText builds a string with only Next/Prev/Action: the cursor
// walks a character picker, Action appends the picked character. Two
// virtual picker slots follow the charset: rub out the last character
// and accept the buffer. Back aborts to Cancel without calling
// Accept.
//
// Line one shows the buffer with a trailing underscore, line two a
// picker window centered on the cursor, picked character bracketed.
type EnterText struct {
	Accept  func(s string) hmi.Nav
	Title   string
	Charset string
	Cancel  hmi.PageID
	Max     int
	Map     Keymap
	buf     []byte
	pick    uint8
	digits  bool
}

// pickerLen counts charset plus the del and ok slots.
func (self *EnterText) pickerLen() int { return len(self.charset()) + 2 }

func (self *EnterText) charset() string {
	if self.Charset == "" {
		return DefaultCharset
	}
	return self.Charset
}

func (self *EnterText) String() string { return string(self.buf) }

// SetText presets the buffer, for editing an existing value.
func (self *EnterText) SetText(s string) { self.buf = append(self.buf[:0], s...) }

func (self *EnterText) Enter() { self.pick = 0 }

func (self *EnterText) Render(c *display.Content) {
	row := 0
	if self.Title != "" {
		c.SetLine(row, self.Title)
		row++
	}
	c.Linef(row, "%s_", self.buf)
	c.SetCursor(row, len(self.buf))
	self.renderPicker(c, row+1)
}

func (self *EnterText) renderPicker(c *display.Content, row int) {
	cs := self.charset()
	width := c.Width()

	cells := make([]string, 0, self.pickerLen())
	for i := 0; i < len(cs); i++ {
		cells = append(cells, cs[i:i+1])
	}
	cells = append(cells, "del", "ok")

	// bracket the picked cell, then collect a window around it that
	// fits the display width
	line := make([]byte, 0, width)
	pos := int(self.pick)
	line = append(append(append(line, '['), cells[pos]...), ']')
	for left, right := pos-1, pos+1; len(line) < width; left, right = left-1, right+1 {
		grew := false
		if left >= 0 && len(line)+len(cells[left]) <= width {
			line = append([]byte(cells[left]), line...)
			grew = true
		}
		if right < len(cells) && len(line)+len(cells[right]) <= width {
			line = append(line, cells[right]...)
			grew = true
		}
		if !grew {
			break
		}
	}
	c.SetLine(row, string(line))
}

func (self *EnterText) Handle(e input.Event) hmi.Nav {
	if self.digits && e.IsDigit() {
		self.append(byte(e.Key))
		return hmi.Stay()
	}
	op, count := self.Map.Resolve(e)
	switch op {
	case OpNext:
		self.pick = helpers.AddWrap(self.pick, uint8(self.pickerLen()), count)
	case OpPrev:
		self.pick = helpers.AddWrap(self.pick, uint8(self.pickerLen()), -count)
	case OpAction:
		return self.apply()
	case OpBack:
		if self.Cancel != "" {
			return hmi.GoTo(self.Cancel)
		}
	}
	return hmi.Stay()
}

func (self *EnterText) apply() hmi.Nav {
	cs := self.charset()
	switch int(self.pick) {
	case len(cs): // del
		if len(self.buf) > 0 {
			self.buf = self.buf[:len(self.buf)-1]
		}
	case len(cs) + 1: // ok
		if self.Accept != nil {
			return self.Accept(string(self.buf))
		}
	default:
		self.append(cs[self.pick])
	}
	return hmi.Stay()
}

func (self *EnterText) append(b byte) {
	if self.Max > 0 && len(self.buf) >= self.Max {
		return
	}
	self.buf = append(self.buf, b)
}

// AllowDigits lets digit keys type directly, bypassing the picker.
// Useful with a numeric keypad next to the navigation buttons.
func (self *EnterText) AllowDigits() *EnterText {
	self.digits = true
	return self
}

func (self *EnterText) Links() []hmi.PageID { return targets(self.Cancel) }
