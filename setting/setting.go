// Package setting holds the adjustable values behind edit pages:
// bounded integers, enumerations, short text. Cells remember their
// last committed value so an edit can be abandoned, and a Registry
// round-trips all cells through a text form for persistent storage.
//
// Cells are plain single-threaded state owned by the engine loop.
package setting

import (
	"fmt"
	"strconv"

	"github.com/hmikit/multipage/helpers"
	"github.com/juju/errors"
)

// Cell is the common surface of all setting kinds.
type Cell interface {
	Name() string
	String() string
	Set(s string) error
}

// Int is a clamped integer with a step size, volume 0..100 by 5.
type Int struct {
	name string
	v    int
	com  int
	min  int
	max  int
	step int
}

func NewInt(name string, value, min, max, step int) *Int {
	if name == "" || min > max || step <= 0 {
		panic(fmt.Sprintf("code error setting int name=%s min=%d max=%d step=%d", name, min, max, step))
	}
	self := &Int{name: name, min: min, max: max, step: step}
	self.v = self.clamp(value)
	self.com = self.v
	return self
}

func (self *Int) Name() string   { return self.name }
func (self *Int) Value() int     { return self.v }
func (self *Int) String() string { return strconv.Itoa(self.v) }

// Step moves the value by delta steps, clamped at the bounds.
func (self *Int) Step(delta int) { self.v = self.clamp(self.v + delta*self.step) }

func (self *Int) Commit() { self.com = self.v }
func (self *Int) Revert() { self.v = self.com }

func (self *Int) Set(s string) error {
	x, err := strconv.Atoi(s)
	if err != nil {
		return errors.NotValidf("setting %s=%s", self.name, s)
	}
	if x < self.min || x > self.max {
		return errors.NotValidf("setting %s=%d range %d..%d", self.name, x, self.min, self.max)
	}
	self.v = x
	self.com = x
	return nil
}

func (self *Int) clamp(x int) int {
	if x < self.min {
		return self.min
	}
	if x > self.max {
		return self.max
	}
	return x
}

// Enum cycles through a fixed option list, wrapping at the ends.
type Enum struct {
	name string
	opts []string
	idx  uint8
	com  uint8
}

func NewEnum(name string, options ...string) *Enum {
	if name == "" || len(options) == 0 || len(options) > 255 {
		panic(fmt.Sprintf("code error setting enum name=%s options=%d", name, len(options)))
	}
	return &Enum{name: name, opts: options}
}

func (self *Enum) Name() string   { return self.name }
func (self *Enum) String() string { return self.opts[self.idx] }
func (self *Enum) Index() int     { return int(self.idx) }

func (self *Enum) Step(delta int) {
	self.idx = helpers.AddWrap(self.idx, uint8(len(self.opts)), delta)
}

func (self *Enum) Commit() { self.com = self.idx }
func (self *Enum) Revert() { self.idx = self.com }

func (self *Enum) Set(s string) error {
	for i, opt := range self.opts {
		if opt == s {
			self.idx = uint8(i)
			self.com = self.idx
			return nil
		}
	}
	return errors.NotValidf("setting %s=%s", self.name, s)
}

// Text is a short free-form value, edited through a string entry
// page.
type Text struct {
	name string
	v    string
	com  string
	max  int
}

func NewText(name, value string, max int) *Text {
	if name == "" {
		panic("code error setting text name empty")
	}
	return &Text{name: name, v: value, com: value, max: max}
}

func (self *Text) Name() string   { return self.name }
func (self *Text) String() string { return self.v }

func (self *Text) Commit() { self.com = self.v }
func (self *Text) Revert() { self.v = self.com }

func (self *Text) Set(s string) error {
	if self.max > 0 && len(s) > self.max {
		return errors.NotValidf("setting %s length %d max %d", self.name, len(s), self.max)
	}
	self.v = s
	self.com = s
	return nil
}
