package page

import (
	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
)

// Value is what an Edit page adjusts. setting.Int and setting.Enum
// satisfy it.
type Value interface {
	Step(delta int)
	String() string
}

// Reverter is an optional Value extension for editors that can throw
// away uncommitted steps.
type Reverter interface {
	Revert()
}

// Committer is an optional Value extension, called when the user
// accepts the edited value.
type Committer interface {
	Commit()
}

// Edit adjusts one value with Next/Prev or the rotary knob. Action
// commits and leaves to Done, Back reverts and leaves to Done.
type Edit struct {
	Title string
	Value Value
	Done  hmi.PageID
	Map   Keymap
}

func (self *Edit) Render(c *display.Content) {
	c.SetLine(0, self.Title)
	c.Linef(1, "< %s >", self.Value.String())
	c.SetCursor(1, 2)
}

func (self *Edit) Handle(e input.Event) hmi.Nav {
	op, count := self.Map.Resolve(e)
	switch op {
	case OpNext:
		self.Value.Step(count)
	case OpPrev:
		self.Value.Step(-count)
	case OpAction:
		if com, ok := self.Value.(Committer); ok {
			com.Commit()
		}
		return self.leave()
	case OpBack:
		if rev, ok := self.Value.(Reverter); ok {
			rev.Revert()
		}
		return self.leave()
	}
	return hmi.Stay()
}

func (self *Edit) leave() hmi.Nav {
	if self.Done != "" {
		return hmi.GoTo(self.Done)
	}
	return hmi.Stay()
}

func (self *Edit) Links() []hmi.PageID { return targets(self.Done) }
