package page

import (
	"strings"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
)

// Text is a static page: fixed lines, optional timed auto-advance.
// Action or expiry leads to Next; with empty Next and ExitOnDone set
// they leave the HMI instead. The zero targets make a pure
// informational page that only reacts to Back/Home.
type Text struct {
	Lines []string
	Next  hmi.PageID
	Back  hmi.PageID
	Home  hmi.PageID
	Life  Lifetime
	Map   Keymap
	// ExitOnDone turns Action/expiry into an exit verdict when Next
	// is empty. Farewell pages use this.
	ExitOnDone bool
}

func NewText(lines ...string) *Text {
	return &Text{Lines: lines}
}

// NewError wraps err into a page. The first line is a fixed marker so
// field photos of the display are searchable in tickets.
func NewError(err error) *Text {
	lines := []string{"error"}
	if err != nil {
		for _, s := range strings.Split(err.Error(), "\n") {
			if s = strings.TrimSpace(s); s != "" {
				lines = append(lines, s)
			}
		}
	}
	return &Text{Lines: lines}
}

func (self *Text) Enter() { self.Life.Reset() }

func (self *Text) Render(c *display.Content) {
	for i, s := range self.Lines {
		c.SetLine(i, s)
	}
}

func (self *Text) Handle(e input.Event) hmi.Nav {
	if self.Life.Observe(e) {
		return self.advance()
	}
	op, _ := self.Map.Resolve(e)
	switch op {
	case OpAction:
		return self.advance()
	case OpBack:
		if self.Back != "" {
			return hmi.GoTo(self.Back)
		}
	case OpHome:
		if self.Home != "" {
			return hmi.GoTo(self.Home)
		}
	}
	return hmi.Stay()
}

func (self *Text) advance() hmi.Nav {
	if self.Next != "" {
		return hmi.GoTo(self.Next)
	}
	if self.ExitOnDone {
		return hmi.Exit()
	}
	return hmi.Stay()
}

func (self *Text) Links() []hmi.PageID {
	return targets(self.Next, self.Back, self.Home)
}

// targets filters empty ids, shared by all page kinds.
func targets(ids ...hmi.PageID) []hmi.PageID {
	out := make([]hmi.PageID, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
