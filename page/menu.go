package page

import (
	"fmt"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/helpers"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
)

// Item is one menu entry. Target wins when both are set; Do is for
// entries with side effects that decide navigation themselves.
type Item struct {
	Do     func() hmi.Nav
	Label  string
	Target hmi.PageID
}

// Menu is a vertical list with a wrapping cursor. The selected entry
// is bracketed, "[ Sound ]", so selection survives any display that
// can show text at all. On displays shorter than the list the window
// scrolls to keep the selection visible.
type Menu struct {
	Title string
	Items []Item
	Back  hmi.PageID
	Home  hmi.PageID
	Map   Keymap
	sel   uint8
	top   uint8
}

func NewMenu(title string, items ...Item) *Menu {
	if len(items) == 0 || len(items) > 255 {
		panic(fmt.Sprintf("code error page menu %q items=%d", title, len(items)))
	}
	return &Menu{Title: title, Items: items}
}

// Selected returns the label under the cursor.
func (self *Menu) Selected() string { return self.Items[self.sel].Label }

func (self *Menu) Render(c *display.Content) {
	row := 0
	if self.Title != "" {
		c.SetLine(row, self.Title)
		row++
	}
	visible := c.Height() - row
	if visible < 1 {
		visible = 1
	}
	self.scroll(visible)

	for i := 0; i < visible && int(self.top)+i < len(self.Items); i++ {
		n := int(self.top) + i
		if uint8(n) == self.sel {
			c.Linef(row+i, "[ %s ]", self.Items[n].Label)
			c.Select(row + i)
		} else {
			c.Linef(row+i, "  %s", self.Items[n].Label)
		}
	}
}

// scroll moves the window so sel stays visible.
func (self *Menu) scroll(visible int) {
	sel, top := int(self.sel), int(self.top)
	if sel < top {
		top = sel
	}
	if sel >= top+visible {
		top = sel - visible + 1
	}
	if top+visible > len(self.Items) {
		top = len(self.Items) - visible
	}
	if top < 0 {
		top = 0
	}
	self.top = uint8(top)
}

func (self *Menu) Handle(e input.Event) hmi.Nav {
	op, count := self.Map.Resolve(e)
	switch op {
	case OpNext:
		self.sel = helpers.AddWrap(self.sel, uint8(len(self.Items)), count)
	case OpPrev:
		self.sel = helpers.AddWrap(self.sel, uint8(len(self.Items)), -count)
	case OpAction:
		item := self.Items[self.sel]
		if item.Target != "" {
			return hmi.GoTo(item.Target)
		}
		if item.Do != nil {
			return item.Do()
		}
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

func (self *Menu) Links() []hmi.PageID {
	ids := targets(self.Back, self.Home)
	for _, item := range self.Items {
		if item.Target != "" {
			ids = append(ids, item.Target)
		}
	}
	return ids
}
