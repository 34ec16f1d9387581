package page

import (
	"github.com/hmikit/multipage/hmi"
)

// NewStartup is a splash that moves to next after ticks elapse, or
// immediately on Action. User input does not restart the countdown.
func NewStartup(next hmi.PageID, ticks uint16, lines ...string) *Text {
	p := NewText(lines...)
	p.Next = next
	p.Life = Lifetime{Budget: ticks}
	return p
}

// NewShutdown is the farewell page: after ticks, or on Action, the
// engine exits for real. Back and Home are usually bound by the
// caller to give the user a way to abort.
func NewShutdown(ticks uint16, lines ...string) *Text {
	p := NewText(lines...)
	p.ExitOnDone = true
	p.Life = Lifetime{Budget: ticks}
	return p
}
