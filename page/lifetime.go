package page

import (
	"github.com/hmikit/multipage/input"
)

// Lifetime ages a page by tick events and reports expiry exactly
// once. Pages embed it to implement timed auto-advance: splash
// screens, farewell pages, idle return to home.
type Lifetime struct {
	Budget  uint16 // ticks until expiry, 0 = never
	OnInput bool   // user input restarts the countdown
	age     uint16
	done    bool
}

// Reset restarts the countdown, called from the page's Enter hook.
func (self *Lifetime) Reset() {
	self.age = 0
	self.done = false
}

// Age returns elapsed ticks since the last reset.
func (self *Lifetime) Age() uint16 { return self.age }

// Observe feeds one event and reports true on the tick that crosses
// the budget. Later ticks return false until the next Reset.
func (self *Lifetime) Observe(e input.Event) bool {
	if self.Budget == 0 {
		return false
	}
	if e.IsTick() {
		if self.done {
			return false
		}
		self.age += e.Ticks
		if self.age >= self.Budget {
			self.done = true
			return true
		}
		return false
	}
	if self.OnInput && !e.IsZero() {
		self.age = 0
	}
	return false
}
