package hmi

import (
	"fmt"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/log2"
	"github.com/juju/errors"
)

//go:generate stringer -type=State -trimprefix=State
type State uint8

const (
	StateInvalid State = iota // zero value, manager not built
	StateRunning
	StateExited // terminal
)

// Manager runs the page state machine. Built by Builder, driven by
// Dispatch. Not safe for concurrent use.
type Manager struct {
	log      *log2.Log
	reg      *Registry
	frame    *display.Content
	current  PageID
	shutdown PageID
	state    State
	exiting  bool
	inHandle bool
}

// Current returns the id of the current page. After exit it still
// names the page that was current last.
func (self *Manager) Current() PageID { return self.current }

func (self *Manager) State() State { return self.state }

// Done reports whether the manager reached the terminal exited state.
func (self *Manager) Done() bool { return self.state == StateExited }

// Registry exposes the frozen page table for inspection.
func (self *Manager) Registry() *Registry { return self.reg }

// Dispatch feeds one event to the current page and applies its
// verdict.
//
//   - After exit: returns ErrExited, same answer every time.
//   - Stay: no transition.
//   - GoTo unknown id: error reported, state unchanged.
//   - GoTo known id: target becomes current, its Enter hook runs.
//   - Exit with a shutdown page configured, not yet current: the
//     shutdown page becomes current and an internal latch arms, so
//     the next Exit verdict is final. Navigating away disarms the
//     latch.
//   - Exit otherwise: terminal exited state.
//
// The returned Result always names the now-current page and carries a
// fresh frame of it. The frame buffer is reused: it is valid until
// the next Dispatch or Render call.
func (self *Manager) Dispatch(event input.Event) (Result, error) {
	switch self.state {
	case StateRunning:
	case StateExited:
		return Result{Page: self.current, Exited: true}, errors.Trace(ErrExited)
	default:
		panic("code error hmi manager used before build")
	}
	if self.inHandle {
		panic("code error hmi dispatch reentered from page handler")
	}

	page := self.mustLookup(self.current)
	self.inHandle = true
	nav := page.Handle(event)
	self.inHandle = false

	switch nav.kind {
	case navStay:

	case navGoTo:
		next, err := self.reg.Lookup(nav.target)
		if err != nil {
			self.log.Errorf("hmi page=%s event=%s verdict=%s: target not registered", self.current, event.String(), nav.String())
			return self.render(), errors.Annotatef(err, "navigate from %s", self.current)
		}
		self.setCurrent(nav.target, next)

	case navExit:
		if self.shutdown != "" && !self.exiting && self.current != self.shutdown {
			sd := self.mustLookup(self.shutdown)
			self.exiting = true
			self.setCurrent(self.shutdown, sd)
		} else {
			self.state = StateExited
			self.log.Infof("hmi exited last=%s", self.current)
			return Result{Page: self.current, Exited: true}, nil
		}
	}

	return self.render(), nil
}

// Render redraws the current page without dispatching an event. Same
// frame reuse contract as Dispatch.
func (self *Manager) Render() (Result, error) {
	switch self.state {
	case StateRunning:
		return self.render(), nil
	case StateExited:
		return Result{Page: self.current, Exited: true}, errors.Trace(ErrExited)
	}
	panic("code error hmi manager used before build")
}

func (self *Manager) render() Result {
	self.frame.Reset()
	self.mustLookup(self.current).Render(self.frame)
	return Result{Page: self.current, Frame: self.frame}
}

func (self *Manager) setCurrent(id PageID, page Page) {
	if self.exiting && id != self.shutdown {
		self.exiting = false
	}
	self.log.Debugf("hmi page %s -> %s", self.current, id)
	self.current = id
	if en, ok := page.(Enterer); ok {
		en.Enter()
	}
}

// mustLookup is for ids the builder already validated. A miss means
// manager state was corrupted, not user error.
func (self *Manager) mustLookup(id PageID) Page {
	page, err := self.reg.Lookup(id)
	if err != nil {
		panic(fmt.Sprintf("code error hmi page %s vanished from registry", id))
	}
	return page
}
