// Package hmi is the page engine core: a bounded registry of pages, a
// builder that validates the navigation graph, and the manager state
// machine that feeds events to the current page and applies its
// verdict.
//
// The engine is driven by a single-threaded polling loop owned by the
// embedding firmware. Dispatch is synchronous, performs at most one
// registry lookup, one Handle and one Render call, and must never be
// re-entered from inside a page. If the environment is multi-threaded,
// calls into the manager must be externally serialized.
package hmi

import (
	"fmt"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/input"
)

// PageID names a page within one manager. Ordered, copyable, unique.
// Empty string is reserved for "unset".
type PageID string

// Page is the unit of behavior firmware authors implement. Pages own
// their internal state (menu cursor, edit buffer) between calls; the
// manager never looks inside.
type Page interface {
	// Render draws the page into a caller-owned content sink. The
	// sink arrives reset.
	Render(c *display.Content)
	// Handle consumes one event and returns the navigation verdict.
	Handle(e input.Event) Nav
}

// Linker is an optional Page extension declaring static transition
// targets. Build fails early when a declared target is not
// registered, so broken graphs never reach the field.
type Linker interface {
	Links() []PageID
}

// Enterer is an optional Page extension, called after the page
// becomes current: reset tick age, refresh cursors.
type Enterer interface {
	Enter()
}

type navKind uint8

const (
	navStay navKind = iota
	navGoTo
	navExit
)

// Nav is a page's verdict after handling an event. The zero value is
// Stay.
type Nav struct {
	target PageID
	kind   navKind
}

// Stay keeps the current page.
func Stay() Nav { return Nav{} }

// GoTo moves to the named page. Unknown targets are reported by
// Dispatch and leave state unchanged.
func GoTo(id PageID) Nav { return Nav{kind: navGoTo, target: id} }

// Exit requests HMI shutdown: to the shutdown page when one is
// configured, otherwise straight to the terminal exited state.
func Exit() Nav { return Nav{kind: navExit} }

// Target returns the destination of a GoTo verdict.
func (n Nav) Target() (PageID, bool) { return n.target, n.kind == navGoTo }

func (n Nav) IsStay() bool { return n.kind == navStay }
func (n Nav) IsExit() bool { return n.kind == navExit }

func (n Nav) String() string {
	switch n.kind {
	case navStay:
		return "Stay"
	case navGoTo:
		return fmt.Sprintf("GoTo(%s)", n.target)
	case navExit:
		return "Exit"
	}
	return fmt.Sprintf("Nav(%d)", n.kind)
}

// Result is what every Dispatch returns: the now-current page and its
// fresh frame. Frame points into a manager-owned buffer, valid until
// the next Dispatch or Render call. Frame is nil once Exited.
type Result struct {
	Frame  *display.Content
	Page   PageID
	Exited bool
}
