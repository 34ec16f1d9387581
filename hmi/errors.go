package hmi

import (
	"github.com/juju/errors"
)

// Sentinel causes. Callers match with the Is* helpers, never by
// string: dispatch and build annotate these with page ids before
// returning.
var (
	// ErrExited is returned by Dispatch and Render after the manager
	// reached the terminal exited state. Constant across calls.
	ErrExited = errors.New("hmi: manager exited")

	// ErrCapacityExceeded is returned by Register once the fixed
	// page budget is used up.
	ErrCapacityExceeded = errors.New("hmi: registry capacity exceeded")

	// ErrIncompleteGraph is returned by Build when a startup,
	// shutdown or declared link target is not registered. The
	// annotation names every missing id.
	ErrIncompleteGraph = errors.New("hmi: incomplete page graph")
)

func IsExited(e error) bool           { return errors.Cause(e) == ErrExited }
func IsCapacityExceeded(e error) bool { return errors.Cause(e) == ErrCapacityExceeded }
func IsIncompleteGraph(e error) bool  { return errors.Cause(e) == ErrIncompleteGraph }

// IsUnknownPage reports whether e came from a lookup of an id that
// was never registered.
func IsUnknownPage(e error) bool { return errors.IsNotFound(e) }

// IsDuplicatePage reports whether e came from registering an id
// twice.
func IsDuplicatePage(e error) bool { return errors.IsAlreadyExists(e) }
