// Package page is a library of ready page kinds for the engine:
// static text, menus, value editors, string entry, boot and farewell
// splashes, QR display. Firmware composes these instead of writing
// Render/Handle by hand for every screen.
package page

import (
	"github.com/hmikit/multipage/input"
)

//go:generate stringer -type=Op -trimprefix=Op
type Op uint8

// Op is the semantic operation behind an event, after the keymap.
// Pages react to operations, not raw keys, so one firmware can rebind
// its five buttons without touching page code.
const (
	OpNone Op = iota
	OpAction
	OpNext
	OpPrev
	OpBack
	OpHome
)

// Keymap binds raw events to operations. The zero value uses the
// default bindings.
type Keymap struct {
	Keys   map[input.Key]Op
	Chords map[input.Chord]Op
}

var defaultKeys = map[input.Key]Op{
	input.KeyAction: OpAction,
	input.KeyNext:   OpNext,
	input.KeyPrev:   OpPrev,
	input.KeyBack:   OpBack,
	input.KeyHome:   OpHome,
}

var defaultChords = map[input.Chord]Op{
	input.ChordAction:                 OpAction,
	input.ChordNext:                   OpNext,
	input.ChordPrev:                   OpPrev,
	input.ChordBack:                   OpBack,
	input.ChordHome:                   OpHome,
	input.ChordBack | input.ChordHome: OpHome,
	input.ChordNext | input.ChordPrev: OpHome,
}

func DefaultKeymap() Keymap {
	return Keymap{Keys: defaultKeys, Chords: defaultChords}
}

// Resolve maps one event to (operation, repeat count). Key releases
// and ticks resolve to OpNone. Rotary events resolve to OpNext or
// OpPrev with the step magnitude as count, so an encoder burst is one
// call.
func (self Keymap) Resolve(e input.Event) (Op, int) {
	keys, chords := self.Keys, self.Chords
	if keys == nil {
		keys = defaultKeys
	}
	if chords == nil {
		chords = defaultChords
	}

	switch e.Kind {
	case input.KindKey:
		if e.Up {
			return OpNone, 0
		}
		if op, ok := keys[e.Key]; ok {
			return op, 1
		}
	case input.KindChord:
		if op, ok := chords[e.Chord]; ok {
			return op, 1
		}
	case input.KindRotate:
		if e.Delta > 0 {
			return OpNext, int(e.Delta)
		}
		if e.Delta < 0 {
			return OpPrev, int(-e.Delta)
		}
	}
	return OpNone, 0
}
