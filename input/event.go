// Package input carries normalized user events from hardware sources
// to the page engine: buttons, button chords, rotary steps and the
// periodic tick.
package input

import "fmt"

//go:generate stringer -type=Kind -trimprefix=Kind
type Kind uint8

const (
	KindInvalid Kind = iota
	KindKey
	KindChord
	KindRotate
	KindTick
)

// Key is a single logical button. Values follow ascii where a readable
// character exists, so logs and stdin sources stay obvious.
type Key uint16

const (
	KeyNone   Key = 0
	KeyAction Key = ' '
	KeyNext   Key = 'n'
	KeyPrev   Key = 'p'
	KeyBack   Key = 'b'
	KeyHome   Key = 'h'
)

// Chord is a bitmask of concurrently held buttons.
type Chord uint8

const (
	ChordAction Chord = 1 << iota
	ChordNext
	ChordPrev
	ChordBack
	ChordHome
)

type Event struct {
	Source string
	Kind   Kind
	Key    Key    // KindKey
	Chord  Chord  // KindChord
	Delta  int16  // KindRotate, signed step count
	Ticks  uint16 // KindTick, number of elapsed periods
	Up     bool   // KindKey release
}

func (e Event) IsZero() bool { return e.Kind == KindInvalid }
func (e Event) IsTick() bool { return e.Kind == KindTick }

// IsDigit reports a digit key press. Releases do not count, one press
// must type one character.
func (e Event) IsDigit() bool {
	return e.Kind == KindKey && !e.Up && e.Key >= '0' && e.Key <= '9'
}

func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		return fmt.Sprintf("Event(key=%q up=%t source=%s)", rune(e.Key), e.Up, e.Source)
	case KindChord:
		return fmt.Sprintf("Event(chord=%08b source=%s)", e.Chord, e.Source)
	case KindRotate:
		return fmt.Sprintf("Event(rotate=%+d source=%s)", e.Delta, e.Source)
	case KindTick:
		return fmt.Sprintf("Event(tick=%d)", e.Ticks)
	}
	return "Event(invalid)"
}

// Constructors keep harness and test code short.

func Press(k Key) Event             { return Event{Kind: KindKey, Key: k} }
func Release(k Key) Event           { return Event{Kind: KindKey, Key: k, Up: true} }
func Hold(c Chord) Event            { return Event{Kind: KindChord, Chord: c} }
func Rotate(delta int16) Event      { return Event{Kind: KindRotate, Delta: delta} }
func Tick(n uint16) Event           { return Event{Kind: KindTick, Ticks: n} }
func PressDigit(d uint8) Event      { return Press(Key('0' + d%10)) }
func (e Event) From(s string) Event { e.Source = s; return e }

// KeyByName resolves the spelled-out button names used by the remote
// command channel and the interactive shell.
func KeyByName(s string) (Key, bool) {
	switch s {
	case "action", "a", "ok":
		return KeyAction, true
	case "next", "n":
		return KeyNext, true
	case "prev", "p":
		return KeyPrev, true
	case "back", "b":
		return KeyBack, true
	case "home", "h":
		return KeyHome, true
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return Key(s[0]), true
	}
	return KeyNone, false
}
