package page

import (
	"testing"

	"github.com/hmikit/multipage/input"
	"github.com/stretchr/testify/assert"
)

func TestKeymapResolve(t *testing.T) {
	t.Parallel()
	km := Keymap{} // zero value falls back to default bindings
	cases := []struct {
		name  string
		event input.Event
		op    Op
		count int
	}{
		{"action", input.Press(input.KeyAction), OpAction, 1},
		{"next", input.Press(input.KeyNext), OpNext, 1},
		{"prev", input.Press(input.KeyPrev), OpPrev, 1},
		{"back", input.Press(input.KeyBack), OpBack, 1},
		{"home", input.Press(input.KeyHome), OpHome, 1},
		{"release", input.Release(input.KeyNext), OpNone, 0},
		{"unbound", input.Press('z'), OpNone, 0},
		{"chord-single", input.Hold(input.ChordBack), OpBack, 1},
		{"chord-home", input.Hold(input.ChordBack | input.ChordHome), OpHome, 1},
		{"chord-unbound", input.Hold(input.ChordAction | input.ChordPrev), OpNone, 0},
		{"rotate-cw", input.Rotate(5), OpNext, 5},
		{"rotate-ccw", input.Rotate(-2), OpPrev, 2},
		{"rotate-zero", input.Rotate(0), OpNone, 0},
		{"tick", input.Tick(1), OpNone, 0},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			op, n := km.Resolve(c.event)
			assert.Equal(t, c.op, op, "op")
			assert.Equal(t, c.count, n, "count")
		})
	}
}

func TestKeymapCustom(t *testing.T) {
	t.Parallel()
	km := Keymap{Keys: map[input.Key]Op{'z': OpAction}}

	op, n := km.Resolve(input.Press('z'))
	assert.Equal(t, OpAction, op)
	assert.Equal(t, 1, n)

	// custom map fully replaces the default key bindings
	op, _ = km.Resolve(input.Press(input.KeyNext))
	assert.Equal(t, OpNone, op)

	// chords still resolve through the default table
	op, _ = km.Resolve(input.Hold(input.ChordHome))
	assert.Equal(t, OpHome, op)
}

func TestOpString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Action", OpAction.String())
	assert.Equal(t, "None", OpNone.String())
	assert.Equal(t, "Op(99)", Op(99).String())
}
