package page

import (
	"testing"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnterTextFlow(t *testing.T) {
	t.Parallel()
	accepted := ""
	p := &EnterText{
		Charset: "ab",
		Cancel:  "menu",
		Accept:  func(s string) hmi.Nav { accepted = s; return hmi.GoTo("done") },
	}
	p.Enter()

	// picker cells: a b del ok
	assert.True(t, p.Handle(input.Press(input.KeyAction)).IsStay())
	assert.Equal(t, "a", p.String())

	p.Handle(input.Press(input.KeyNext))
	p.Handle(input.Press(input.KeyAction))
	assert.Equal(t, "ab", p.String())

	p.Handle(input.Press(input.KeyNext)) // del
	p.Handle(input.Press(input.KeyAction))
	assert.Equal(t, "a", p.String())

	p.Handle(input.Press(input.KeyNext)) // ok
	nav := p.Handle(input.Press(input.KeyAction))
	target, ok := nav.Target()
	require.True(t, ok)
	assert.Equal(t, hmi.PageID("done"), target)
	assert.Equal(t, "a", accepted)
}

func TestEnterTextWrapAndCancel(t *testing.T) {
	t.Parallel()
	p := &EnterText{Charset: "ab", Cancel: "menu"}
	p.Enter()

	// prev from the first cell wraps onto ok
	p.Handle(input.Press(input.KeyPrev))
	p.Handle(input.Press(input.KeyAction)) // ok with nil Accept stays
	assert.Equal(t, "", p.String())

	target, ok := p.Handle(input.Press(input.KeyBack)).Target()
	require.True(t, ok)
	assert.Equal(t, hmi.PageID("menu"), target)
	assert.Equal(t, []hmi.PageID{"menu"}, p.Links())
}

func TestEnterTextRender(t *testing.T) {
	t.Parallel()
	p := &EnterText{Title: "name", Charset: "ab"}
	p.SetText("ab")
	p.Enter()

	c := display.NewContent(3, 16)
	p.Render(c)
	assert.Equal(t, "name\nab_\n[a]bdelok", c.String())
	y, x, ok := c.Cursor()
	require.True(t, ok)
	assert.Equal(t, 1, y)
	assert.Equal(t, 2, x)
}

func TestEnterTextPickerWindow(t *testing.T) {
	t.Parallel()
	p := &EnterText{Charset: "abcdefgh"}
	p.Enter()
	p.Handle(input.Rotate(4)) // pick 'e'

	c := display.NewContent(2, 8)
	p.Render(c)
	// window stays within width, picked cell bracketed
	assert.Equal(t, "bcd[e]fg", string(c.Line(1)))
}

func TestEnterTextDigits(t *testing.T) {
	t.Parallel()
	p := (&EnterText{Charset: "ab"}).AllowDigits()
	p.Handle(input.PressDigit(4))
	p.Handle(input.PressDigit(2))
	assert.Equal(t, "42", p.String())
}

func TestEnterTextMax(t *testing.T) {
	t.Parallel()
	p := &EnterText{Charset: "a", Max: 2}
	for i := 0; i < 4; i++ {
		p.Handle(input.Press(input.KeyAction))
	}
	assert.Equal(t, "aa", p.String())
}
