package page

import (
	"testing"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoMenu() *Menu {
	return NewMenu("Settings",
		Item{Label: "Sound", Target: "sound"},
		Item{Label: "Light", Target: "light"},
		Item{Label: "Exit", Do: func() hmi.Nav { return hmi.Exit() }},
	)
}

func TestMenuRender(t *testing.T) {
	t.Parallel()
	m := demoMenu()
	c := display.NewContent(4, 16)

	m.Render(c)
	assert.Equal(t, "Settings\n[ Sound ]\n  Light\n  Exit", c.String())
	assert.Equal(t, 1, c.Selected())

	nav := m.Handle(input.Press(input.KeyNext))
	assert.True(t, nav.IsStay())
	c.Reset()
	m.Render(c)
	assert.Equal(t, "Settings\n  Sound\n[ Light ]\n  Exit", c.String())
	assert.Equal(t, 2, c.Selected())
}

func TestMenuWrap(t *testing.T) {
	t.Parallel()
	m := demoMenu()

	m.Handle(input.Press(input.KeyPrev))
	assert.Equal(t, "Exit", m.Selected())
	m.Handle(input.Press(input.KeyNext))
	assert.Equal(t, "Sound", m.Selected())

	// encoder burst, one event
	m.Handle(input.Rotate(4))
	assert.Equal(t, "Light", m.Selected())
	m.Handle(input.Rotate(-2))
	assert.Equal(t, "Exit", m.Selected())
}

func TestMenuScroll(t *testing.T) {
	t.Parallel()
	m := demoMenu()
	c := display.NewContent(2, 16)

	// one visible row under the title, window follows the cursor
	m.Render(c)
	assert.Equal(t, "Settings\n[ Sound ]", c.String())

	m.Handle(input.Rotate(2))
	c.Reset()
	m.Render(c)
	assert.Equal(t, "Settings\n[ Exit ]", c.String())

	m.Handle(input.Press(input.KeyPrev))
	c.Reset()
	m.Render(c)
	assert.Equal(t, "Settings\n[ Light ]", c.String())
}

func TestMenuActivate(t *testing.T) {
	t.Parallel()
	m := demoMenu()

	nav := m.Handle(input.Press(input.KeyAction))
	target, ok := nav.Target()
	require.True(t, ok)
	assert.Equal(t, hmi.PageID("sound"), target)

	m.Handle(input.Press(input.KeyPrev)) // wrap to Exit
	nav = m.Handle(input.Press(input.KeyAction))
	assert.True(t, nav.IsExit())
}

func TestMenuBackHome(t *testing.T) {
	t.Parallel()
	m := demoMenu()
	m.Back = "home"
	m.Home = "home"

	nav := m.Handle(input.Press(input.KeyBack))
	target, ok := nav.Target()
	require.True(t, ok)
	assert.Equal(t, hmi.PageID("home"), target)

	nav = m.Handle(input.Hold(input.ChordBack | input.ChordHome))
	target, ok = nav.Target()
	require.True(t, ok)
	assert.Equal(t, hmi.PageID("home"), target)
}

func TestMenuLinks(t *testing.T) {
	t.Parallel()
	m := demoMenu()
	m.Back = "home"
	assert.ElementsMatch(t, []hmi.PageID{"home", "sound", "light"}, m.Links())
}

func TestMenuEmpty(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewMenu("broken") })
}
