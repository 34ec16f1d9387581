package hmi

import (
	"testing"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/log2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScenarioWalk drives a small appliance UI through its whole life:
// boot splash that advances on tick age, menu navigation, volume knob,
// a misconfigured target that must not wedge the engine, and the
// farewell page on the way out.
func TestScenarioWalk(t *testing.T) {
	t.Parallel()

	ticks := 0
	boot := &funcPage{
		render: func(c *display.Content) { c.Linef(0, "boot %d/3", ticks) },
		handle: func(e input.Event) Nav {
			if e.IsTick() {
				ticks += int(e.Ticks)
				if ticks >= 3 {
					return GoTo("home")
				}
			}
			return Stay()
		},
	}
	home := &funcPage{
		render: func(c *display.Content) { c.SetLine(0, "Home") },
		handle: func(e input.Event) Nav {
			if e.Kind != input.KindKey {
				return Stay()
			}
			switch e.Key {
			case input.KeyAction:
				return GoTo("settings")
			case input.KeyBack:
				return Exit()
			}
			return Stay()
		},
	}
	vol := 0
	settings := &funcPage{
		render: func(c *display.Content) {
			c.SetLine(0, "Settings")
			c.Linef(1, "vol %d", vol)
		},
		handle: func(e input.Event) Nav {
			switch {
			case e.Kind == input.KindRotate:
				vol += int(e.Delta)
			case e.Kind == input.KindKey && e.Key == input.KeyBack:
				return GoTo("home")
			case e.Kind == input.KindKey && e.Key == 'x':
				return GoTo("nowhere")
			}
			return Stay()
		},
	}
	bye := &funcPage{
		render: func(c *display.Content) { c.SetLine(0, "Bye") },
		handle: func(e input.Event) Nav {
			if e.Kind == input.KindKey && e.Key == input.KeyAction {
				return Exit()
			}
			return Stay()
		},
	}

	b := NewBuilder(log2.NewTest(t, log2.LDebug), 8)
	require.NoError(t, b.Add("boot", boot))
	require.NoError(t, b.Add("home", home))
	require.NoError(t, b.Add("settings", settings))
	require.NoError(t, b.Add("bye", bye))
	b.Startup("boot").Shutdown("bye")
	m, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, PageID("boot"), m.Current())

	// splash holds for two ticks, the third moves on
	for i := 0; i < 2; i++ {
		res, err := m.Dispatch(input.Tick(1))
		require.NoError(t, err)
		require.Equal(t, PageID("boot"), res.Page)
	}
	res, err := m.Dispatch(input.Tick(1))
	require.NoError(t, err)
	require.Equal(t, PageID("home"), res.Page)
	assert.Equal(t, "Home", string(res.Frame.Line(0)))

	// action button opens settings
	res, err = m.Dispatch(input.Press(input.KeyAction))
	require.NoError(t, err)
	require.Equal(t, PageID("settings"), res.Page)

	// rotary burst lands in one event
	res, err = m.Dispatch(input.Rotate(3))
	require.NoError(t, err)
	assert.Equal(t, "vol 3", string(res.Frame.Line(1)))
	res, err = m.Dispatch(input.Rotate(-1))
	require.NoError(t, err)
	assert.Equal(t, "vol 2", string(res.Frame.Line(1)))

	// broken target is reported and changes nothing
	res, err = m.Dispatch(input.Press('x'))
	require.Error(t, err)
	assert.True(t, IsUnknownPage(err))
	require.Equal(t, PageID("settings"), res.Page)
	require.Equal(t, PageID("settings"), m.Current())

	// back to home
	res, err = m.Dispatch(input.Press(input.KeyBack))
	require.NoError(t, err)
	require.Equal(t, PageID("home"), res.Page)

	// back from home asks to leave, farewell page confirms
	res, err = m.Dispatch(input.Press(input.KeyBack))
	require.NoError(t, err)
	assert.False(t, res.Exited)
	require.Equal(t, PageID("bye"), res.Page)
	assert.Equal(t, "Bye", string(res.Frame.Line(0)))

	res, err = m.Dispatch(input.Press(input.KeyAction))
	require.NoError(t, err)
	assert.True(t, res.Exited)
	assert.True(t, m.Done())

	// engine answers the same way forever after
	for i := 0; i < 2; i++ {
		res, err = m.Dispatch(input.Tick(1))
		require.Error(t, err)
		assert.True(t, IsExited(err))
		assert.Equal(t, PageID("bye"), res.Page)
	}
}
