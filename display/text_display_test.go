package display

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	const width uint32 = 16
	spaces := strings.Repeat(" ", MaxWidth*2)
	canonical := func(input string, tick uint32) string {
		gap := width / 2
		length := uint32(len(input))
		if length <= width {
			return (input + spaces)[:width]
		}
		help := input + spaces[:gap] + input
		offset := tick % (length + gap)
		return help[offset : offset+width]
	}

	type Case struct {
		name  string
		input string
	}
	cases := []Case{
		{"short", "foobar"},
		{"full", "full-length-line"},
		{"long1", "too-much-very-long-line"},
		{"long2", "too-much-very-long-line1;too-much-very-long-line2"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			for tick := uint32(0); tick < uint32(len(c.input)*3); tick++ {
				var buf [width]byte
				scrollWrap(buf[:], []byte(c.input), tick)
				expect := canonical(c.input, tick)
				result := string(buf[:])
				if result != expect {
					t.Errorf("input=(%d)'%s' tick=%d expected=(%d)'%s' actual=(%d)'%s'",
						len(c.input), c.input, tick, len(expect), expect, len(result), result)
				}
			}
		})
	}
}

func TestRenderToVirtual(t *testing.T) {
	t.Parallel()

	dev := NewVirtual(2, 16)
	d, err := NewTextDisplay(&Config{Height: 2, Width: 16})
	require.NoError(t, err)
	d.SetDevice(dev)

	c := NewContent(2, 16)
	c.SetLine(0, "Settings")
	c.SetLine(1, "[ Sound ]")
	d.Render(c)
	assert.Equal(t, "Settings        \n[ Sound ]       ", dev.Frame())

	// next frame fully replaces the previous one
	c.Reset()
	c.SetLine(0, "Home")
	d.Render(c)
	assert.Equal(t, "Home            \n                ", dev.Frame())
}

func TestRenderMarquee(t *testing.T) {
	t.Parallel()

	dev := NewVirtual(1, 8)
	d, err := NewTextDisplay(&Config{Height: 1, Width: 8})
	require.NoError(t, err)
	d.SetDevice(dev)

	c := NewContent(1, MaxWidth)
	c.SetLine(0, "long-line-content")
	d.Render(c)
	assert.Equal(t, "long-lin", dev.Frame())
	d.Tick()
	assert.Equal(t, "ong-line", dev.Frame())
	d.Tick()
	assert.Equal(t, "ng-line-", dev.Frame())
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	d, err := NewTextDisplay(&Config{Height: 2, Width: 16, Codepage: "windows-1251"})
	require.NoError(t, err)

	b := d.Translate("привет")
	// 6 cyrillic runes translate to 6 single-byte cells plus padding
	require.Equal(t, 16, len(b))
	assert.Equal(t, strings.Repeat(" ", 10), string(b[6:]))

	short := d.Translate("ascii")
	assert.Equal(t, "ascii           ", string(short))
}

func TestTextDisplayConfig(t *testing.T) {
	t.Parallel()

	_, err := NewTextDisplay(&Config{Height: 0, Width: 16})
	assert.Error(t, err)
	_, err = NewTextDisplay(&Config{Height: 2, Width: MaxWidth + 1})
	assert.Error(t, err)
	_, err = NewTextDisplay(&Config{Height: 2, Width: 16, Codepage: "no-such-charset"})
	assert.Error(t, err)
}
