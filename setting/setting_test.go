package setting

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	t.Parallel()
	v := NewInt("volume", 50, 0, 100, 5)
	assert.Equal(t, "volume", v.Name())
	assert.Equal(t, 50, v.Value())

	v.Step(2)
	assert.Equal(t, 60, v.Value())
	v.Step(100)
	assert.Equal(t, 100, v.Value(), "clamped at max")
	v.Step(-1000)
	assert.Equal(t, 0, v.Value(), "clamped at min")

	// abandoning an edit restores the last committed value
	v.Revert()
	assert.Equal(t, 50, v.Value())
	v.Step(1)
	v.Commit()
	v.Revert()
	assert.Equal(t, 55, v.Value())

	require.NoError(t, v.Set("35"))
	assert.Equal(t, 35, v.Value())
	assert.Equal(t, "35", v.String())
	err := v.Set("abc")
	require.Error(t, err)
	assert.True(t, errors.IsNotValid(err))
	err = v.Set("101")
	require.Error(t, err)
	assert.True(t, errors.IsNotValid(err))
	assert.Equal(t, 35, v.Value())
}

func TestIntInitClamp(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 10, NewInt("x", 99, 0, 10, 1).Value())
	assert.Panics(t, func() { NewInt("x", 0, 5, 1, 1) })
	assert.Panics(t, func() { NewInt("x", 0, 0, 1, 0) })
}

func TestEnum(t *testing.T) {
	t.Parallel()
	e := NewEnum("lang", "en", "de", "ru")
	assert.Equal(t, "en", e.String())

	e.Step(1)
	assert.Equal(t, "de", e.String())
	e.Step(-2)
	assert.Equal(t, "ru", e.String(), "wraps backwards")
	e.Step(1)
	assert.Equal(t, "en", e.String(), "wraps forwards")

	e.Step(1)
	e.Revert()
	assert.Equal(t, "en", e.String())

	require.NoError(t, e.Set("ru"))
	assert.Equal(t, 2, e.Index())
	err := e.Set("fr")
	require.Error(t, err)
	assert.True(t, errors.IsNotValid(err))
}

func TestText(t *testing.T) {
	t.Parallel()
	x := NewText("ssid", "factory", 10)
	assert.Equal(t, "factory", x.String())

	require.NoError(t, x.Set("home-wifi"))
	assert.Equal(t, "home-wifi", x.String())

	err := x.Set("way too long for this cell")
	require.Error(t, err)
	assert.True(t, errors.IsNotValid(err))
	assert.Equal(t, "home-wifi", x.String())

	x.v = "draft"
	x.Revert()
	assert.Equal(t, "home-wifi", x.String())
}

func TestRegistryMarshal(t *testing.T) {
	t.Parallel()
	r := NewRegistry(
		NewInt("volume", 50, 0, 100, 5),
		NewEnum("lang", "en", "de"),
		NewText("ssid", "", 32),
	)

	b, err := r.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, "volume=50\nlang=en\nssid=\n", string(b))
}

func TestRegistryUnmarshal(t *testing.T) {
	t.Parallel()
	r := NewRegistry(
		NewInt("volume", 50, 0, 100, 5),
		NewEnum("lang", "en", "de"),
	)

	stored := "# device state\nvolume=70\nlang=de\nretired=1\n\n"
	require.NoError(t, r.UnmarshalBinary([]byte(stored)))
	vol, _ := r.Get("volume")
	assert.Equal(t, "70", vol.String())
	lang, _ := r.Get("lang")
	assert.Equal(t, "de", lang.String())

	// bad values are reported but the rest still applies
	err := r.UnmarshalBinary([]byte("volume=999\nlang=en\n"))
	require.Error(t, err)
	lang, _ = r.Get("lang")
	assert.Equal(t, "en", lang.String())
}

func TestRegistryDuplicate(t *testing.T) {
	t.Parallel()
	r := NewRegistry(NewInt("volume", 0, 0, 9, 1))
	assert.Panics(t, func() { r.Add(NewInt("volume", 0, 0, 9, 1)) })
}
