package setting

import (
	"testing"

	"github.com/hmikit/multipage/log2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistDisabled(t *testing.T) {
	t.Parallel()
	r := NewRegistry(NewInt("volume", 50, 0, 100, 5))
	p := &Persist{}
	require.NoError(t, p.Init("settings", r, "", log2.NewTest(t, log2.LDebug)))
	assert.False(t, p.Enabled())
	require.NoError(t, p.Load())
	require.NoError(t, p.Store())
}

func TestPersistRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	log := log2.NewTest(t, log2.LDebug)

	r1 := NewRegistry(
		NewInt("volume", 50, 0, 100, 5),
		NewEnum("lang", "en", "de"),
	)
	p1 := &Persist{}
	require.NoError(t, p1.Init("settings", r1, dir, log))
	assert.True(t, p1.Enabled())

	vol, _ := r1.Get("volume")
	require.NoError(t, vol.Set("75"))
	require.NoError(t, p1.Store())

	// fresh registry with defaults picks up the stored values
	r2 := NewRegistry(
		NewInt("volume", 50, 0, 100, 5),
		NewEnum("lang", "en", "de"),
	)
	p2 := &Persist{}
	require.NoError(t, p2.Init("settings", r2, dir, log))
	require.NoError(t, p2.Load())
	vol2, _ := r2.Get("volume")
	assert.Equal(t, "75", vol2.String())
}
