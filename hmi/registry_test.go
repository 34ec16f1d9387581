package hmi

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRoundTrip(t *testing.T) {
	t.Parallel()
	r := NewRegistry(3)
	first := &spyPage{line: "a"}
	second := &spyPage{line: "b"}
	require.NoError(t, r.Register("a", first))
	require.NoError(t, r.Register("b", second))

	pa, err := r.Lookup("a")
	require.NoError(t, err)
	assert.True(t, pa.(*spyPage) == first)
	pb, err := r.Lookup("b")
	require.NoError(t, err)
	assert.True(t, pb.(*spyPage) == second)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 3, r.Cap())
	assert.Equal(t, PageID("a"), r.First())
}

func TestRegistryDuplicate(t *testing.T) {
	t.Parallel()
	r := NewRegistry(3)
	first := &spyPage{line: "one"}
	require.NoError(t, r.Register("x", first))

	err := r.Register("x", &spyPage{line: "two"})
	require.Error(t, err)
	assert.True(t, IsDuplicatePage(err), "err=%v", err)

	// first registration untouched
	p, err := r.Lookup("x")
	require.NoError(t, err)
	assert.True(t, p.(*spyPage) == first)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryCapacity(t *testing.T) {
	t.Parallel()
	r := NewRegistry(2)
	require.NoError(t, r.Register("a", &spyPage{}))
	require.NoError(t, r.Register("b", &spyPage{}))

	err := r.Register("c", &spyPage{})
	require.Error(t, err)
	assert.True(t, IsCapacityExceeded(err), "err=%v", err)
	assert.Equal(t, 2, r.Len())

	// rejected id left no trace
	_, err = r.Lookup("c")
	assert.True(t, IsUnknownPage(err))
}

func TestRegistryUnknown(t *testing.T) {
	t.Parallel()
	r := NewRegistry(1)
	require.NoError(t, r.Register("only", &spyPage{}))

	_, err := r.Lookup("nope")
	require.Error(t, err)
	assert.True(t, IsUnknownPage(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestRegistryInvalid(t *testing.T) {
	t.Parallel()
	r := NewRegistry(2)
	err := r.Register("", &spyPage{})
	require.Error(t, err)
	assert.True(t, errors.IsNotValid(err))

	err = r.Register("nilpage", nil)
	require.Error(t, err)
	assert.True(t, errors.IsNotValid(err))
	assert.Equal(t, 0, r.Len())
}

func TestRegistryEachOrder(t *testing.T) {
	t.Parallel()
	r := NewRegistry(4)
	for _, id := range []PageID{"z", "a", "m"} {
		require.NoError(t, r.Register(id, &spyPage{}))
	}
	order := make([]PageID, 0, 3)
	r.Each(func(id PageID, page Page) { order = append(order, id) })
	assert.Equal(t, []PageID{"z", "a", "m"}, order)
}

func TestRegistryBadCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewRegistry(0) })
}
