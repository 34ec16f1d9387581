package helpers

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestFoldErrors(t *testing.T) {
	t.Parallel()

	assert.NoError(t, FoldErrors(nil))
	assert.NoError(t, FoldErrors([]error{nil, nil}))

	e := FoldErrors([]error{errors.New("first"), nil, errors.New("second")})
	assert.Error(t, e)
	assert.Equal(t, "first\nsecond", e.Error())
}

func TestAddWrap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		current uint8
		max     uint8
		delta   int
		expect  uint8
	}{
		{"step-forward", 0, 3, +1, 1},
		{"step-back-wraps", 0, 3, -1, 2},
		{"forward-wraps", 2, 3, +1, 0},
		{"burst-forward", 1, 3, +7, 2},
		{"burst-back", 1, 3, -7, 0},
		{"zero-max", 5, 0, +1, 0},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expect, AddWrap(c.current, c.max, c.delta))
		})
	}
}

func TestIntSecondDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5*time.Second, IntSecondDefault(0, 5*time.Second))
	assert.Equal(t, 2*time.Second, IntSecondDefault(2, 5*time.Second))
	assert.Equal(t, 200*time.Millisecond, IntMillisecondDefault(200, time.Second))
}
