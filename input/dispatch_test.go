package input

import (
	"strings"
	"testing"

	"github.com/hmikit/multipage/log2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchFanout(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	stop := make(chan struct{})
	defer close(stop)

	d := NewDispatch(log, stop)
	ch := d.SubscribeChan("chan-sub", stop)
	funch := make(chan Event, 4)
	d.SubscribeFunc("func-sub", func(e Event) { funch <- e }, stop)
	go d.Run(nil)

	assert.Equal(t, int64(0), int64(d.SinceLastInput()))

	d.Emit(Tick(1))
	e := <-ch
	assert.Equal(t, KindTick, e.Kind)
	assert.Equal(t, int64(0), int64(d.SinceLastInput()), "ticks are not user activity")

	d.Emit(Press(KeyAction).From("test"))
	e = <-ch
	require.Equal(t, KindKey, e.Kind)
	assert.Equal(t, KeyAction, e.Key)
	assert.Equal(t, "test", e.Source)
	assert.True(t, d.SinceLastInput() > 0)

	// func subscriber observed the same two events
	first := <-funch
	second := <-funch
	assert.Equal(t, KindTick, first.Kind)
	assert.Equal(t, KindKey, second.Kind)
}

func TestDispatchIgnoresZero(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	stop := make(chan struct{})
	defer close(stop)

	d := NewDispatch(log, stop)
	ch := d.SubscribeChan("only", stop)
	go d.Run(nil)

	d.Emit(Event{})
	d.Emit(Rotate(-2))
	e := <-ch
	assert.Equal(t, KindRotate, e.Kind)
	assert.Equal(t, int16(-2), e.Delta)
}

func TestStdinSource(t *testing.T) {
	t.Parallel()

	src := NewStdinSource(strings.NewReader("n+\n %"))
	expect := []Event{
		{Source: StdinSourceTag, Kind: KindKey, Key: KeyNext},
		{Source: StdinSourceTag, Kind: KindRotate, Delta: 1},
		{Source: StdinSourceTag, Kind: KindKey, Key: KeyAction},
		{Source: StdinSourceTag, Kind: KindKey, Key: '%'},
	}
	for _, want := range expect {
		e, err := src.Read()
		require.NoError(t, err)
		assert.Equal(t, want, e)
	}
	_, err := src.Read()
	assert.Error(t, err)
}

func TestEventString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `Event(key=' ' up=false source=)`, Press(KeyAction).String())
	assert.Equal(t, "Event(rotate=+3 source=enc)", Rotate(3).From("enc").String())
	assert.Equal(t, "Event(tick=2)", Tick(2).String())
	assert.Equal(t, "Event(chord=00000011 source=)", Hold(ChordAction|ChordNext).String())
	assert.Equal(t, "Event(invalid)", Event{}.String())

	digit := PressDigit(7)
	assert.True(t, digit.IsDigit())
	tick := Tick(1)
	assert.True(t, tick.IsTick())
	zero := Event{}
	assert.True(t, zero.IsZero())
}
