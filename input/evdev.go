package input

import (
	"errors"
	"io"
	"os"

	"github.com/temoto/inputevent-go"
)

const EvdevSourceTag = "evdev"

// linux/input-event-codes.h values, not exported by the inputevent
// package.
const (
	evKey    uint16 = 0x01
	evRel    uint16 = 0x02
	relDial  uint16 = 0x07
	relWheel uint16 = 0x08
)

// EvdevSource reads /dev/input/eventN devices: button boards show up
// as EV_KEY, rotary encoders as EV_REL dial/wheel steps.
type EvdevSource struct {
	f io.ReadCloser
}

// compile-time interface compliance test
var _ Source = new(EvdevSource)

func NewEvdevSource(device string) (*EvdevSource, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, err
	}
	return &EvdevSource{f: f}, nil
}

func (self *EvdevSource) String() string { return EvdevSourceTag }

func (self *EvdevSource) Close() error { return self.f.Close() }

func (self *EvdevSource) Read() (Event, error) {
	for {
		ie, err := inputevent.ReadOne(self.f)
		if err != nil {
			// Close() from another goroutine is the regular shutdown
			// path, report it as a clean end of stream.
			if errors.Is(err, os.ErrClosed) {
				err = io.EOF
			}
			return Event{}, err
		}
		switch {
		case ie.Type == evKey && ie.Value != int32(inputevent.KeyStateHold):
			return Event{
				Source: EvdevSourceTag,
				Kind:   KindKey,
				Key:    Key(ie.Code),
				Up:     ie.Value == int32(inputevent.KeyStateUp),
			}, nil
		case ie.Type == evRel && (ie.Code == relDial || ie.Code == relWheel):
			return Event{
				Source: EvdevSourceTag,
				Kind:   KindRotate,
				Delta:  int16(ie.Value),
			}, nil
		}
	}
}
