package input

import (
	"bufio"
	"io"
)

const StdinSourceTag = "stdin"

// StdinSource maps terminal bytes to events for the device-shaped sim:
// printable bytes pass through as button presses (space=action n=next
// p=prev b=back h=home), '+'/'-' emulate one rotary step. Newlines are
// skipped so both raw and canonical terminal modes work.
type StdinSource struct {
	br *bufio.Reader
}

var _ Source = new(StdinSource)

func NewStdinSource(r io.Reader) *StdinSource {
	return &StdinSource{br: bufio.NewReader(r)}
}

func (self *StdinSource) String() string { return StdinSourceTag }

func (self *StdinSource) Read() (Event, error) {
	for {
		b, err := self.br.ReadByte()
		if err != nil {
			return Event{}, err
		}
		switch b {
		case '\n', '\r', 0:
			continue
		case '+':
			return Rotate(+1).From(StdinSourceTag), nil
		case '-':
			return Rotate(-1).From(StdinSourceTag), nil
		}
		if b >= 0x20 && b < 0x7f {
			return Event{Source: StdinSourceTag, Kind: KindKey, Key: Key(b)}, nil
		}
	}
}
