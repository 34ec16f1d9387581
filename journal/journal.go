// Package journal records the input event stream to a crash-safe
// queue and plays it back later. A field session captured with
// -journal-record becomes a reproducible bug report: replay feeds the
// same events in the same order into the same page graph.
package journal

import (
	"encoding/binary"
	"io"

	"github.com/hmikit/multipage/crc"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/log2"
	"github.com/juju/errors"
	"github.com/temoto/spq"
)

// SourceTag marks replayed events.
const SourceTag = "journal"

// record kinds, first byte of every queue item
const (
	kindEvent byte = 1
	kindEnd   byte = 2
)

// record layout: 10 payload bytes, then CRC8 over the payload
const recordLen = 11

// encode packs one event into a fixed record. The source tag is not
// stored, replay stamps its own.
func encode(e input.Event) []byte {
	b := make([]byte, recordLen)
	b[0] = kindEvent
	b[1] = byte(e.Kind)
	binary.BigEndian.PutUint16(b[2:], uint16(e.Key))
	b[4] = byte(e.Chord)
	binary.BigEndian.PutUint16(b[5:], uint16(e.Delta))
	binary.BigEndian.PutUint16(b[7:], e.Ticks)
	if e.Up {
		b[9] |= 1
	}
	b[10] = crc.Checksum(b[:10])
	return b
}

func decode(b []byte) (input.Event, error) {
	e := input.Event{}
	if len(b) < recordLen || b[0] != kindEvent {
		return e, errors.NotValidf("journal record %x", b)
	}
	if b[10] != crc.Checksum(b[:10]) {
		return e, errors.NotValidf("journal record %x crc", b)
	}
	e.Kind = input.Kind(b[1])
	e.Key = input.Key(binary.BigEndian.Uint16(b[2:]))
	e.Chord = input.Chord(b[4])
	e.Delta = int16(binary.BigEndian.Uint16(b[5:]))
	e.Ticks = binary.BigEndian.Uint16(b[7:])
	e.Up = b[9]&1 != 0
	e.Source = SourceTag
	return e, nil
}

// Recorder appends events to the journal. Write failures are logged
// and dropped, recording never blocks the engine loop.
type Recorder struct {
	log *log2.Log
	q   *spq.Queue
}

func NewRecorder(path string, log *log2.Log) (*Recorder, error) {
	q, err := spq.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "journal path=%s", path)
	}
	return &Recorder{log: log, q: q}, nil
}

// Record stores one event. Shaped to hang directly on
// input.Dispatch.SubscribeFunc.
func (self *Recorder) Record(e input.Event) {
	if e.IsZero() {
		return
	}
	if err := self.q.Push(encode(e)); err != nil {
		self.log.Errorf("journal record event=%s err=%v", e.String(), err)
	}
}

// Close seals the journal with an end marker so replay knows where
// the session stopped.
func (self *Recorder) Close() error {
	if err := self.q.Push([]byte{kindEnd}); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(self.q.Close())
}

// ReplaySource plays a sealed journal back as an input source. Read
// returns io.EOF at the end marker, which the dispatcher treats as a
// source that went quiet.
type ReplaySource struct {
	log *log2.Log
	q   *spq.Queue
}

var _ input.Source = new(ReplaySource)

func NewReplaySource(path string, log *log2.Log) (*ReplaySource, error) {
	q, err := spq.Open(path)
	if err != nil {
		return nil, errors.Annotatef(err, "journal path=%s", path)
	}
	return &ReplaySource{log: log, q: q}, nil
}

func (self *ReplaySource) String() string { return SourceTag }

func (self *ReplaySource) Read() (input.Event, error) {
	for {
		box, err := self.q.Peek()
		if err != nil {
			if err == spq.ErrClosed {
				return input.Event{}, io.EOF
			}
			return input.Event{}, errors.Trace(err)
		}
		b := box.Bytes()
		if len(b) > 0 && b[0] == kindEnd {
			_ = self.q.Delete(box)
			_ = self.q.Close()
			return input.Event{}, io.EOF
		}
		e, err := decode(b)
		if derr := self.q.Delete(box); derr != nil {
			return input.Event{}, errors.Trace(derr)
		}
		if err != nil {
			// skip damaged records, keep the session playable
			self.log.Errorf("journal skip b=%x err=%v", b, err)
			continue
		}
		return e, nil
	}
}
