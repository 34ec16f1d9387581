package tele

import (
	"context"
	"time"

	"github.com/hmikit/multipage/log2"
	tele_config "github.com/hmikit/multipage/tele/config"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/spq"
)

// denote value type in persistent queue bytes form
const (
	qState byte = 1
	qEvent byte = 2
)

// sendRetryDelay throttles the worker while the broker is down.
const sendRetryDelay = 1 * time.Second

type tele struct { //nolint:maligned
	config    tele_config.Config
	log       *log2.Log
	transport Transporter
	q         *spq.Queue
	alive     *alive.Alive
	deviceId  int32
}

func New() Teler { return &tele{} }

// NewWithTransporter is the test seam, production uses MQTT.
func NewWithTransporter(trans Transporter) Teler { return &tele{transport: trans} }

var _ Teler = new(tele)

func (self *tele) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config) error {
	self.config = teleConfig
	self.log = log
	if self.config.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	self.deviceId = int32(self.config.DeviceId)

	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	if err := self.transport.Init(ctx, log, teleConfig, self.onCommandMessage); err != nil {
		return errors.Annotate(err, "tele transport")
	}
	if !self.config.Enabled {
		return nil
	}

	if self.config.PersistPath == "" {
		panic("code error must set tele config PersistPath")
	}
	var err error
	self.q, err = spq.Open(self.config.PersistPath)
	if err != nil {
		return errors.Annotate(err, "tele queue")
	}

	self.alive = alive.NewAlive()
	if !self.alive.Add(1) {
		panic("code error tele alive")
	}
	go self.qworker()
	self.State(StateBoot)
	return nil
}

func (self *tele) Close() {
	if self.q != nil {
		self.q.Close()
	}
	if self.alive != nil {
		self.alive.Stop()
		self.alive.Wait()
	}
	self.transport.CloseTele()
}

// State is sent directly, losing one is fine, the next interval
// repeats it.
func (self *tele) State(s State) {
	if !self.config.Enabled {
		return
	}
	self.transport.SendState([]byte{byte(s)})
}

func (self *tele) Error(e error) {
	if e == nil || !self.config.Enabled {
		return
	}
	payload := appendKV(nil, "k", "err")
	payload = appendKV(payload, "t", timestamp())
	payload = appendKV(payload, "msg", e.Error())
	self.qpush(qEvent, payload)
}

func (self *tele) Page(from, to string) {
	if !self.config.Enabled {
		return
	}
	payload := appendKV(nil, "k", "page")
	payload = appendKV(payload, "t", timestamp())
	payload = appendKV(payload, "from", from)
	payload = appendKV(payload, "to", to)
	self.qpush(qEvent, payload)
}

func (self *tele) qpush(tag byte, payload []byte) {
	b := make([]byte, 0, len(payload)+1)
	b = append(append(b, tag), payload...)
	if err := self.q.Push(b); err != nil {
		self.log.Errorf("tele qpush b=%x err=%v", b, err)
	}
}

func (self *tele) qworker() {
	defer self.alive.Done()
	for {
		box, err := self.q.Peek()
		switch err {
		case nil:
			b := box.Bytes()
			sent := self.qhandle(b)
			if sent {
				if err = self.q.Delete(box); err != nil {
					self.log.Errorf("tele qworker Delete b=%x err=%v", b, err)
				}
			} else {
				if err = self.q.DeletePush(box); err != nil {
					self.log.Errorf("tele qworker DeletePush b=%x err=%v", b, err)
				}
				time.Sleep(sendRetryDelay)
			}

		case spq.ErrClosed:
			return

		default:
			self.log.Errorf("CRITICAL tele spq err=%v", err)
			// here will go yet unhandled shit like disk full
			time.Sleep(sendRetryDelay)
		}
	}
}

// qhandle returns true when the record is done with, either sent or
// beyond repair.
func (self *tele) qhandle(b []byte) bool {
	if len(b) < 2 {
		self.log.Errorf("tele spq peek=%x", b)
		return true
	}
	switch b[0] {
	case qState:
		return self.transport.SendState(b[1:])
	case qEvent:
		return self.transport.SendEvent(b[1:])
	default:
		self.log.Errorf("tele unknown record kind=%d", b[0])
		return true
	}
}

func (self *tele) onCommandMessage(ctx context.Context, payload []byte) bool {
	fields := parseKV(payload)
	if len(fields) == 0 {
		self.log.Errorf("tele command payload=%x invalid", payload)
		return false
	}
	self.log.Debugf("tele command fields=%v", fields)
	if self.config.OnCommand != nil {
		return self.config.OnCommand(fields)
	}
	return true
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
