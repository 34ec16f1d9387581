package input

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hmikit/multipage/log2"
	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
)

func Drain(ch <-chan Event) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

type Source interface {
	Read() (Event, error)
	String() string
}

type EventFunc func(Event)

type sub struct {
	name string
	ch   chan<- Event
	fun  EventFunc
	stop <-chan struct{}
}

// Dispatch merges events from hardware sources and fans them out to
// subscribers: the UI loop, the journal recorder, dev tools. It is
// harness plumbing; the page engine itself stays single-threaded.
type Dispatch struct {
	Log  *log2.Log
	bus  chan Event
	mu   sync.Mutex
	subs map[string]*sub
	stop <-chan struct{}
	last atomic_clock.Clock
}

func NewDispatch(log *log2.Log, stop <-chan struct{}) *Dispatch {
	return &Dispatch{
		Log:  log,
		bus:  make(chan Event),
		subs: make(map[string]*sub, 8),
		stop: stop,
	}
}

func (self *Dispatch) SubscribeChan(name string, substop <-chan struct{}) chan Event {
	target := make(chan Event)
	sub := &sub{
		name: name,
		ch:   target,
		stop: substop,
	}
	self.safeSubscribe(sub)
	return target
}

func (self *Dispatch) SubscribeFunc(name string, fun EventFunc, substop <-chan struct{}) {
	sub := &sub{
		name: name,
		fun:  fun,
		stop: substop,
	}
	self.safeSubscribe(sub)
}

func (self *Dispatch) Unsubscribe(name string) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if sub, ok := self.subs[name]; ok {
		self.subClose(sub)
	} else {
		panic("code error input sub not found name=" + name)
	}
}

// Run blocks until stop, delivering bus events to all subscribers.
func (self *Dispatch) Run(sources []Source) {
	for _, source := range sources {
		go self.readSource(source)
	}

	for {
		select {
		case event := <-self.bus:
			handled := false
			self.mu.Lock()
			for _, sub := range self.subs {
				self.subFire(sub, event)
				handled = true
			}
			self.mu.Unlock()
			if !handled {
				self.Log.Errorf("input not handled event=%s", event.String())
			}

		case <-self.stop:
			Drain(self.bus)
			return
		}
	}
}

func (self *Dispatch) Emit(event Event) {
	if event.IsZero() {
		return
	}
	if event.Kind != KindTick {
		self.last.SetNow()
	}
	select {
	case self.bus <- event:
		self.Log.Debugf("input emit=%s", event.String())
	case <-self.stop:
		return
	}
}

// SinceLastInput reports idle time for harness timeouts (return to
// home page after N seconds without touches). Tick events are emitted
// by the harness clock and do not count as activity.
func (self *Dispatch) SinceLastInput() time.Duration {
	if self.last.IsZero() {
		return 0
	}
	return atomic_clock.Since(&self.last)
}

func (self *Dispatch) subFire(sub *sub, event Event) {
	select {
	case <-sub.stop:
		self.subClose(sub)
		return
	default:
	}

	if sub.ch == nil && sub.fun == nil {
		panic(fmt.Sprintf("input sub=%s ch=nil fun=nil", sub.name))
	}
	if sub.fun != nil {
		sub.fun(event)
	}
	if sub.ch != nil {
		select {
		case sub.ch <- event:
		case <-sub.stop:
			self.subClose(sub)
		}
	}
}

func (self *Dispatch) subClose(s *sub) {
	if s.ch != nil {
		close(s.ch)
	}
	delete(self.subs, s.name)
}

func (self *Dispatch) safeSubscribe(s *sub) {
	self.mu.Lock()
	if existing, ok := self.subs[s.name]; ok {
		select {
		case <-s.stop:
			panic("code error input subscribe already closed name=" + s.name)
		case <-existing.stop:
			self.subClose(existing)
		default:
			panic("code error input duplicate subscribe name=" + s.name)
		}
	}
	self.subs[s.name] = s
	self.mu.Unlock()
}

func (self *Dispatch) readSource(source Source) {
	tag := source.String()
	for {
		event, err := source.Read()
		switch err {
		case nil:
			if event.Source == "" {
				event.Source = tag
			}
			self.Emit(event)
		case io.EOF:
			self.Log.Debugf("input source=%s EOF", tag)
			return
		default:
			err = errors.Annotatef(err, "input source=%s", tag)
			self.Log.Fatal(errors.ErrorStack(err))
			return
		}
	}
}

// Ticker emits KindTick on the dispatch bus with the given period
// until stop. The page engine never owns a clock, this is how wall
// time enters the system.
func Ticker(d *Dispatch, period time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			d.Emit(Event{Source: "tick", Kind: KindTick, Ticks: 1})
		case <-stop:
			return
		}
	}
}
