// Package ui runs a page engine against the input bus and the text
// display. All engine dispatch happens on the Loop goroutine, pages
// never see concurrency.
package ui

import (
	"context"
	"time"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/helpers"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/state"
	"github.com/hmikit/multipage/tele"
	"github.com/juju/errors"
)

const DefaultTickInterval = 500 * time.Millisecond

type UI struct {
	// OnResult is called on the Loop goroutine after every dispatch.
	// The frame inside is only valid during the call, Clone to keep.
	OnResult func(hmi.Result)

	g           *state.Global
	eng         *hmi.Manager
	display     *display.TextDisplay
	inputch     chan input.Event
	homeTimeout time.Duration
}

func (self *UI) Init(ctx context.Context, b *hmi.Builder) error {
	self.g = state.GetGlobal(ctx)

	var err error
	if self.eng, err = b.Build(); err != nil {
		return errors.Annotate(err, "ui build")
	}
	if self.display, err = self.g.Display(); err != nil {
		return errors.Annotate(err, "ui display")
	}
	self.inputch = self.g.Hardware.Input.SubscribeChan("ui", self.g.Alive.StopChan())
	self.homeTimeout = helpers.IntSecondDefault(self.g.Config.UI.HomeTimeoutSec, 0)
	return nil
}

func (self *UI) Engine() *hmi.Manager { return self.eng }

func (self *UI) Loop(ctx context.Context) {
	g := self.g
	g.Alive.Add(1)
	defer g.Alive.Done()

	interval := helpers.IntMillisecondDefault(g.Config.Hardware.Input.TickIntervalMs, DefaultTickInterval)
	go input.Ticker(g.Hardware.Input, interval, g.Alive.StopChan())
	g.Tele.State(tele.StateRun)

	if res, err := self.eng.Render(); err == nil {
		self.show(res)
	} else {
		g.Error(err)
	}

	stopch := g.Alive.StopChan()
	for g.Alive.IsRunning() {
		select {
		case e := <-self.inputch:
			if self.step(e) {
				g.Log.Debugf("ui loop end")
				return
			}
		case <-stopch:
			g.Log.Debugf("ui loop stop")
			return
		}
	}
}

// step returns true when the engine exited.
func (self *UI) step(e input.Event) bool {
	g := self.g

	// Idle timeout: inject a home press on the bus so it reaches the
	// journal like any real key. Emit counts as activity, so this
	// fires at most once per timeout.
	if e.IsTick() && self.homeTimeout > 0 && g.Hardware.Input.SinceLastInput() >= self.homeTimeout {
		g.Hardware.Input.Emit(input.Press(input.KeyHome))
	}

	from := self.eng.Current()
	res, err := self.eng.Dispatch(e)
	if err != nil {
		if hmi.IsExited(err) {
			return true
		}
		g.Error(err)
	}
	if res.Page != from {
		g.Tele.Page(string(from), string(res.Page))
	}
	// Observers see every result, the exited one included.
	self.show(res)
	if res.Exited {
		g.Tele.State(tele.StateExit)
		g.Alive.Stop()
		return true
	}
	return false
}

func (self *UI) show(res hmi.Result) {
	if res.Frame != nil && self.display != nil {
		self.display.Render(res.Frame)
	}
	if self.OnResult != nil {
		self.OnResult(res)
	}
}
