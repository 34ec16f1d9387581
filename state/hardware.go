package state

import (
	"os"
	"time"

	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/journal"
	"github.com/juju/errors"
)

// Display returns the text display built from config, nil when
// disabled. The device is not attached here, callers bind hardware or
// a virtual device with SetDevice.
func (g *Global) Display() (*display.TextDisplay, error) {
	var err error

	g.initDisplayOnce.Do(func() {
		defer recoverFatal(g.Log) // fix sync.Once silent panic

		cfg := &g.Config.Hardware.Display
		var d *display.TextDisplay
		if !cfg.Enable {
			g.Log.Infof("display disabled")
			g.Hardware.Display.Store(d)
			return
		}

		height, width := cfg.Height, cfg.Width
		if height == 0 {
			height = hmi.DefaultFrameHeight
		}
		if width == 0 {
			width = hmi.DefaultFrameWidth
		}
		d, err = display.NewTextDisplay(&display.Config{
			Codepage:    cfg.Codepage,
			Height:      uint32(height),
			Width:       uint32(width),
			ScrollDelay: time.Duration(cfg.ScrollDelay) * time.Millisecond,
		})
		if err != nil {
			err = errors.Annotatef(err, "config: display=%#v", cfg)
			return
		}
		g.Hardware.Display.Store(d)
	})

	x := g.Hardware.Display.Load()
	if x == nil {
		return nil, err
	}
	return x.(*display.TextDisplay), err
}

func (g *Global) initInput() {
	g.initInputOnce.Do(func() {
		defer recoverFatal(g.Log) // fix sync.Once silent panic
		g.Hardware.Input = input.NewDispatch(g.Log, g.Alive.StopChan())

		// support more input sources here
		sources := make([]input.Source, 0, 4)

		if !g.Config.Hardware.Input.DevInputEvent.Enable {
			g.Log.Infof("input=%s disabled", input.EvdevSourceTag)
		} else {
			src, err := input.NewEvdevSource(g.Config.Hardware.Input.DevInputEvent.Device)
			err = errors.Annotatef(err, "input=%s device=%s", input.EvdevSourceTag, g.Config.Hardware.Input.DevInputEvent.Device)
			if err != nil {
				g.Log.Error(errors.ErrorStack(err))
			} else {
				// Close unblocks the pending read on shutdown.
				go func() {
					<-g.Alive.StopChan()
					src.Close()
				}()
				sources = append(sources, src)
			}
		}

		if !g.Config.Hardware.Input.Stdin.Enable {
			g.Log.Infof("input=%s disabled", input.StdinSourceTag)
		} else {
			sources = append(sources, input.NewStdinSource(os.Stdin))
		}

		if g.Config.Journal.Replay {
			src, err := journal.NewReplaySource(g.Config.Journal.Path, g.Log)
			err = errors.Annotatef(err, "journal path=%s", g.Config.Journal.Path)
			if err != nil {
				g.Log.Error(errors.ErrorStack(err))
			} else {
				sources = append(sources, src)
			}
		}

		go g.Hardware.Input.Run(sources)
	})
}
