// Package sim runs the demo graph against a virtual display and
// prints every frame to the terminal. Remote commands arriving over
// tele are translated to input events, so the page engine can be
// driven from an MQTT shell as well as from local stdin.
package sim

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/hmikit/multipage/cmd/hmi/demo"
	"github.com/hmikit/multipage/cmd/hmi/subcmd"
	"github.com/hmikit/multipage/display"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/state"
	"github.com/hmikit/multipage/ui"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
)

var Mod = subcmd.Mod{Name: "sim", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)

	demo.Settings(g)
	config.Tele.OnCommand = func(fields map[string]string) bool { return remoteInput(g, fields) }
	g.MustInit(ctx, config)
	g.Log.Debugf("sim init complete")

	b, err := demo.Graph(g)
	if err != nil {
		return errors.Trace(err)
	}
	u := &ui.UI{}
	if err = u.Init(ctx, b); err != nil {
		return errors.Trace(err)
	}

	var showFrame func(hmi.Result)
	if d, _ := g.Display(); d != nil {
		height, width := config.Hardware.Display.Height, config.Hardware.Display.Width
		if height <= 0 {
			height = hmi.DefaultFrameHeight
		}
		if width <= 0 {
			width = hmi.DefaultFrameWidth
		}
		v := display.NewVirtual(uint8(height), uint8(width))
		d.SetDevice(v)
		upd := make(chan struct{}, 16)
		d.SetUpdateChan(upd)
		go printLoop(g, v, upd)
		go d.Run()
	} else {
		// No display configured: print what pages produce directly.
		showFrame = func(res hmi.Result) { printFrame(strings.Split(res.Frame.Format(), "\n")) }
	}
	u.OnResult = func(res hmi.Result) {
		if res.Frame == nil { // exited, nothing left to draw
			return
		}
		if showFrame != nil {
			showFrame(res)
		}
		printArt(u.Engine(), res)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		g.Log.Debugf("sim caught stop signal")
		g.Alive.Stop()
	}()

	subcmd.SdNotify(daemon.SdNotifyReady)
	u.Loop(ctx)
	g.Stop()
	return nil
}

// remoteInput maps a tele command to an input event on the bus.
// Recognized fields: press=<button>, rotate=<delta>, tick=<count>.
func remoteInput(g *state.Global, fields map[string]string) bool {
	if name, ok := fields["press"]; ok {
		k, ok := input.KeyByName(name)
		if !ok {
			g.Log.Errorf("sim remote press unknown name=%s", name)
			return false
		}
		g.Hardware.Input.Emit(input.Press(k).From("tele"))
		return true
	}
	if s, ok := fields["rotate"]; ok {
		n, err := strconv.Atoi(s)
		if err != nil {
			g.Log.Errorf("sim remote rotate err=%v", err)
			return false
		}
		g.Hardware.Input.Emit(input.Rotate(int16(n)).From("tele"))
		return true
	}
	if s, ok := fields["tick"]; ok {
		n, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			g.Log.Errorf("sim remote tick err=%v", err)
			return false
		}
		g.Hardware.Input.Emit(input.Tick(uint16(n)).From("tele"))
		return true
	}
	g.Log.Errorf("sim remote command not recognized fields=%v", fields)
	return false
}

func printLoop(g *state.Global, v *display.Virtual, upd <-chan struct{}) {
	for {
		select {
		case <-upd:
			printFrame(v.FrameLines())
		case <-g.Alive.StopChan():
			return
		}
	}
}

func printFrame(lines []string) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\033[2J\033[H")
	}
	w := 0
	for _, line := range lines {
		if len(line) > w {
			w = len(line)
		}
	}
	border := "+" + strings.Repeat("-", w) + "+"
	fmt.Println(border)
	for _, line := range lines {
		fmt.Printf("|%-*s|\n", w, line)
	}
	fmt.Println(border)
}

// printArt shows QR codes as block art under the frame. The character
// frame only carries the hint text, terminals can do better.
func printArt(eng *hmi.Manager, res hmi.Result) {
	p, err := eng.Registry().Lookup(res.Page)
	if err != nil {
		return
	}
	if qr, ok := p.(interface{ Art() []string }); ok {
		for _, row := range qr.Art() {
			fmt.Println(row)
		}
	}
}

