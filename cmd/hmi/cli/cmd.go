// Package cli drives the demo graph from an interactive shell. Every
// button of the imagined front panel maps to a typed command, frames
// are printed after each one. Useful over ssh where no panel exists.
package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"github.com/hmikit/multipage/cmd/hmi/demo"
	"github.com/hmikit/multipage/cmd/hmi/subcmd"
	"github.com/hmikit/multipage/display"
	clilib "github.com/hmikit/multipage/helpers/cli"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/state"
	"github.com/hmikit/multipage/ui"
	"github.com/juju/errors"
)

var Mod = subcmd.Mod{Name: "cli", Main: Main}

const usage = `press a|n|p|b|h|action|next|prev|back|home|0..9
up <button>     release event for the same names
chord <letters> hold several buttons, letters from anpbh
rotate <delta>  rotary step, negative turns left
tick [n]        advance engine time
show            print the current frame
page            print the current page id
exit            stop the engine and leave
`

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)

	demo.Settings(g)
	// The shell owns stdin, the line-per-event source must not race it.
	config.Hardware.Input.Stdin.Enable = false
	// A dev tool brings its own screen.
	config.Hardware.Display.Enable = true
	g.MustInit(ctx, config)

	b, err := demo.Graph(g)
	if err != nil {
		return errors.Trace(err)
	}
	u := &ui.UI{}
	if err = u.Init(ctx, b); err != nil {
		return errors.Trace(err)
	}

	d, err := g.Display()
	if err != nil {
		return errors.Trace(err)
	}
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
	go d.Run()

	sh := &shell{g: g, v: v, upd: upd}
	sh.last.Store("")
	u.OnResult = func(res hmi.Result) { sh.last.Store(string(res.Page)) }

	go func() {
		<-g.Alive.StopChan()
		g.Stop()
		fmt.Println("\nengine exited")
		os.Exit(0)
	}()
	go u.Loop(ctx)

	clilib.MainLoop("hmi-cli", sh.exec, sh.complete)
	g.Stop()
	return nil
}

type shell struct {
	g    *state.Global
	v    *display.Virtual
	upd  <-chan struct{}
	last atomic.Value
}

func (self *shell) exec(line string) {
	words := strings.Fields(strings.TrimSpace(line))
	if len(words) == 0 {
		return
	}
	cmd, args := words[0], words[1:]
	switch cmd {
	case "help":
		fmt.Print(usage)

	case "show":
		self.print()

	case "page":
		fmt.Println(self.last.Load())

	case "press", "up":
		if len(args) != 1 {
			fmt.Printf("usage: %s <button>\n", cmd)
			return
		}
		k, ok := input.KeyByName(args[0])
		if !ok {
			fmt.Printf("unknown button %q\n", args[0])
			return
		}
		e := input.Press(k)
		if cmd == "up" {
			e = input.Release(k)
		}
		self.emit(e)

	case "chord":
		if len(args) != 1 {
			fmt.Println("usage: chord <letters from anpbh>")
			return
		}
		mask, err := parseChord(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		self.emit(input.Hold(mask))

	case "rotate":
		if len(args) != 1 {
			fmt.Println("usage: rotate <delta>")
			return
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println(err)
			return
		}
		self.emit(input.Rotate(int16(n)))

	case "tick":
		n := 1
		if len(args) == 1 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil {
				fmt.Println(err)
				return
			}
		}
		self.emit(input.Tick(uint16(n)))

	case "exit", "quit":
		self.g.Alive.Stop()

	default:
		fmt.Printf("unknown command %q, try help\n", cmd)
	}
}

// emit puts the event on the bus and waits briefly for the display
// flush it causes, then prints the fresh frame. No flush arriving is
// normal: the page may render the same content.
func (self *shell) emit(e input.Event) {
	for len(self.upd) > 0 {
		<-self.upd
	}
	self.g.Hardware.Input.Emit(e.From("cli"))
	select {
	case <-self.upd:
		self.print()
	case <-time.After(200 * time.Millisecond):
	case <-self.g.Alive.StopChan():
	}
}

func (self *shell) print() {
	frame := self.v.FrameLines()
	border := "+" + strings.Repeat("-", len(frame[0])) + "+"
	fmt.Println(border)
	for _, line := range frame {
		fmt.Println("|" + line + "|")
	}
	fmt.Println(border)
}

func parseChord(s string) (input.Chord, error) {
	var mask input.Chord
	for _, ch := range s {
		switch ch {
		case 'a':
			mask |= input.ChordAction
		case 'n':
			mask |= input.ChordNext
		case 'p':
			mask |= input.ChordPrev
		case 'b':
			mask |= input.ChordBack
		case 'h':
			mask |= input.ChordHome
		default:
			return 0, fmt.Errorf("unknown chord letter %q", ch)
		}
	}
	return mask, nil
}

var suggests = []prompt.Suggest{
	{Text: "press", Description: "press a button: a n p b h 0..9"},
	{Text: "up", Description: "release a button"},
	{Text: "chord", Description: "hold several buttons at once"},
	{Text: "rotate", Description: "rotary encoder step"},
	{Text: "tick", Description: "advance engine time"},
	{Text: "show", Description: "print the current frame"},
	{Text: "page", Description: "print the current page id"},
	{Text: "help", Description: "command summary"},
	{Text: "exit", Description: "stop the engine"},
}

func (self *shell) complete(d prompt.Document) []prompt.Suggest {
	return prompt.FilterHasPrefix(suggests, d.GetWordBeforeCursor(), true)
}
