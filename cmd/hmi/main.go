// Command hmi is the page engine harness. The default sim subcommand
// runs the demo graph against a virtual display; cli and tui wrap the
// same graph in an interactive shell and a full terminal UI.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hmikit/multipage/cmd/hmi/cli"
	"github.com/hmikit/multipage/cmd/hmi/sim"
	"github.com/hmikit/multipage/cmd/hmi/subcmd"
	"github.com/hmikit/multipage/cmd/hmi/tui"
	"github.com/hmikit/multipage/log2"
	"github.com/hmikit/multipage/state"
	"github.com/hmikit/multipage/tele"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
)

var log = log2.NewStderr(log2.LDebug)

// BuildVersion set by ldflags -X
var BuildVersion string = "unknown"

var modules = []subcmd.Mod{sim.Mod, cli.Mod, tui.Mod}

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "hmi.hcl", "")
	flagVersion := cmdline.Bool("version", false, "print build version and exit")
	if err := cmdline.Parse(os.Args[1:]); err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	if *flagVersion {
		fmt.Printf("hmi %s\n", BuildVersion)
		return
	}

	command := cmdline.Arg(0)
	if command == "" {
		command = "sim"
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		log.Fatal(errors.ErrorStack(errors.Annotatef(err, "command line args=%v", os.Args)))
	}

	if subcmd.SdNotify("start") {
		// under systemd assume journal logging, no timestamp
		log.SetFlags(log2.LServiceFlags)
	} else if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetFlags(log2.LInteractiveFlags)
	} else {
		log.SetFlags(log2.LStdFlags)
	}
	log.Debugf("hello command=%s build=%s", mod.Name, BuildVersion)

	ctx, g := state.NewContext(log, tele.New())
	config := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	config.Tele.BuildVersion = BuildVersion

	if err := mod.Main(ctx, config); err != nil {
		g.Stop()
		log.Fatal(errors.ErrorStack(err))
	}
	g.Stop()
}
