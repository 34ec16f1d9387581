package state

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/hmikit/multipage/helpers"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/journal"
	"github.com/hmikit/multipage/log2"
	"github.com/hmikit/multipage/setting"
	"github.com/hmikit/multipage/tele"
	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
)

const DefaultPageCapacity = 32

type Global struct {
	Alive    *alive.Alive
	Config   *Config
	Hardware struct {
		Display atomic.Value // *display.TextDisplay
		Input   *input.Dispatch
	}
	Log             *log2.Log
	Settings        *setting.Registry
	SettingsPersist setting.Persist
	Tele            tele.Teler

	journalRec *journal.Recorder

	initDisplayOnce sync.Once
	initInputOnce   sync.Once
	stopOnce        sync.Once
}

const ContextKey = "run/state-global"

func NewContext(log *log2.Log, teler tele.Teler) (context.Context, *Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}
	if teler == nil {
		teler = tele.Noop{}
	}

	g := &Global{
		Alive:    alive.NewAlive(),
		Log:      log,
		Settings: setting.NewRegistry(),
		Tele:     teler,
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, ContextKey, g)

	return ctx, g
}

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg

	// Empty persist.root is allowed, settings then live only in memory.
	g.Log.Debugf("config: persist.root=%s", g.Config.Persist.Root)

	// Tele is the remote error report channel, it must be inited before anything else
	if g.Config.Tele.Enabled && g.Config.Tele.PersistPath == "" {
		if g.Config.Persist.Root == "" {
			g.Config.Persist.Root = "./tmp-hmi-data"
			g.Log.Errorf("config: tele needs persist.root=empty changed=%s", g.Config.Persist.Root)
		}
		g.Config.Tele.PersistPath = filepath.Join(g.Config.Persist.Root, "tele")
	}
	if err := g.Tele.Init(ctx, g.Log, g.Config.Tele); err != nil {
		return errors.Annotate(err, "tele init")
	}

	errs := make([]error, 0)

	// Settings cells must be registered before Init, stored values for
	// unknown names are kept on disk but not applied.
	{
		err := g.SettingsPersist.Init("settings", g.Settings, g.Config.Persist.Root, g.Log)
		if err == nil {
			err = g.SettingsPersist.Load()
		}
		if err != nil {
			g.Error(err)
			errs = append(errs, err)
		}
	}

	if g.Config.UI.PageCapacity <= 0 {
		g.Config.UI.PageCapacity = DefaultPageCapacity
	}
	if g.Config.UI.MsgError == "" {
		g.Config.UI.MsgError = "error"
	}
	if g.Config.UI.MsgIntro == "" {
		g.Config.UI.MsgIntro = "hello"
	}
	if g.Config.UI.MsgBye == "" {
		g.Config.UI.MsgBye = "goodbye"
	}
	if g.Config.UI.IntroTicks <= 0 {
		g.Config.UI.IntroTicks = 4
	}
	if g.Config.UI.ByeTicks <= 0 {
		g.Config.UI.ByeTicks = 4
	}
	if g.Config.Journal.Path == "" && g.Config.Persist.Root != "" {
		g.Config.Journal.Path = filepath.Join(g.Config.Persist.Root, "journal")
	}

	g.initInput()

	if g.Config.Journal.Record {
		rec, err := journal.NewRecorder(g.Config.Journal.Path, g.Log)
		if err != nil {
			err = errors.Annotatef(err, "journal path=%s", g.Config.Journal.Path)
			g.Error(err)
			errs = append(errs, err)
		} else {
			g.journalRec = rec
			g.Hardware.Input.SubscribeFunc("journal", rec.Record, g.Alive.StopChan())
		}
	}

	return helpers.FoldErrors(errs)
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Errorf(errors.ErrorStack(err))
		g.Tele.Error(err)
	}
}

// Stop is the single shutdown path: input sources unblock, the
// journal flushes its end marker, tele drains last. Safe to call twice.
func (g *Global) Stop() {
	g.stopOnce.Do(func() {
		g.Alive.Stop()
		g.Alive.Wait()
		if g.journalRec != nil {
			if err := g.journalRec.Close(); err != nil {
				g.Log.Errorf("journal close err=%v", err)
			}
		}
		g.Tele.Close()
	})
}

func recoverFatal(f helpers.Fataler) {
	if x := recover(); x != nil {
		f.Fatal(x)
	}
}
