// Package demo wires the showcase page graph shared by the sim, cli
// and tui subcommands. It exercises every page kind: startup splash,
// menus, a self-expiring status screen, numeric and enum editors,
// free-text entry, a QR code and a shutdown splash.
package demo

import (
	"fmt"

	"github.com/hmikit/multipage/helpers"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/page"
	"github.com/hmikit/multipage/setting"
	"github.com/hmikit/multipage/state"
	"github.com/juju/errors"
)

// Page ids of the demo graph.
const (
	Boot          hmi.PageID = "boot"
	Home          hmi.PageID = "home"
	Status        hmi.PageID = "status"
	SettingsMenu  hmi.PageID = "settings"
	EditVolume    hmi.PageID = "edit-volume"
	EditBacklight hmi.PageID = "edit-backlight"
	EditSsid      hmi.PageID = "edit-ssid"
	Setup         hmi.PageID = "setup"
	About         hmi.PageID = "about"
	Bye           hmi.PageID = "bye"
)

// Settings registers the demo setting cells on g.Settings.
// Call before Global.Init so values stored on disk are applied.
func Settings(g *state.Global) {
	g.Settings.Add(
		setting.NewInt("volume", 50, 0, 100, 5),
		setting.NewEnum("backlight", "auto", "on", "off"),
		setting.NewText("ssid", "", 24),
	)
}

// stored decorates a setting cell so that leaving the editor with
// accept also writes the whole registry to disk.
type stored struct {
	page.Value
	g *state.Global
}

func (self stored) Commit() {
	if c, ok := self.Value.(page.Committer); ok {
		c.Commit()
	}
	if err := self.g.SettingsPersist.Store(); err != nil {
		self.g.Error(err)
	}
}

func (self stored) Revert() {
	if r, ok := self.Value.(page.Reverter); ok {
		r.Revert()
	}
}

func cell(g *state.Global, name string) setting.Cell {
	c, ok := g.Settings.Get(name)
	if !ok {
		panic(fmt.Sprintf("code error demo: setting %s is not registered", name))
	}
	return c
}

// Graph builds the demo page graph. Boot splash leads to the home
// menu, exit always passes through the bye splash.
func Graph(g *state.Global) (*hmi.Builder, error) {
	uiConf := &g.Config.UI

	height, width := g.Config.Hardware.Display.Height, g.Config.Hardware.Display.Width
	if height <= 0 {
		height = hmi.DefaultFrameHeight
	}
	if width <= 0 {
		width = hmi.DefaultFrameWidth
	}

	b := hmi.NewBuilder(g.Log, uiConf.PageCapacity).
		FrameSize(uint8(height), uint8(width)).
		Startup(Boot).
		Shutdown(Bye)

	ssid := cell(g, "ssid")
	errs := []error{
		b.Add(Boot, page.NewStartup(Home, uint16(uiConf.IntroTicks), uiConf.MsgIntro)),

		b.Add(Home, page.NewMenu("",
			page.Item{Label: "status", Target: Status},
			page.Item{Label: "settings", Target: SettingsMenu},
			page.Item{Label: "setup", Target: Setup},
			page.Item{Label: "about", Target: About},
			page.Item{Label: "power off", Target: Bye},
		)),

		b.Add(Status, &page.Text{
			Lines: []string{"status: ok", "no alerts"},
			Next:  Home,
			Back:  Home,
			Home:  Home,
			// Returns to the menu on its own after 10 ticks of silence.
			Life: page.Lifetime{Budget: 10, OnInput: true},
		}),

		b.Add(SettingsMenu, &page.Menu{
			Title: "settings",
			Items: []page.Item{
				{Label: "volume", Target: EditVolume},
				{Label: "backlight", Target: EditBacklight},
				{Label: "wifi ssid", Target: EditSsid},
			},
			Back: Home,
			Home: Home,
		}),

		b.Add(EditVolume, &page.Edit{
			Title: "volume",
			Value: stored{Value: cell(g, "volume").(page.Value), g: g},
			Done:  SettingsMenu,
		}),

		b.Add(EditBacklight, &page.Edit{
			Title: "backlight",
			Value: stored{Value: cell(g, "backlight").(page.Value), g: g},
			Done:  SettingsMenu,
		}),

		b.Add(EditSsid, (&page.EnterText{
			Title:  "ssid",
			Cancel: SettingsMenu,
			Max:    24,
			Accept: func(s string) hmi.Nav {
				if err := ssid.Set(s); err != nil {
					g.Error(err)
					return hmi.Stay()
				}
				if err := g.SettingsPersist.Store(); err != nil {
					g.Error(err)
				}
				return hmi.GoTo(SettingsMenu)
			},
		}).AllowDigits()),

		b.Add(Setup, page.NewQR("setup",
			fmt.Sprintf("https://example.com/setup?device=%d", g.Config.Tele.DeviceId), Home)),

		b.Add(About, &page.Text{
			Lines: []string{"multipage demo", "build " + buildString(g)},
			Next:  Home,
			Back:  Home,
			Home:  Home,
		}),

		b.Add(Bye, page.NewShutdown(uint16(uiConf.ByeTicks), uiConf.MsgBye)),
	}
	if err := helpers.FoldErrors(errs); err != nil {
		return nil, errors.Trace(err)
	}
	return b, nil
}

func buildString(g *state.Global) string {
	if g.Config.Tele.BuildVersion == "" {
		return "unknown"
	}
	return g.Config.Tele.BuildVersion
}
