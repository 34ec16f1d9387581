// Package tui renders the demo graph as a full-screen terminal UI.
// The page engine keeps running on its own loop goroutine, the
// terminal program is just another observer on one side and another
// input device on the other.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hmikit/multipage/cmd/hmi/demo"
	"github.com/hmikit/multipage/cmd/hmi/subcmd"
	"github.com/hmikit/multipage/hmi"
	"github.com/hmikit/multipage/input"
	"github.com/hmikit/multipage/state"
	"github.com/hmikit/multipage/ui"
	"github.com/juju/errors"
)

var Mod = subcmd.Mod{Name: "tui", Main: Main}

func Main(ctx context.Context, config *state.Config) error {
	g := state.GetGlobal(ctx)

	demo.Settings(g)
	// bubbletea owns the terminal: no line reader on stdin, no
	// character display adapter, frames come straight from the engine.
	config.Hardware.Input.Stdin.Enable = false
	config.Hardware.Display.Enable = false
	g.MustInit(ctx, config)

	b, err := demo.Graph(g)
	if err != nil {
		return errors.Trace(err)
	}
	u := &ui.UI{}
	if err = u.Init(ctx, b); err != nil {
		return errors.Trace(err)
	}

	results := make(chan resultMsg, 16)
	u.OnResult = func(res hmi.Result) {
		msg := resultMsg{page: string(res.Page), exited: res.Exited}
		if res.Frame != nil {
			msg.lines = strings.Split(res.Frame.Format(), "\n")
		}
		if p, err := u.Engine().Registry().Lookup(res.Page); err == nil {
			if qr, ok := p.(interface{ Art() []string }); ok {
				msg.art = qr.Art()
			}
		}
		// Never block the engine loop. A dropped frame is fine, the
		// next one supersedes it; exit is caught by watchStop too.
		select {
		case results <- msg:
		default:
		}
	}

	m := model{g: g, results: results}
	p := tea.NewProgram(m, tea.WithAltScreen())
	go u.Loop(ctx)
	_, err = p.Run()
	g.Alive.Stop()
	g.Stop()
	return errors.Trace(err)
}

type resultMsg struct {
	lines  []string
	art    []string
	page   string
	exited bool
}

type stoppedMsg struct{}

type model struct {
	g       *state.Global
	results <-chan resultMsg
	last    resultMsg
	width   int
	height  int
}

func waitResult(ch <-chan resultMsg) tea.Cmd {
	return func() tea.Msg { return <-ch }
}

func watchStop(g *state.Global) tea.Cmd {
	return func() tea.Msg {
		<-g.Alive.StopChan()
		return stoppedMsg{}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitResult(m.results), watchStop(m.g), tea.HideCursor)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch s := msg.String(); s {
		case "ctrl+c", "q":
			m.g.Alive.Stop()
			return m, tea.Quit
		case " ", "enter":
			m.emit(input.Press(input.KeyAction))
		case "n", "right", "tab":
			m.emit(input.Press(input.KeyNext))
		case "p", "left":
			m.emit(input.Press(input.KeyPrev))
		case "b", "esc":
			m.emit(input.Press(input.KeyBack))
		case "h":
			m.emit(input.Press(input.KeyHome))
		case "up":
			m.emit(input.Rotate(-1))
		case "down":
			m.emit(input.Rotate(1))
		case "t":
			m.emit(input.Tick(1))
		default:
			if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
				m.emit(input.PressDigit(s[0] - '0'))
			}
		}

	case resultMsg:
		if msg.exited {
			return m, tea.Quit
		}
		m.last = msg
		return m, waitResult(m.results)

	case stoppedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m model) emit(e input.Event) {
	m.g.Hardware.Input.Emit(e.From("tui"))
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

func (m model) View() string {
	if len(m.last.lines) == 0 {
		return "starting...\n"
	}
	parts := []string{
		titleStyle.Render("hmi " + m.last.page),
		frameStyle.Render(strings.Join(m.last.lines, "\n")),
	}
	if len(m.last.art) > 0 {
		parts = append(parts, strings.Join(m.last.art, "\n"))
	}
	parts = append(parts,
		statusStyle.Render("space act  n/p move  b back  h home  arrows rotate  q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}
