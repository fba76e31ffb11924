// Package tui is an interactive stepper that replays a drag trace one signal
// at a time and shows the events and replies the controller produced.
package tui

import (
	"fmt"
	"strings"

	"dndbridge/internal/dragdrop"
	"dndbridge/internal/trace"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	player  *trace.Player
	results []trace.Result

	keys KeyMap
	help help.Model

	statusMsg string
	width     int
}

// New creates a stepper over p. The player is rewound.
func New(p *trace.Player) *Model {
	p.Reset()
	return &Model{
		player: p,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Run starts the stepper in the terminal and blocks until it exits.
func Run(p *trace.Player) error {
	_, err := tea.NewProgram(New(p), tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Step):
		m.step()
	case key.Matches(msg, m.keys.Run):
		for m.step() {
		}
	case key.Matches(msg, m.keys.Reset):
		m.player.Reset()
		m.results = nil
		m.statusMsg = "Restarted"
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// step replays one signal and reports whether there was one.
func (m *Model) step() bool {
	res, ok := m.player.Step()
	if !ok {
		m.statusMsg = "End of trace"
		return false
	}
	m.results = append(m.results, res)
	m.statusMsg = ""
	return true
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	name := m.player.Trace().Name
	if name == "" {
		name = "trace"
	}
	b.WriteString(TitleStyle.Render("dndbridge") + " " + name + "\n")
	b.WriteString(StatusStyle.Render(m.stateLine()) + "\n\n")

	last := len(m.results) - 1
	for i, sig := range m.player.Signals() {
		if i > last {
			b.WriteString(PendingStyle.Render(fmt.Sprintf("  %2d %s", i, trace.Describe(sig))) + "\n")
			continue
		}
		res := m.results[i]
		row := fmt.Sprintf("%2d %s", i, trace.Describe(res.Signal))
		if i == last {
			b.WriteString(CursorStyle.Render("> "+row) + " ")
		} else {
			b.WriteString("  " + SignalStyle.Render(row) + " ")
		}
		b.WriteString(StatusStyle.Render(replyText(res)) + "\n")
		for _, ev := range res.Events {
			b.WriteString("       " + EventStyle.Render(ev.String()) + "\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.statusMsg) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))

	return App.Render(b.String())
}

func (m *Model) stateLine() string {
	st := m.player.Controller().State()
	return fmt.Sprintf("step %d/%d  shape=%s  inside=%t  pending=%d  position=%s",
		m.player.Pos(), m.player.Len(), m.player.Controller().Shape().Name,
		st.Inside, st.Pending, st.Position)
}

func replyText(res trace.Result) string {
	switch res.Signal.(type) {
	case dragdrop.DragDrop:
		return res.Reply.Decision.String()
	case dragdrop.DragFailed:
		return res.Reply.Propagation.String()
	}
	return ""
}

// Results returns the results replayed so far.
func (m *Model) Results() []trace.Result {
	return m.results
}

// ShowHelp reports whether the full help is shown.
func (m *Model) ShowHelp() bool {
	return m.help.ShowAll
}

// StatusMsg returns the current status line.
func (m *Model) StatusMsg() string {
	return m.statusMsg
}
