// Package tui provides the Bubble Tea timer interface.
package tui

import (
	_ "embed"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"cubetui/internal/route"
	"cubetui/internal/session"
)

//go:embed text/help.txt
var helpText string

//go:embed text/welcome.txt
var welcomeText string

//go:embed text/cube.txt
var cubeText string

// tickMsg carries the chain sequence so a rescheduled tick loop invalidates
// the old one instead of stacking a second chain.
type tickMsg struct {
	seq int
}

// keyMap declares the footer hint bindings.
type keyMap struct {
	Primary key.Binding
	Move    key.Binding
	Enter   key.Binding
	Escape  key.Binding
	Delete  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Primary: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "timer")),
	Move:    key.NewBinding(key.WithKeys("h", "j", "k", "l"), key.WithHelp("hjkl", "move")),
	Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// Model implements the Bubble Tea timer UI around one session.
type Model struct {
	sess *session.Session

	width  int
	height int

	helpView viewport.Model
	tickSeq  int
}

// NewModel constructs the timer UI model.
func NewModel(sess *session.Session) *Model {
	hv := viewport.New(0, 0)
	hv.SetContent(helpText)
	return &Model{sess: sess, helpView: hv}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	seq := m.tickSeq
	return tea.Tick(m.sess.TickRate(), func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// restartTicks invalidates the running tick chain and starts one at the
// session's current rate.
func (m *Model) restartTicks() tea.Cmd {
	m.tickSeq++
	return m.tickCmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width - 4
		m.helpView.Height = msg.Height - 2
		return m, nil
	case tickMsg:
		if msg.seq != m.tickSeq {
			return m, nil
		}
		m.sess.Timer.Tick()
		return m, m.tickCmd()
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := session.ResolveKey(msg.String())

	// On the help screen everything except the routed keys scrolls.
	if m.sess.Router.Screen() == route.ScreenHelp {
		switch action {
		case session.ActionEscape, session.ActionHelp, session.ActionQuit:
		default:
			var cmd tea.Cmd
			m.helpView, cmd = m.helpView.Update(msg)
			return m, cmd
		}
	}

	wasRunning := m.sess.Timer.Running()
	m.sess.Apply(action)
	if m.sess.Quitting() {
		return m, tea.Quit
	}
	if m.sess.Timer.Running() != wasRunning {
		// Tick rate changed; renegotiate the poll interval now.
		return m, m.restartTicks()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.sess.Router.Screen() == route.ScreenHelp {
		return m.viewHelp()
	}
	return m.viewDefault()
}
