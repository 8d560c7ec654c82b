package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"cubetui/internal/model"
	"cubetui/internal/route"
	"cubetui/internal/session"
)

func newTestModel() *Model {
	sess := session.New(model.Config{ScrambleLen: 20}, nil)
	m := NewModel(sess)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestViewEmptyUntilSized(t *testing.T) {
	sess := session.New(model.Config{ScrambleLen: 20}, nil)
	m := NewModel(sess)
	if m.View() != "" {
		t.Fatalf("view must be empty before the first WindowSizeMsg")
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := newTestModel()
	out := m.View()
	for _, want := range []string{"Timer", "Times", "Scramble", "PB Single", "press space"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in view", want)
		}
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m := newTestModel()
	stale := m.tickSeq - 1
	if _, cmd := m.Update(tickMsg{seq: stale}); cmd != nil {
		t.Fatalf("stale tick must not reschedule")
	}
	if _, cmd := m.Update(tickMsg{seq: m.tickSeq}); cmd == nil {
		t.Fatalf("current tick must reschedule")
	}
}

func TestQuitKeyQuits(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected a command from quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel()
	m.Update(keyMsg("?"))
	if m.sess.Router.Screen() != route.ScreenHelp {
		t.Fatalf("? must open the help screen")
	}
	if !strings.Contains(m.View(), "Help") {
		t.Fatalf("help view missing title")
	}
	m.Update(keyMsg("?"))
	if m.sess.Router.Screen() != route.ScreenDefault {
		t.Fatalf("? must close the help screen")
	}
}

func TestSpaceRestartsTickChain(t *testing.T) {
	m := newTestModel()
	before := m.tickSeq
	_, cmd := m.Update(tea.KeyMsg(tea.Key{Type: tea.KeySpace}))
	if !m.sess.Timer.Running() {
		t.Fatalf("space must start the timer")
	}
	if m.tickSeq == before || cmd == nil {
		t.Fatalf("rate change must restart the tick chain")
	}
}
