// Package session composes the timer, history, router, and scramble
// generator, and dispatches input actions to them.
package session

import (
	"context"
	"fmt"
	"time"

	"cubetui/internal/model"
	"cubetui/internal/route"
	"cubetui/internal/scramble"
	"cubetui/internal/stats"
	"cubetui/internal/timer"
)

// Action is the abstract input symbol a key resolves to. Keys map to
// actions in one flat table; the context-sensitive part (what the action
// does for the current focus/selection) lives in the router and the
// handlers, not in nested key conditionals.
type Action int

const (
	ActionNone Action = iota
	ActionPrimary
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionEnter
	ActionEscape
	ActionDelete
	ActionHelp
	ActionReload
	ActionQuit
)

// keyActions is the flat key-to-action lookup. Both the vi movement keys
// and the arrow keys are bound.
var keyActions = map[string]Action{
	" ":      ActionPrimary,
	"space":  ActionPrimary,
	"h":      ActionMoveLeft,
	"j":      ActionMoveDown,
	"k":      ActionMoveUp,
	"l":      ActionMoveRight,
	"left":   ActionMoveLeft,
	"down":   ActionMoveDown,
	"up":     ActionMoveUp,
	"right":  ActionMoveRight,
	"enter":  ActionEnter,
	"esc":    ActionEscape,
	"d":      ActionDelete,
	"?":      ActionHelp,
	"ctrl+w": ActionReload,
	"q":      ActionQuit,
	"ctrl+c": ActionQuit,
	"ctrl+q": ActionQuit,
}

// ResolveKey maps a key name to its action symbol.
func ResolveKey(key string) Action {
	return keyActions[key]
}

// Persister stores and retrieves the solve history.
type Persister interface {
	LoadSolves(ctx context.Context) ([]model.Solve, error)
	ReplaceSolves(ctx context.Context, solves []model.Solve) error
}

// Session owns one timer, one history, one router, and one generator. It is
// the only component the rendering layer and persistence touch, and it is
// mutated only on the control loop's goroutine.
type Session struct {
	cfg       model.Config
	persister Persister

	Timer   *timer.Timer
	History *stats.History
	Router  *route.Router
	Gen     *scramble.Generator

	Scramble string
	Notice   string

	quitting bool
}

// New builds a session with a fresh scramble.
func New(cfg model.Config, p Persister) *Session {
	s := &Session{
		cfg:       cfg,
		persister: p,
		Timer:     timer.New(),
		History:   stats.NewHistory(),
		Router:    route.New(),
		Gen:       scramble.New(cfg.ScrambleLen),
	}
	s.Scramble = s.Gen.Generate()
	return s
}

// dispatch is the single action-to-handler table.
var dispatch = map[Action]func(*Session){
	ActionPrimary:   (*Session).handlePrimary,
	ActionMoveUp:    func(s *Session) { s.move(route.DirUp) },
	ActionMoveDown:  func(s *Session) { s.move(route.DirDown) },
	ActionMoveLeft:  func(s *Session) { s.move(route.DirLeft) },
	ActionMoveRight: func(s *Session) { s.move(route.DirRight) },
	ActionEnter:     (*Session).handleEnter,
	ActionEscape:    (*Session).handleEscape,
	ActionDelete:    (*Session).handleDelete,
	ActionHelp:      func(s *Session) { s.Router.Help() },
	ActionReload:    (*Session).handleReload,
	ActionQuit:      (*Session).handleQuit,
}

// Apply runs the handler for an action. Unknown actions are ignored.
func (s *Session) Apply(a Action) {
	if handler, ok := dispatch[a]; ok {
		handler(s)
	}
}

// Quitting reports whether a quit action was applied.
func (s *Session) Quitting() bool { return s.quitting }

// TickRate returns the control-loop poll interval: fast while a solve is
// running to keep the live display responsive, slow otherwise.
func (s *Session) TickRate() time.Duration {
	if s.Timer.Running() {
		return msOrDefault(s.cfg.RunningTickMs, 100)
	}
	return msOrDefault(s.cfg.IdleTickMs, 1000)
}

func msOrDefault(ms, fallback int) time.Duration {
	if ms <= 0 {
		ms = fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Session) handlePrimary() {
	elapsed, done := s.Timer.Press()
	if !done {
		return
	}
	if _, err := s.History.Insert(elapsed, s.Scramble); err != nil {
		s.Notice = fmt.Sprintf("solve not recorded: %v", err)
		return
	}
	s.Scramble = s.Gen.Generate()
}

func (s *Session) move(d route.Dir) {
	s.Router.Move(d, s.History.Len())
}

func (s *Session) handleEnter() {
	_, hadSelection := s.Router.Selected()
	s.Router.Enter()
	if sel, ok := s.Router.Selected(); ok && !hadSelection && sel == route.BlockTimer {
		s.Timer.Arm()
	}
}

func (s *Session) handleEscape() {
	if sel, ok := s.Router.Selected(); ok && sel == route.BlockTimer {
		s.Timer.Disarm()
	}
	s.Router.Escape()
}

func (s *Session) handleDelete() {
	if !s.Router.Delete() || s.History.Len() == 0 {
		return
	}
	if err := s.History.DeleteDisplayed(s.Router.TimesCursor()); err != nil {
		s.Notice = fmt.Sprintf("delete failed: %v", err)
		return
	}
	s.Router.ClampTimesCursor(s.History.Len())
}

func (s *Session) handleReload() {
	if err := s.Flush(); err != nil {
		s.Notice = fmt.Sprintf("failed to save times: %v", err)
		return
	}
	s.LoadFromStore()
}

func (s *Session) handleQuit() {
	if err := s.Flush(); err != nil {
		// Data loss is reported, never silently swallowed; quitting proceeds.
		s.Notice = fmt.Sprintf("failed to save times: %v", err)
	}
	s.quitting = true
}

// LoadFromStore replaces the history with the persisted solves. Unreadable
// or invalid data is recovered locally: the session starts with an empty
// history and a non-fatal notice.
func (s *Session) LoadFromStore() {
	if s.persister == nil {
		return
	}
	solves, err := s.persister.LoadSolves(context.Background())
	if err != nil {
		s.Notice = fmt.Sprintf("failed to load times, starting fresh: %v", err)
		if lerr := s.History.Load(nil); lerr != nil {
			// Load(nil) cannot fail; keep the original notice.
			_ = lerr
		}
		return
	}
	if err := s.History.Load(solves); err != nil {
		s.Notice = fmt.Sprintf("invalid times in store, starting fresh: %v", err)
		return
	}
	s.Router.ClampTimesCursor(s.History.Len())
}

// Solves returns the recorded history, oldest first.
func (s *Session) Solves() []model.Solve {
	return s.History.Solves()
}

// Flush writes the full history to the store.
func (s *Session) Flush() error {
	if s.persister == nil {
		return nil
	}
	return s.persister.ReplaceSolves(context.Background(), s.History.Solves())
}
