package session

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"cubetui/internal/model"
	"cubetui/internal/route"
	"cubetui/internal/timer"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type fakePersister struct {
	solves  []model.Solve
	loadErr error
	saveErr error
	saved   int
}

func (p *fakePersister) LoadSolves(_ context.Context) ([]model.Solve, error) {
	return p.solves, p.loadErr
}

func (p *fakePersister) ReplaceSolves(_ context.Context, solves []model.Solve) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.solves = append([]model.Solve(nil), solves...)
	p.saved++
	return nil
}

func newTestSession(clock timer.Clock) (*Session, *fakePersister) {
	p := &fakePersister{}
	s := New(model.Config{ScrambleLen: 20}, p)
	s.Timer = timer.NewWithClock(clock)
	return s, p
}

func TestResolveKey(t *testing.T) {
	cases := map[string]Action{
		" ":      ActionPrimary,
		"k":      ActionMoveUp,
		"down":   ActionMoveDown,
		"enter":  ActionEnter,
		"esc":    ActionEscape,
		"d":      ActionDelete,
		"?":      ActionHelp,
		"q":      ActionQuit,
		"ctrl+w": ActionReload,
		"x":      ActionNone,
	}
	for key, want := range cases {
		if got := ResolveKey(key); got != want {
			t.Fatalf("key %q: expected %v, got %v", key, want, got)
		}
	}
}

func TestPrimaryCommitsSolveAndRescrambles(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s, _ := newTestSession(clock)
	first := s.Scramble

	s.Apply(ActionPrimary)
	if !s.Timer.Running() {
		t.Fatalf("timer should be running")
	}
	if s.Scramble != first {
		t.Fatalf("scramble must not change on start")
	}

	clock.now = clock.now.Add(12340 * time.Millisecond)
	s.Apply(ActionPrimary)
	if s.History.Len() != 1 {
		t.Fatalf("expected one recorded solve, got %d", s.History.Len())
	}
	solve := s.Solves()[0]
	if solve.Elapsed != 12.34 {
		t.Fatalf("expected 12.34, got %v", solve.Elapsed)
	}
	if solve.Scramble != first {
		t.Fatalf("solve must keep the scramble it was timed against")
	}
	if s.Scramble == first {
		t.Fatalf("a new scramble must be generated after a solve")
	}
	if len(strings.Fields(s.Scramble)) != 20 {
		t.Fatalf("unexpected scramble length: %q", s.Scramble)
	}

	// Third press clears the stopped state without recording anything.
	s.Apply(ActionPrimary)
	if s.History.Len() != 1 {
		t.Fatalf("Stopped->Idle press must not record a solve")
	}
}

func TestTickRateNegotiation(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s, _ := newTestSession(clock)
	if s.TickRate() != time.Second {
		t.Fatalf("idle tick rate: got %v", s.TickRate())
	}
	s.Apply(ActionPrimary)
	if s.TickRate() != 100*time.Millisecond {
		t.Fatalf("running tick rate: got %v", s.TickRate())
	}
	s.Apply(ActionPrimary)
	if s.TickRate() != time.Second {
		t.Fatalf("stopped tick rate: got %v", s.TickRate())
	}
}

func TestDeleteOnlyWhenTimesSelected(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s, _ := newTestSession(clock)
	for i := 0; i < 3; i++ {
		s.Apply(ActionPrimary)
		clock.now = clock.now.Add(time.Duration(i+1) * time.Second)
		s.Apply(ActionPrimary)
		s.Apply(ActionPrimary)
	}
	s.Apply(ActionDelete)
	if s.History.Len() != 3 {
		t.Fatalf("delete must be ignored without Times selection")
	}
	s.Apply(ActionMoveDown) // Timer -> Times
	s.Apply(ActionEnter)
	if sel, ok := s.Router.Selected(); !ok || sel != route.BlockTimes {
		t.Fatalf("Times not selected: %v %v", sel, ok)
	}
	s.Apply(ActionDelete)
	if s.History.Len() != 2 {
		t.Fatalf("expected 2 solves after delete, got %d", s.History.Len())
	}
	// Row 0 was the newest solve (3s); the remaining ones are 1s and 2s.
	for _, solve := range s.Solves() {
		if solve.Elapsed == 3 {
			t.Fatalf("cursor row not deleted")
		}
	}
}

func TestEnterOnTimerArms(t *testing.T) {
	s, _ := newTestSession(&fakeClock{now: time.Now()})
	s.Apply(ActionEnter)
	if s.Timer.State() != timer.Armed {
		t.Fatalf("expected Armed, got %v", s.Timer.State())
	}
	s.Apply(ActionEscape)
	if s.Timer.State() != timer.Idle {
		t.Fatalf("escape must disarm, got %v", s.Timer.State())
	}
}

func TestQuitFlushes(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s, p := newTestSession(clock)
	s.Apply(ActionPrimary)
	clock.now = clock.now.Add(9 * time.Second)
	s.Apply(ActionPrimary)

	s.Apply(ActionQuit)
	if !s.Quitting() {
		t.Fatalf("quit action must mark the session as quitting")
	}
	if p.saved != 1 || len(p.solves) != 1 {
		t.Fatalf("quit must flush history: saved=%d solves=%d", p.saved, len(p.solves))
	}
}

func TestQuitReportsWriteFailure(t *testing.T) {
	s, p := newTestSession(&fakeClock{now: time.Now()})
	p.saveErr = fmt.Errorf("disk full")
	s.Apply(ActionQuit)
	if !s.Quitting() {
		t.Fatalf("write failure must not prevent quitting")
	}
	if s.Notice == "" {
		t.Fatalf("write failure must be reported")
	}
}

func TestLoadFailureStartsFresh(t *testing.T) {
	p := &fakePersister{solves: []model.Solve{{Elapsed: 1}, {Elapsed: -2}}}
	s := New(model.Config{}, p)
	s.LoadFromStore()
	if s.History.Len() != 0 {
		t.Fatalf("invalid store must yield an empty history, got %d", s.History.Len())
	}
	if s.Notice == "" {
		t.Fatalf("load failure must surface a notice")
	}
}

func TestReloadRoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	s, p := newTestSession(clock)
	s.Apply(ActionPrimary)
	clock.now = clock.now.Add(8 * time.Second)
	s.Apply(ActionPrimary)

	s.Apply(ActionReload)
	if p.saved != 1 {
		t.Fatalf("reload must flush first")
	}
	if s.History.Len() != 1 || s.Solves()[0].Elapsed != 8 {
		t.Fatalf("reload lost the history: %+v", s.Solves())
	}
}
