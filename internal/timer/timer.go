// Package timer implements the solve timer state machine.
package timer

import "time"

// State is the timer phase. Transitions are driven by Press, Arm, Disarm,
// and Tick only; every transition is a total function of (state, event).
type State int

const (
	// Idle means no solve is in flight.
	Idle State = iota
	// Armed means the timer is primed and the next press starts it.
	Armed
	// Running means a solve is being timed.
	Running
	// Stopped means a solve just finished and its time is still displayed.
	Stopped
)

// Clock supplies the current time. time.Time carries a monotonic reading,
// so elapsed times are immune to wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Timer measures solve durations from primary-key events and clock ticks.
type Timer struct {
	clock     Clock
	state     State
	startedAt time.Time
	display   float64
	last      *float64
}

// New returns a Timer backed by the system clock.
func New() *Timer {
	return NewWithClock(systemClock{})
}

// NewWithClock returns a Timer backed by the given clock.
func NewWithClock(clock Clock) *Timer {
	return &Timer{clock: clock}
}

// Press advances the state machine on the primary action key. When a solve
// finishes it returns the elapsed seconds and true; every other transition
// returns (0, false).
func (t *Timer) Press() (float64, bool) {
	switch t.state {
	case Idle, Armed:
		t.state = Running
		t.startedAt = t.clock.Now()
		t.display = 0
		return 0, false
	case Running:
		elapsed := t.clock.Now().Sub(t.startedAt).Seconds()
		t.state = Stopped
		t.display = elapsed
		t.last = &elapsed
		return elapsed, true
	default: // Stopped
		t.state = Idle
		return 0, false
	}
}

// Arm primes an idle timer so the next press starts it.
func (t *Timer) Arm() {
	if t.state == Idle {
		t.state = Armed
	}
}

// Disarm returns an armed timer to idle.
func (t *Timer) Disarm() {
	if t.state == Armed {
		t.state = Idle
	}
}

// Tick refreshes the display-only elapsed value while running. It never
// mutates committed state.
func (t *Timer) Tick() {
	if t.state == Running {
		t.display = t.clock.Now().Sub(t.startedAt).Seconds()
	}
}

// State returns the current phase.
func (t *Timer) State() State { return t.state }

// Running reports whether a solve is in flight; the session uses this to
// pick the fast or slow tick rate.
func (t *Timer) Running() bool { return t.state == Running }

// Elapsed returns the live display value in seconds.
func (t *Timer) Elapsed() float64 { return t.display }

// Last returns the most recently recorded solve time, or nil.
func (t *Timer) Last() *float64 { return t.last }
