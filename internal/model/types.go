// Package model defines shared data structures.
package model

import "time"

// Solve is one completed timed attempt. Records are immutable once stored:
// Ao5/Ao12 are computed when the solve is inserted, from the history that
// precedes it, and are only revised when an earlier record inside the
// trailing window is deleted.
type Solve struct {
	RecordedAt time.Time
	Elapsed    float64
	Scramble   string
	Ao5        *float64
	Ao12       *float64
}

// Aggregates holds the session-level derived statistics. Every field is nil
// until its minimum sample size is met.
type Aggregates struct {
	PBSingle *float64
	PBAo5    *float64
	PBAo12   *float64
	Ao100    *float64
	Ao1k     *float64
	Mean     *float64
	Worst    *float64
}

// Config defines runtime settings for the timer session.
type Config struct {
	ScrambleLen   int
	IdleTickMs    int
	RunningTickMs int
}
