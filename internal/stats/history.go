// Package stats owns the solve history and its derived statistics.
package stats

import (
	"fmt"
	"math"
	"time"

	"cubetui/internal/model"
)

// Trailing-average window sizes.
const (
	WindowAo5   = 5
	WindowAo12  = 12
	WindowAo100 = 100
	WindowAo1k  = 1000
)

// History is the append-ordered sequence of solves, oldest first. It owns
// its records exclusively and keeps the aggregates consistent with the
// current contents on every insert, delete, and bulk load.
type History struct {
	solves []model.Solve
	agg    model.Aggregates
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Insert appends a solve, annotates it with ao5/ao12 over the trailing
// window, and recomputes the aggregates. Non-finite or negative elapsed
// values are rejected at the boundary.
func (h *History) Insert(elapsed float64, scramble string) (model.Solve, error) {
	if err := validateElapsed(elapsed); err != nil {
		return model.Solve{}, err
	}
	solve := model.Solve{
		RecordedAt: time.Now(),
		Elapsed:    elapsed,
		Scramble:   scramble,
	}
	h.solves = append(h.solves, solve)
	h.annotate(len(h.solves) - 1)
	h.recompute()
	return h.solves[len(h.solves)-1], nil
}

// DeleteDisplayed removes the solve shown at the given table row. Rows are
// displayed newest first, so row i maps to forward index len-1-i. Trailing
// averages of every record at or after the removed position are recomputed,
// since their windows included the deleted entry.
func (h *History) DeleteDisplayed(row int) error {
	if row < 0 || row >= len(h.solves) {
		return fmt.Errorf("no solve at row %d", row)
	}
	idx := len(h.solves) - 1 - row
	h.solves = append(h.solves[:idx], h.solves[idx+1:]...)
	for i := idx; i < len(h.solves); i++ {
		h.annotate(i)
	}
	h.recompute()
	return nil
}

// Load replaces the history wholesale. Validation is all-or-nothing: one
// malformed record leaves the history empty rather than partially applied.
// Trailing averages are not persisted and are recomputed here.
func (h *History) Load(solves []model.Solve) error {
	h.solves = nil
	h.recompute()
	for i, s := range solves {
		if err := validateElapsed(s.Elapsed); err != nil {
			h.solves = nil
			h.recompute()
			return fmt.Errorf("record %d: %w", i, err)
		}
		s.Ao5, s.Ao12 = nil, nil
		h.solves = append(h.solves, s)
	}
	for i := range h.solves {
		h.annotate(i)
	}
	h.recompute()
	return nil
}

// Solves returns the history, oldest first. The slice is shared for
// rendering; callers must not mutate it.
func (h *History) Solves() []model.Solve { return h.solves }

// Len returns the number of solves.
func (h *History) Len() int { return len(h.solves) }

// Aggregates returns the current derived statistics.
func (h *History) Aggregates() model.Aggregates { return h.agg }

func validateElapsed(elapsed float64) error {
	if math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return fmt.Errorf("elapsed time is not finite")
	}
	if elapsed < 0 {
		return fmt.Errorf("elapsed time is negative")
	}
	return nil
}

// annotate sets the per-record ao5/ao12 for the solve at idx from the
// window ending there.
func (h *History) annotate(idx int) {
	h.solves[idx].Ao5 = trailingAverage(h.solves[:idx+1], WindowAo5)
	h.solves[idx].Ao12 = trailingAverage(h.solves[:idx+1], WindowAo12)
}

// trailingAverage computes the trimmed mean of the last n solves: the
// single best and single worst are discarded and the remaining n-2 are
// averaged. Nil when fewer than n solves exist.
func trailingAverage(solves []model.Solve, n int) *float64 {
	if len(solves) < n || n < 3 {
		return nil
	}
	window := solves[len(solves)-n:]
	best, worst := window[0].Elapsed, window[0].Elapsed
	sum := 0.0
	for _, s := range window {
		if s.Elapsed < best {
			best = s.Elapsed
		}
		if s.Elapsed > worst {
			worst = s.Elapsed
		}
		sum += s.Elapsed
	}
	avg := (sum - best - worst) / float64(n-2)
	return &avg
}

func (h *History) recompute() {
	var agg model.Aggregates
	if len(h.solves) > 0 {
		sum := 0.0
		best, worst := h.solves[0].Elapsed, h.solves[0].Elapsed
		for _, s := range h.solves {
			sum += s.Elapsed
			if s.Elapsed < best {
				best = s.Elapsed
			}
			if s.Elapsed > worst {
				worst = s.Elapsed
			}
			agg.PBAo5 = minOpt(agg.PBAo5, s.Ao5)
			agg.PBAo12 = minOpt(agg.PBAo12, s.Ao12)
		}
		mean := sum / float64(len(h.solves))
		agg.PBSingle = &best
		agg.Worst = &worst
		agg.Mean = &mean
	}
	agg.Ao100 = trailingAverage(h.solves, WindowAo100)
	agg.Ao1k = trailingAverage(h.solves, WindowAo1k)
	h.agg = agg
}

func minOpt(cur, candidate *float64) *float64 {
	if candidate == nil {
		return cur
	}
	if cur == nil || *candidate < *cur {
		v := *candidate
		return &v
	}
	return cur
}
