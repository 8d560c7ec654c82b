package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"cubetui/internal/model"
)

const sparkChars = " .:-=+*#%@"

// FormatOpt renders an optional statistic with two decimals, or a dash.
func FormatOpt(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// SolveSeries builds the single/ao5/ao12 series for plotting. The average
// series contain only their defined values, so they start once the window
// has filled.
func SolveSeries(solves []model.Solve) []Series {
	singles := make([]float64, 0, len(solves))
	ao5s := make([]float64, 0, len(solves))
	ao12s := make([]float64, 0, len(solves))
	for _, s := range solves {
		singles = append(singles, s.Elapsed)
		if s.Ao5 != nil {
			ao5s = append(ao5s, *s.Ao5)
		}
		if s.Ao12 != nil {
			ao12s = append(ao12s, *s.Ao12)
		}
	}
	return []Series{
		{Name: "single", Values: singles},
		{Name: "ao5", Values: ao5s},
		{Name: "ao12", Values: ao12s},
	}
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints the aggregate table for a history.
func RenderSummary(w io.Writer, h *History) error {
	if h.Len() == 0 {
		_, err := fmt.Fprintln(w, "No solves recorded.")
		return err
	}
	agg := h.Aggregates()
	headers := []string{"Stat", "Time"}
	rows := [][]string{
		{"Solves", fmt.Sprintf("%d", h.Len())},
		{"PB single", FormatOpt(agg.PBSingle)},
		{"PB ao5", FormatOpt(agg.PBAo5)},
		{"PB ao12", FormatOpt(agg.PBAo12)},
		{"ao100", FormatOpt(agg.Ao100)},
		{"ao1k", FormatOpt(agg.Ao1k)},
		{"Mean", FormatOpt(agg.Mean)},
		{"Worst", FormatOpt(agg.Worst)},
	}
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderReport prints the summary, a recent-solves sparkline, and the
// single/ao5/ao12 plot.
func RenderReport(w io.Writer, h *History, width, height int, useColor bool) error {
	if err := RenderSummary(w, h); err != nil {
		return err
	}
	if h.Len() == 0 {
		return nil
	}
	solves := h.Solves()
	recent := solves
	if len(recent) > 40 {
		recent = recent[len(recent)-40:]
	}
	values := make([]float64, len(recent))
	for i, s := range recent {
		values[i] = s.Elapsed
	}
	if _, err := fmt.Fprintf(w, "Recent: %s\n\n", Sparkline(values)); err != nil {
		return err
	}
	plotWidth := 0
	if width > 0 {
		plotWidth = PlotWidthFor(width)
	}
	return PlotSeriesWithColor(w, "Progress", SolveSeries(solves), plotWidth, height, useColor)
}
