package stats

import (
	"bytes"
	"strings"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "Progress", []Series{
		{Name: "single", Values: []float64{12, 10, 14, 9, 11}},
		{Name: "ao5", Values: []float64{11, 11.2, 10.9}},
	}, 20, 4)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Progress") {
		t.Fatalf("expected title in output")
	}
	if !strings.Contains(out, "Legend:") {
		t.Fatalf("expected legend in output")
	}
	if !strings.Contains(out, "14.0s") || !strings.Contains(out, "9.0s") {
		t.Fatalf("expected shared seconds axis labels, got:\n%s", out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title + 4 plot rows + legend
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines of output, got %d:\n%s", len(lines), out)
	}
}

func TestPlotSeriesSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := PlotSeries(&buf, "Progress", []Series{{Name: "ao12"}}, 20, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty series must render nothing, got %q", buf.String())
	}
}

func TestPlotSeriesFlatValues(t *testing.T) {
	var buf bytes.Buffer
	err := PlotSeries(&buf, "", []Series{{Name: "single", Values: []float64{10, 10, 10}}}, 15, 3)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if !strings.Contains(buf.String(), "11.0s") || !strings.Contains(buf.String(), "9.0s") {
		t.Fatalf("flat series must widen the axis range:\n%s", buf.String())
	}
}

func TestResampleSeries(t *testing.T) {
	condensed := resampleSeries([]float64{1, 2, 3, 4}, 2)
	if len(condensed) != 2 || condensed[0] != 1.5 || condensed[1] != 3.5 {
		t.Fatalf("condense: got %v", condensed)
	}
	stretched := resampleSeries([]float64{0, 10}, 3)
	if len(stretched) != 3 || stretched[1] != 5 {
		t.Fatalf("stretch: got %v", stretched)
	}
	if got := resampleSeries(nil, 5); got != nil {
		t.Fatalf("nil input: got %v", got)
	}
}

func TestPlotWidthFor(t *testing.T) {
	if got := PlotWidthFor(80); got >= 80 || got < minPlotWidth {
		t.Fatalf("unexpected width %d", got)
	}
	if got := PlotWidthFor(5); got != minPlotWidth {
		t.Fatalf("narrow terminals must clamp to %d, got %d", minPlotWidth, got)
	}
}
