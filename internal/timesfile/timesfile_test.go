package timesfile

import (
	"bytes"
	"strings"
	"testing"

	"cubetui/internal/model"
)

func TestReadParsesLines(t *testing.T) {
	in := "12.340\n9.810\n\n15.020\n"
	solves, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(solves) != 3 {
		t.Fatalf("expected 3 solves, got %d", len(solves))
	}
	if solves[0].Elapsed != 12.34 || solves[2].Elapsed != 15.02 {
		t.Fatalf("unexpected values: %+v", solves)
	}
}

func TestReadRejectsMalformedLine(t *testing.T) {
	in := "12.340\nnot-a-number\n15.020\n"
	if _, err := Read(strings.NewReader(in)); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRoundTrip(t *testing.T) {
	solves := []model.Solve{{Elapsed: 12.34}, {Elapsed: 9.81}}
	var buf bytes.Buffer
	if err := Write(&buf, solves); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(got) != 2 || got[0].Elapsed != 12.34 || got[1].Elapsed != 9.81 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}
