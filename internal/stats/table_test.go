package stats

import "testing"

func TestFormatTable(t *testing.T) {
	lines := formatTable(
		[]string{"Stat", "Time"},
		[][]string{
			{"PB single", "9.81"},
			{"Worst", "100.00"},
		},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Stat        Time" {
		t.Fatalf("header misaligned: %q", lines[0])
	}
	if lines[1] != "PB single   9.81" {
		t.Fatalf("right-aligned cell wrong: %q", lines[1])
	}
	if lines[2] != "Worst     100.00" {
		t.Fatalf("row misaligned: %q", lines[2])
	}
}

func TestFormatTableEmpty(t *testing.T) {
	if lines := formatTable(nil, nil, nil); lines != nil {
		t.Fatalf("expected nil, got %v", lines)
	}
}
