package scramble

import (
	"strings"
	"testing"
)

func TestGenerateLengthAndNotation(t *testing.T) {
	gen := NewWithSeed(DefaultLength, 1)
	seq := gen.Generate()
	moves := strings.Fields(seq)
	if len(moves) != DefaultLength {
		t.Fatalf("expected %d moves, got %d (%q)", DefaultLength, len(moves), seq)
	}
	for _, m := range moves {
		face := m[:1]
		if _, ok := axisOf[face]; !ok {
			t.Fatalf("unknown face in move %q", m)
		}
		suffix := m[1:]
		if suffix != "" && suffix != "'" && suffix != "2" {
			t.Fatalf("unknown modifier in move %q", m)
		}
	}
}

func TestGenerateAdjacencyRule(t *testing.T) {
	gen := NewWithSeed(DefaultLength, 42)
	for i := 0; i < 10000; i++ {
		moves := strings.Fields(gen.Generate())
		for j := 1; j < len(moves); j++ {
			cur := moves[j][:1]
			prev := moves[j-1][:1]
			if cur == prev {
				t.Fatalf("consecutive moves on the same face: %v", moves)
			}
			if j >= 2 {
				prev2 := moves[j-2][:1]
				if axisOf[cur] == axisOf[prev] && axisOf[cur] == axisOf[prev2] {
					t.Fatalf("three consecutive moves on one axis: %v", moves)
				}
			}
		}
	}
}

func TestGenerateDeterministicWithFixedSeed(t *testing.T) {
	a := NewWithSeed(DefaultLength, 7)
	b := NewWithSeed(DefaultLength, 7)
	for i := 0; i < 10000; i++ {
		sa, sb := a.Generate(), b.Generate()
		if sa != sb {
			t.Fatalf("iteration %d diverged: %q vs %q", i, sa, sb)
		}
	}
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	a := NewWithSeed(DefaultLength, 1)
	b := NewWithSeed(DefaultLength, 2)
	if a.Generate() == b.Generate() {
		t.Fatalf("different seeds produced identical scrambles")
	}
}

func TestLengthFallback(t *testing.T) {
	gen := NewWithSeed(0, 1)
	if got := len(strings.Fields(gen.Generate())); got != DefaultLength {
		t.Fatalf("expected default length %d, got %d", DefaultLength, got)
	}
}
