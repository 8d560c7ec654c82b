// Package scramble builds randomized cube move sequences.
package scramble

import (
	"math/rand"
	"strings"
	"time"
)

// DefaultLength is the conventional scramble length for 3x3.
const DefaultLength = 20

// maxResample bounds the reject-and-resample loop per move so generation
// terminates even under an unlucky random sequence.
const maxResample = 100

var faces = []string{"U", "D", "L", "R", "F", "B"}

// axis groups opposite faces: U/D, L/R, F/B.
var axisOf = map[string]int{
	"U": 0, "D": 0,
	"L": 1, "R": 1,
	"F": 2, "B": 2,
}

var modifiers = []string{"", "'", "2"}

// Generator produces randomized scramble sequences.
type Generator struct {
	rnd    *rand.Rand
	length int
}

// New returns a Generator seeded with the current time.
func New(length int) *Generator {
	return NewWithSeed(length, time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a fixed seed, for deterministic output.
func NewWithSeed(length int, seed int64) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed)), length: length}
}

// Generate returns a space-separated scramble of the configured length.
// Each move is a face turn with an independently chosen modifier; a move
// never repeats the previous face and never shares an axis with both of
// the two preceding moves.
func (g *Generator) Generate() string {
	moves := make([]string, 0, g.length)
	prev, prev2 := "", ""
	for i := 0; i < g.length; i++ {
		face := g.pickFace(prev, prev2)
		moves = append(moves, face+modifiers[g.rnd.Intn(len(modifiers))])
		prev2 = prev
		prev = face
	}
	return strings.Join(moves, " ")
}

func (g *Generator) pickFace(prev, prev2 string) string {
	for attempt := 0; attempt < maxResample; attempt++ {
		face := faces[g.rnd.Intn(len(faces))]
		if validFace(face, prev, prev2) {
			return face
		}
	}
	// Resample budget exhausted; fall back to a fixed-order scan. At least
	// four faces are always valid, so this cannot fail.
	for _, face := range faces {
		if validFace(face, prev, prev2) {
			return face
		}
	}
	return faces[0]
}

// validFace rejects a repeat of the previous face (U U) and a third
// consecutive move on one axis (R L R), which is an opposite-face pair
// with no intervening different-axis move.
func validFace(face, prev, prev2 string) bool {
	if prev == "" {
		return true
	}
	if face == prev {
		return false
	}
	if prev2 == "" {
		return true
	}
	return !(axisOf[face] == axisOf[prev] && axisOf[face] == axisOf[prev2])
}
