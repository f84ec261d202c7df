package engine

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownShape is returned for waveform names outside the supported set.
var ErrUnknownShape = errors.New("engine: unsupported shape")

// Shape selects the oscillator waveform.
type Shape int

const (
	Sine Shape = iota
	SoftSaw
	HardSaw

	shapeCount
)

// shapeTable is the single source of truth for shape dispatch. The harmonic
// counts mirror the engine's internal additive-synthesis table; the ideal
// reference must truncate at the same harmonic for the spectral comparison
// to be meaningful. OscValue is the Osc1.Shape parameter setting that
// selects the shape inside the engine.
var shapeTable = [shapeCount]struct {
	name      string
	harmonics int
	oscValue  float64
}{
	Sine:    {"sine", 1, 0.0},
	SoftSaw: {"softsaw", 8, 0.4},
	HardSaw: {"hardsaw", 64, 0.7},
}

// ParseShape resolves a waveform name. Matching is case-insensitive and
// ignores surrounding whitespace.
func ParseShape(s string) (Shape, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for sh := Shape(0); sh < shapeCount; sh++ {
		if shapeTable[sh].name == name {
			return sh, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	return s >= 0 && s < shapeCount
}

// String returns the canonical lowercase shape name.
func (s Shape) String() string {
	if !s.Valid() {
		return "unknown"
	}
	return shapeTable[s].name
}

// Harmonics returns the number of additive harmonics the engine uses for
// this shape. The ideal waveform generator must use the same count.
func (s Shape) Harmonics() int {
	if !s.Valid() {
		return 0
	}
	return shapeTable[s].harmonics
}

// OscValue returns the Osc1.Shape parameter value selecting this shape.
func (s Shape) OscValue() float64 {
	if !s.Valid() {
		return 0
	}
	return shapeTable[s].oscValue
}

// ShapeForOscValue returns the shape whose parameter value is nearest to v.
// This is the engine-side inverse of OscValue.
func ShapeForOscValue(v float64) Shape {
	best := Sine
	bestDist := math.Abs(v - shapeTable[Sine].oscValue)

	for sh := Shape(1); sh < shapeCount; sh++ {
		d := math.Abs(v - shapeTable[sh].oscValue)
		if d < bestDist {
			best = sh
			bestDist = d
		}
	}
	return best
}
