// Package fade applies linear edge ramps to suppress spectral leakage
// before FFT analysis.
//
// A signal whose first or last sample is nonzero has an abrupt edge that
// smears energy across frequency bins. SmoothEdges tapers such edges with
// short linear ramps while leaving the interior bit-for-bit unchanged.
package fade

import (
	"github.com/cwbudde/algo-vecmath"
)

// SmoothEdges returns a copy of signal with linear fade ramps applied at
// the buffer boundaries.
//
// The rising ramp (0 to 1 over ramp samples) is applied only when the first
// sample is nonzero; a leading sample of exactly zero means the edge is
// already silent and is left alone. The falling ramp is gated symmetrically
// on the last sample. A ramp of zero (or negative) length is the identity
// and returns the input slice unchanged.
//
// If ramp exceeds half the signal length, the two ramp windows overlap and
// both ramps are applied in sequence over the shared region. A ramp longer
// than the whole signal is clamped to the signal length.
func SmoothEdges(signal []float64, ramp int) []float64 {
	if ramp <= 0 || len(signal) == 0 {
		return signal
	}
	if ramp > len(signal) {
		ramp = len(signal)
	}

	out := make([]float64, len(signal))
	copy(out, signal)

	if out[0] != 0 {
		vecmath.MulBlockInPlace(out[:ramp], rising(ramp))
	}

	if out[len(out)-1] != 0 {
		vecmath.MulBlockInPlace(out[len(out)-ramp:], falling(ramp))
	}

	return out
}

// rising returns n evenly spaced values from 0 to 1 inclusive.
// For n == 1 the single value is 0.
func rising(n int) []float64 {
	out := make([]float64, n)

	var step float64
	if n > 1 {
		step = 1 / float64(n-1)
	}

	for i := range out {
		out[i] = float64(i) * step
	}
	return out
}

// falling returns n evenly spaced values from 1 down to 0 inclusive.
// For n == 1 the single value is 1.
func falling(n int) []float64 {
	out := rising(n)
	for i := range out {
		out[i] = 1 - out[i]
	}
	return out
}
