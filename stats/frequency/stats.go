// Package frequency summarizes analyzed dB magnitude frames.
//
// The descriptors are computed over the linear magnitudes recovered from
// the frame's peak-relative dB values, skipping non-finite bins so frames
// containing -Inf floor bins (or the all-zero NaN frame) degrade gracefully.
package frequency

import (
	"math"

	"github.com/cwbudde/algo-synthcheck/dsp/core"
	"github.com/cwbudde/algo-synthcheck/dsp/spectrum"
)

// Stats holds summary descriptors of one spectrum frame.
type Stats struct {
	BinCount int

	PeakBin  int     // index of the loudest bin
	PeakFreq float64 // frequency of the loudest bin, Hz
	PeakDB   float64 // loudest bin level; 0 dB for any non-silent frame

	Centroid float64 // spectral centroid over linear magnitudes, Hz
	Flatness float64 // Wiener entropy, 0 (tonal) .. 1 (flat)
}

// Calculate computes summary descriptors for a frame. A frame with no
// finite bins returns a zero Stats apart from BinCount, with PeakDB NaN.
func Calculate(frame spectrum.Frame) Stats {
	s := Stats{
		BinCount: frame.Bins(),
		PeakBin:  -1,
		PeakDB:   math.NaN(),
	}

	var weighted, total float64
	var logSum float64
	finite := 0

	for k, db := range frame.DB {
		if math.IsNaN(db) || math.IsInf(db, 0) {
			continue
		}

		if s.PeakBin < 0 || db > s.PeakDB {
			s.PeakBin = k
			s.PeakDB = db
		}

		mag := core.DBToLinear(db)
		weighted += frame.Freqs[k] * mag
		total += mag
		logSum += math.Log(mag)
		finite++
	}

	if s.PeakBin < 0 {
		s.PeakBin = 0
		return s
	}

	s.PeakFreq = frame.Freqs[s.PeakBin]

	if total > 0 {
		s.Centroid = weighted / total
		s.Flatness = math.Exp(logSum/float64(finite)) / (total / float64(finite))
	}
	return s
}
