package frequency

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-synthcheck/dsp/spectrum"
	"github.com/cwbudde/algo-synthcheck/internal/testutil"
)

func TestCalculateSine(t *testing.T) {
	// 1 kHz at 8 kHz over one second lands exactly on bin 1000.
	frame, err := spectrum.Analyze(testutil.DeterministicSine(1000, 8000, 1, 8000), 8000)
	if err != nil {
		t.Fatal(err)
	}

	s := Calculate(frame)

	if s.BinCount != 4001 {
		t.Errorf("BinCount = %d, want 4001", s.BinCount)
	}
	if s.PeakBin != 1000 {
		t.Errorf("PeakBin = %d, want 1000", s.PeakBin)
	}
	if s.PeakFreq != 1000 {
		t.Errorf("PeakFreq = %v, want 1000", s.PeakFreq)
	}
	if s.PeakDB != 0 {
		t.Errorf("PeakDB = %v, want 0", s.PeakDB)
	}
	if math.Abs(s.Centroid-1000) > 1 {
		t.Errorf("Centroid = %v, want near 1000", s.Centroid)
	}
	if s.Flatness > 0.01 {
		t.Errorf("Flatness = %v, want near 0 for a pure tone", s.Flatness)
	}
}

func TestCalculateFlatFrame(t *testing.T) {
	frame := spectrum.Frame{
		Freqs: []float64{0, 100, 200, 300},
		DB:    []float64{0, 0, 0, 0},
	}

	s := Calculate(frame)

	if s.PeakBin != 0 {
		t.Errorf("PeakBin = %d, want 0 (first of equals)", s.PeakBin)
	}
	if s.Centroid != 150 {
		t.Errorf("Centroid = %v, want 150", s.Centroid)
	}
	if s.Flatness != 1 {
		t.Errorf("Flatness = %v, want 1 for a flat frame", s.Flatness)
	}
}

func TestCalculateSkipsNonFiniteBins(t *testing.T) {
	frame := spectrum.Frame{
		Freqs: []float64{0, 100, 200, 300},
		DB:    []float64{math.Inf(-1), math.NaN(), 0, -20},
	}

	s := Calculate(frame)

	if s.PeakBin != 2 || s.PeakFreq != 200 || s.PeakDB != 0 {
		t.Errorf("peak = bin %d, %v Hz, %v dB, want bin 2, 200 Hz, 0 dB",
			s.PeakBin, s.PeakFreq, s.PeakDB)
	}

	// Centroid over the two finite bins: (200*1 + 300*0.1) / 1.1.
	want := 230.0 / 1.1
	if math.Abs(s.Centroid-want) > 1e-9 {
		t.Errorf("Centroid = %v, want %v", s.Centroid, want)
	}
}

func TestCalculateAllNonFinite(t *testing.T) {
	frame := spectrum.Frame{
		Freqs: []float64{0, 100},
		DB:    []float64{math.NaN(), math.NaN()},
	}

	s := Calculate(frame)

	if s.BinCount != 2 {
		t.Errorf("BinCount = %d, want 2", s.BinCount)
	}
	if !math.IsNaN(s.PeakDB) {
		t.Errorf("PeakDB = %v, want NaN", s.PeakDB)
	}
	if s.Centroid != 0 || s.Flatness != 0 {
		t.Errorf("Centroid, Flatness = %v, %v, want 0, 0", s.Centroid, s.Flatness)
	}
}
