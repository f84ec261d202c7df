package spectrum

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-synthcheck/dsp/core"
)

// Errors returned by spectrum analysis.
var (
	ErrEmptySignal       = errors.New("spectrum: signal is empty")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be positive")
)

// Frame is a one-sided dB magnitude spectrum: one (frequency, dB) pair per
// FFT bin, frequencies ascending from 0 to Nyquist.
type Frame struct {
	Freqs []float64 // bin center frequencies in Hz
	DB    []float64 // peak-relative magnitudes in dB
}

// Bins returns the number of frequency bins in the frame.
func (f Frame) Bins() int {
	return len(f.DB)
}

// Analyze computes the one-sided real DFT of signal and returns a
// peak-normalized dB magnitude frame with n/2+1 bins for an n-sample input.
// Bin k sits at frequency k*sampleRate/n; the loudest bin is exactly 0 dB
// and every other bin is negative.
//
// An all-zero signal has a zero peak magnitude; normalization then divides
// zero by zero and every bin comes out NaN. This boundary is intentionally
// unguarded and callers must tolerate or filter non-finite values.
func Analyze(signal []float64, sampleRate float64) (Frame, error) {
	if len(signal) == 0 {
		return Frame{}, ErrEmptySignal
	}
	if sampleRate <= 0 {
		return Frame{}, ErrInvalidSampleRate
	}

	n := len(signal)
	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, signal)

	mag := Magnitude(coeffs)

	peak := 0.0
	for _, m := range mag {
		if m > peak {
			peak = m
		}
	}

	frame := Frame{
		Freqs: make([]float64, len(mag)),
		DB:    make([]float64, len(mag)),
	}
	for k := range mag {
		frame.Freqs[k] = float64(k) * sampleRate / float64(n)
		frame.DB[k] = core.LinearToDB(mag[k] / peak)
	}

	return frame, nil
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)
	return out
}
