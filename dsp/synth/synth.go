// Package synth generates band-limited reference waveforms by additive
// harmonic summation.
//
// The generated signals serve as analytic ground truth for spectral
// comparison against a rendered synthesizer output: harmonics at or above
// the cutoff frequency are dropped entirely, so the result is alias-free
// by construction.
package synth

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-synthcheck/dsp/core"
)

// Errors returned by waveform generation.
var (
	ErrInvalidFrequency   = errors.New("synth: fundamental frequency must be positive")
	ErrInvalidSampleRate  = errors.New("synth: sample rate must be positive")
	ErrInvalidSampleCount = errors.New("synth: sample count must be >= 0")
)

// Component is one term of an additive-synthesis sum. Amp alternates +1/-1
// by harmonic parity and Divisor equals the 1-based harmonic index, giving
// the canonical sawtooth series sin(2*pi*h*f0*t)/h.
type Component struct {
	Freq    float64
	Amp     float64
	Divisor float64
}

// Components returns the harmonic series for a sawtooth at fundamental f0.
// Harmonic 1 has amplitude +1; even harmonics are negated.
func Components(f0 float64, harmonics int) []Component {
	if harmonics < 0 {
		harmonics = 0
	}

	out := make([]Component, 0, harmonics)
	for h := 1; h <= harmonics; h++ {
		amp := 1.0
		if h%2 == 0 {
			amp = -1.0
		}
		out = append(out, Component{
			Freq:    float64(h) * f0,
			Amp:     amp,
			Divisor: float64(h),
		})
	}
	return out
}

// Generator creates deterministic reference waveforms from a shared
// configuration.
type Generator struct {
	cfg core.Config
}

// NewGenerator creates a configured waveform generator.
func NewGenerator(opts ...core.Option) *Generator {
	return &Generator{cfg: core.ApplyOptions(opts...)}
}

// Config returns the generator configuration.
func (g *Generator) Config() core.Config {
	return g.cfg
}

// SawOption configures a single Saw call.
type SawOption func(*sawConfig)

type sawConfig struct {
	cutoff float64
}

// WithCutoff overrides the anti-aliasing cutoff frequency in Hz. Harmonics
// at or above the cutoff are excluded from the sum. The default cutoff is
// the Nyquist frequency.
func WithCutoff(freqHz float64) SawOption {
	return func(c *sawConfig) {
		if freqHz > 0 {
			c.cutoff = freqHz
		}
	}
}

// Saw renders samples of a band-limited sawtooth at fundamental f0 with the
// given number of harmonics. The output is unnormalized: peak amplitude
// depends on which harmonics survive the cutoff.
func (g *Generator) Saw(f0 float64, harmonics, samples int, opts ...SawOption) ([]float64, error) {
	if g.cfg.SampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if f0 <= 0 {
		return nil, ErrInvalidFrequency
	}
	if samples < 0 {
		return nil, ErrInvalidSampleCount
	}

	sc := sawConfig{cutoff: g.cfg.Nyquist()}
	for _, opt := range opts {
		if opt != nil {
			opt(&sc)
		}
	}

	kept := make([]Component, 0, harmonics)
	for _, c := range Components(f0, harmonics) {
		if c.Freq < sc.cutoff {
			kept = append(kept, c)
		}
	}

	out := make([]float64, samples)
	dt := 1.0 / g.cfg.SampleRate

	for i := range out {
		t := float64(i) * dt

		v := 0.0
		for _, c := range kept {
			v += c.Amp * math.Sin(2*math.Pi*c.Freq*t) / c.Divisor
		}
		out[i] = v
	}

	return out, nil
}

// Sine renders a pure sine at freqHz. It is the single-harmonic case of Saw:
// harmonic 1 carries amplitude +1 and divisor 1.
func (g *Generator) Sine(freqHz float64, samples int) ([]float64, error) {
	return g.Saw(freqHz, 1, samples)
}
