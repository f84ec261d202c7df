package notesweep

import (
	"fmt"

	"github.com/cwbudde/algo-synthcheck/dsp/fade"
	"github.com/cwbudde/algo-synthcheck/dsp/spectrum"
	"github.com/cwbudde/algo-synthcheck/engine"
	"github.com/cwbudde/algo-synthcheck/tuning"
)

// SingleResult bundles the comparison artifacts for one note: the smoothed
// time-domain signals and their analyzed spectra.
type SingleResult struct {
	Ideal    []float64
	Rendered []float64

	IdealSpectrum    spectrum.Frame
	RenderedSpectrum spectrum.Frame
}

// SingleOption configures one CompareSingle call.
type SingleOption func(*singleConfig)

type singleConfig struct {
	cutStart    int
	cutEnd      int
	hasCutStart bool
	hasCutEnd   bool
}

// WithCutStart sets the inclusive start of the rendered-signal sample
// window, e.g. to skip the attack transient. Defaults to the buffer start.
func WithCutStart(sample int) SingleOption {
	return func(c *singleConfig) {
		c.cutStart = sample
		c.hasCutStart = true
	}
}

// WithCutEnd sets the exclusive end of the rendered-signal sample window.
// Defaults to the buffer end.
func WithCutEnd(sample int) SingleOption {
	return func(c *singleConfig) {
		c.cutEnd = sample
		c.hasCutEnd = true
	}
}

// CompareSingle runs the per-note pipeline for a single note and returns
// both signals and both spectra for focused inspection.
//
// The optional cut window [start, end) trims the rendered signal before
// smoothing and analysis; the ideal signal is truncated to the same length
// so the two stay positionally comparable.
func (c *Comparator) CompareSingle(shape engine.Shape, lengthSec float64, note int, opts ...SingleOption) (SingleResult, error) {
	if !shape.Valid() {
		return SingleResult{}, fmt.Errorf("%w: %d", engine.ErrUnknownShape, int(shape))
	}
	if lengthSec <= 0 {
		return SingleResult{}, fmt.Errorf("%w: %f", ErrInvalidLength, lengthSec)
	}

	samples := c.cfg.Samples(lengthSec)

	sc := singleConfig{cutEnd: samples}
	for _, opt := range opts {
		if opt != nil {
			opt(&sc)
		}
	}
	if !sc.hasCutEnd {
		sc.cutEnd = samples
	}
	if sc.cutStart < 0 || sc.cutEnd > samples || sc.cutStart > sc.cutEnd {
		return SingleResult{}, fmt.Errorf("%w: [%d, %d) of %d samples",
			ErrInvalidCutWindow, sc.cutStart, sc.cutEnd, samples)
	}

	f0 := tuning.FreqForNote(float64(note))

	idealSig, err := c.gen.Saw(f0, shape.Harmonics(), samples)
	if err != nil {
		return SingleResult{}, err
	}

	renderedSig, err := c.renderNote(shape, note, samples)
	if err != nil {
		return SingleResult{}, err
	}

	windowLen := sc.cutEnd - sc.cutStart
	rendered := fade.SmoothEdges(renderedSig[sc.cutStart:sc.cutEnd], c.cfg.SmoothSamples)
	ideal := fade.SmoothEdges(idealSig[:windowLen], c.cfg.SmoothSamples)

	idealFrame, err := spectrum.Analyze(ideal, c.cfg.SampleRate)
	if err != nil {
		return SingleResult{}, err
	}

	renderedFrame, err := spectrum.Analyze(rendered, c.cfg.SampleRate)
	if err != nil {
		return SingleResult{}, err
	}

	return SingleResult{
		Ideal:            ideal,
		Rendered:         rendered,
		IdealSpectrum:    idealFrame,
		RenderedSpectrum: renderedFrame,
	}, nil
}
