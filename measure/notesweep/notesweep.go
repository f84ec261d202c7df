package notesweep

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-synthcheck/dsp/core"
	"github.com/cwbudde/algo-synthcheck/dsp/fade"
	"github.com/cwbudde/algo-synthcheck/dsp/spectrum"
	"github.com/cwbudde/algo-synthcheck/dsp/synth"
	"github.com/cwbudde/algo-synthcheck/engine"
	"github.com/cwbudde/algo-synthcheck/tuning"
)

// Errors returned by sweep comparison.
var (
	ErrInvalidLength    = errors.New("notesweep: length must be positive")
	ErrNoteOrder        = errors.New("notesweep: note start must be <= note end")
	ErrInvalidCutWindow = errors.New("notesweep: cut window out of range")
)

// Comparator drives the ideal generator and the engine under test through
// identical smoothing and spectral analysis, producing comparable results.
//
// A Comparator owns no shared mutable state across calls beyond the engine
// it wraps; sweeps run strictly sequentially and abort on the first error
// without returning partial matrices.
type Comparator struct {
	cfg core.Config
	eng engine.Engine
	gen *synth.Generator
}

// New creates a comparator over the given engine.
func New(eng engine.Engine, opts ...core.Option) *Comparator {
	cfg := core.ApplyOptions(opts...)
	return &Comparator{
		cfg: cfg,
		eng: eng,
		gen: synth.NewGenerator(core.WithSampleRate(cfg.SampleRate)),
	}
}

// Config returns the comparator configuration.
func (c *Comparator) Config() core.Config {
	return c.cfg
}

// Matrix is a frequency-by-note grid of dB magnitudes: one analyzed
// spectrum column per swept note, transposed so DB[bin][noteIndex] selects
// a frequency row across the sweep.
type Matrix struct {
	Freqs []float64   // row bin frequencies in Hz, ascending
	Notes []int       // column note numbers, ascending
	DB    [][]float64 // indexed [bin][noteIndex]
}

// Bins returns the number of frequency rows.
func (m Matrix) Bins() int {
	return len(m.DB)
}

// NoteCount returns the number of note columns.
func (m Matrix) NoteCount() int {
	return len(m.Notes)
}

// CompareSweep renders every note in [noteStart, noteEnd) through both the
// ideal generator and the engine, and returns the two resulting matrices.
// Both matrices have identical shape and note order, so position (bin, note)
// is directly comparable between them.
//
// The shape is validated before any synthesis or rendering; an unsupported
// shape, or any downstream failure, aborts the sweep with no partial result.
func (c *Comparator) CompareSweep(shape engine.Shape, lengthSec float64, noteStart, noteEnd int) (ideal, rendered Matrix, err error) {
	if !shape.Valid() {
		return Matrix{}, Matrix{}, fmt.Errorf("%w: %d", engine.ErrUnknownShape, int(shape))
	}
	if lengthSec <= 0 {
		return Matrix{}, Matrix{}, fmt.Errorf("%w: %f", ErrInvalidLength, lengthSec)
	}
	if noteEnd < noteStart {
		return Matrix{}, Matrix{}, fmt.Errorf("%w: [%d, %d)", ErrNoteOrder, noteStart, noteEnd)
	}

	samples := c.cfg.Samples(lengthSec)

	var notes []int
	var idealCols, renderedCols []spectrum.Frame

	for note := noteStart; note < noteEnd; note++ {
		idealFrame, renderedFrame, err := c.compareNote(shape, note, samples)
		if err != nil {
			return Matrix{}, Matrix{}, fmt.Errorf("notesweep: note %d: %w", note, err)
		}

		notes = append(notes, note)
		idealCols = append(idealCols, idealFrame)
		renderedCols = append(renderedCols, renderedFrame)
	}

	return newMatrix(notes, idealCols), newMatrix(notes, renderedCols), nil
}

// compareNote produces the analyzed ideal and rendered spectra for one note.
func (c *Comparator) compareNote(shape engine.Shape, note, samples int) (idealFrame, renderedFrame spectrum.Frame, err error) {
	f0 := tuning.FreqForNote(float64(note))

	idealSig, err := c.gen.Saw(f0, shape.Harmonics(), samples)
	if err != nil {
		return spectrum.Frame{}, spectrum.Frame{}, err
	}

	renderedSig, err := c.renderNote(shape, note, samples)
	if err != nil {
		return spectrum.Frame{}, spectrum.Frame{}, err
	}

	idealFrame, err = c.analyze(idealSig)
	if err != nil {
		return spectrum.Frame{}, spectrum.Frame{}, err
	}

	renderedFrame, err = c.analyze(renderedSig)
	if err != nil {
		return spectrum.Frame{}, spectrum.Frame{}, err
	}

	return idealFrame, renderedFrame, nil
}

// renderNote drives the engine through the full voice lifecycle and returns
// the left channel.
func (c *Comparator) renderNote(shape engine.Shape, note, samples int) ([]float64, error) {
	if err := engine.Setup(c.eng, shape); err != nil {
		return nil, err
	}
	if err := c.eng.NoteOn(note); err != nil {
		return nil, err
	}

	left, _, err := c.eng.Render(c.cfg.ChunkSize, samples, shape)
	if err != nil {
		return nil, err
	}

	if err := c.eng.NoteOff(note); err != nil {
		return nil, err
	}
	return left, nil
}

// analyze applies the shared smoothing and spectral analysis policy.
func (c *Comparator) analyze(signal []float64) (spectrum.Frame, error) {
	return spectrum.Analyze(fade.SmoothEdges(signal, c.cfg.SmoothSamples), c.cfg.SampleRate)
}

// newMatrix transposes per-note spectrum columns into a bin-major matrix.
func newMatrix(notes []int, cols []spectrum.Frame) Matrix {
	m := Matrix{Notes: notes}
	if len(cols) == 0 {
		return m
	}

	m.Freqs = cols[0].Freqs
	m.DB = make([][]float64, cols[0].Bins())

	for b := range m.DB {
		row := make([]float64, len(cols))
		for n, col := range cols {
			row[n] = col.DB[b]
		}
		m.DB[b] = row
	}
	return m
}
