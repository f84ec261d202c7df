// Package additive implements the engine contract with a band-limited
// wavetable synthesizer.
//
// Each voice plays one prerendered single-cycle table built for the active
// shape and fundamental: harmonics of the sawtooth series are placed into
// FFT bins (dropping everything at or above Nyquist) and transformed back
// to the time domain, so playback is alias-free for the note it was built
// for. A simple linear-segment ADSR shapes the amplitude.
package additive

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-synthcheck/dsp/synth"
	"github.com/cwbudde/algo-synthcheck/engine"
	"github.com/cwbudde/algo-synthcheck/tuning"
)

// tableSize is the wavetable length in samples. Power of two for the FFT
// plan; 4096 leaves headroom for the 64-harmonic hard saw at any playable
// fundamental.
const tableSize = 4096

// Errors returned by the additive engine.
var (
	ErrInvalidSampleRate  = errors.New("additive: sample rate must be positive")
	ErrInvalidNote        = errors.New("additive: note must be >= 0")
	ErrInvalidChunkSize   = errors.New("additive: chunk size must be positive")
	ErrInvalidSampleCount = errors.New("additive: total samples must be >= 0")
)

// Engine is a single-voice additive wavetable synthesizer implementing
// [engine.Engine].
type Engine struct {
	sampleRate float64

	osc1Enabled bool
	osc1Shape   engine.Shape
	osc2Enabled bool
	filt1       bool
	filt2       bool

	adsr adsr

	voice *voice
}

// New creates an engine at the given sample rate with all oscillators
// disabled and default envelope settings.
func New(sampleRate float64) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}

	return &Engine{
		sampleRate: sampleRate,
		osc1Shape:  engine.Sine,
		adsr: adsr{
			attack:  0.01,
			decay:   0.02,
			sustain: 0.80,
			release: 0.01,
		},
	}, nil
}

// UpdateParam mutates one engine parameter. Unknown parameters are
// rejected; filter enables are accepted but inert (this engine has no
// filter section).
func (e *Engine) UpdateParam(p engine.Param, value float64) error {
	switch p {
	case engine.Osc1Enabled:
		e.osc1Enabled = value != 0
	case engine.Osc1Shape:
		e.osc1Shape = engine.ShapeForOscValue(value)
	case engine.Osc2Enabled:
		e.osc2Enabled = value != 0
	case engine.Filt1Enable:
		e.filt1 = value != 0
	case engine.Filt2Enable:
		e.filt2 = value != 0
	case engine.AmpEnvAttack:
		e.adsr.attack = value
	case engine.AmpEnvDecay:
		e.adsr.decay = value
	case engine.AmpEnvSustain:
		e.adsr.sustain = value
	case engine.AmpEnvRelease:
		e.adsr.release = value
	default:
		return fmt.Errorf("%w: %d", engine.ErrUnknownParam, int(p))
	}
	return nil
}

// NoteOn starts the voice for a note, replacing any active voice. The
// wavetable is built here so it is band-limited for this exact fundamental.
//
// Notes above the MIDI range are accepted so that wide comparison sweeps
// can run to completion; a note whose fundamental reaches Nyquist has no
// representable harmonics and plays silence.
func (e *Engine) NoteOn(note int) error {
	if note < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNote, note)
	}

	f0 := tuning.FreqForNote(float64(note))

	table, err := buildTable(e.osc1Shape, f0, e.sampleRate)
	if err != nil {
		return err
	}

	env := newEnv(e.adsr, e.sampleRate)
	env.start()

	e.voice = &voice{
		note:      note,
		table:     table,
		phaseStep: f0 * tableSize / e.sampleRate,
		env:       env,
	}
	return nil
}

// NoteOff releases the voice for a note. Releasing a note that is not
// playing is a no-op.
func (e *Engine) NoteOff(note int) error {
	if note < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidNote, note)
	}

	if e.voice != nil && e.voice.note == note {
		e.voice.env.release()
	}
	return nil
}

// Render produces totalSamples of stereo audio, processed in blocks of
// chunkSize samples. Both channels carry the same mono voice output.
func (e *Engine) Render(chunkSize, totalSamples int, shape engine.Shape) (left, right []float64, err error) {
	if chunkSize <= 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidChunkSize, chunkSize)
	}
	if totalSamples < 0 {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidSampleCount, totalSamples)
	}
	if !shape.Valid() {
		return nil, nil, fmt.Errorf("%w: %d", engine.ErrUnknownShape, int(shape))
	}

	left = make([]float64, totalSamples)
	right = make([]float64, totalSamples)

	for start := 0; start < totalSamples; start += chunkSize {
		end := start + chunkSize
		if end > totalSamples {
			end = totalSamples
		}
		e.renderChunk(left[start:end], right[start:end])
	}

	return left, right, nil
}

func (e *Engine) renderChunk(left, right []float64) {
	if !e.osc1Enabled || e.voice == nil {
		return
	}

	v := e.voice
	for i := range left {
		sample := v.sample() * v.env.next()
		left[i] = sample
		right[i] = sample
	}
}

// voice plays one wavetable with a phase accumulator measured in table
// positions.
type voice struct {
	note      int
	table     []float64
	phase     float64
	phaseStep float64
	env       *env
}

// sample reads the table at the current phase with linear interpolation
// and advances the accumulator.
func (v *voice) sample() float64 {
	idx := int(v.phase)
	frac := v.phase - float64(idx)

	next := idx + 1
	if next >= len(v.table) {
		next = 0
	}

	out := v.table[idx] + frac*(v.table[next]-v.table[idx])

	// phaseStep exceeds the table length for fundamentals above the
	// sample rate, so a single subtraction is not enough.
	v.phase += v.phaseStep
	if v.phase >= float64(len(v.table)) {
		v.phase = math.Mod(v.phase, float64(len(v.table)))
	}
	return out
}

// buildTable renders one band-limited cycle of the shape's harmonic series
// for fundamental f0. Harmonic h of the sawtooth series becomes a pure sine
// in FFT bin h; harmonics at or above Nyquist for this fundamental are
// dropped, exactly mirroring the truncation the ideal reference applies.
func buildTable(shape engine.Shape, f0, sampleRate float64) ([]float64, error) {
	nyquist := sampleRate / 2

	bins := make([]complex128, tableSize)
	for _, c := range synth.Components(f0, shape.Harmonics()) {
		if c.Freq >= nyquist {
			continue
		}

		h := int(c.Divisor)
		if h >= tableSize/2 {
			break
		}

		// sin(2*pi*h*x/N)*amp/div unpacks to a conjugate bin pair:
		// X[h] = -i*N*amp/(2*div), X[N-h] = +i*N*amp/(2*div).
		mag := float64(tableSize) * c.Amp / (2 * c.Divisor)
		bins[h] = complex(0, -mag)
		bins[tableSize-h] = complex(0, mag)
	}

	plan, err := algofft.NewPlan64(tableSize)
	if err != nil {
		return nil, fmt.Errorf("additive: failed to create FFT plan: %w", err)
	}

	cycle := make([]complex128, tableSize)
	if err := plan.Inverse(cycle, bins); err != nil {
		return nil, fmt.Errorf("additive: inverse FFT failed: %w", err)
	}

	table := make([]float64, tableSize)
	for i := range table {
		table[i] = real(cycle[i])
	}
	return table, nil
}
