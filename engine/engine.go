// Package engine defines the boundary to the synthesizer under test.
//
// The harness treats the engine as an opaque render/parameter service and
// drives it through a strict voice lifecycle: parameter setup precedes
// NoteOn, rendering happens in fixed-size chunks while the note is held,
// and NoteOff ends the voice. Parameters are addressed by a closed,
// compile-time-checked identifier set rather than textual paths.
package engine

// Engine is an opaque synthesizer under test.
//
// Implementations are free to fail any call; the harness does not retry,
// and a failure aborts the invocation that triggered it.
type Engine interface {
	// UpdateParam mutates one engine parameter.
	UpdateParam(p Param, value float64) error

	// NoteOn starts a voice for the MIDI note.
	NoteOn(note int) error

	// NoteOff releases the voice for the MIDI note.
	NoteOff(note int) error

	// Render produces totalSamples of stereo audio for the given shape,
	// internally processed in blocks of chunkSize samples.
	Render(chunkSize, totalSamples int, shape Shape) (left, right []float64, err error)
}

// Setup applies the steady-state parameter convention used before every
// render: oscillator 1 enabled with the given shape, oscillator 2 and both
// filters disabled, and the amplitude envelope set to near-instant attack
// with full sustain and long decay/release, so the rendered buffer is
// steady-state rather than shaped by envelope transients.
func Setup(e Engine, shape Shape) error {
	steps := []struct {
		param Param
		value float64
	}{
		{Osc1Enabled, 1.0},
		{Osc1Shape, shape.OscValue()},
		{Osc2Enabled, 0.0},
		{Filt1Enable, 0.0},
		{Filt2Enable, 0.0},
		{AmpEnvAttack, 0.1},
		{AmpEnvSustain, 1.0},
		{AmpEnvDecay, 1.0},
		{AmpEnvRelease, 1.0},
	}

	for _, s := range steps {
		if err := e.UpdateParam(s.param, s.value); err != nil {
			return err
		}
	}
	return nil
}
