// Package notesweep compares a synthesizer engine's rendered output against
// analytically generated band-limited reference waveforms across a sweep of
// musical pitches.
//
// For every note the comparator synthesizes an ideal waveform with the same
// harmonic truncation the engine uses internally, drives the engine through
// its voice lifecycle (parameter setup, note on, chunked render, note off),
// applies identical edge smoothing to both signals, and analyzes both into
// peak-normalized dB spectra. A sweep assembles the per-note spectra into
// two frequency-by-note matrices with identical shape for side-by-side
// visualization:
//
//	cmp := notesweep.New(eng, core.WithSampleRate(44100))
//	ideal, rendered, err := cmp.CompareSweep(engine.SoftSaw, 0.4, 30, 155)
//
// CompareSingle runs the same pipeline for one note and additionally
// supports a sample cut window for inspecting a sub-range of the rendered
// buffer.
//
// All processing is synchronous and deterministic; the first validation or
// engine failure aborts the call and no partial matrices are returned.
package notesweep
