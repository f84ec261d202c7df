// Package tuning converts between MIDI note numbers and fundamental
// frequencies under twelve-tone equal temperament, anchored at A4
// (note 69) = 440 Hz.
package tuning

import "math"

const (
	// NoteA4 is the MIDI note number of concert A.
	NoteA4 = 69

	// FreqA4 is the reference tuning frequency in Hz.
	FreqA4 = 440.0

	notesPerOctave = 12
)

// FreqForNote returns the equal-tempered fundamental frequency in Hz for a
// MIDI note number. The function is total and strictly increasing; fractional
// note numbers select pitches between semitones.
func FreqForNote(note float64) float64 {
	return FreqA4 * math.Exp2((note-NoteA4)/notesPerOctave)
}

// NoteForFreq returns the (possibly fractional) MIDI note number whose
// equal-tempered pitch is freq Hz. It is the inverse of FreqForNote for
// positive frequencies.
func NoteForFreq(freq float64) float64 {
	return NoteA4 + notesPerOctave*math.Log2(freq/FreqA4)
}
