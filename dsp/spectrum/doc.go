// Package spectrum computes one-sided dB magnitude spectra of real signals.
//
// Analyze performs a real FFT of the exact signal length (no zero padding,
// so bin frequencies are k*sampleRate/n) and normalizes magnitudes to the
// spectrum peak, expressing each bin in decibels relative to the loudest
// bin:
//
//	frame, err := spectrum.Analyze(signal, 44100)
//	// frame.DB[k] == 20*log10(|Y[k]| / max|Y|), peak bin exactly 0 dB
//
// The normalization is deliberately unguarded for all-zero input; see
// [Analyze].
package spectrum
