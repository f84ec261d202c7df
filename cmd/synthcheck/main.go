// Command synthcheck compares the additive reference engine's rendered
// output against ideal band-limited waveforms in the frequency domain.
//
// Usage:
//
//	synthcheck -sweep [flags]
//	synthcheck -single [flags]
//
// Examples:
//
//	synthcheck -sweep -shape softsaw -note-start 30 -note-end 60
//	synthcheck -single -note 69 -shape sine -length 0.4
//	synthcheck -single -note 57 -shape hardsaw -cut-start 4410 -cut-end 13230
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-synthcheck/dsp/core"
	"github.com/cwbudde/algo-synthcheck/dsp/spectrum"
	"github.com/cwbudde/algo-synthcheck/engine"
	"github.com/cwbudde/algo-synthcheck/engine/additive"
	"github.com/cwbudde/algo-synthcheck/measure/notesweep"
	"github.com/cwbudde/algo-synthcheck/stats/frequency"
	"github.com/cwbudde/algo-synthcheck/tuning"
)

func main() {
	sweep := flag.Bool("sweep", false, "sweep notes and compare spectra")
	single := flag.Bool("single", false, "compare a single note's waveform and spectrum")
	shapeName := flag.String("shape", "sine", "waveform shape: sine, softsaw, hardsaw")
	noteStart := flag.Int("note-start", 30, "starting note for sweep (MIDI)")
	noteEnd := flag.Int("note-end", 155, "ending note for sweep, exclusive (MIDI)")
	note := flag.Int("note", 30, "note for single mode (MIDI)")
	length := flag.Float64("length", 0.4, "signal length in seconds")
	cutStart := flag.Int("cut-start", -1, "optional cut window start in samples (single mode)")
	cutEnd := flag.Int("cut-end", -1, "optional cut window end in samples (single mode)")
	smooth := flag.Int("smooth", 500, "edge smoothing ramp length in samples")
	chunkSize := flag.Int("chunk-size", 1024, "chunk size for engine rendering")
	colorMap := flag.String("colormap", "viridis", "colormap identifier for downstream spectral plots")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: synthcheck -sweep|-single [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Compares rendered synthesizer output against ideal band-limited waveforms.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *sweep == *single {
		fmt.Fprintln(os.Stderr, "specify exactly one of -sweep or -single")
		flag.Usage()
		os.Exit(2)
	}

	shape, err := engine.ParseShape(*shapeName)
	if err != nil {
		fatal(err)
	}

	cfg := core.ApplyOptions(
		core.WithChunkSize(*chunkSize),
		core.WithSmoothSamples(*smooth),
	)

	eng, err := additive.New(cfg.SampleRate)
	if err != nil {
		fatal(err)
	}

	cmp := notesweep.New(eng,
		core.WithSampleRate(cfg.SampleRate),
		core.WithChunkSize(cfg.ChunkSize),
		core.WithSmoothSamples(cfg.SmoothSamples),
	)

	if *sweep {
		err = runSweep(cmp, shape, *length, *noteStart, *noteEnd, *colorMap)
	} else {
		err = runSingle(cmp, shape, *length, *note, *cutStart, *cutEnd)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "synthcheck:", err)
	os.Exit(1)
}

func runSweep(cmp *notesweep.Comparator, shape engine.Shape, lengthSec float64, noteStart, noteEnd int, colorMap string) error {
	ideal, rendered, err := cmp.CompareSweep(shape, lengthSec, noteStart, noteEnd)
	if err != nil {
		return err
	}

	cfg := cmp.Config()
	fmt.Printf("shape=%s length=%.3fs sample-rate=%.0f colormap=%s\n",
		shape, lengthSec, cfg.SampleRate, colorMap)
	fmt.Printf("matrices: %d bins x %d notes (ideal and rendered)\n\n",
		ideal.Bins(), ideal.NoteCount())

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "note\tfreq (Hz)\tideal peak (Hz)\trendered peak (Hz)\tideal centroid (Hz)\trendered centroid (Hz)")

	for i, n := range ideal.Notes {
		is := frequency.Calculate(columnFrame(ideal, i))
		rs := frequency.Calculate(columnFrame(rendered, i))
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			n, tuning.FreqForNote(float64(n)), is.PeakFreq, rs.PeakFreq, is.Centroid, rs.Centroid)
	}
	return w.Flush()
}

func runSingle(cmp *notesweep.Comparator, shape engine.Shape, lengthSec float64, note, cutStart, cutEnd int) error {
	var opts []notesweep.SingleOption
	if cutStart >= 0 {
		opts = append(opts, notesweep.WithCutStart(cutStart))
	}
	if cutEnd >= 0 {
		opts = append(opts, notesweep.WithCutEnd(cutEnd))
	}

	res, err := cmp.CompareSingle(shape, lengthSec, note, opts...)
	if err != nil {
		return err
	}

	cfg := cmp.Config()
	fmt.Printf("shape=%s note=%d freq=%.2fHz length=%.3fs sample-rate=%.0f\n",
		shape, note, tuning.FreqForNote(float64(note)), lengthSec, cfg.SampleRate)
	fmt.Printf("signals: %d samples, spectra: %d bins\n\n", len(res.Rendered), res.IdealSpectrum.Bins())

	is := frequency.Calculate(res.IdealSpectrum)
	rs := frequency.Calculate(res.RenderedSpectrum)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "signal\tpeak (Hz)\tpeak (dB)\tcentroid (Hz)\tflatness")
	fmt.Fprintf(w, "ideal\t%.2f\t%.2f\t%.2f\t%.4f\n", is.PeakFreq, is.PeakDB, is.Centroid, is.Flatness)
	fmt.Fprintf(w, "rendered\t%.2f\t%.2f\t%.2f\t%.4f\n", rs.PeakFreq, rs.PeakDB, rs.Centroid, rs.Flatness)
	return w.Flush()
}

// columnFrame reconstructs one note's spectrum frame from a sweep matrix.
func columnFrame(m notesweep.Matrix, col int) spectrum.Frame {
	db := make([]float64, m.Bins())
	for b := range db {
		db[b] = m.DB[b][col]
	}
	return spectrum.Frame{Freqs: m.Freqs, DB: db}
}
