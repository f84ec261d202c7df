package additive

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synthcheck/dsp/spectrum"
	"github.com/cwbudde/algo-synthcheck/engine"
	"github.com/cwbudde/algo-synthcheck/internal/testutil"
	"github.com/cwbudde/algo-synthcheck/tuning"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("New(0) error = %v, want %v", err, ErrInvalidSampleRate)
	}
	if _, err := New(-44100); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("New(-44100) error = %v, want %v", err, ErrInvalidSampleRate)
	}
	if _, err := New(44100); err != nil {
		t.Errorf("New(44100) error = %v", err)
	}
}

func TestUpdateParamUnknown(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}

	if err := eng.UpdateParam(engine.Param(99), 1); !errors.Is(err, engine.ErrUnknownParam) {
		t.Errorf("UpdateParam(99) error = %v, want %v", err, engine.ErrUnknownParam)
	}
}

func TestNoteRangeValidation(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}

	for _, note := range []int{-1, -128} {
		if err := eng.NoteOn(note); !errors.Is(err, ErrInvalidNote) {
			t.Errorf("NoteOn(%d) error = %v, want %v", note, err, ErrInvalidNote)
		}
		if err := eng.NoteOff(note); !errors.Is(err, ErrInvalidNote) {
			t.Errorf("NoteOff(%d) error = %v, want %v", note, err, ErrInvalidNote)
		}
	}
}

func TestNotesAboveMidiRangeRender(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Setup(eng, engine.HardSaw); err != nil {
		t.Fatal(err)
	}

	// Note 130 (~16.7 kHz) still has a fundamental below Nyquist.
	if err := eng.NoteOn(130); err != nil {
		t.Fatal(err)
	}
	left, _, err := eng.Render(512, 2048, engine.HardSaw)
	if err != nil {
		t.Fatal(err)
	}
	audible := false
	for _, v := range left {
		if v != 0 {
			audible = true
			break
		}
	}
	if !audible {
		t.Error("note 130 rendered silence, want audible output")
	}

	// Note 154 (~59.7 kHz) has no harmonics below Nyquist: the table is
	// empty and the voice plays silence, but the sweep must not abort.
	if err := eng.NoteOn(154); err != nil {
		t.Fatal(err)
	}
	left, _, err = eng.Render(512, 2048, engine.HardSaw)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range left {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0 above Nyquist", i, v)
		}
	}
}

func TestRenderValidation(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := eng.Render(0, 100, engine.Sine); !errors.Is(err, ErrInvalidChunkSize) {
		t.Errorf("zero chunk error = %v, want %v", err, ErrInvalidChunkSize)
	}
	if _, _, err := eng.Render(1024, -1, engine.Sine); !errors.Is(err, ErrInvalidSampleCount) {
		t.Errorf("negative samples error = %v, want %v", err, ErrInvalidSampleCount)
	}
	if _, _, err := eng.Render(1024, 100, engine.Shape(99)); !errors.Is(err, engine.ErrUnknownShape) {
		t.Errorf("invalid shape error = %v, want %v", err, engine.ErrUnknownShape)
	}
}

func TestRenderLength(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}

	// Chunk size not dividing the total exercises the final short chunk.
	left, right, err := eng.Render(1024, 17640, engine.Sine)
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 17640 || len(right) != 17640 {
		t.Errorf("lengths = %d, %d, want 17640", len(left), len(right))
	}
}

func TestRenderSilentWithoutNote(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Setup(eng, engine.Sine); err != nil {
		t.Fatal(err)
	}

	left, _, err := eng.Render(512, 2048, engine.Sine)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range left {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0 with no active voice", i, v)
		}
	}
}

func TestRenderSilentWhenOscDisabled(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}

	// No Setup: oscillator 1 stays disabled.
	if err := eng.NoteOn(69); err != nil {
		t.Fatal(err)
	}

	left, _, err := eng.Render(512, 2048, engine.Sine)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range left {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0 with oscillator disabled", i, v)
		}
	}
}

func TestRenderedSineMatchesIdealAfterAttack(t *testing.T) {
	const (
		rate = 44100.0
		note = 69
		n    = 9000
	)

	eng, err := New(rate)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Setup(eng, engine.Sine); err != nil {
		t.Fatal(err)
	}
	if err := eng.NoteOn(note); err != nil {
		t.Fatal(err)
	}

	left, right, err := eng.Render(1024, n, engine.Sine)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, left, right, 0)

	// Setup's 0.1 s attack completes after 4410 samples; past that the
	// envelope holds at full sustain and the voice plays the raw table.
	want := testutil.DeterministicSine(tuning.FreqForNote(note), rate, 1, n)
	const settled = 5000
	testutil.RequireSliceNearlyEqual(t, left[settled:], want[settled:], 1e-4)
}

func TestRenderedSpectrumPeaksAtFundamental(t *testing.T) {
	const (
		rate = 44100.0
		note = 69
		n    = 16384
	)

	eng, err := New(rate)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Setup(eng, engine.SoftSaw); err != nil {
		t.Fatal(err)
	}
	if err := eng.NoteOn(note); err != nil {
		t.Fatal(err)
	}

	left, _, err := eng.Render(1024, n, engine.SoftSaw)
	if err != nil {
		t.Fatal(err)
	}
	if err := eng.NoteOff(note); err != nil {
		t.Fatal(err)
	}

	frame, err := spectrum.Analyze(left, rate)
	if err != nil {
		t.Fatal(err)
	}

	peak := testutil.PeakBin(frame.DB)
	f0 := tuning.FreqForNote(note)
	binWidth := rate / float64(n)
	if math.Abs(frame.Freqs[peak]-f0) > 2*binWidth {
		t.Errorf("spectral peak at %.2f Hz, want within %.2f Hz of %.2f",
			frame.Freqs[peak], 2*binWidth, f0)
	}
}

func TestNoteOffForInactiveNoteIsNoOp(t *testing.T) {
	eng, err := New(44100)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Setup(eng, engine.Sine); err != nil {
		t.Fatal(err)
	}
	if err := eng.NoteOn(60); err != nil {
		t.Fatal(err)
	}
	if err := eng.NoteOff(61); err != nil {
		t.Fatal(err)
	}

	left, _, err := eng.Render(512, 1024, engine.Sine)
	if err != nil {
		t.Fatal(err)
	}

	silent := true
	for _, v := range left {
		if v != 0 {
			silent = false
			break
		}
	}
	if silent {
		t.Error("voice should keep playing after NoteOff for a different note")
	}
}

func TestBuildTableBandLimiting(t *testing.T) {
	const rate = 44100.0

	// At this fundamental only harmonics 1 and 2 sit below Nyquist, so the
	// hard saw table must collapse to a two-harmonic sum.
	f0 := 9000.0

	full, err := buildTable(engine.HardSaw, f0, rate)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]float64, tableSize)
	for i := range want {
		x := 2 * math.Pi * float64(i) / tableSize
		want[i] = math.Sin(x) - math.Sin(2*x)/2
	}
	testutil.RequireSliceNearlyEqual(t, full, want, 1e-9)
}

func TestBuildTableSineIsSingleCycle(t *testing.T) {
	table, err := buildTable(engine.Sine, 440, 44100)
	if err != nil {
		t.Fatal(err)
	}

	want := make([]float64, tableSize)
	for i := range want {
		want[i] = math.Sin(2 * math.Pi * float64(i) / tableSize)
	}
	testutil.RequireSliceNearlyEqual(t, table, want, 1e-9)
}
