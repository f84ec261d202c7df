package additive

// adsr holds envelope timings in seconds and the sustain level.
type adsr struct {
	attack  float64
	decay   float64
	sustain float64
	release float64
}

type envStage int

const (
	stageIdle envStage = iota
	stageAttack
	stageDecay
	stageSustain
	stageRelease
)

// env is a linear-segment ADSR amplitude envelope advanced per sample.
//
// Ramp stages interpolate between their endpoints with an integer sample
// counter rather than an accumulated per-sample step, so the final sample
// of every ramp lands exactly on the target level regardless of ramp
// length.
type env struct {
	adsr       adsr
	sampleRate float64

	stage   envStage
	level   float64
	from    float64
	target  float64
	pos     int
	samples int
}

func newEnv(a adsr, sampleRate float64) *env {
	return &env{adsr: a, sampleRate: sampleRate}
}

// start enters the attack stage from silence.
func (e *env) start() {
	e.level = 0
	e.enter(stageAttack)
}

// release moves to the release stage. Safe to call repeatedly.
func (e *env) release() {
	if e.stage != stageRelease && e.stage != stageIdle {
		e.enter(stageRelease)
	}
}

// next advances the envelope one sample and returns the new level.
func (e *env) next() float64 {
	switch e.stage {
	case stageAttack:
		e.advance(stageDecay)
	case stageDecay:
		e.advance(stageSustain)
	case stageRelease:
		e.advance(stageIdle)
	}
	return e.level
}

// advance steps one sample along the current ramp, switching to the next
// stage once the ramp has run its full length.
func (e *env) advance(next envStage) {
	e.pos++
	if e.pos >= e.samples {
		e.level = e.target
		e.enter(next)
		return
	}
	e.level = e.from + (e.target-e.from)*float64(e.pos)/float64(e.samples)
}

// enter switches stages and derives the ramp endpoints and length from the
// stage duration. Non-positive durations complete in a single sample;
// sustain and idle hold their level until the stage changes.
func (e *env) enter(stage envStage) {
	e.stage = stage
	e.from = e.level
	e.pos = 0

	var seconds float64
	switch stage {
	case stageAttack:
		seconds = e.adsr.attack
		e.target = 1
	case stageDecay:
		seconds = e.adsr.decay
		e.target = e.adsr.sustain
	case stageRelease:
		seconds = e.adsr.release
		e.target = 0
	default:
		e.target = e.level
		e.samples = 0
		return
	}

	samples := int(seconds * e.sampleRate)
	if samples < 1 {
		samples = 1
	}
	e.samples = samples
}
