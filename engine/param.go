package engine

import "errors"

// ErrUnknownParam is returned when an engine receives a parameter outside
// the closed set below.
var ErrUnknownParam = errors.New("engine: unknown parameter")

// Param identifies one engine parameter. The set is closed: every
// addressable parameter is enumerated here, replacing runtime construction
// of textual parameter paths.
type Param int

const (
	Osc1Enabled Param = iota
	Osc1Shape
	Osc2Enabled
	Filt1Enable
	Filt2Enable
	AmpEnvAttack
	AmpEnvDecay
	AmpEnvSustain
	AmpEnvRelease

	paramCount
)

var paramNames = [paramCount]string{
	Osc1Enabled:   "Osc1.Enabled",
	Osc1Shape:     "Osc1.Shape",
	Osc2Enabled:   "Osc2.Enabled",
	Filt1Enable:   "Filt1.Enable",
	Filt2Enable:   "Filt2.Enable",
	AmpEnvAttack:  "AmpEnv.Attack",
	AmpEnvDecay:   "AmpEnv.Decay",
	AmpEnvSustain: "AmpEnv.Sustain",
	AmpEnvRelease: "AmpEnv.Release",
}

// Valid reports whether p names a known parameter.
func (p Param) Valid() bool {
	return p >= 0 && p < paramCount
}

// String returns the hierarchical parameter name.
func (p Param) String() string {
	if !p.Valid() {
		return "Unknown"
	}
	return paramNames[p]
}
