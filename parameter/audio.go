package parameter

import "time"

// Audio Output
const (
	AudioSampleRate = 48000

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinCueGap suppresses repeats of the same cue closer than this
	MinCueGap = 50 * time.Millisecond

	// CueFalloffDistance halves cue gain at this listener distance
	CueFalloffDistance = 400.0
)

// Impact Cue
const (
	ImpactCueDuration = 90 * time.Millisecond
	ImpactCueAttack   = 3 * time.Millisecond
	ImpactCueRelease  = 60 * time.Millisecond
	ImpactCueFreq     = 140.0
)

// Crack Cue
const (
	CrackCueDuration = 180 * time.Millisecond
	CrackCueAttack   = 2 * time.Millisecond
	CrackCueRelease  = 150 * time.Millisecond
	CrackCueFreq     = 620.0
)

// Collapse Cue
const (
	CollapseCueDuration = 900 * time.Millisecond
	CollapseCueRumble   = 70.0
	CollapseCueDecay    = 4.0
)

// Contact Cue
const (
	ContactCueDuration = 60 * time.Millisecond
	ContactCueFreq     = 90.0
)

// Flicker Cue
const (
	FlickerCueFreq = 120.0
)
