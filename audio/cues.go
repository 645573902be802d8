package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// Cue identifies one synthesized sound
type Cue uint8

const (
	CueNone Cue = iota
	CueImpact
	CueCrack
	CueFracture
	CueCollapse
	CueContact
	CueFlicker
)

// CueFor maps an event type to the cue that announces it
func CueFor(t event.EventType) Cue {
	switch t {
	case event.EventWallHit, event.EventPillarHit:
		return CueImpact
	case event.EventWallCracked:
		return CueCrack
	case event.EventWallFractured:
		return CueFracture
	case event.EventWallDestroyed, event.EventPillarDestroyed:
		return CueCollapse
	case event.EventCollision:
		return CueContact
	case event.EventFlicker:
		return CueFlicker
	default:
		return CueNone
	}
}

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *vmath.FastRand
}

// NewOscillator creates a finite oscillator, noise draws from a fixed-seed stream
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      vmath.NewFastRand(uint64(freq*1000) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: max(0, total-att-rel),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with linear gain, zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// rumble is exponentially decaying noise over a low sine, used for collapses
type rumble struct {
	sr    beep.SampleRate
	pos   int
	total int
	freq  float64
	decay float64
	rng   *vmath.FastRand
}

func newRumble(sr beep.SampleRate, d time.Duration, freq, decay float64, seed uint64) *rumble {
	return &rumble{sr: sr, total: sr.N(d), freq: freq, decay: decay, rng: vmath.NewFastRand(seed)}
}

func (g *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.total {
			return i, i > 0
		}
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * g.decay)
		noise := g.rng.Float64()*2 - 1
		low := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		s := env * (0.25*noise + low)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *rumble) Err() error { return nil }

// Synthesize builds the streamer for a cue at linear gain
// Returns nil for CueNone
func Synthesize(c Cue, rate beep.SampleRate, gain float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueImpact:
		osc := NewOscillator(parameter.ImpactCueFreq, parameter.ImpactCueDuration, WaveSaw, rate)
		s = NewEnvelope(osc, parameter.ImpactCueDuration, parameter.ImpactCueAttack, parameter.ImpactCueRelease, rate)
	case CueCrack:
		osc := NewOscillator(parameter.CrackCueFreq, parameter.CrackCueDuration, WaveSine, rate)
		s = NewEnvelope(osc, parameter.CrackCueDuration, parameter.CrackCueAttack, parameter.CrackCueRelease, rate)
	case CueFracture:
		tone := NewEnvelope(
			NewOscillator(parameter.CrackCueFreq*0.75, parameter.CrackCueDuration, WaveSquare, rate),
			parameter.CrackCueDuration, parameter.CrackCueAttack, parameter.CrackCueRelease, rate)
		noise := NewEnvelope(
			NewOscillator(0, parameter.CrackCueDuration, WaveNoise, rate),
			parameter.CrackCueDuration, parameter.CrackCueAttack, parameter.CrackCueRelease, rate)
		s = beep.Take(rate.N(parameter.CrackCueDuration), beep.Mix(newVolume(tone, 0.6), newVolume(noise, 0.4)))
	case CueCollapse:
		s = newRumble(rate, parameter.CollapseCueDuration, parameter.CollapseCueRumble, parameter.CollapseCueDecay, 0xc011a95e)
	case CueContact:
		osc := NewOscillator(parameter.ContactCueFreq, parameter.ContactCueDuration, WaveSine, rate)
		s = NewEnvelope(osc, parameter.ContactCueDuration, time.Millisecond, parameter.ContactCueDuration/2, rate)
	case CueFlicker:
		d := time.Duration(parameter.FlickerDuration * float64(time.Second))
		osc := NewOscillator(parameter.FlickerCueFreq, d, WaveSquare, rate)
		s = NewEnvelope(osc, d, time.Millisecond, d/2, rate)
	default:
		return nil
	}
	return newVolume(s, gain)
}
