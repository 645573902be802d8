package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/logger"
	"github.com/lixenwraith/backrooms/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// CuePlayer turns bus events into short synthesized cues on the speaker
// Every operation is a no-op until Initialize succeeds
type CuePlayer struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	mixer       *beep.Mixer
	initialized bool

	listenerX, listenerZ float64
	last                 map[Cue]time.Time
	now                  func() time.Time

	played uint64
	subs   []event.SubscriptionID
}

func NewCuePlayer(cfg config.AudioConfig) *CuePlayer {
	return &CuePlayer{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		last:  make(map[Cue]time.Time),
		now:   time.Now,
	}
}

// Initialize opens the speaker, disabled audio stays silent without error
func (p *CuePlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	logger.Log.WithField("rate", int(sampleRate)).Info("Audio initialized")
	return nil
}

// Close silences pending cues and releases the speaker
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Attach subscribes the player to every cue-bearing event type on bus
func (p *CuePlayer) Attach(bus *event.Bus) {
	for _, t := range []event.EventType{
		event.EventWallHit, event.EventWallCracked, event.EventWallFractured,
		event.EventWallDestroyed, event.EventPillarHit, event.EventPillarDestroyed,
		event.EventCollision, event.EventFlicker,
	} {
		p.subs = append(p.subs, bus.Subscribe(t, p.Handle))
	}
}

// Detach removes all subscriptions made by Attach
func (p *CuePlayer) Detach(bus *event.Bus) {
	for _, id := range p.subs {
		bus.Unsubscribe(id)
	}
	p.subs = nil
}

// SetListener sets the position cue gain falls off from
func (p *CuePlayer) SetListener(x, z float64) {
	p.mu.Lock()
	p.listenerX, p.listenerZ = x, z
	p.mu.Unlock()
}

// Handle is the bus handler, it never fails
func (p *CuePlayer) Handle(ev event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	cue, gain, ok := p.decide(ev)
	if !ok || !p.initialized {
		return nil
	}
	s := Synthesize(cue, sampleRate, gain)
	if s == nil {
		return nil
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.played++
	logger.Log.WithFields(logrus.Fields{"event": ev.Type.String(), "gain": gain}).Trace("Cue played")
	return nil
}

// decide picks the cue and gain for ev, rate limiting repeats of one cue
func (p *CuePlayer) decide(ev event.Event) (Cue, float64, bool) {
	cue := CueFor(ev.Type)
	if cue == CueNone {
		return CueNone, 0, false
	}
	now := p.now()
	if t, ok := p.last[cue]; ok && now.Sub(t) < parameter.MinCueGap {
		return CueNone, 0, false
	}

	gain := p.cfg.Volume
	switch pl := ev.Payload.(type) {
	case *event.WallPayload:
		gain *= p.falloff(pl.Position[0], pl.Position[2])
	case *event.PillarPayload:
		gain *= p.falloff(pl.Position[0], pl.Position[2])
	case *event.CollisionPayload:
		gain *= pl.Intensity
	}
	if gain <= 0 {
		return CueNone, 0, false
	}
	p.last[cue] = now
	return cue, gain, true
}

// falloff is inverse-linear distance attenuation from the listener
func (p *CuePlayer) falloff(x, z float64) float64 {
	d := math.Hypot(x-p.listenerX, z-p.listenerZ)
	return 1 / (1 + d/parameter.CueFalloffDistance)
}

// Played returns how many cues reached the mixer
func (p *CuePlayer) Played() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}
