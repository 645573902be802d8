// Package world is the deterministic infinite grid of walls and pillars
// and the owner of destruction state and debris
package world

import (
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/debris"
	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/logger"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
	"github.com/lixenwraith/backrooms/zone"
)

const (
	halfThick    = parameter.WallThickness / 2
	hallwayWidth = parameter.HallwayWidth
	doorwayWidth = parameter.DoorwayWidth
)

// damage tracks progressive state for walls that have been hit or decayed
type damage struct {
	health float64
	state  WallState
	cracks []Crack
}

// World is the single source of truth for existing and destroyed geometry
// Not safe for concurrent use, the frame loop owns it
type World struct {
	seed         int64
	pillarChance float64
	gateWalls    bool

	zones *zone.Model
	sink  event.Sink
	rng   *vmath.FastRand

	// Memoized generation, append-only until Restore
	wallCache   map[WallKey]bool
	doorCache   map[WallKey]Opening
	pillarCache map[PillarKey]bool
	preDamage   map[WallKey]float64

	damaged          map[WallKey]*damage
	destroyedWalls   map[WallKey]struct{}
	destroyedPillars map[PillarKey]struct{}
	rubbleSpawned    map[WallKey]struct{}

	debris *debris.Pool
}

// New creates a world; a nil sink discards events
func New(cfg config.WorldConfig, sink event.Sink) *World {
	if sink == nil {
		sink = event.Discard{}
	}
	w := &World{
		pillarChance: cfg.PillarMode.Chance(),
		gateWalls:    cfg.GateWalls,
		sink:         sink,
		debris:       debris.NewPool(),
	}
	w.reset(cfg.Seed)
	return w
}

func (w *World) reset(seed int64) {
	w.seed = seed
	if w.zones == nil {
		w.zones = zone.NewModel(seed)
	} else {
		w.zones.Reset(seed)
	}
	w.rng = vmath.NewFastRand(vmath.KeyHash(seed, "debris"))
	w.wallCache = make(map[WallKey]bool)
	w.doorCache = make(map[WallKey]Opening)
	w.pillarCache = make(map[PillarKey]bool)
	w.preDamage = make(map[WallKey]float64)
	w.damaged = make(map[WallKey]*damage)
	w.destroyedWalls = make(map[WallKey]struct{})
	w.destroyedPillars = make(map[PillarKey]struct{})
	w.rubbleSpawned = make(map[WallKey]struct{})
	w.debris.Clear()

	logger.Log.WithFields(logrus.Fields{
		"seed":          seed,
		"pillar_chance": w.pillarChance,
		"gate_walls":    w.gateWalls,
	}).Debug("world reset")
}

func (w *World) Seed() int64 { return w.seed }

// Zones exposes the zone model for renderer ceiling and tint queries
func (w *World) Zones() *zone.Model { return w.zones }

// SetSink replaces the event sink, nil discards
func (w *World) SetSink(s event.Sink) {
	if s == nil {
		s = event.Discard{}
	}
	w.sink = s
}

// RoomSizeAt returns the local grid spacing
func (w *World) RoomSizeAt(x, z float64) int64 {
	return w.zones.RoomSizeAt(x, z)
}

// Update advances time-dependent state: crack growth and debris
func (w *World) Update(dt, playerX, playerZ float64) {
	for _, d := range w.damaged {
		for i := range d.cracks {
			d.cracks[i].Grow(dt)
		}
	}
	w.UpdateDebris(dt, playerX, playerZ)
}
