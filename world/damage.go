package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/logger"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// stateForHealth maps health onto the damage ladder
func stateForHealth(h float64) WallState {
	switch {
	case h <= 0:
		return Destroyed
	case h <= parameter.HealthFractured:
		return Fractured
	case h <= parameter.HealthCracked:
		return Cracked
	default:
		return Intact
	}
}

func newCrack(r *vmath.FastRand, at *UV) Crack {
	c := Crack{
		Angle:      r.Uniform(0, math.Pi),
		MaxLength:  r.Uniform(parameter.CrackMaxLengthMin, parameter.CrackMaxLengthMax),
		GrowthRate: r.Uniform(parameter.CrackGrowthMin, parameter.CrackGrowthMax),
	}
	if at != nil {
		c.Origin = UV{vmath.Clamp(at.U, 0, 1), vmath.Clamp(at.V, 0, 1)}
	} else {
		c.Origin = UV{r.Uniform(0.1, 0.9), r.Uniform(0.1, 0.9)}
	}
	return c
}

func (w *World) damageFor(k WallKey) *damage {
	d, ok := w.damaged[k]
	if !ok {
		d = &damage{health: 1, state: Intact}
		w.damaged[k] = d
	}
	return d
}

// HitWall applies progressive damage and returns true only when this call destroys the wall
// hit places the first crack, nil picks a random origin
func (w *World) HitWall(k WallKey, amount float64, hit *UV) bool {
	if !w.hasWall(k) || w.IsWallDestroyed(k) {
		return false
	}
	if !(amount > 0) {
		amount = 0
	}

	d := w.damageFor(k)
	old := d.state
	d.health = vmath.Clamp(d.health-amount, 0, 1)
	next := stateForHealth(d.health)
	if next < old {
		next = old
	}
	d.state = next

	if next == Cracked || next == Fractured {
		d.cracks = append(d.cracks, newCrack(w.rng, hit))
		if next == Fractured {
			for i := 0; i < parameter.FracturedExtraCracks; i++ {
				d.cracks = append(d.cracks, newCrack(w.rng, nil))
			}
		}
	}

	if next == old {
		w.spawnImpact(k, parameter.BurstHit)
		w.emitWall(event.EventWallHit, k, d.health)
		return false
	}

	switch next {
	case Cracked:
		w.spawnImpact(k, parameter.BurstCracked)
		w.emitWall(event.EventWallCracked, k, d.health)
	case Fractured:
		w.spawnImpact(k, parameter.BurstFractured)
		w.emitWall(event.EventWallFractured, k, d.health)
	case Destroyed:
		w.destroyWall(k)
		w.emitWall(event.EventWallDestroyed, k, 0)
		return true
	}
	return false
}

// DestroyWall collapses a wall instantly, bypassing progressive damage
// Returns false when the wall does not exist or is already destroyed
func (w *World) DestroyWall(k WallKey) bool {
	if !w.hasWall(k) || w.IsWallDestroyed(k) {
		return false
	}
	w.destroyWall(k)
	w.emitWall(event.EventWallDestroyed, k, 0)
	return true
}

func (w *World) destroyWall(k WallKey) {
	w.destroyedWalls[k] = struct{}{}
	w.rubbleSpawned[k] = struct{}{}
	d := w.damageFor(k)
	d.health = 0
	d.state = Destroyed

	minX, minZ, maxX, maxZ := SpanRect(k, FullSpan(k))
	w.spawnCollapse(minX, minZ, maxX, maxZ, len(w.destroyedWalls), wallDebrisColor)

	logger.Log.WithFields(logrus.Fields{
		"wall":      k.String(),
		"destroyed": len(w.destroyedWalls),
	}).Debug("wall destroyed")
}

// DestroyPillar collapses a pillar, returns false when absent or already destroyed
func (w *World) DestroyPillar(k PillarKey) bool {
	if !w.HasPillarAt(k.X, k.Z) || w.IsPillarDestroyed(k) {
		return false
	}
	w.destroyedPillars[k] = struct{}{}

	minX, minZ, maxX, maxZ := PillarRect(k)
	w.spawnCollapse(minX, minZ, maxX, maxZ, len(w.destroyedPillars), pillarDebrisColor)

	x, y, z := PillarCenter(k)
	w.sink.Emit(event.Event{
		Type: event.EventPillarDestroyed,
		Payload: &event.PillarPayload{
			X: k.X, Z: k.Z,
			Position: mgl64.Vec3{x, y, z},
		},
	})

	logger.Log.WithField("pillar", k.String()).Debug("pillar destroyed")
	return true
}

func (w *World) emitWall(t event.EventType, k WallKey, health float64) {
	x, y, z := WallCenter(k)
	w.sink.Emit(event.Event{
		Type: t,
		Payload: &event.WallPayload{
			X1: k.A.X, Z1: k.A.Z, X2: k.B.X, Z2: k.B.Z,
			Position: mgl64.Vec3{x, y, z},
			Health:   health,
		},
	})
}

// --- State Queries ---

func (w *World) IsWallDestroyed(k WallKey) bool {
	_, ok := w.destroyedWalls[k]
	return ok
}

func (w *World) IsPillarDestroyed(k PillarKey) bool {
	_, ok := w.destroyedPillars[k]
	return ok
}

// IsSolidWall reports an existing, standing wall
func (w *World) IsSolidWall(k WallKey) bool {
	return w.hasWall(k) && !w.IsWallDestroyed(k)
}

// IsSolidPillar reports an existing, standing pillar
func (w *World) IsSolidPillar(k PillarKey) bool {
	return w.HasPillarAt(k.X, k.Z) && !w.IsPillarDestroyed(k)
}

// WallState returns the damage state, Intact for untouched walls
func (w *World) WallState(k WallKey) WallState {
	if d, ok := w.damaged[k]; ok {
		return d.state
	}
	return Intact
}

// WallHealth returns health in [0, 1]
func (w *World) WallHealth(k WallKey) float64 {
	if d, ok := w.damaged[k]; ok {
		return d.health
	}
	return 1
}

// Cracks returns a copy of the wall's crack records
func (w *World) Cracks(k WallKey) []Crack {
	d, ok := w.damaged[k]
	if !ok || len(d.cracks) == 0 {
		return nil
	}
	out := make([]Crack, len(d.cracks))
	copy(out, d.cracks)
	return out
}

// DestroyedWallCount includes walls lost to decay
func (w *World) DestroyedWallCount() int { return len(w.destroyedWalls) }

func (w *World) DestroyedPillarCount() int { return len(w.destroyedPillars) }
