package world

import (
	"math"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// Stream tags keep per-decision hash streams independent
const (
	tagWall   = "wall"
	tagDecay  = "decay"
	tagDoor   = "door"
	tagPillar = "pillar"
)

func (w *World) wallStream(tag string, k WallKey) *vmath.FastRand {
	return vmath.KeyStream(w.seed, tag, k.A.X, k.A.Z, k.B.X, k.B.Z)
}

// HasWallBetween reports whether a wall exists between two grid points
// The first query of a key also performs its one-time decay roll
func (w *World) HasWallBetween(x1, z1, x2, z2 int64) bool {
	return w.hasWall(NewWallKey(x1, z1, x2, z2))
}

func (w *World) hasWall(k WallKey) bool {
	if v, ok := w.wallCache[k]; ok {
		return v
	}
	v := w.generateWall(k)
	w.wallCache[k] = v
	return v
}

func (w *World) generateWall(k WallKey) bool {
	span := k.Span()
	if span <= 0 {
		return false
	}

	cx, cz := k.Mid()
	props := w.zones.PropertiesAt(cx, cz)
	rs := props.RoomSize
	if math.Abs(float64(span-rs)) > parameter.SpanTolerance {
		return false
	}
	if vmath.FloorMod(k.A.X, rs) != 0 || vmath.FloorMod(k.A.Z, rs) != 0 {
		return false
	}

	if w.gateWalls && w.wallStream(tagWall, k).Float64() >= props.WallChance {
		return false
	}

	w.rollDecay(k, props.DecayChance)
	return true
}

// rollDecay assigns generation-time damage once per key
// Heavy decay destroys outright; lighter decay seeds progressive health
// Keys already destroyed by a restored snapshot keep their state
func (w *World) rollDecay(k WallKey, chance float64) {
	r := w.wallStream(tagDecay, k)
	if r.Float64() >= chance {
		return
	}
	dmg := r.Uniform(0, parameter.PreDamageMax)
	w.preDamage[k] = dmg
	if w.IsWallDestroyed(k) {
		return
	}

	if dmg < parameter.PreDamageDestroyed {
		w.destroyedWalls[k] = struct{}{}
		w.damaged[k] = &damage{health: 0, state: Destroyed}
		return
	}

	d := &damage{health: dmg, state: stateForHealth(dmg)}
	n := 1
	if d.state == Fractured {
		n += parameter.FracturedExtraCracks
	}
	for i := 0; i < n; i++ {
		c := newCrack(r, nil)
		c.Length = c.MaxLength
		d.cracks = append(d.cracks, c)
	}
	w.damaged[k] = d
}

// PreDamage returns generation-time decay damage, ok false when the wall did not decay
func (w *World) PreDamage(k WallKey) (float64, bool) {
	w.hasWall(k)
	v, ok := w.preDamage[k]
	return v, ok
}

// DoorwayType returns the opening carved into the wall between two grid points
func (w *World) DoorwayType(x1, z1, x2, z2 int64) Opening {
	return w.opening(NewWallKey(x1, z1, x2, z2))
}

func (w *World) opening(k WallKey) Opening {
	if o, ok := w.doorCache[k]; ok {
		return o
	}
	roll := w.wallStream(tagDoor, k).Float64()
	o := OpeningNone
	switch {
	case roll < parameter.HallwayChance:
		o = OpeningHallway
	case roll < parameter.DoorwayChance:
		o = OpeningDoorway
	}
	w.doorCache[k] = o
	return o
}

// HasPillarAt reports whether a pillar is anchored at (x, z)
// Anchors sit at cell centers of the local room grid
func (w *World) HasPillarAt(x, z int64) bool {
	k := PillarKey{x, z}
	if v, ok := w.pillarCache[k]; ok {
		return v
	}
	v := w.generatePillar(k)
	w.pillarCache[k] = v
	return v
}

func (w *World) generatePillar(k PillarKey) bool {
	if w.pillarChance <= 0 {
		return false
	}
	rs := w.zones.RoomSizeAt(float64(k.X), float64(k.Z))
	off := rs / 2
	if vmath.FloorMod(k.X, rs) != off || vmath.FloorMod(k.Z, rs) != off {
		return false
	}
	if w.pillarChance >= 1 {
		return true
	}
	return vmath.KeyStream(w.seed, tagPillar, k.X, k.Z).Float64() < w.pillarChance
}

// --- Geometry ---

// Span is a solid interval along a wall axis
type Span struct {
	Lo, Hi float64
}

// SolidSpans returns the solid intervals of a wall along its axis after carving its opening
// The gap is centered on the wall and shared by collision, rendering and ray queries
func (w *World) SolidSpans(k WallKey) []Span {
	full := FullSpan(k)
	lo, hi := full.Lo, full.Hi

	gap := w.opening(k).Width()
	if gap <= 0 {
		return []Span{{lo, hi}}
	}
	if gap >= hi-lo {
		return nil
	}
	mid := (lo + hi) / 2
	return []Span{{lo, mid - gap/2}, {mid + gap/2, hi}}
}

// FullSpan returns the uncarved interval of a wall along its axis
func FullSpan(k WallKey) Span {
	if k.Horizontal() {
		return Span{float64(k.A.X), float64(k.B.X)}
	}
	return Span{float64(k.A.Z), float64(k.B.Z)}
}

// SpanRect returns the XZ rectangle of a solid span including wall thickness
func SpanRect(k WallKey, s Span) (minX, minZ, maxX, maxZ float64) {
	if k.Horizontal() {
		z := float64(k.A.Z)
		return s.Lo, z - halfThick, s.Hi, z + halfThick
	}
	x := float64(k.A.X)
	return x - halfThick, s.Lo, x + halfThick, s.Hi
}

// PillarRect returns the XZ box of a pillar
func PillarRect(k PillarKey) (minX, minZ, maxX, maxZ float64) {
	x, z := float64(k.X), float64(k.Z)
	return x, z, x + parameter.PillarSize, z + parameter.PillarSize
}

// WallCenter returns the world-space center of a wall
func WallCenter(k WallKey) (x, y, z float64) {
	x, z = k.Mid()
	return x, (parameter.FloorY + parameter.WallHeight) / 2, z
}

// PillarCenter returns the world-space center of a pillar
func PillarCenter(k PillarKey) (x, y, z float64) {
	h := parameter.PillarSize / 2
	return float64(k.X) + h, (parameter.FloorY + parameter.WallHeight) / 2, float64(k.Z) + h
}

// --- Neighbourhood ---

// forEachCell visits every grid cell of every room size present within radius of (x, z)
// With capped set, each room size is scanned no farther than CollisionRangeRooms cells,
// enough to reach any wall of that size touching a body near (x, z)
// Cells belonging to other zones are rejected later by key validation
func (w *World) forEachCell(x, z, radius float64, capped bool, fn func(rs, gx, gz int64)) {
	for _, rs := range w.zones.RoomSizesNear(x, z, radius) {
		r := radius
		if capped {
			r = min(r, float64(parameter.CollisionRangeRooms*rs))
		}
		x0 := vmath.FloorDivF(x-r, rs) * rs
		x1 := vmath.FloorDivF(x+r, rs) * rs
		z0 := vmath.FloorDivF(z-r, rs) * rs
		z1 := vmath.FloorDivF(z+r, rs) * rs
		for gx := x0; gx <= x1; gx += rs {
			for gz := z0; gz <= z1; gz += rs {
				fn(rs, gx, gz)
			}
		}
	}
}

// WallsNear returns every generated wall with a cell corner within radius of (x, z), destroyed included
func (w *World) WallsNear(x, z, radius float64) []WallKey {
	var out []WallKey
	w.forEachCell(x, z, radius, false, func(rs, gx, gz int64) {
		for _, k := range [2]WallKey{
			NewWallKey(gx, gz, gx+rs, gz),
			NewWallKey(gx, gz, gx, gz+rs),
		} {
			if w.hasWall(k) {
				out = append(out, k)
			}
		}
	})
	return out
}

// PillarsNear returns every generated pillar with a cell within radius of (x, z), destroyed included
func (w *World) PillarsNear(x, z, radius float64) []PillarKey {
	var out []PillarKey
	w.forEachCell(x, z, radius, false, func(rs, gx, gz int64) {
		px, pz := gx+rs/2, gz+rs/2
		if w.HasPillarAt(px, pz) {
			out = append(out, PillarKey{px, pz})
		}
	})
	return out
}
