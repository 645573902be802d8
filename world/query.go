package world

import (
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// Segment is a 2D collision edge in the XZ plane
type Segment struct {
	AX, AZ, BX, BZ float64
}

func (w *World) collisionRadius(x, z float64) float64 {
	return float64(parameter.CollisionRangeRooms * w.zones.RoomSizeAt(x, z))
}

// rectDistSq returns the squared distance from (x, z) to an axis-aligned rectangle
func rectDistSq(x, z, minX, minZ, maxX, maxZ float64) float64 {
	dx := x - vmath.Clamp(x, minX, maxX)
	dz := z - vmath.Clamp(z, minZ, maxZ)
	return dx*dx + dz*dz
}

// CheckCollision reports whether a player body at (x, z) overlaps any standing wall or pillar
// Non-finite positions always collide
func (w *World) CheckCollision(x, z float64) bool {
	if !vmath.IsFinite(x, z) {
		return true
	}

	const r2 = parameter.PlayerRadius * parameter.PlayerRadius
	hit := false
	w.forEachCell(x, z, w.collisionRadius(x, z), true, func(rs, gx, gz int64) {
		if hit {
			return
		}
		for _, k := range [2]WallKey{
			NewWallKey(gx, gz, gx+rs, gz),
			NewWallKey(gx, gz, gx, gz+rs),
		} {
			if !w.IsSolidWall(k) {
				continue
			}
			for _, s := range w.SolidSpans(k) {
				minX, minZ, maxX, maxZ := SpanRect(k, s)
				if rectDistSq(x, z, minX, minZ, maxX, maxZ) < r2 {
					hit = true
					return
				}
			}
		}
		pk := PillarKey{gx + rs/2, gz + rs/2}
		if w.IsSolidPillar(pk) {
			minX, minZ, maxX, maxZ := PillarRect(pk)
			if rectDistSq(x, z, minX, minZ, maxX, maxZ) < r2 {
				hit = true
			}
		}
	})
	return hit
}

// NearbySegments returns collision edges of standing geometry around (x, z)
// Walls give two face edges per solid span plus the doorway jambs, pillars give four edges
func (w *World) NearbySegments(x, z float64) []Segment {
	if !vmath.IsFinite(x, z) {
		return nil
	}
	var out []Segment
	w.forEachCell(x, z, w.collisionRadius(x, z), true, func(rs, gx, gz int64) {
		for _, k := range [2]WallKey{
			NewWallKey(gx, gz, gx+rs, gz),
			NewWallKey(gx, gz, gx, gz+rs),
		} {
			if w.IsSolidWall(k) {
				out = w.appendWallSegments(out, k)
			}
		}
		pk := PillarKey{gx + rs/2, gz + rs/2}
		if w.IsSolidPillar(pk) {
			minX, minZ, maxX, maxZ := PillarRect(pk)
			out = appendBoxSegments(out, minX, minZ, maxX, maxZ)
		}
	})
	return out
}

func (w *World) appendWallSegments(out []Segment, k WallKey) []Segment {
	spans := w.SolidSpans(k)
	for _, s := range spans {
		if k.Horizontal() {
			z := float64(k.A.Z)
			out = append(out,
				Segment{s.Lo, z - halfThick, s.Hi, z - halfThick},
				Segment{s.Lo, z + halfThick, s.Hi, z + halfThick},
			)
		} else {
			x := float64(k.A.X)
			out = append(out,
				Segment{x - halfThick, s.Lo, x - halfThick, s.Hi},
				Segment{x + halfThick, s.Lo, x + halfThick, s.Hi},
			)
		}
	}

	// Jambs close the wall ends facing the opening
	if len(spans) == 2 {
		for _, at := range [2]float64{spans[0].Hi, spans[1].Lo} {
			if k.Horizontal() {
				z := float64(k.A.Z)
				out = append(out, Segment{at, z - halfThick, at, z + halfThick})
			} else {
				x := float64(k.A.X)
				out = append(out, Segment{x - halfThick, at, x + halfThick, at})
			}
		}
	}
	return out
}

func appendBoxSegments(out []Segment, minX, minZ, maxX, maxZ float64) []Segment {
	return append(out,
		Segment{minX, minZ, maxX, minZ},
		Segment{maxX, minZ, maxX, maxZ},
		Segment{maxX, maxZ, minX, maxZ},
		Segment{minX, maxZ, minX, minZ},
	)
}
