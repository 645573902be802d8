// Package collision slides a circular body through world geometry
package collision

import (
	"math"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
	"github.com/lixenwraith/backrooms/world"
)

// SegmentSource supplies collision edges around a position
// Satisfied by *world.World
type SegmentSource interface {
	NearbySegments(x, z float64) []world.Segment
}

// Solver resolves moves for a circle of Radius with a Skin margin
type Solver struct {
	Source     SegmentSource
	Radius     float64
	Skin       float64
	Iterations int
}

func NewSolver(src SegmentSource) *Solver {
	return &Solver{
		Source:     src,
		Radius:     parameter.PlayerRadius,
		Skin:       parameter.SkinWidth,
		Iterations: parameter.CollisionIterations,
	}
}

// Resolve moves from (fromX, fromZ) toward (toX, toZ) and returns the final position
// collided reports whether any push occurred during resolution
// A non-finite target leaves the body at its start and counts as a collision
func (s *Solver) Resolve(fromX, fromZ, toX, toZ float64) (x, z float64, collided bool) {
	if !vmath.IsFinite(toX, toZ) {
		return fromX, fromZ, true
	}
	if math.Hypot(toX-fromX, toZ-fromZ) < parameter.MinMoveDistance {
		return fromX, fromZ, false
	}

	limit := s.Radius + s.Skin
	x, z = toX, toZ

	for i := 0; i < s.Iterations; i++ {
		segs := s.Source.NearbySegments(x, z)

		if nx, nz, ok := depenetrate(x, z, fromX, fromZ, segs, limit); ok {
			x, z = nx, nz
			collided = true
			segs = s.Source.NearbySegments(x, z)
		}

		pushed := false
		for _, seg := range segs {
			cx, cz := vmath.ClosestPointOnSegment(x, z, seg.AX, seg.AZ, seg.BX, seg.BZ)
			dx, dz := x-cx, z-cz
			dist := math.Hypot(dx, dz)
			if dist >= limit {
				continue
			}
			nx, nz, ok := pushNormal(dx, dz, dist, seg, fromX, fromZ)
			if !ok {
				continue
			}
			depth := limit - dist
			x += nx * depth
			z += nz * depth
			pushed = true
		}

		if !pushed {
			break
		}
		collided = true
	}
	return x, z, collided
}

// Penetrating reports whether the body at (x, z) lies closer than Radius+Skin to any edge
func (s *Solver) Penetrating(x, z float64) bool {
	limit := s.Radius + s.Skin
	for _, seg := range s.Source.NearbySegments(x, z) {
		cx, cz := vmath.ClosestPointOnSegment(x, z, seg.AX, seg.AZ, seg.BX, seg.BZ)
		if math.Hypot(x-cx, z-cz) < limit {
			return true
		}
	}
	return false
}

// depenetrate sums depth-scaled push-outs from every penetrated edge
// (refX, refZ) picks the side for a body centered on an edge
func depenetrate(x, z, refX, refZ float64, segs []world.Segment, limit float64) (float64, float64, bool) {
	var px, pz float64
	hit := false
	for _, seg := range segs {
		cx, cz := vmath.ClosestPointOnSegment(x, z, seg.AX, seg.AZ, seg.BX, seg.BZ)
		dx, dz := x-cx, z-cz
		dist := math.Hypot(dx, dz)
		if dist >= limit {
			continue
		}
		nx, nz, ok := pushNormal(dx, dz, dist, seg, refX, refZ)
		if !ok {
			continue
		}
		depth := limit - dist
		px += nx * depth
		pz += nz * depth
		hit = true
	}
	if !hit {
		return x, z, false
	}
	return x + px, z + pz, true
}

// pushNormal returns the unit direction away from an edge
// A body centered exactly on the edge takes the edge normal facing (refX, refZ),
// a reference on the edge line falls back to the left normal
func pushNormal(dx, dz, dist float64, seg world.Segment, refX, refZ float64) (float64, float64, bool) {
	if dist > 1e-9 {
		return dx / dist, dz / dist, true
	}
	ex, ez := seg.BX-seg.AX, seg.BZ-seg.AZ
	l := math.Hypot(ex, ez)
	if l < 1e-9 {
		return 0, 0, false
	}
	nx, nz := -ez/l, ex/l
	side := (refX-seg.AX)*nx + (refZ-seg.AZ)*nz
	if side < 0 {
		return -nx, -nz, true
	}
	return nx, nz, true
}
