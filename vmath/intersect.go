package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// RayEpsilon rejects near-parallel rays and self-hits at the origin
const RayEpsilon = 1e-7

// RayTriangle intersects a ray with a triangle using Möller–Trumbore
// Returns distance along dir (in units of |dir|) and true on hit
func RayTriangle(orig, dir, v0, v1, v2 mgl64.Vec3) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < RayEpsilon {
		return 0, false
	}
	inv := 1.0 / det

	s := orig.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t <= RayEpsilon {
		return 0, false
	}
	return t, true
}

// RayQuad intersects a ray with a planar quad given in winding order
func RayQuad(orig, dir mgl64.Vec3, quad [4]mgl64.Vec3) (float64, bool) {
	if t, ok := RayTriangle(orig, dir, quad[0], quad[1], quad[2]); ok {
		return t, true
	}
	return RayTriangle(orig, dir, quad[0], quad[2], quad[3])
}

// RayPlaneY intersects a ray with the horizontal plane y = h
func RayPlaneY(orig, dir mgl64.Vec3, h float64) (float64, bool) {
	if math.Abs(dir.Y()) < RayEpsilon {
		return 0, false
	}
	t := (h - orig.Y()) / dir.Y()
	if t <= RayEpsilon {
		return 0, false
	}
	return t, true
}

// ClosestPointOnSegment returns the point on segment ab nearest to p in the XZ plane
// Degenerate segments collapse to their start point
func ClosestPointOnSegment(px, pz, ax, az, bx, bz float64) (float64, float64) {
	dx, dz := bx-ax, bz-az
	lenSq := dx*dx + dz*dz
	if lenSq < 1e-12 {
		return ax, az
	}
	t := Clamp(((px-ax)*dx+(pz-az)*dz)/lenSq, 0, 1)
	return ax + t*dx, az + t*dz
}
