package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// HitKind classifies ray hits
type HitKind uint8

const (
	HitWall HitKind = iota
	HitPillar
	HitFloor
	HitCeiling
)

func (k HitKind) String() string {
	switch k {
	case HitWall:
		return "wall"
	case HitPillar:
		return "pillar"
	case HitFloor:
		return "floor"
	default:
		return "ceiling"
	}
}

// Hit is the nearest surface along a ray
type Hit struct {
	Kind     HitKind
	Distance float64
	Point    mgl64.Vec3
	Wall     WallKey
	Pillar   PillarKey
	Face     Face
	UV       UV
}

// Surface returns the overlay key of a wall or pillar hit
func (h Hit) Surface() (SurfaceKey, bool) {
	switch h.Kind {
	case HitWall:
		return WallSurface(h.Wall), true
	case HitPillar:
		return PillarSurface(h.Pillar, h.Face), true
	default:
		return SurfaceKey{}, false
	}
}

const wallSpanY = parameter.WallHeight - parameter.FloorY

// Raycast finds the nearest wall, pillar, floor or ceiling hit within maxDist
// Geometry is gathered around the reference position (refX, refZ)
func (w *World) Raycast(origin, dir mgl64.Vec3, refX, refZ, maxDist float64) (Hit, bool) {
	if dir.Len() < vmath.RayEpsilon || !vmath.IsFinite(origin[0], origin[1], origin[2], refX, refZ) {
		return Hit{}, false
	}
	dir = dir.Normalize()
	radius := max(parameter.RaySearchRadius, maxDist)

	best := Hit{Distance: maxDist}
	found := false
	consider := func(t float64, h Hit) {
		if t <= best.Distance {
			h.Distance = t
			best = h
			found = true
		}
	}

	for _, k := range w.WallsNear(refX, refZ, radius) {
		if w.IsWallDestroyed(k) {
			continue
		}
		for _, s := range w.SolidSpans(k) {
			for _, q := range wallFaceQuads(k, s) {
				if t, ok := vmath.RayQuad(origin, dir, q); ok {
					consider(t, Hit{Kind: HitWall, Wall: k})
				}
			}
		}
	}

	for _, k := range w.PillarsNear(refX, refZ, radius) {
		if w.IsPillarDestroyed(k) {
			continue
		}
		for f, q := range pillarFaceQuads(k) {
			if t, ok := vmath.RayQuad(origin, dir, q); ok {
				consider(t, Hit{Kind: HitPillar, Pillar: k, Face: Face(f)})
			}
		}
	}

	if t, ok := vmath.RayPlaneY(origin, dir, parameter.FloorY); ok {
		consider(t, Hit{Kind: HitFloor})
	}
	if t, ok := vmath.RayPlaneY(origin, dir, w.zones.CeilingHeightAt(refX, refZ)); ok {
		consider(t, Hit{Kind: HitCeiling})
	}

	if !found {
		return Hit{}, false
	}
	best.Point = origin.Add(dir.Mul(best.Distance))
	switch best.Kind {
	case HitWall:
		best.UV = WallUV(best.Wall, best.Point)
	case HitPillar:
		best.UV = PillarUV(best.Pillar, best.Face, best.Point)
	}
	return best, true
}

// Target returns the wall or pillar within reach along a view ray
func (w *World) Target(origin, dir mgl64.Vec3) (Hit, bool) {
	h, ok := w.Raycast(origin, dir, origin[0], origin[2], parameter.TargetReach)
	if !ok || (h.Kind != HitWall && h.Kind != HitPillar) {
		return Hit{}, false
	}
	return h, true
}

func wallFaceQuads(k WallKey, s Span) [2][4]mgl64.Vec3 {
	lo, hi := parameter.FloorY, parameter.WallHeight
	if k.Horizontal() {
		z := float64(k.A.Z)
		return [2][4]mgl64.Vec3{
			{{s.Lo, lo, z - halfThick}, {s.Hi, lo, z - halfThick}, {s.Hi, hi, z - halfThick}, {s.Lo, hi, z - halfThick}},
			{{s.Lo, lo, z + halfThick}, {s.Hi, lo, z + halfThick}, {s.Hi, hi, z + halfThick}, {s.Lo, hi, z + halfThick}},
		}
	}
	x := float64(k.A.X)
	return [2][4]mgl64.Vec3{
		{{x - halfThick, lo, s.Lo}, {x - halfThick, lo, s.Hi}, {x - halfThick, hi, s.Hi}, {x - halfThick, hi, s.Lo}},
		{{x + halfThick, lo, s.Lo}, {x + halfThick, lo, s.Hi}, {x + halfThick, hi, s.Hi}, {x + halfThick, hi, s.Lo}},
	}
}

// pillarFaceQuads is indexed by Face
func pillarFaceQuads(k PillarKey) [4][4]mgl64.Vec3 {
	minX, minZ, maxX, maxZ := PillarRect(k)
	lo, hi := parameter.FloorY, parameter.WallHeight
	return [4][4]mgl64.Vec3{
		FaceFront: {{minX, lo, minZ}, {maxX, lo, minZ}, {maxX, hi, minZ}, {minX, hi, minZ}},
		FaceBack:  {{maxX, lo, maxZ}, {minX, lo, maxZ}, {minX, hi, maxZ}, {maxX, hi, maxZ}},
		FaceLeft:  {{minX, lo, maxZ}, {minX, lo, minZ}, {minX, hi, minZ}, {minX, hi, maxZ}},
		FaceRight: {{maxX, lo, minZ}, {maxX, lo, maxZ}, {maxX, hi, maxZ}, {maxX, hi, minZ}},
	}
}

// WallUV maps a world point onto a wall, U along the wall from its low end
func WallUV(k WallKey, p mgl64.Vec3) UV {
	full := FullSpan(k)
	along := p[0]
	if !k.Horizontal() {
		along = p[2]
	}
	return UV{
		U: vmath.Clamp((along-full.Lo)/(full.Hi-full.Lo), 0, 1),
		V: vmath.Clamp((p[1]-parameter.FloorY)/wallSpanY, 0, 1),
	}
}

// WallPoint maps UV back onto the wall centerline
func WallPoint(k WallKey, uv UV) mgl64.Vec3 {
	full := FullSpan(k)
	along := vmath.Lerp(full.Lo, full.Hi, uv.U)
	y := parameter.FloorY + uv.V*wallSpanY
	if k.Horizontal() {
		return mgl64.Vec3{along, y, float64(k.A.Z)}
	}
	return mgl64.Vec3{float64(k.A.X), y, along}
}

// PillarUV maps a world point onto a pillar face, U runs left to right seen from outside
func PillarUV(k PillarKey, f Face, p mgl64.Vec3) UV {
	minX, minZ, maxX, maxZ := PillarRect(k)
	s := parameter.PillarSize
	var u float64
	switch f {
	case FaceFront:
		u = (p[0] - minX) / s
	case FaceBack:
		u = (maxX - p[0]) / s
	case FaceLeft:
		u = (maxZ - p[2]) / s
	case FaceRight:
		u = (p[2] - minZ) / s
	}
	return UV{
		U: vmath.Clamp(u, 0, 1),
		V: vmath.Clamp((p[1]-parameter.FloorY)/wallSpanY, 0, 1),
	}
}

// PillarPoint maps UV back onto a pillar face
func PillarPoint(k PillarKey, f Face, uv UV) mgl64.Vec3 {
	minX, minZ, maxX, maxZ := PillarRect(k)
	s := parameter.PillarSize
	y := parameter.FloorY + uv.V*wallSpanY
	switch f {
	case FaceBack:
		return mgl64.Vec3{maxX - uv.U*s, y, maxZ}
	case FaceLeft:
		return mgl64.Vec3{minX, y, maxZ - uv.U*s}
	case FaceRight:
		return mgl64.Vec3{maxX, y, minZ + uv.U*s}
	default:
		return mgl64.Vec3{minX + uv.U*s, y, minZ}
	}
}
