package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
	"github.com/lixenwraith/backrooms/world"
)

const halfThick = parameter.WallThickness / 2

// box is an axis-aligned XZ footprint extruded from the floor
type box struct {
	minX, minZ, maxX, maxZ float64
}

// faceQuad returns face f of the box between heights lo and hi, top edge first
func (b box) faceQuad(f world.Face, lo, hi float64) []mgl64.Vec3 {
	var ax, az, bx, bz float64
	switch f {
	case world.FaceFront:
		ax, az, bx, bz = b.minX, b.minZ, b.maxX, b.minZ
	case world.FaceBack:
		ax, az, bx, bz = b.maxX, b.maxZ, b.minX, b.maxZ
	case world.FaceLeft:
		ax, az, bx, bz = b.minX, b.maxZ, b.minX, b.minZ
	default:
		ax, az, bx, bz = b.maxX, b.minZ, b.maxX, b.maxZ
	}
	return []mgl64.Vec3{{ax, hi, az}, {bx, hi, bz}, {bx, lo, bz}, {ax, lo, az}}
}

// facing reports whether face f of the box is turned toward (x, z)
// Visible faces of a convex box never overlap, so no per-face sort is needed
func (b box) facing(f world.Face, x, z float64) bool {
	switch f {
	case world.FaceFront:
		return z < b.minZ
	case world.FaceBack:
		return z > b.maxZ
	case world.FaceLeft:
		return x < b.minX
	default:
		return x > b.maxX
	}
}

var allFaces = [4]world.Face{world.FaceFront, world.FaceBack, world.FaceLeft, world.FaceRight}

// --- Pillars ---

func (r *Renderer) drawPillar(k world.PillarKey) {
	minX, minZ, maxX, maxZ := world.PillarRect(k)
	b := box{minX, minZ, maxX, maxZ}
	h := r.scene.Zones().CeilingHeightAt((minX+maxX)/2, (minZ+maxZ)/2)
	cx, cz := r.cam.Smoothed.X, r.cam.Smoothed.Z

	st := polyStyle{
		base:    r.tex.Pillar.Average,
		edge:    FromColorful(r.colors.PillarEdge),
		outline: true,
	}
	for _, f := range allFaces {
		if !b.facing(f, cx, cz) {
			continue
		}
		r.drawPoly(b.faceQuad(f, parameter.FloorY, h), st)
		if r.overlay != nil {
			r.drawStrokes(r.overlay.Strokes(world.PillarSurface(k, f)), func(uv world.UV) mgl64.Vec3 {
				return world.PillarPoint(k, f, uv)
			})
		}
	}
}

// --- Walls ---

// wallStyle is the damage-tinted color set of one wall
type wallStyle struct {
	face, side, baseboard polyStyle
}

func (r *Renderer) wallStyle(k world.WallKey, top float64) wallStyle {
	state := r.scene.WallState(k)
	tier := damageTint(state == world.Fractured, state == world.Cracked, r.scene.WallHealth(k))

	wall := Scale(r.tex.Wall.Average, tier)
	edge := Scale(FromColorful(r.colors.WallEdge), tier)
	return wallStyle{
		face:      polyStyle{base: wall, edge: edge, outline: true, wall: true, top: top},
		side:      polyStyle{base: Lerp(wall, edge, 0.25), edge: edge, outline: true, wall: true, top: top},
		baseboard: polyStyle{base: Scale(edge, 0.95), wall: true, top: top},
	}
}

func (r *Renderer) drawWall(k world.WallKey) {
	mx, mz := k.Mid()
	h := r.scene.Zones().CeilingHeightAt(mx, mz)
	style := r.wallStyle(k, h)
	cx, cz := r.cam.Smoothed.X, r.cam.Smoothed.Z

	long := [2]world.Face{world.FaceFront, world.FaceBack}
	caps := [2]world.Face{world.FaceLeft, world.FaceRight}
	if !k.Horizontal() {
		long, caps = caps, long
	}

	board := parameter.FloorY + parameter.BaseboardHeight
	for _, s := range r.scene.SolidSpans(k) {
		minX, minZ, maxX, maxZ := world.SpanRect(k, s)
		b := box{minX, minZ, maxX, maxZ}
		for _, f := range long {
			if b.facing(f, cx, cz) {
				r.drawPoly(b.faceQuad(f, board, h), style.face)
				r.drawPoly(b.faceQuad(f, parameter.FloorY, board), style.baseboard)
			}
		}
		for _, f := range caps {
			if b.facing(f, cx, cz) {
				r.drawPoly(b.faceQuad(f, parameter.FloorY, h), style.side)
			}
		}
	}

	toFace := r.wallFaceMapper(k, cx, cz)
	r.drawCracks(r.scene.Cracks(k), toFace)
	if r.overlay != nil {
		r.drawStrokes(r.overlay.Strokes(world.WallSurface(k)), toFace)
	}
}

// wallFaceMapper maps wall UV onto whichever long face the camera sees
func (r *Renderer) wallFaceMapper(k world.WallKey, cx, cz float64) func(world.UV) mgl64.Vec3 {
	return func(uv world.UV) mgl64.Vec3 {
		p := world.WallPoint(k, uv)
		if k.Horizontal() {
			if cz < p[2] {
				p[2] -= halfThick
			} else {
				p[2] += halfThick
			}
		} else {
			if cx < p[0] {
				p[0] -= halfThick
			} else {
				p[0] += halfThick
			}
		}
		return p
	}
}

// drawCracks draws each crack as a dark double line centered on its origin
func (r *Renderer) drawCracks(cracks []world.Crack, toFace func(world.UV) mgl64.Vec3) {
	if len(cracks) == 0 {
		return
	}
	dark := FromColorful(r.colors.Crack)
	darker := Scale(dark, 0.67)
	for _, c := range cracks {
		if c.Length <= 0 {
			continue
		}
		du := math.Cos(c.Angle) * c.Length / 2
		dv := math.Sin(c.Angle) * c.Length / 2
		a := world.UV{U: vmath.Clamp(c.Origin.U-du, 0, 1), V: vmath.Clamp(c.Origin.V-dv, 0, 1)}
		b := world.UV{U: vmath.Clamp(c.Origin.U+du, 0, 1), V: vmath.Clamp(c.Origin.V+dv, 0, 1)}
		p1, ok1 := r.project(toFace(a))
		p2, ok2 := r.project(toFace(b))
		if !ok1 || !ok2 {
			continue
		}
		r.fb.Line(p1, p2, 2, dark)
		r.fb.Line(Point{p1.X + 1, p1.Y}, Point{p2.X + 1, p2.Y}, 1, darker)
	}
}

// drawStrokes draws overlay polylines, single points become dots
func (r *Renderer) drawStrokes(strokes [][]world.UV, toWorld func(world.UV) mgl64.Vec3) {
	if len(strokes) == 0 {
		return
	}
	ink := FromColorful(r.colors.Stroke)
	var pts []Point
	for _, stroke := range strokes {
		pts = pts[:0]
		for _, uv := range stroke {
			if p, ok := r.project(toWorld(uv)); ok {
				pts = append(pts, p)
			}
		}
		switch len(pts) {
		case 0:
		case 1:
			r.fb.Disc(int(pts[0].X), int(pts[0].Y), parameter.StrokeDotRadius, ink)
		default:
			for i := 0; i+1 < len(pts); i++ {
				r.fb.Line(pts[i], pts[i+1], parameter.StrokeDotRadius, ink)
			}
		}
	}
}
