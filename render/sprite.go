package render

import (
	"cmp"
	"math"
	"slices"

	"github.com/lixenwraith/backrooms/parameter"
)

// sprite is a projected debris particle awaiting back-to-front drawing
type sprite struct {
	depth float64
	p     Point
	size  int
	color RGB
}

// drawDebris projects active particles within range and draws them far to near
// Size shrinks linearly with horizontal distance
func (r *Renderer) drawDebris() {
	cx, cz := r.cam.Smoothed.X, r.cam.Smoothed.Z
	const maxDist = parameter.DebrisRenderDistance

	r.sprites = r.sprites[:0]
	particles := r.scene.Debris()
	for i := range particles {
		d := &particles[i]
		if !d.Active {
			continue
		}
		dx, dz := d.Pos[0]-cx, d.Pos[2]-cz
		distSq := dx*dx + dz*dz
		if distSq > maxDist*maxDist {
			continue
		}
		c := r.cam.WorldToCamera(d.Pos)
		sx, sy, ok := r.cam.Project(c, r.w, r.h)
		if !ok || sx < 0 || sy < 0 || sx >= r.w || sy >= r.h {
			continue
		}
		size := max(1, int(parameter.DebrisMaxSprite*(1-math.Sqrt(distSq)/maxDist)))
		r.sprites = append(r.sprites, sprite{
			depth: c[2],
			p:     Point{sx, sy},
			size:  size,
			color: fromDebris(d.Color),
		})
	}

	slices.SortFunc(r.sprites, func(a, b sprite) int { return cmp.Compare(b.depth, a.depth) })
	for _, s := range r.sprites {
		if s.size == 1 {
			r.fb.Set(int(s.p.X), int(s.p.Y), s.color)
		} else {
			r.fb.Disc(int(s.p.X), int(s.p.Y), s.size, s.color)
		}
	}
	r.stats.Sprites = len(r.sprites)
}
