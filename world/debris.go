package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/debris"
	"github.com/lixenwraith/backrooms/parameter"
)

var (
	wallDebrisColor   = debris.Color{R: 240, G: 220, B: 80}
	pillarDebrisColor = debris.Color{R: 250, G: 230, B: 90}
	rubbleBaseColor   = debris.Color{R: 200, G: 180, B: 160}
)

func shiftColor(c debris.Color, delta int) debris.Color {
	ch := func(v uint8) uint8 {
		return uint8(max(0, min(255, int(v)+delta)))
	}
	return debris.Color{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}

// spawnImpact emits a small dust burst from the wall face center
func (w *World) spawnImpact(k WallKey, count int) {
	cx, cy, cz := WallCenter(k)
	r := w.rng
	ps := make([]debris.Particle, 0, count)
	for i := 0; i < count; i++ {
		pos := mgl64.Vec3{
			cx + r.Uniform(-halfThick, halfThick),
			cy + r.Uniform(-20, 20),
			cz + r.Uniform(-halfThick, halfThick),
		}
		speed := r.Uniform(3, 8)
		a := r.Uniform(0, 2*math.Pi)
		vel := mgl64.Vec3{math.Cos(a) * speed, r.Uniform(2, 8), math.Sin(a) * speed}
		ps = append(ps, debris.New(debris.Dust, pos, vel, shiftColor(wallDebrisColor, r.IntRange(-20, 20)), r))
	}
	w.debris.Add(ps...)
}

// spawnCollapse fills a box with outward-moving dust and rubble
// The burst shrinks as destructions accumulate
func (w *World) spawnCollapse(minX, minZ, maxX, maxZ float64, destroyed int, base debris.Color) {
	n := int(parameter.BurstCollapseBase / (1 + float64(destroyed)/20))
	n = max(parameter.BurstCollapseMin, n)
	chunks := n / parameter.BurstCollapseRubbleDiv

	r := w.rng
	cx, cz := (minX+maxX)/2, (minZ+maxZ)/2
	ps := make([]debris.Particle, 0, n+chunks)
	for i := 0; i < n+chunks; i++ {
		pos := mgl64.Vec3{
			r.Uniform(minX, maxX),
			r.Uniform(parameter.FloorY, parameter.WallHeight),
			r.Uniform(minZ, maxZ),
		}
		dx, dz := pos[0]-cx, pos[2]-cz
		dist := math.Hypot(dx, dz) + 0.1
		speed := r.Uniform(8, 20)
		vel := mgl64.Vec3{
			dx/dist*speed + r.Uniform(-3, 3),
			r.Uniform(-20, -5),
			dz/dist*speed + r.Uniform(-3, 3),
		}
		tier := debris.Dust
		if i >= n {
			tier = debris.Rubble
		}
		ps = append(ps, debris.New(tier, pos, vel, shiftColor(base, r.IntRange(-30, 30)), r))
	}
	w.debris.Add(ps...)
}

// SpawnRubblePile drops a settled pile where a decayed wall stood, once per key
func (w *World) SpawnRubblePile(k WallKey) bool {
	if _, done := w.rubbleSpawned[k]; done {
		return false
	}
	w.rubbleSpawned[k] = struct{}{}

	minX, minZ, maxX, maxZ := SpanRect(k, FullSpan(k))
	r := w.rng
	ps := make([]debris.Particle, 0, parameter.RubblePileCount)
	for i := 0; i < parameter.RubblePileCount; i++ {
		pos := mgl64.Vec3{r.Uniform(minX, maxX), parameter.FloorY, r.Uniform(minZ, maxZ)}
		ps = append(ps, debris.New(debris.Rubble, pos, mgl64.Vec3{}, shiftColor(rubbleBaseColor, r.IntRange(-40, 20)), r))
	}
	w.debris.Add(ps...)
	return true
}

// UpdateDebris integrates particles, culls around the player and enforces the cap
func (w *World) UpdateDebris(dt, playerX, playerZ float64) {
	w.debris.Update(dt, parameter.FloorY, playerX, playerZ, parameter.DebrisCullDistance)
}

// Debris exposes live particles for rendering
func (w *World) Debris() []debris.Particle { return w.debris.Particles() }

// DebrisCount returns the number of live particles
func (w *World) DebrisCount() int { return w.debris.Len() }
