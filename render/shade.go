package render

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// surfaceNoise is a small stable per-position brightness offset in [-2, 2]
func surfaceNoise(x, z float64) int {
	return int(vmath.FloorMod(int64(x)*13+int64(z)*17, 5)) - 2
}

// ambientOcclusion darkens wall polygons hugging the floor or the top seam
func ambientOcclusion(avgY, top float64) float64 {
	switch {
	case avgY < parameter.FloorY+parameter.AOBand:
		return parameter.AOFloorFactor
	case avgY > top-parameter.AOBand:
		return parameter.AOCeilingFactor
	default:
		return 1
	}
}

// damageTint picks the wall darkening tier from state or health, whichever is worse
func damageTint(fractured, cracked bool, health float64) float64 {
	switch {
	case fractured || health < parameter.DamageHealthFractured:
		return parameter.DamageTintFractured
	case cracked || health < parameter.DamageHealthCracked:
		return parameter.DamageTintCracked
	default:
		return 1
	}
}

// shade runs tint, noise, occlusion, fog and flicker in that order
func (r *Renderer) shade(base RGB, center mgl64.Vec3, dist float64, wall bool, top float64) RGB {
	c := r.surface(base, center)
	if wall {
		c = Scale(c, ambientOcclusion(center[1], top))
	}
	return r.fog(c, dist)
}

// surface applies the zone tint and position noise
func (r *Renderer) surface(base RGB, center mgl64.Vec3) RGB {
	tint := r.scene.Zones().PropertiesAt(center[0], center[2]).Tint
	return Offset(Tint(base, tint), surfaceNoise(center[0], center[2]))
}

// fog blends toward the background between fog start and end, then applies flicker
func (r *Renderer) fog(c RGB, dist float64) RGB {
	if r.cfg.FogEnabled {
		switch {
		case dist > r.cfg.FogEnd:
			c = r.fogColor
		case dist >= r.cfg.FogStart:
			t := (dist - r.cfg.FogStart) / (r.cfg.FogEnd - r.cfg.FogStart)
			c = FromColorful(c.Colorful().BlendRgb(r.fogColor.Colorful(), t))
		}
	}
	if r.brightness == 1 {
		return c
	}
	return Scale(c, r.brightness)
}
