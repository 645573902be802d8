package render

import (
	"github.com/lixenwraith/backrooms/debris"
	"github.com/lixenwraith/backrooms/world"
	"github.com/lixenwraith/backrooms/zone"
)

// Scene is the read surface the renderer enumerates each frame
// SpawnRubblePile is the one write, it fires once per destroyed wall seen
type Scene interface {
	Zones() *zone.Model
	WallsNear(x, z, radius float64) []world.WallKey
	PillarsNear(x, z, radius float64) []world.PillarKey
	SolidSpans(k world.WallKey) []world.Span
	WallState(k world.WallKey) world.WallState
	WallHealth(k world.WallKey) float64
	Cracks(k world.WallKey) []world.Crack
	IsWallDestroyed(k world.WallKey) bool
	IsPillarDestroyed(k world.PillarKey) bool
	SpawnRubblePile(k world.WallKey) bool
	Debris() []debris.Particle
}

// Overlay supplies strokes drawn on top of a surface, each stroke a UV polyline
type Overlay interface {
	Strokes(s world.SurfaceKey) [][]world.UV
}

var _ Scene = (*world.World)(nil)
