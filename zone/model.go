package zone

import (
	"math"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// Coord identifies a zone on the zone grid
type Coord struct {
	X, Z int64
}

// At returns the zone containing world position (x, z)
func At(x, z float64) Coord {
	return Coord{
		X: vmath.FloorDivF(x, parameter.ZoneSize),
		Z: vmath.FloorDivF(z, parameter.ZoneSize),
	}
}

// Index selects the archetype slot for a zone
// Stateless: wrapping int64 arithmetic keeps the low 31 bits identical to unbounded integer math
func Index(c Coord, seed int64) int {
	h := (c.X*73856093 + c.Z*19349663 + seed*83492791) & 0x7fffffff
	return int(h % int64(Count))
}

// TypeOf returns the archetype of zone c
func TypeOf(c Coord, seed int64) Archetype {
	return archetypes[Index(c, seed)]
}

// Model memoizes zone lookups for one world seed
// Not safe for concurrent use
type Model struct {
	seed  int64
	cache map[Coord]Archetype
}

func NewModel(seed int64) *Model {
	return &Model{
		seed:  seed,
		cache: make(map[Coord]Archetype),
	}
}

func (m *Model) Seed() int64 { return m.seed }

// Reset drops the cache and switches to a new seed
func (m *Model) Reset(seed int64) {
	m.seed = seed
	clear(m.cache)
}

// Properties returns the archetype of zone c
func (m *Model) Properties(c Coord) Archetype {
	if a, ok := m.cache[c]; ok {
		return a
	}
	a := TypeOf(c, m.seed)
	m.cache[c] = a
	return a
}

// PropertiesAt returns the archetype governing world position (x, z)
func (m *Model) PropertiesAt(x, z float64) Archetype {
	return m.Properties(At(x, z))
}

// RoomSizeAt returns the local grid spacing at (x, z)
func (m *Model) RoomSizeAt(x, z float64) int64 {
	return m.PropertiesAt(x, z).RoomSize
}

// RoomSizesNear returns the distinct room sizes of all zones intersecting the square of half-side r around (x, z)
func (m *Model) RoomSizesNear(x, z, r float64) []int64 {
	lo := At(x-r, z-r)
	hi := At(x+r, z+r)
	var out []int64
	for zx := lo.X; zx <= hi.X; zx++ {
		for zz := lo.Z; zz <= hi.Z; zz++ {
			rs := m.Properties(Coord{zx, zz}).RoomSize
			dup := false
			for _, v := range out {
				if v == rs {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, rs)
			}
		}
	}
	return out
}

// CeilingHeightAt samples the ceiling height at (x, z)
// Mega-scale ceilings spread over the zone range, others jitter around the base wall height
func (m *Model) CeilingHeightAt(x, z float64) float64 {
	a := m.PropertiesAt(x, z)
	r := vmath.KeyStream(m.seed, "ceiling", int64(math.Floor(x)), int64(math.Floor(z)))
	if a.MaxCeiling > parameter.WallHeight*parameter.CeilingMegaFactor {
		return a.MinCeiling + (a.MaxCeiling-a.MinCeiling)*r.Float64()
	}
	return parameter.WallHeight + r.Uniform(-a.CeilingVariance, a.CeilingVariance)
}
