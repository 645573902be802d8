package world

import (
	"cmp"
	"fmt"
)

// GridPoint is a wall endpoint on some zone grid
type GridPoint struct {
	X int64 `json:"x" yaml:"x"`
	Z int64 `json:"z" yaml:"z"`
}

func comparePoints(a, b GridPoint) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}

// WallKey is the canonical unordered pair of wall endpoints, A sorts before B
type WallKey struct {
	A GridPoint `json:"a" yaml:"a"`
	B GridPoint `json:"b" yaml:"b"`
}

// NewWallKey canonicalizes the endpoint pair
func NewWallKey(x1, z1, x2, z2 int64) WallKey {
	a, b := GridPoint{x1, z1}, GridPoint{x2, z2}
	if comparePoints(a, b) > 0 {
		a, b = b, a
	}
	return WallKey{A: a, B: b}
}

// Horizontal reports a wall running along X
func (k WallKey) Horizontal() bool { return k.A.Z == k.B.Z }

// Span returns the axis-aligned length, or -1 for diagonal keys
func (k WallKey) Span() int64 {
	dx, dz := k.B.X-k.A.X, k.B.Z-k.A.Z
	switch {
	case dx != 0 && dz == 0:
		return dx
	case dz != 0 && dx == 0:
		return dz
	default:
		return -1
	}
}

// Mid returns the wall midpoint in the XZ plane
func (k WallKey) Mid() (float64, float64) {
	return float64(k.A.X+k.B.X) / 2, float64(k.A.Z+k.B.Z) / 2
}

func (k WallKey) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", k.A.X, k.A.Z, k.B.X, k.B.Z)
}

// PillarKey is the corner of a pillar box
type PillarKey struct {
	X int64 `json:"x" yaml:"x"`
	Z int64 `json:"z" yaml:"z"`
}

func (k PillarKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.X, k.Z)
}

// Opening is the gap carved into a wall
type Opening uint8

const (
	OpeningNone Opening = iota
	OpeningDoorway
	OpeningHallway
)

// Width returns the carved gap width
func (o Opening) Width() float64 {
	switch o {
	case OpeningHallway:
		return hallwayWidth
	case OpeningDoorway:
		return doorwayWidth
	default:
		return 0
	}
}

func (o Opening) String() string {
	switch o {
	case OpeningDoorway:
		return "doorway"
	case OpeningHallway:
		return "hallway"
	default:
		return "none"
	}
}

// WallState is the progressive damage state
type WallState uint8

const (
	Intact WallState = iota
	Cracked
	Fractured
	// Breaking is reserved, the damage thresholds never produce it
	Breaking
	Destroyed
)

func (s WallState) String() string {
	switch s {
	case Intact:
		return "intact"
	case Cracked:
		return "cracked"
	case Fractured:
		return "fractured"
	case Breaking:
		return "breaking"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("WallState(%d)", int(s))
	}
}

// UV is a normalized surface coordinate, U along the surface and V up from the floor
type UV struct {
	U, V float64
}

// Face selects one side of a pillar box
type Face uint8

const (
	FaceFront Face = iota // -Z side
	FaceBack              // +Z side
	FaceLeft              // -X side
	FaceRight             // +X side
)

// SurfaceKind distinguishes surfaces that accept overlays
type SurfaceKind uint8

const (
	SurfaceWall SurfaceKind = iota
	SurfacePillar
)

// SurfaceKey identifies a drawable surface, a wall or one pillar face
type SurfaceKey struct {
	Kind   SurfaceKind
	Wall   WallKey
	Pillar PillarKey
	Face   Face
}

func WallSurface(k WallKey) SurfaceKey { return SurfaceKey{Kind: SurfaceWall, Wall: k} }

func PillarSurface(k PillarKey, f Face) SurfaceKey {
	return SurfaceKey{Kind: SurfacePillar, Pillar: k, Face: f}
}

// Crack is a growing fracture line on a wall face
type Crack struct {
	Origin     UV
	Angle      float64
	Length     float64
	MaxLength  float64
	GrowthRate float64
}

// Grow extends the crack toward its max length
func (c *Crack) Grow(dt float64) {
	if c.Length >= c.MaxLength {
		return
	}
	c.Length = min(c.MaxLength, c.Length+c.GrowthRate*dt)
}
