// Package graffiti records freehand strokes on wall and pillar surfaces in UV space
package graffiti

import (
	"math"
	"slices"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/world"
)

// Store holds finished strokes per surface and at most one stroke in progress
type Store struct {
	strokes map[world.SurfaceKey][][]world.UV

	current []world.UV
	surface world.SurfaceKey
	active  bool
}

func NewStore() *Store {
	return &Store{strokes: make(map[world.SurfaceKey][][]world.UV)}
}

// Begin starts a stroke on surface, discarding any unfinished one
func (s *Store) Begin(surface world.SurfaceKey, uv world.UV) {
	s.current = []world.UV{clampUV(uv)}
	s.surface = surface
	s.active = true
}

// BeginAt starts a stroke at a ray hit, floor and ceiling hits are rejected
func (s *Store) BeginAt(h world.Hit) bool {
	surface, ok := h.Surface()
	if !ok {
		return false
	}
	s.Begin(surface, h.UV)
	return true
}

// Add extends the active stroke, points closer than the minimum spacing are dropped
// Returns true when the point was recorded
func (s *Store) Add(uv world.UV) bool {
	if !s.active {
		return false
	}
	uv = clampUV(uv)
	if n := len(s.current); n > 0 {
		last := s.current[n-1]
		if math.Hypot(uv.U-last.U, uv.V-last.V) <= parameter.StrokeMinSpacing {
			return false
		}
	}
	s.current = append(s.current, uv)
	return true
}

// AddAt extends the active stroke from a hit on the same surface
// A hit on another surface ends the stroke and begins a new one there
func (s *Store) AddAt(h world.Hit) bool {
	surface, ok := h.Surface()
	if !ok || !s.active {
		return false
	}
	if surface != s.surface {
		s.End()
		s.Begin(surface, h.UV)
		return true
	}
	return s.Add(h.UV)
}

// End commits the active stroke
func (s *Store) End() {
	if s.active && len(s.current) > 0 {
		s.strokes[s.surface] = append(s.strokes[s.surface], s.current)
	}
	s.current = nil
	s.active = false
}

func (s *Store) Active() bool { return s.active }

// Strokes returns the strokes of a surface including the one in progress
func (s *Store) Strokes(surface world.SurfaceKey) [][]world.UV {
	done := s.strokes[surface]
	if !s.active || surface != s.surface || len(s.current) == 0 {
		return done
	}
	out := make([][]world.UV, len(done), len(done)+1)
	copy(out, done)
	return append(out, s.current)
}

// Clear removes every stroke on one surface
func (s *Store) Clear(surface world.SurfaceKey) {
	delete(s.strokes, surface)
}

// ClearPillar removes strokes on all faces of a pillar
func (s *Store) ClearPillar(k world.PillarKey) {
	for surface := range s.strokes {
		if surface.Kind == world.SurfacePillar && surface.Pillar == k {
			delete(s.strokes, surface)
		}
	}
}

// ClearAll drops every stroke and any stroke in progress
func (s *Store) ClearAll() {
	clear(s.strokes)
	s.current = nil
	s.active = false
}

// StrokeCount returns the number of committed strokes
func (s *Store) StrokeCount() int {
	n := 0
	for _, st := range s.strokes {
		n += len(st)
	}
	return n
}

func clampUV(uv world.UV) world.UV {
	return world.UV{U: min(1, max(0, uv.U)), V: min(1, max(0, uv.V))}
}

// --- Persistence ---

// SurfaceStrokes is the saved form of one surface's strokes
type SurfaceStrokes struct {
	Kind    world.SurfaceKind `json:"kind" yaml:"kind"`
	Wall    world.WallKey     `json:"wall" yaml:"wall"`
	Pillar  world.PillarKey   `json:"pillar" yaml:"pillar"`
	Face    world.Face        `json:"face" yaml:"face"`
	Strokes [][]world.UV      `json:"strokes" yaml:"strokes"`
}

func (s SurfaceStrokes) key() world.SurfaceKey {
	return world.SurfaceKey{Kind: s.Kind, Wall: s.Wall, Pillar: s.Pillar, Face: s.Face}
}

// Snapshot returns committed strokes in a stable order
func (s *Store) Snapshot() []SurfaceStrokes {
	out := make([]SurfaceStrokes, 0, len(s.strokes))
	for k, st := range s.strokes {
		out = append(out, SurfaceStrokes{Kind: k.Kind, Wall: k.Wall, Pillar: k.Pillar, Face: k.Face, Strokes: st})
	}
	slices.SortFunc(out, func(a, b SurfaceStrokes) int {
		return compareSurface(a.key(), b.key())
	})
	return out
}

// Restore replaces all strokes with saved ones, wall keys are canonicalized
func (s *Store) Restore(saved []SurfaceStrokes) {
	s.ClearAll()
	for _, ss := range saved {
		k := ss.key()
		if k.Kind == world.SurfaceWall {
			k.Wall = world.NewWallKey(k.Wall.A.X, k.Wall.A.Z, k.Wall.B.X, k.Wall.B.Z)
		}
		for _, st := range ss.Strokes {
			if len(st) == 0 {
				continue
			}
			pts := make([]world.UV, len(st))
			for i, uv := range st {
				pts[i] = clampUV(uv)
			}
			s.strokes[k] = append(s.strokes[k], pts)
		}
	}
}

func compareSurface(a, b world.SurfaceKey) int {
	ka := [...]int64{int64(a.Kind), a.Wall.A.X, a.Wall.A.Z, a.Wall.B.X, a.Wall.B.Z, a.Pillar.X, a.Pillar.Z, int64(a.Face)}
	kb := [...]int64{int64(b.Kind), b.Wall.A.X, b.Wall.A.Z, b.Wall.B.X, b.Wall.B.Z, b.Pillar.X, b.Pillar.Z, int64(b.Face)}
	return slices.Compare(ka[:], kb[:])
}
