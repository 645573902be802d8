package graffiti

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/render"
	"github.com/lixenwraith/backrooms/world"
)

var _ render.Overlay = (*Store)(nil)

var (
	wallA   = world.WallSurface(world.NewWallKey(0, 0, 400, 0))
	wallB   = world.WallSurface(world.NewWallKey(0, 0, 0, 400))
	pillarF = world.PillarSurface(world.PillarKey{X: 200, Z: 200}, world.FaceFront)
	pillarL = world.PillarSurface(world.PillarKey{X: 200, Z: 200}, world.FaceLeft)
)

// TestStrokeLifecycle verifies begin, spaced adds and commit
func TestStrokeLifecycle(t *testing.T) {
	s := NewStore()
	s.Begin(wallA, world.UV{U: 0.5, V: 0.5})
	if !s.Add(world.UV{U: 0.6, V: 0.5}) {
		t.Error("Expected spaced point recorded")
	}
	if s.Add(world.UV{U: 0.601, V: 0.5}) {
		t.Error("Expected point within minimum spacing dropped")
	}

	if got := s.Strokes(wallA); len(got) != 1 || len(got[0]) != 2 {
		t.Fatalf("Expected in-progress stroke of 2 points visible, got %v", got)
	}
	if s.StrokeCount() != 0 {
		t.Error("Expected nothing committed before End")
	}

	s.End()
	if s.Active() || s.StrokeCount() != 1 {
		t.Errorf("Expected 1 committed stroke, got %d active=%v", s.StrokeCount(), s.Active())
	}
	if s.Add(world.UV{U: 0.1, V: 0.1}) {
		t.Error("Expected Add ignored without active stroke")
	}
	if got := s.Strokes(wallB); len(got) != 0 {
		t.Errorf("Expected no strokes on other surface, got %v", got)
	}
}

// TestClampUV verifies points stay in the unit square
func TestClampUV(t *testing.T) {
	s := NewStore()
	s.Begin(wallA, world.UV{U: -1, V: 2})
	s.End()
	got := s.Strokes(wallA)[0][0]
	if got != (world.UV{U: 0, V: 1}) {
		t.Errorf("Expected clamped (0, 1), got %v", got)
	}
}

// TestHitDrivenStrokes verifies hits on a new surface split strokes and floor hits are ignored
func TestHitDrivenStrokes(t *testing.T) {
	s := NewStore()
	if s.BeginAt(world.Hit{Kind: world.HitFloor, Point: mgl64.Vec3{0, 0, 0}}) {
		t.Error("Expected floor hit rejected")
	}

	pk := world.PillarKey{X: 200, Z: 200}
	s.BeginAt(world.Hit{Kind: world.HitPillar, Pillar: pk, Face: world.FaceFront, UV: world.UV{U: 0.2, V: 0.2}})
	s.AddAt(world.Hit{Kind: world.HitPillar, Pillar: pk, Face: world.FaceFront, UV: world.UV{U: 0.3, V: 0.2}})
	s.AddAt(world.Hit{Kind: world.HitPillar, Pillar: pk, Face: world.FaceLeft, UV: world.UV{U: 0.9, V: 0.2}})
	s.End()

	if got := len(s.Strokes(pillarF)); got != 1 {
		t.Errorf("Expected 1 stroke on front face, got %d", got)
	}
	if got := len(s.Strokes(pillarL)); got != 1 {
		t.Errorf("Expected 1 stroke on left face, got %d", got)
	}

	s.ClearPillar(pk)
	if s.StrokeCount() != 0 {
		t.Errorf("Expected pillar strokes cleared, got %d", s.StrokeCount())
	}
}

// TestSnapshotRestore verifies strokes survive a save cycle with canonical keys
func TestSnapshotRestore(t *testing.T) {
	s := NewStore()
	s.Begin(wallA, world.UV{U: 0.1, V: 0.1})
	s.Add(world.UV{U: 0.2, V: 0.2})
	s.End()
	s.Begin(pillarF, world.UV{U: 0.5, V: 0.5})
	s.End()

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("Expected 2 surfaces, got %d", len(snap))
	}
	if snap[0].Kind != world.SurfaceWall {
		t.Errorf("Expected walls ordered first, got %v", snap[0].Kind)
	}

	// Reverse the endpoints to mimic a hand-edited save
	snap[0].Wall = world.WallKey{A: snap[0].Wall.B, B: snap[0].Wall.A}

	r := NewStore()
	r.Restore(snap)
	if r.StrokeCount() != 2 {
		t.Errorf("Expected 2 strokes restored, got %d", r.StrokeCount())
	}
	if got := r.Strokes(wallA); len(got) != 1 || len(got[0]) != 2 {
		t.Errorf("Expected wall stroke under canonical key, got %v", got)
	}

	r.ClearAll()
	if r.StrokeCount() != 0 || r.Active() {
		t.Error("Expected empty store after ClearAll")
	}
}
