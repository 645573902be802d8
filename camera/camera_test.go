package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/parameter"
)

const eps = 1e-9

func newTestCamera(p Pose) *Camera {
	cfg := config.Default().Camera
	cfg.HeadBob = false
	return New(cfg, p)
}

func vecNear(a, b mgl64.Vec3, tol float64) bool {
	return math.Abs(a[0]-b[0]) < tol && math.Abs(a[1]-b[1]) < tol && math.Abs(a[2]-b[2]) < tol
}

// TestWorldToCameraYawThenPitch verifies the transform matches explicit yaw then pitch trig
func TestWorldToCameraYawThenPitch(t *testing.T) {
	pose := Pose{X: 30, Y: 50, Z: -20, Pitch: 0.3, Yaw: 1.1}
	c := newTestCamera(pose)

	p := mgl64.Vec3{120, 10, 340}
	x, y, z := p[0]-pose.X, p[1]-pose.Y, p[2]-pose.Z
	cy, sy := math.Cos(pose.Yaw), math.Sin(pose.Yaw)
	x1 := x*cy - z*sy
	z1 := x*sy + z*cy
	cp, sp := math.Cos(pose.Pitch), math.Sin(pose.Pitch)
	want := mgl64.Vec3{x1, y*cp - z1*sp, y*sp + z1*cp}

	got := c.WorldToCamera(p)
	if !vecNear(got, want, 1e-9) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestProjectCenterAndEdge verifies the 90° horizontal field of view
func TestProjectCenterAndEdge(t *testing.T) {
	c := newTestCamera(Pose{})
	const w, h = 160.0, 90.0

	sx, sy, ok := c.Project(mgl64.Vec3{0, 0, 100}, w, h)
	if !ok || math.Abs(sx-w/2) > eps || math.Abs(sy-h/2) > eps {
		t.Errorf("Expected center (80, 45), got (%v, %v) ok=%v", sx, sy, ok)
	}

	sx, _, ok = c.Project(mgl64.Vec3{100, 0, 100}, w, h)
	if !ok || math.Abs(sx-w) > 1e-9 {
		t.Errorf("Expected 45° point on right edge, got %v ok=%v", sx, ok)
	}

	_, sy, ok = c.Project(mgl64.Vec3{0, 10, 100}, w, h)
	if !ok || sy >= h/2 {
		t.Errorf("Expected point above axis to project above center, got %v", sy)
	}
}

// TestProjectRejectsNearAndNonFinite verifies points at or behind the near plane are dropped
func TestProjectRejectsNearAndNonFinite(t *testing.T) {
	c := newTestCamera(Pose{})
	cases := []mgl64.Vec3{
		{0, 0, parameter.NearPlane},
		{0, 0, 0.5},
		{0, 0, -10},
		{math.Inf(1), 0, 10},
		{math.NaN(), 0, 10},
		{0, 0, math.NaN()},
	}
	for _, p := range cases {
		if _, _, ok := c.Project(p, 100, 100); ok {
			t.Errorf("Expected %v rejected", p)
		}
	}
}

// TestClipPolyNear verifies a straddling triangle becomes a quad fully past the near plane
func TestClipPolyNear(t *testing.T) {
	tri := []mgl64.Vec3{
		{0, 0, -10},
		{10, 0, 10},
		{-10, 0, 10},
	}
	out := ClipPolyNear(tri)
	if len(out) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(out))
	}
	for _, p := range out {
		if p[2] < parameter.NearPlane {
			t.Errorf("Expected z >= near, got %v", p)
		}
	}

	behind := []mgl64.Vec3{{0, 0, -1}, {1, 0, -1}, {0, 1, -2}}
	if got := ClipPolyNear(behind); got != nil {
		t.Errorf("Expected nil for fully clipped polygon, got %v", got)
	}

	inFront := []mgl64.Vec3{{0, 0, 5}, {1, 0, 5}, {0, 1, 6}}
	if got := ClipPolyNear(inFront); len(got) != 3 {
		t.Errorf("Expected unchanged triangle, got %d vertices", len(got))
	}

	if got := ClipPolyNear(inFront[:2]); got != nil {
		t.Errorf("Expected nil for degenerate input, got %v", got)
	}
}

// TestRayDirection verifies the center ray follows yaw and pitch
func TestRayDirection(t *testing.T) {
	c := newTestCamera(Pose{X: 1, Y: 2, Z: 3, Yaw: math.Pi / 2})
	origin, dir := c.Ray()
	if origin != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Expected origin at smoothed pose, got %v", origin)
	}
	if !vecNear(dir, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("Expected +X at yaw π/2, got %v", dir)
	}

	c.Snap(Pose{Pitch: 0.5})
	_, dir = c.Ray()
	want := mgl64.Vec3{0, math.Sin(0.5), math.Cos(0.5)}
	if !vecNear(dir, want, 1e-9) {
		t.Errorf("Expected %v for positive pitch, got %v", want, dir)
	}

	fx, fz := Forward(1.1)
	c.Snap(Pose{Yaw: 1.1})
	_, dir = c.Ray()
	if math.Abs(dir[0]-fx) > 1e-9 || math.Abs(dir[2]-fz) > 1e-9 {
		t.Errorf("Expected Forward to match level view ray, got (%v, %v) vs %v", fx, fz, dir)
	}
}

// TestRayAtInvertsProject verifies a pixel ray passes back through the projected point
func TestRayAtInvertsProject(t *testing.T) {
	c := newTestCamera(Pose{X: 10, Y: 50, Z: 10, Pitch: -0.2, Yaw: 0.7})
	const w, h = 320.0, 180.0
	p := mgl64.Vec3{200, 30, 250}

	sx, sy, ok := c.Project(c.WorldToCamera(p), w, h)
	if !ok {
		t.Fatal("Expected point in front of camera")
	}
	origin, dir := c.RayAt(sx, sy, w, h)
	want := p.Sub(origin).Normalize()
	if !vecNear(dir, want, 1e-9) {
		t.Errorf("Expected %v, got %v", want, dir)
	}
}

// TestSmoothing verifies partial follow while moving and instant follow at rest
func TestSmoothing(t *testing.T) {
	c := newTestCamera(Pose{})
	target := Pose{X: 100, Y: 40, Z: -100, Yaw: 1}

	c.Update(1.0/30, target, true, true)
	if math.Abs(c.Smoothed.X-100*parameter.CameraSmoothing) > eps {
		t.Errorf("Expected X %v, got %v", 100*parameter.CameraSmoothing, c.Smoothed.X)
	}
	if math.Abs(c.Smoothed.Yaw-parameter.RotationSmoothing) > eps {
		t.Errorf("Expected yaw %v, got %v", parameter.RotationSmoothing, c.Smoothed.Yaw)
	}

	c.Update(1.0/30, target, false, false)
	if !vecNear(c.Smoothed.Pos(), target.Pos(), eps) || math.Abs(c.Smoothed.Yaw-target.Yaw) > eps {
		t.Errorf("Expected snap to %v, got %v", target, c.Smoothed)
	}
}

// TestShakeDecays verifies shake perturbs the view then settles
func TestShakeDecays(t *testing.T) {
	c := newTestCamera(Pose{})
	c.Shake(1)
	c.Update(0.05, Pose{}, false, false)
	if c.Smoothed.Yaw == 0 && c.Smoothed.Pitch == 0 {
		t.Error("Expected shake to perturb rotation")
	}
	for range 60 {
		c.Update(0.05, Pose{}, false, false)
	}
	if c.Smoothed.Yaw != 0 || c.Smoothed.Pitch != 0 {
		t.Errorf("Expected shake settled, got pitch=%v yaw=%v", c.Smoothed.Pitch, c.Smoothed.Yaw)
	}
}

// TestHeadBob verifies bob only applies while moving
func TestHeadBob(t *testing.T) {
	cfg := config.Default().Camera
	cfg.HeadBob = true
	c := New(cfg, Pose{Y: 50})

	c.Update(0.1, Pose{Y: 50}, false, false)
	if c.Smoothed.Y != 50 {
		t.Errorf("Expected no bob at rest, got %v", c.Smoothed.Y)
	}
	c.Update(0.1, Pose{Y: 50}, true, false)
	if c.Smoothed.Y == 50 {
		t.Error("Expected vertical bob while moving")
	}
}
