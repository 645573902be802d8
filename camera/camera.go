// Package camera holds the smoothed view pose and the perspective pipeline
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// Pose is a position plus pitch and yaw in radians
type Pose struct {
	X, Y, Z    float64
	Pitch, Yaw float64
}

// Pos returns the position as a vector
func (p Pose) Pos() mgl64.Vec3 { return mgl64.Vec3{p.X, p.Y, p.Z} }

// Camera follows a raw pose with exponential smoothing
// Only the smoothed pose is used for rendering and view rays
type Camera struct {
	Smoothed Pose

	smoothing    float64
	rotSmoothing float64
	headBob      bool

	bobTime   float64
	shake     float64
	shakeTime float64

	// rot maps world offsets into camera space, inv is its transpose
	rot, inv mgl64.Mat3
	focal    float64 // per unit of screen width
}

func New(cfg config.CameraConfig, start Pose) *Camera {
	c := &Camera{
		Smoothed:     start,
		smoothing:    cfg.Smoothing,
		rotSmoothing: cfg.RotationSmoothing,
		headBob:      cfg.HeadBob,
		focal:        0.5 / math.Tan(mgl64.DegToRad(parameter.FieldOfView/2)),
	}
	c.rebuild()
	return c
}

// Update moves the smoothed pose toward raw
// Smoothing relaxes to an instant follow while not moving or not rotating
func (c *Camera) Update(dt float64, raw Pose, moving, rotating bool) {
	var bobX, bobY float64
	if moving && c.headBob {
		c.bobTime += dt * parameter.HeadBobSpeed
		bobY = math.Sin(c.bobTime*2*math.Pi) * parameter.HeadBobAmount
		bobX = math.Sin(c.bobTime*math.Pi) * parameter.HeadBobSway
	}

	var shakePitch, shakeYaw float64
	if c.shake > 0 {
		c.shakeTime += dt
		amt := c.shake * parameter.CameraShakeAmount
		shakeYaw = math.Sin(c.shakeTime*13.7) * amt
		shakePitch = math.Cos(c.shakeTime*11.3) * amt
		c.shake = math.Max(0, c.shake-parameter.CameraShakeDecay*dt)
	}

	// Sway is applied across the view direction so it never pushes the eye forward
	sin, cos := math.Sincos(raw.Yaw)
	tx := raw.X + bobX*cos
	tz := raw.Z - bobX*sin
	ty := raw.Y + bobY

	move := 1.0
	if moving {
		move = c.smoothing
	}
	turn := 1.0
	if rotating {
		turn = c.rotSmoothing
	}

	s := &c.Smoothed
	s.X += (tx - s.X) * move
	s.Y += (ty - s.Y) * move
	s.Z += (tz - s.Z) * move
	s.Pitch += (raw.Pitch + shakePitch - s.Pitch) * turn
	s.Yaw += (raw.Yaw + shakeYaw - s.Yaw) * turn

	c.rebuild()
}

// Shake adds a decaying angular shake, intensity in [0, 1]
func (c *Camera) Shake(intensity float64) {
	c.shake = vmath.Clamp(math.Max(c.shake, intensity), 0, 1)
}

// Snap jumps the smoothed pose to p
func (c *Camera) Snap(p Pose) {
	c.Smoothed = p
	c.rebuild()
}

// rebuild caches yaw-then-pitch rotation
//
//	yaw:   x1 = x*cy - z*sy,  z1 = x*sy + z*cy
//	pitch: y2 = y*cp - z1*sp, z2 = y*sp + z1*cp
func (c *Camera) rebuild() {
	sy, cy := math.Sincos(c.Smoothed.Yaw)
	sp, cp := math.Sincos(c.Smoothed.Pitch)
	// Column-major
	yaw := mgl64.Mat3{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	}
	pitch := mgl64.Mat3{
		1, 0, 0,
		0, cp, sp,
		0, -sp, cp,
	}
	c.rot = pitch.Mul3(yaw)
	c.inv = c.rot.Transpose()
}

// WorldToCamera translates by the smoothed position, then applies yaw and pitch
func (c *Camera) WorldToCamera(p mgl64.Vec3) mgl64.Vec3 {
	return c.rot.Mul3x1(p.Sub(c.Smoothed.Pos()))
}

// Project maps a camera-space point to screen pixels on a w x h target
// Points at or behind the near plane and non-finite results are rejected
func (c *Camera) Project(p mgl64.Vec3, w, h float64) (float64, float64, bool) {
	z := p[2]
	if !(z > parameter.NearPlane) {
		return 0, 0, false
	}
	scale := c.focal * w / z
	sx := w*0.5 + p[0]*scale
	sy := h*0.5 - p[1]*scale
	if !vmath.IsFinite(sx, sy) {
		return 0, 0, false
	}
	return sx, sy, true
}

// ClipPolyNear clips a convex camera-space polygon to z >= near
// Returns nil when fewer than three vertices survive
func ClipPolyNear(poly []mgl64.Vec3) []mgl64.Vec3 {
	if len(poly) < 3 {
		return nil
	}
	const near = parameter.NearPlane
	inside := func(p mgl64.Vec3) bool { return p[2] >= near }

	out := make([]mgl64.Vec3, 0, len(poly)+2)
	prev := poly[len(poly)-1]
	prevIn := inside(prev)
	for _, cur := range poly {
		curIn := inside(cur)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			if p, ok := intersectNear(prev, cur); ok {
				out = append(out, p)
			}
			out = append(out, cur)
		case !curIn && prevIn:
			if p, ok := intersectNear(prev, cur); ok {
				out = append(out, p)
			}
		}
		prev, prevIn = cur, curIn
	}

	if len(out) < 3 {
		return nil
	}
	for _, p := range out {
		if !vmath.IsFinite(p[0], p[1], p[2]) || p[2] < near {
			return nil
		}
	}
	return out
}

// intersectNear places the crossing vertex just past the near plane so Project accepts it
func intersectNear(a, b mgl64.Vec3) (mgl64.Vec3, bool) {
	dz := b[2] - a[2]
	if math.Abs(dz) < 1e-5 {
		return mgl64.Vec3{}, false
	}
	t := vmath.Clamp((parameter.NearPlane-a[2])/dz, 0, 1)
	return mgl64.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		parameter.NearPlane + parameter.NearClipEpsilon,
	}, true
}

// Ray returns the smoothed eye position and the unit view direction through the screen center
func (c *Camera) Ray() (origin, dir mgl64.Vec3) {
	return c.Smoothed.Pos(), c.inv.Mul3x1(mgl64.Vec3{0, 0, 1})
}

// RayAt returns the world-space ray through pixel (sx, sy) of a w x h target
func (c *Camera) RayAt(sx, sy, w, h float64) (origin, dir mgl64.Vec3) {
	f := c.focal * w
	local := mgl64.Vec3{(sx - w*0.5) / f, (h*0.5 - sy) / f, 1}
	return c.Smoothed.Pos(), c.inv.Mul3x1(local).Normalize()
}

// Forward returns the horizontal unit heading for movement
func Forward(yaw float64) (x, z float64) {
	return math.Sin(yaw), math.Cos(yaw)
}
