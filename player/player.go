// Package player drives the raw first-person pose from input through the collision solver
package player

import (
	"math"

	"github.com/lixenwraith/backrooms/camera"
	"github.com/lixenwraith/backrooms/collision"
	"github.com/lixenwraith/backrooms/config"
	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// Input is one frame of held controls
// Crouch toggles on its rising edge, all other buttons act while held
type Input struct {
	Forward, Back           bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
	Run, Crouch, Jump       bool

	// LookDX and LookDY are pointer deltas, positive DY looks down
	LookDX, LookDY float64
}

// State is the persisted portion of the player
type State struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
	Pitch float64 `json:"pitch" yaml:"pitch"`
	Yaw   float64 `json:"yaw" yaml:"yaw"`
}

type Player struct {
	X, Y, Z    float64
	Pitch, Yaw float64

	cfg     config.PlayerConfig
	solver  *collision.Solver
	contact *collision.Contact

	velY      float64
	targetY   float64
	onGround  bool
	jumping   bool
	crouching bool
	crouchKey bool
	moving    bool
	rotating  bool
	running   bool
}

// New places a standing player at (x, z)
func New(cfg config.PlayerConfig, solver *collision.Solver, contact *collision.Contact, x, z float64) *Player {
	return &Player{
		X:        x,
		Y:        parameter.CameraHeightStand,
		Z:        z,
		cfg:      cfg,
		solver:   solver,
		contact:  contact,
		targetY:  parameter.CameraHeightStand,
		onGround: true,
	}
}

// Update applies one frame of input
// Returns the contact intensity of a new collision, or 0
func (p *Player) Update(dt float64, in Input) float64 {
	p.look(dt, in)

	if in.Crouch && !p.crouchKey {
		p.crouching = !p.crouching
		if p.crouching {
			p.targetY = parameter.CameraHeightCrouch
		} else {
			p.targetY = parameter.CameraHeightStand
		}
	}
	p.crouchKey = in.Crouch

	if in.Jump && p.onGround && !p.crouching {
		p.jumping = true
		p.onGround = false
		p.velY = parameter.JumpStrength
	}

	intensity := p.move(dt, in)
	p.vertical(dt)
	return intensity
}

func (p *Player) look(dt float64, in Input) {
	p.Yaw += in.LookDX * parameter.MouseSensitivity
	p.Pitch -= in.LookDY * parameter.MouseSensitivity

	p.rotating = false
	rot := parameter.RotationSpeed * dt
	if in.TurnLeft {
		p.Yaw -= rot
		p.rotating = true
	}
	if in.TurnRight {
		p.Yaw += rot
		p.rotating = true
	}
	p.Pitch = vmath.Clamp(p.Pitch, -parameter.PitchLimit, parameter.PitchLimit)
}

func (p *Player) move(dt float64, in Input) float64 {
	var speed float64
	p.running = false
	switch {
	case in.Run && !p.crouching:
		p.running = true
		speed = p.cfg.RunSpeed
	case p.crouching:
		speed = p.cfg.CrouchSpeed
	default:
		speed = p.cfg.WalkSpeed
	}
	speed *= dt

	fx, fz := camera.Forward(p.Yaw)
	var mx, mz float64
	p.moving = false
	if in.Forward {
		mx += fx * speed
		mz += fz * speed
		p.moving = true
	}
	if in.Back {
		mx -= fx * speed
		mz -= fz * speed
		p.moving = true
	}
	// Right is (cos, -sin)
	if in.StrafeLeft {
		mx -= fz * speed
		mz += fx * speed
		p.moving = true
	}
	if in.StrafeRight {
		mx += fz * speed
		mz -= fx * speed
		p.moving = true
	}

	if mx == 0 && mz == 0 {
		p.contact.Release()
		return 0
	}

	x, z, collided := p.solver.Resolve(p.X, p.Z, p.X+mx, p.Z+mz)
	p.X, p.Z = x, z
	return p.contact.Observe(x, z, math.Hypot(mx, mz), collided)
}

// vertical eases eye height toward the crouch target and integrates jumps
func (p *Player) vertical(dt float64) {
	if p.onGround && !p.jumping {
		if math.Abs(p.Y-p.targetY) > 0.1 {
			p.Y += (p.targetY - p.Y) * parameter.CrouchTransitionSpeed * dt
		} else {
			p.Y = p.targetY
		}
		return
	}

	p.velY -= parameter.Gravity * dt
	p.Y += p.velY * dt
	if p.velY < 0 && p.Y <= p.targetY {
		p.Y = p.targetY
		p.velY = 0
		p.jumping = false
		p.onGround = true
	}
}

// Pose returns the raw pose for the camera
func (p *Player) Pose() camera.Pose {
	return camera.Pose{X: p.X, Y: p.Y, Z: p.Z, Pitch: p.Pitch, Yaw: p.Yaw}
}

func (p *Player) Moving() bool    { return p.moving }
func (p *Player) Rotating() bool  { return p.rotating }
func (p *Player) Running() bool   { return p.running }
func (p *Player) Crouching() bool { return p.crouching }
func (p *Player) OnGround() bool  { return p.onGround }

// State captures the pose for saving
func (p *Player) State() State {
	return State{X: p.X, Y: p.Y, Z: p.Z, Pitch: p.Pitch, Yaw: p.Yaw}
}

// Load restores a saved pose, non-finite values are ignored
func (p *Player) Load(s State) {
	if vmath.IsFinite(s.X, s.Z) {
		p.X, p.Z = s.X, s.Z
	}
	if vmath.IsFinite(s.Y) {
		p.Y = s.Y
	}
	if vmath.IsFinite(s.Pitch, s.Yaw) {
		p.Pitch = vmath.Clamp(s.Pitch, -parameter.PitchLimit, parameter.PitchLimit)
		p.Yaw = s.Yaw
	}
	p.velY = 0
	p.jumping = false
	p.onGround = true
}
