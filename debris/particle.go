// Package debris integrates destruction particles
package debris

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

// Tier selects tuning constants
type Tier uint8

const (
	// Dust is light, short-lived impact debris
	Dust Tier = iota
	// Rubble is heavy, long-lived collapse debris
	Rubble
)

// Color is an 8-bit RGB triple
type Color struct {
	R, G, B uint8
}

type tuning struct {
	gravity, bounce, drag        float64
	settleSpeed, settleTime      float64
	maxAgeMin, maxAgeMax         float64
	settledAgeMin, settledAgeMax float64
	sizeMin, sizeMax             float64
}

var tunings = [...]tuning{
	Dust: {
		gravity: parameter.DustGravity, bounce: parameter.DustBounce, drag: parameter.DustGroundDrag,
		settleSpeed: parameter.DustSettleSpeed, settleTime: parameter.DustSettleTime,
		maxAgeMin: parameter.DustMaxAgeMin, maxAgeMax: parameter.DustMaxAgeMax,
		settledAgeMin: parameter.DustSettledAgeMin, settledAgeMax: parameter.DustSettledAgeMax,
		sizeMin: 1, sizeMax: 1,
	},
	Rubble: {
		gravity: parameter.RubbleGravity, bounce: parameter.RubbleBounce, drag: parameter.RubbleGroundDrag,
		settleSpeed: parameter.RubbleSettleSpeed, settleTime: parameter.RubbleSettleTime,
		maxAgeMin: parameter.RubbleMaxAgeMin, maxAgeMax: parameter.RubbleMaxAgeMax,
		settledAgeMin: parameter.RubbleSettledAgeMin, settledAgeMax: parameter.RubbleSettledAgeMax,
		sizeMin: 0.25, sizeMax: 0.6,
	},
}

// Particle is one debris piece
type Particle struct {
	Pos   mgl64.Vec3
	Vel   mgl64.Vec3
	Color Color
	Tier  Tier
	// Size scales the sprite, 1 for dust
	Size float64

	Active  bool
	Settled bool

	Age        float64
	SettledAge float64
	MaxAge     float64
	MaxSettled float64

	restTime float64
}

// New creates a particle; zero velocity spawns it settled
func New(tier Tier, pos, vel mgl64.Vec3, color Color, rng *vmath.FastRand) Particle {
	tn := &tunings[tier]
	p := Particle{
		Pos:        pos,
		Vel:        vel,
		Color:      color,
		Tier:       tier,
		Size:       rng.Uniform(tn.sizeMin, tn.sizeMax),
		Active:     true,
		MaxAge:     rng.Uniform(tn.maxAgeMin, tn.maxAgeMax),
		MaxSettled: rng.Uniform(tn.settledAgeMin, tn.settledAgeMax),
	}
	if tn.sizeMin == tn.sizeMax {
		p.Size = tn.sizeMin
	}
	if vel == (mgl64.Vec3{}) {
		p.Settled = true
	}
	return p
}

// Update advances one step against the floor plane at floorY
func (p *Particle) Update(dt, floorY float64) {
	if !p.Active {
		return
	}
	tn := &tunings[p.Tier]

	// Total age runs in both states, either limit expires the particle
	p.Age += dt
	if p.Age > p.MaxAge {
		p.Active = false
		return
	}

	if p.Settled {
		p.SettledAge += dt
		if p.SettledAge > p.MaxSettled {
			p.Active = false
		}
		return
	}

	p.Vel[1] -= tn.gravity * dt
	p.Pos = p.Pos.Add(p.Vel.Mul(dt))

	if p.Pos[1] <= floorY {
		p.Pos[1] = floorY
		p.Vel[1] = -p.Vel[1] * tn.bounce
		p.Vel[0] *= tn.drag
		p.Vel[2] *= tn.drag
	}

	speed := p.Vel.Len()
	if speed < tn.settleSpeed && math.Abs(p.Pos[1]-floorY) < parameter.SettleHeight {
		p.restTime += dt
		if p.restTime > tn.settleTime {
			p.Settled = true
			p.Vel = mgl64.Vec3{}
			p.Pos[1] = floorY
		}
	} else {
		p.restTime = 0
	}
}
