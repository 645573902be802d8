package debris

import (
	"github.com/lixenwraith/backrooms/parameter"
)

// Pool owns live particles in spawn order
type Pool struct {
	items []Particle
	limit int
}

func NewPool() *Pool {
	return &Pool{limit: parameter.DebrisMax}
}

// SetLimit overrides the hard cap, values below 1 restore the default
func (p *Pool) SetLimit(n int) {
	if n < 1 {
		n = parameter.DebrisMax
	}
	p.limit = n
}

func (p *Pool) Add(ps ...Particle) {
	p.items = append(p.items, ps...)
}

func (p *Pool) Len() int { return len(p.items) }

// Particles exposes the live slice for read-only iteration
func (p *Pool) Particles() []Particle { return p.items }

// Update integrates every particle, culls those beyond cullDist of (px, pz),
// compacts inactive entries and trims to the cap keeping the newest
func (p *Pool) Update(dt, floorY, px, pz, cullDist float64) {
	cullSq := cullDist * cullDist
	live := p.items[:0]
	for i := range p.items {
		d := &p.items[i]
		d.Update(dt, floorY)
		if !d.Active {
			continue
		}
		dx := d.Pos[0] - px
		dz := d.Pos[2] - pz
		if dx*dx+dz*dz > cullSq {
			continue
		}
		live = append(live, *d)
	}
	clear(p.items[len(live):])
	p.items = live

	if over := len(p.items) - p.limit; over > 0 {
		n := copy(p.items, p.items[over:])
		clear(p.items[n:])
		p.items = p.items[:n]
	}
}

func (p *Pool) Clear() {
	clear(p.items)
	p.items = p.items[:0]
}
