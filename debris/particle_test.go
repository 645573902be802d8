package debris

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/backrooms/parameter"
	"github.com/lixenwraith/backrooms/vmath"
)

const floorY = parameter.FloorY

// TestZeroVelocitySettled verifies a still particle never moves and expires on settled age
func TestZeroVelocitySettled(t *testing.T) {
	rng := vmath.NewFastRand(1)
	start := mgl64.Vec3{10, floorY, 20}
	p := New(Dust, start, mgl64.Vec3{}, Color{200, 180, 160}, rng)

	if !p.Settled {
		t.Fatal("Expected zero-velocity particle to spawn settled")
	}

	p.Update(0.1, floorY)
	if p.SettledAge <= 0 {
		t.Error("Expected settled aging to begin on first update")
	}
	if p.Age != p.SettledAge {
		t.Errorf("Expected total age %f to track settled age, got %f", p.SettledAge, p.Age)
	}

	steps := 0
	for p.Active && steps < 10000 {
		p.Update(0.1, floorY)
		if p.Pos != start {
			t.Fatalf("Particle moved to %v", p.Pos)
		}
		steps++
	}
	if p.Active {
		t.Fatal("Expected particle to expire")
	}
	if p.SettledAge <= p.MaxSettled {
		t.Errorf("Expired before settled max age: %f <= %f", p.SettledAge, p.MaxSettled)
	}
	if p.MaxSettled < parameter.DustSettledAgeMin || p.MaxSettled > parameter.DustSettledAgeMax {
		t.Errorf("Settled max age %f outside dust range", p.MaxSettled)
	}
}

// TestFallAndSettle verifies ballistic fall, floor clamp and eventual settling
func TestFallAndSettle(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
	}{
		{"dust", Dust},
		{"rubble", Rubble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := vmath.NewFastRand(99)
			p := New(tt.tier, mgl64.Vec3{0, 100, 0}, mgl64.Vec3{3, 5, -2}, Color{}, rng)
			if p.Settled {
				t.Fatal("Moving particle spawned settled")
			}

			for i := 0; i < 2000 && !p.Settled; i++ {
				p.Update(1.0/60, floorY)
				if p.Pos[1] < floorY {
					t.Fatalf("Particle fell through floor: y=%f", p.Pos[1])
				}
			}

			if !p.Settled {
				t.Fatal("Expected particle to settle")
			}
			if p.Pos[1] != floorY {
				t.Errorf("Settled particle not on floor: %f", p.Pos[1])
			}
			if p.Vel != (mgl64.Vec3{}) {
				t.Errorf("Settled particle still moving: %v", p.Vel)
			}
		})
	}
}

// TestUnsettledExpiry verifies max age deactivates airborne particles
func TestUnsettledExpiry(t *testing.T) {
	rng := vmath.NewFastRand(5)
	p := New(Dust, mgl64.Vec3{0, 1e9, 0}, mgl64.Vec3{0, 1, 0}, Color{}, rng)
	for i := 0; i < 100 && p.Active; i++ {
		p.Update(1, floorY)
	}
	if p.Active {
		t.Error("Expected airborne particle to expire")
	}
	if p.Age < parameter.DustMaxAgeMin {
		t.Errorf("Expired too early at age %f", p.Age)
	}
}

// TestEitherExpiry verifies total age and settled age each deactivate a settled particle
func TestEitherExpiry(t *testing.T) {
	tests := []struct {
		name       string
		maxAge     float64
		maxSettled float64
		// lifetime is the expected expiry time in seconds
		lifetime float64
	}{
		{"total age first", 1, 5, 1},
		{"settled age first", 5, 1, 1},
		{"equal limits", 2, 2, 2},
	}

	const dt = 0.1
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := vmath.NewFastRand(11)
			p := New(Rubble, mgl64.Vec3{0, floorY, 0}, mgl64.Vec3{}, Color{}, rng)
			p.MaxAge = tt.maxAge
			p.MaxSettled = tt.maxSettled

			elapsed := 0.0
			for i := 0; i < 1000 && p.Active; i++ {
				p.Update(dt, floorY)
				elapsed += dt
			}
			if p.Active {
				t.Fatal("Expected particle to expire")
			}
			if elapsed > tt.lifetime+2*dt || elapsed < tt.lifetime {
				t.Errorf("Expected expiry near %.1fs, got %.2fs (age %.2f, settled %.2f)",
					tt.lifetime, elapsed, p.Age, p.SettledAge)
			}
		})
	}
}

// TestSettleKeepsTotalAge verifies a particle settling late still honors its max age
func TestSettleKeepsTotalAge(t *testing.T) {
	rng := vmath.NewFastRand(12)
	p := New(Dust, mgl64.Vec3{0, floorY + 20, 0}, mgl64.Vec3{1, 0, 0}, Color{}, rng)
	p.MaxSettled = 1000

	for i := 0; i < 100000 && p.Active; i++ {
		p.Update(1.0/60, floorY)
	}
	if p.Active {
		t.Fatal("Expected particle to expire")
	}
	if !p.Settled {
		t.Fatal("Expected particle to settle before expiring")
	}
	if p.Age > p.MaxAge+1.0/60+1e-9 {
		t.Errorf("Expected expiry at max age %f, got age %f", p.MaxAge, p.Age)
	}
}

// TestPoolCapKeepsNewest verifies trimming drops the oldest particles
func TestPoolCapKeepsNewest(t *testing.T) {
	rng := vmath.NewFastRand(3)
	pool := NewPool()
	pool.SetLimit(10)
	for i := 0; i < 25; i++ {
		pool.Add(New(Dust, mgl64.Vec3{float64(i), floorY, 0}, mgl64.Vec3{}, Color{}, rng))
	}

	pool.Update(0.01, floorY, 0, 0, parameter.DebrisCullDistance)

	if pool.Len() != 10 {
		t.Fatalf("Expected 10 particles, got %d", pool.Len())
	}
	if first := pool.Particles()[0].Pos[0]; first != 15 {
		t.Errorf("Expected oldest survivor x=15, got %f", first)
	}
	for i, d := range pool.items[pool.Len():cap(pool.items)] {
		if d != (Particle{}) {
			t.Fatalf("Expected trimmed slot %d zeroed, got %+v", i, d)
		}
	}
}

// TestPoolCull verifies distance culling around the player
func TestPoolCull(t *testing.T) {
	rng := vmath.NewFastRand(4)
	pool := NewPool()
	pool.Add(
		New(Dust, mgl64.Vec3{100, floorY, 0}, mgl64.Vec3{}, Color{}, rng),
		New(Dust, mgl64.Vec3{2000, floorY, 0}, mgl64.Vec3{}, Color{}, rng),
	)

	pool.Update(0.01, floorY, 0, 0, parameter.DebrisCullDistance)

	if pool.Len() != 1 {
		t.Fatalf("Expected 1 particle after cull, got %d", pool.Len())
	}
	if pool.Particles()[0].Pos[0] != 100 {
		t.Error("Wrong particle culled")
	}
}
