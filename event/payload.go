package event

import "github.com/go-gl/mathgl/mgl64"

// WallPayload identifies a wall by its canonical endpoints
type WallPayload struct {
	X1, Z1, X2, Z2 int64
	Position       mgl64.Vec3
	// Health is remaining health, zero once destroyed
	Health float64
}

type PillarPayload struct {
	X, Z     int64
	Position mgl64.Vec3
}

type CollisionPayload struct {
	X, Z float64
	// Intensity is normalized attempted displacement in [0, 1]
	Intensity float64
}

type FlickerPayload struct {
	Duration float64
}
