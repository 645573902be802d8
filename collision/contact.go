package collision

import (
	"math"

	"github.com/lixenwraith/backrooms/event"
	"github.com/lixenwraith/backrooms/parameter"
)

// Contact reports new collisions only, not sustained contact
type Contact struct {
	sink      event.Sink
	colliding bool
}

// NewContact emits EventCollision into sink, nil discards
func NewContact(sink event.Sink) *Contact {
	if sink == nil {
		sink = event.Discard{}
	}
	return &Contact{sink: sink}
}

// Observe records one resolve result and returns the intensity of a new contact, or 0
func (c *Contact) Observe(x, z, attempted float64, collided bool) float64 {
	wasColliding := c.colliding
	c.colliding = collided
	if !collided || wasColliding {
		return 0
	}

	intensity := math.Min(1, attempted/parameter.ContactIntensityScale)
	c.sink.Emit(event.Event{
		Type:    event.EventCollision,
		Payload: &event.CollisionPayload{X: x, Z: z, Intensity: intensity},
	})
	return intensity
}

func (c *Contact) Colliding() bool { return c.colliding }

// Release clears contact state when the body stops trying to move
func (c *Contact) Release() { c.colliding = false }
