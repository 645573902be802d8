package event

// EventType represents the type of structural or feedback event
type EventType int

const (
	// === Wall Event ===

	// EventWallHit signals a hit that left the wall state unchanged
	// Trigger: World.HitWall | Consumer: audio cues | Payload: *WallPayload
	EventWallHit EventType = iota + 1

	// EventWallCracked signals Intact -> Cracked
	// Trigger: World.HitWall | Consumer: audio cues | Payload: *WallPayload
	EventWallCracked

	// EventWallFractured signals entry into Fractured
	// Trigger: World.HitWall | Consumer: audio cues | Payload: *WallPayload
	EventWallFractured

	// EventWallBreaking is reserved for a transitional break visual, never emitted
	EventWallBreaking

	// EventWallDestroyed signals full collapse, progressive or instant
	// Trigger: World.HitWall, World.DestroyWall | Consumer: audio cues | Payload: *WallPayload
	EventWallDestroyed

	// === Pillar Event ===

	// EventPillarHit is reserved for progressive pillar damage
	EventPillarHit

	// EventPillarDestroyed signals pillar collapse
	// Trigger: World.DestroyPillar | Consumer: audio cues | Payload: *PillarPayload
	EventPillarDestroyed

	// === Feedback Event ===

	// EventCollision signals a new contact between the player body and geometry
	// Trigger: collision.Contact | Consumer: audio cues | Payload: *CollisionPayload
	EventCollision

	// EventFlicker signals a light flicker start
	// Trigger: render.Renderer | Consumer: audio buzz | Payload: *FlickerPayload
	EventFlicker
)

// Event is one emitted notification
type Event struct {
	Type    EventType
	Payload any
	Frame   int64
}
