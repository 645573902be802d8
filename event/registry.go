package event

import "fmt"

var typeToName = map[EventType]string{
	EventWallHit:         "WallHit",
	EventWallCracked:     "WallCracked",
	EventWallFractured:   "WallFractured",
	EventWallBreaking:    "WallBreaking",
	EventWallDestroyed:   "WallDestroyed",
	EventPillarHit:       "PillarHit",
	EventPillarDestroyed: "PillarDestroyed",
	EventCollision:       "Collision",
	EventFlicker:         "Flicker",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeToName))
	for t, n := range typeToName {
		m[n] = t
	}
	return m
}()

// String returns the registered name or a numeric fallback
func (t EventType) String() string {
	if n, ok := typeToName[t]; ok {
		return n
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

// Structural reports wall and pillar events
func (t EventType) Structural() bool {
	return t >= EventWallHit && t <= EventPillarDestroyed
}
