package input

// Control is a movement key that stays active while held
type Control uint8

const (
	ControlNone Control = iota
	ControlForward
	ControlBack
	ControlStrafeLeft
	ControlStrafeRight
	ControlTurnLeft
	ControlTurnRight
	ControlLookUp
	ControlLookDown
	ControlRun

	controlCount
)

// Intent is a one-shot command produced on key press
type Intent uint8

const (
	IntentNone Intent = iota

	// System
	IntentQuit
	IntentResize

	// Player toggles and impulses
	IntentCrouch
	IntentJump

	// Interaction
	IntentHit     // Damage the targeted wall or pillar
	IntentSpray   // Start or stop a graffiti stroke
	IntentErase   // Clear strokes on the targeted surface
	IntentEraseAll

	// Session
	IntentToggleScale
	IntentToggleOutlines
	IntentSave
	IntentLoad
	IntentScreenshot
)

// KeyEntry binds a key to a held control, a one-shot intent, or both
type KeyEntry struct {
	Control Control
	Intent  Intent
}

// Unbound reports whether the entry removes a binding
func (e KeyEntry) Unbound() bool {
	return e.Control == ControlNone && e.Intent == IntentNone
}
