package parameter

import "time"

// Player Movement
const (
	WalkSpeed   = 75.0
	RunSpeed    = 100.0
	CrouchSpeed = 50.0

	// RotationSpeed is keyboard turn rate in radians per second
	RotationSpeed = 2.0

	JumpStrength = 150.0
	Gravity      = 300.0

	CameraHeightStand  = 50.0
	CameraHeightCrouch = 30.0

	// CrouchTransitionSpeed is the exponential rate toward the target eye height
	CrouchTransitionSpeed = 5.0
)

// Collision Body
const (
	PlayerRadius = 15.0
	SkinWidth    = 0.5

	// CollisionIterations is the number of resolve passes per move
	CollisionIterations = 3

	// MinMoveDistance treats smaller displacements as no movement
	MinMoveDistance = 0.001

	// ContactIntensityScale maps attempted displacement to a [0,1] contact intensity
	ContactIntensityScale = 5.0
)

// MouseSensitivity converts pointer delta to radians
const MouseSensitivity = 0.002

// Keyboard Controls
const (
	// KeyHoldDuration keeps a control held after its last press or autorepeat
	KeyHoldDuration = 180 * time.Millisecond

	// KeyLookStep is the pointer-equivalent pitch delta per frame for look keys
	KeyLookStep = 20.0
)
