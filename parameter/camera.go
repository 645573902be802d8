package parameter

// Camera smoothing and projection
const (
	// CameraSmoothing is the per-frame translation follow factor while moving
	CameraSmoothing = 0.25

	// RotationSmoothing is the per-frame rotation follow factor while turning
	RotationSmoothing = 0.3

	// NearPlane is the camera-space depth below which geometry is clipped
	NearPlane = 1.0

	// NearClipEpsilon offsets generated clip vertices past the near plane so projection accepts them
	NearClipEpsilon = 0.001

	// FieldOfView is the horizontal field of view in degrees
	FieldOfView = 90.0

	// PitchLimit keeps pitch strictly inside ±90°
	PitchLimit = 1.5607963267948966 // π/2 - 0.01
)

// Head bob and shake
const (
	HeadBobSpeed  = 3.0
	HeadBobAmount = 4.0
	HeadBobSway   = 1.5

	// CameraShakeAmount is the peak angular shake in radians at full intensity
	CameraShakeAmount = 0.08

	// CameraShakeDecay is shake intensity lost per second
	CameraShakeDecay = 4.0
)
