package parameter

import "time"

// Deferred Events
const (
	// DeferredEventCapacity bounds structural events held between flushes, power of two
	DeferredEventCapacity = 1024

	// DeferredEventMask wraps ring cursors onto slots
	DeferredEventMask = DeferredEventCapacity - 1
)

// Frame Loop
const (
	// TargetFPS caps the interactive viewer frame rate
	TargetFPS = 30

	// FrameInterval is the ticker period for TargetFPS
	FrameInterval = time.Second / TargetFPS

	// MaxFrameDelta clamps simulation steps after stalls, in seconds
	MaxFrameDelta = 0.1
)
