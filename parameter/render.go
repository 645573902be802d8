package parameter

// Render Pipeline
const (
	RenderDistance = 2000.0

	// FloorTileSize is the visual tile size for floor and ceiling quads
	FloorTileSize = 400

	// CullMargin is how far outside the screen a polygon may lie before it is skipped
	CullMargin = 500.0

	// MinPolygonExtent skips polygons narrower or shorter than this many pixels
	MinPolygonExtent = 0.5

	// BaseboardHeight is the darker strip drawn along the foot of each wall
	BaseboardHeight = 8.0

	// AOBand is the height of the floor and ceiling occlusion bands on walls
	AOBand = 20.0

	AOFloorFactor   = 0.7
	AOCeilingFactor = 0.8
)

// Fog
const (
	FogStart = 600.0
	FogEnd   = 1900.0
)

// Damage Tint
const (
	DamageTintFractured = 0.75
	DamageTintCracked   = 0.88

	// DamageHealthFractured/Cracked select the tint tier from health alone
	DamageHealthFractured = 0.5
	DamageHealthCracked   = 0.8
)

// Debris Sprites
const (
	DebrisRenderDistance = 600.0
	DebrisMaxSprite      = 3
)

// Render Scale
const (
	RenderScaleHigh  = 1.0
	RenderScaleLow   = 0.5
	RenderScaleSpeed = 2.0
)

// Flicker
const (
	FlickerChance     = 0.0003
	FlickerDuration   = 0.08
	FlickerBrightness = 0.15
)

// Textures
const (
	TextureSize = 64

	// TextureBlurRadius softens generated noise before averaging
	TextureBlurRadius = 1.5
)

// Overlay
const (
	// StrokeMinSpacing drops stroke points closer than this in UV space
	StrokeMinSpacing = 0.005

	// StrokeDotRadius is the radius in pixels of single-point strokes
	StrokeDotRadius = 3
)
