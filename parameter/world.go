package parameter

// World Geometry
const (
	// ZoneSize is the side length of one zone in world units
	ZoneSize = 10000

	// BaseRoomSize is the grid spacing of human-scale zones
	BaseRoomSize = 400

	// WallThickness is the full thickness of a wall slab
	WallThickness = 20.0

	// WallHeight is the top of every wall and pillar above world origin
	WallHeight = 400.0

	// FloorY is the floor plane height
	FloorY = -2.0

	// PillarSize is the side of a square pillar, anchored at its key corner
	PillarSize = 80.0

	// HallwayWidth is the gap carved for hallway openings
	HallwayWidth = 100.0

	// DoorwayWidth is the gap carved for doorway openings
	DoorwayWidth = 60.0

	// SpanTolerance is the slack allowed when matching a wall span to the zone room size
	SpanTolerance = 1.0

	// CollisionRangeRooms scales the collision search radius by the local room size
	CollisionRangeRooms = 2
)

// Procedural Rolls
const (
	// HallwayChance is the probability band [0, HallwayChance) yielding a hallway
	HallwayChance = 0.3

	// DoorwayChance is the upper bound of the doorway band [HallwayChance, DoorwayChance)
	DoorwayChance = 0.5

	// PreDamageMax is the upper bound of generation-time decay damage
	PreDamageMax = 0.5

	// PreDamageDestroyed destroys walls whose decay roll lands below it
	PreDamageDestroyed = 0.2

	// CeilingMegaFactor selects the zone ceiling range when max ceiling exceeds WallHeight by this factor
	CeilingMegaFactor = 1.5
)

// Pillar Density Modes
const (
	PillarChanceSparse = 0.1
	PillarChanceNormal = 0.3
	PillarChanceDense  = 0.6
)

// Progressive Damage
const (
	// DefaultHitDamage removes a quarter of health per hit
	DefaultHitDamage = 0.25

	// HealthCracked is the inclusive upper health of the cracked state
	HealthCracked = 0.6

	// HealthFractured is the inclusive upper health of the fractured state
	HealthFractured = 0.25

	// CrackMaxLengthMin/Max bound the final crack length in UV units
	CrackMaxLengthMin = 0.1
	CrackMaxLengthMax = 0.4

	// CrackGrowthMin/Max bound crack growth rate in UV units per second
	CrackGrowthMin = 0.4
	CrackGrowthMax = 1.0

	// FracturedExtraCracks is the number of random cracks added on each fractured hit
	FracturedExtraCracks = 2
)

// Targeting
const (
	// TargetReach is the maximum distance for hit and draw tools
	TargetReach = 100.0

	// RaySearchRadius bounds the ray query neighbourhood around the reference position
	RaySearchRadius = 200.0
)
