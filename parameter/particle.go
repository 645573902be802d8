package parameter

// Debris Pool
const (
	// DebrisMax is the hard cap on live particles, newest kept
	DebrisMax = 12000

	// DebrisCullDistance deactivates particles farther than this from the player
	DebrisCullDistance = 900.0
)

// Dust Particles
const (
	DustGravity     = 40.0
	DustBounce      = 0.1
	DustGroundDrag  = 0.6
	DustSettleSpeed = 0.5
	DustSettleTime  = 0.3

	// DustMaxAgeMin/Max bound total lifetime in seconds, airborne plus settled
	DustMaxAgeMin = 8.0
	DustMaxAgeMax = 18.0

	// DustSettledAgeMin/Max bound settled lifetime in seconds
	DustSettledAgeMin = 2.0
	DustSettledAgeMax = 6.0
)

// Rubble Chunks
const (
	RubbleGravity     = 60.0
	RubbleBounce      = 0.05
	RubbleGroundDrag  = 0.4
	RubbleSettleSpeed = 0.3
	RubbleSettleTime  = 0.5

	// RubbleMaxAgeMin/Max bound total lifetime, airborne plus settled
	RubbleMaxAgeMin = 90.0
	RubbleMaxAgeMax = 180.0

	// RubbleSettledAgeMin/Max keep rubble piles around long after dust clears
	RubbleSettledAgeMin = 60.0
	RubbleSettledAgeMax = 120.0
)

// SettleHeight is the distance above the floor counted as resting
const SettleHeight = 0.5

// Burst Sizes
const (
	BurstHit       = 20
	BurstCracked   = 30
	BurstFractured = 60

	// BurstCollapseBase decays with the number of prior destructions, floored at BurstCollapseMin
	BurstCollapseBase = 1200
	BurstCollapseMin  = 250

	// BurstCollapseRubbleDiv yields one rubble chunk per this many dust particles
	BurstCollapseRubbleDiv = 8

	// RubblePileCount is the settled pile left where a pre-destroyed wall stood
	RubblePileCount = 80
)
