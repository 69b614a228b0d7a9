package constants

import "time"

// Simulation Clock
const (
	// TickRate is the fixed simulation frequency in Hz
	TickRate = 60

	// TouchPollInterval is how often on-screen button state is sampled into the input record
	TouchPollInterval = time.Second / TickRate
)

// World
const (
	// CarRadius is the collision radius of every vehicle
	CarRadius = 16.0
)

// Player Motion
const (
	// PlayerAccel is the forward velocity gained per tick of throttle
	PlayerAccel = 12.0

	// PlayerMaxSpeed caps the player's velocity magnitude (units/s)
	PlayerMaxSpeed = 600.0

	// PlayerTurnRate is the heading change per tick of steering (radians)
	PlayerTurnRate = 0.065

	// ReverseRatio scales acceleration when braking/reversing
	ReverseRatio = 0.6

	// CoastFactor multiplies velocity every tick without throttle input
	CoastFactor = 0.96

	// BounceFactor is the magnitude of velocity reversal on collision
	BounceFactor = 0.3
)

// AI Motion
const (
	// AIAccel is the forward velocity gained per tick by AI drivers
	AIAccel = 10.0

	// AIMaxSpeed caps AI velocity magnitude (units/s)
	AIMaxSpeed = 550.0

	// AITurnRate is the per-tick rotation step AI uses when correcting heading
	AITurnRate = 0.05

	// AIAngleThreshold is the heading error below which AI drives straight
	AIAngleThreshold = 0.1

	// AIWaypointProximity is the distance at which AI advances to the next waypoint
	AIWaypointProximity = 60.0

	// AIGrip is the fraction of lateral velocity shed per tick by AI cars
	AIGrip = 0.08

	// DefaultAICount is the number of AI opponents in a race
	DefaultAICount = 2
)

// Collision
const (
	// PairImpulse is the velocity kick applied to each car in a car-car contact
	PairImpulse = 150.0

	// WallSparkCount is the number of particles emitted on wall contact
	WallSparkCount = 5
)

// Race
const (
	// PlayerCheckpointCooldown debounces player checkpoint crossings
	PlayerCheckpointCooldown = 500 * time.Millisecond

	// AICheckpointCooldown debounces AI checkpoint crossings
	AICheckpointCooldown = 1000 * time.Millisecond

	// SmokeInterval is the minimum sim time between tire smoke emissions per vehicle
	SmokeInterval = 50 * time.Millisecond
)
