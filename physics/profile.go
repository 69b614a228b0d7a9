package physics

import (
	"github.com/lixenwraith/vi-racer/constants"
)

// Profile holds per-vehicle motion tuning
// Profiles are pre-defined as package variables and copied into vehicles
type Profile struct {
	Accel        float64 // Velocity gained per tick of forward throttle
	ReverseRatio float64 // Fraction of Accel applied when reversing
	TurnRate     float64 // Heading change per tick of steering (radians)
	CoastFactor  float64 // Velocity multiplier per tick without throttle
	MaxSpeed     float64 // Velocity magnitude cap (units/s)
	Bounce       float64 // Velocity reversal factor on collision
	Grip         float64 // Fraction of lateral velocity removed per tick, 0 = none
	Radius       float64 // Collision circle radius
}

// PlayerProfile is the human-driven car
var PlayerProfile = Profile{
	Accel:        constants.PlayerAccel,
	ReverseRatio: constants.ReverseRatio,
	TurnRate:     constants.PlayerTurnRate,
	CoastFactor:  constants.CoastFactor,
	MaxSpeed:     constants.PlayerMaxSpeed,
	Bounce:       constants.BounceFactor,
	Grip:         0,
	Radius:       constants.CarRadius,
}

// AIProfile is the opponent car, slower than the player
// Grip is an AI-only lateral damping term layered on top of the shared motion model
// so waypoint pursuit converges; the player profile leaves it at zero
var AIProfile = Profile{
	Accel:        constants.AIAccel,
	ReverseRatio: constants.ReverseRatio,
	TurnRate:     constants.AITurnRate,
	CoastFactor:  constants.CoastFactor,
	MaxSpeed:     constants.AIMaxSpeed,
	Bounce:       constants.BounceFactor,
	Grip:         constants.AIGrip,
	Radius:       constants.CarRadius,
}
