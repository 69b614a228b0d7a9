package physics

import (
	"github.com/lixenwraith/vi-racer/vmath"
)

// Steer rotates the body by one tick of turn rate; left wins when both are held
func Steer(b Body, p *Profile, left, right bool) {
	switch {
	case left:
		b.SetHeading(b.Heading() - p.TurnRate)
	case right:
		b.SetHeading(b.Heading() + p.TurnRate)
	}
}

// Throttle applies one tick of acceleration along the heading
// Forward wins over backward; with neither held velocity decays by the coast factor
// Returns true when forward throttle was applied
func Throttle(b Body, p *Profile, forward, backward bool) bool {
	dir := vmath.Forward(b.Heading())
	switch {
	case forward:
		b.ApplyImpulse(dir.Mul(p.Accel))
		return true
	case backward:
		b.ApplyImpulse(dir.Mul(-p.Accel * p.ReverseRatio))
	default:
		b.SetVelocity(b.Velocity().Mul(p.CoastFactor))
	}
	return false
}

// ApplyGrip removes a fraction of velocity perpendicular to the heading
func ApplyGrip(b Body, p *Profile) {
	if p.Grip <= 0 {
		return
	}
	along, lateral := vmath.Project(b.Velocity(), vmath.Forward(b.Heading()))
	b.SetVelocity(along.Add(lateral.Mul(1 - p.Grip)))
}

// CapSpeed limits the velocity magnitude to the profile max
// Returns true if velocity was clamped
func CapSpeed(b Body, p *Profile) bool {
	v, clamped := vmath.ClampMagnitude(b.Velocity(), p.MaxSpeed)
	if clamped {
		b.SetVelocity(v)
	}
	return clamped
}

// Bounce reverses and dampens velocity after a reported collision
func Bounce(b Body, p *Profile) {
	b.SetVelocity(b.Velocity().Mul(-p.Bounce))
}
