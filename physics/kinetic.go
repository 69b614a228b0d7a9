package physics

import (
	"github.com/lixenwraith/vi-racer/vmath"
)

// Body is the minimal surface physics needs from a vehicle
// Renderers and UI never see this; only the simulation mutates bodies
type Body interface {
	Position() vmath.Vec2
	SetPosition(p vmath.Vec2)
	Velocity() vmath.Vec2
	SetVelocity(v vmath.Vec2)
	Heading() float64
	SetHeading(h float64)
	ApplyImpulse(dv vmath.Vec2)
}

// Kinetic is the default Body state: position, velocity and heading in world units
// Zero value is a body at the origin facing up, at rest
type Kinetic struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
	Rot float64
}

func (k *Kinetic) Position() vmath.Vec2       { return k.Pos }
func (k *Kinetic) SetPosition(p vmath.Vec2)   { k.Pos = p }
func (k *Kinetic) Velocity() vmath.Vec2       { return k.Vel }
func (k *Kinetic) SetVelocity(v vmath.Vec2)   { k.Vel = v }
func (k *Kinetic) Heading() float64           { return k.Rot }
func (k *Kinetic) SetHeading(h float64)       { k.Rot = h }
func (k *Kinetic) ApplyImpulse(dv vmath.Vec2) { k.Vel = k.Vel.Add(dv) }

// Integrate advances position by velocity over dt seconds: p = p + v*dt
func Integrate(b Body, dt float64) vmath.Vec2 {
	p := b.Position().Add(b.Velocity().Mul(dt))
	b.SetPosition(p)
	return p
}

// Speed returns the velocity magnitude
func Speed(b Body) float64 {
	return b.Velocity().Len()
}
