package physics

import (
	"math"

	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// FallbackNormal separates coincident bodies when no direction can be derived
var FallbackNormal = vmath.Vec2{1, 0}

// Contact describes a resolved collision
type Contact struct {
	Point  vmath.Vec2 // World-space contact point, used for particle effects
	Normal vmath.Vec2 // Unit separation direction, pointing away from the obstacle
	Depth  float64    // Penetration depth before correction
}

// ResolveWall separates a circular body from a wall rectangle and bounces it
// Returns the contact and true when the body overlapped the wall
func ResolveWall(b Body, p *Profile, wall track.Rect) (Contact, bool) {
	c, ok := circleRect(b.Position(), p.Radius, wall)
	if !ok {
		return Contact{}, false
	}

	b.SetPosition(b.Position().Add(c.Normal.Mul(c.Depth)))
	Bounce(b, p)
	return c, true
}

// ResolveWalls pushes a body out of every wall it overlaps and bounces it once
// Returns one contact per overlapped wall
func ResolveWalls(b Body, p *Profile, walls []track.Rect) []Contact {
	var contacts []Contact
	for _, w := range walls {
		c, ok := circleRect(b.Position(), p.Radius, w)
		if !ok {
			continue
		}
		b.SetPosition(b.Position().Add(c.Normal.Mul(c.Depth)))
		contacts = append(contacts, c)
	}
	if len(contacts) > 0 {
		Bounce(b, p)
	}
	return contacts
}

// circleRect computes the minimum translation to push a circle out of a rectangle
func circleRect(center vmath.Vec2, radius float64, r track.Rect) (Contact, bool) {
	closest := vmath.Vec2{
		clamp(center.X(), r.Min.X(), r.Max.X()),
		clamp(center.Y(), r.Min.Y(), r.Max.Y()),
	}
	d := center.Sub(closest)
	dist := d.Len()

	if dist >= radius {
		return Contact{}, false
	}

	if dist > 0 {
		n := d.Mul(1 / dist)
		return Contact{Point: closest, Normal: n, Depth: radius - dist}, true
	}

	// Center inside the rectangle: exit through the nearest edge
	left := center.X() - r.Min.X()
	right := r.Max.X() - center.X()
	top := center.Y() - r.Min.Y()
	bottom := r.Max.Y() - center.Y()

	c := Contact{Normal: vmath.Vec2{-1, 0}, Depth: left + radius, Point: vmath.Vec2{r.Min.X(), center.Y()}}
	if right < left && right <= top && right <= bottom {
		c = Contact{Normal: vmath.Vec2{1, 0}, Depth: right + radius, Point: vmath.Vec2{r.Max.X(), center.Y()}}
	} else if top < left && top <= right && top <= bottom {
		c = Contact{Normal: vmath.Vec2{0, -1}, Depth: top + radius, Point: vmath.Vec2{center.X(), r.Min.Y()}}
	} else if bottom < left && bottom < right && bottom < top {
		c = Contact{Normal: vmath.Vec2{0, 1}, Depth: bottom + radius, Point: vmath.Vec2{center.X(), r.Max.Y()}}
	}
	return c, true
}

// ResolvePair handles contact between two equal-mass circular bodies
// Both bodies bounce, then receive impulse along the center line in opposite directions
// and are pushed apart by half the overlap each. Coincident centers use FallbackNormal
func ResolvePair(a, b Body, pa, pb *Profile, impulse float64) (Contact, bool) {
	delta := b.Position().Sub(a.Position())
	dist := delta.Len()
	minDist := pa.Radius + pb.Radius

	if dist >= minDist {
		return Contact{}, false
	}

	n := vmath.Normalize2D(delta, FallbackNormal)
	depth := minDist - dist

	Bounce(a, pa)
	Bounce(b, pb)
	a.ApplyImpulse(n.Mul(-impulse))
	b.ApplyImpulse(n.Mul(impulse))

	half := depth / 2
	a.SetPosition(a.Position().Sub(n.Mul(half)))
	b.SetPosition(b.Position().Add(n.Mul(half)))

	return Contact{
		Point:  a.Position().Add(n.Mul(pa.Radius)),
		Normal: n,
		Depth:  depth,
	}, true
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
