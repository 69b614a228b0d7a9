package vmath

import "math"

// Heading convention: 0 faces up (-Y), angles grow clockwise on screen

// Forward returns the unit vector a body with the given heading faces
func Forward(heading float64) Vec2 {
	return Vec2{math.Sin(heading), -math.Cos(heading)}
}

// HeadingTo returns the heading that points from 'from' towards 'to'
// The +pi/2 offset converts atan2's +X zero into the up-facing convention
func HeadingTo(from, to Vec2) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y(), d.X()) + math.Pi/2
}

// WrapAngle normalizes an angle into (-pi, pi]
func WrapAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
