package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 is the world-space vector used by simulation code
type Vec2 = mgl64.Vec2

// Zero is the origin vector
var Zero = Vec2{0, 0}

// Normalize2D returns the unit vector of v, or fallback when v has zero length
func Normalize2D(v, fallback Vec2) Vec2 {
	mag := v.Len()
	if mag == 0 || math.IsNaN(mag) {
		return fallback
	}
	return v.Mul(1 / mag)
}

// ClampMagnitude scales v down to maxMag if it exceeds it
// Returns the clamped vector and whether clamping happened
func ClampMagnitude(v Vec2, maxMag float64) (Vec2, bool) {
	magSq := v.Dot(v)
	if magSq <= maxMag*maxMag {
		return v, false
	}
	mag := math.Sqrt(magSq)
	if mag == 0 {
		return v, false
	}
	return v.Mul(maxMag / mag), true
}

// Perpendicular returns v rotated 90 degrees clockwise in screen space (+Y down)
func Perpendicular(v Vec2) Vec2 {
	return Vec2{-v.Y(), v.X()}
}

// Project splits v into components parallel and perpendicular to unit axis
func Project(v, axis Vec2) (along, lateral Vec2) {
	along = axis.Mul(v.Dot(axis))
	lateral = v.Sub(along)
	return along, lateral
}

// Distance returns the euclidean distance between a and b
func Distance(a, b Vec2) float64 {
	return b.Sub(a).Len()
}

// IsFinite reports whether both components are finite numbers
func IsFinite(v Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
