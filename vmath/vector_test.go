package vmath

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestClampMagnitude(t *testing.T) {
	v, clamped := ClampMagnitude(Vec2{0, -720}, 600)
	if !clamped {
		t.Fatal("Expected clamping for magnitude 720 > 600")
	}
	if math.Abs(v.Len()-600) > epsilon {
		t.Errorf("Expected magnitude 600, got %f", v.Len())
	}
	if math.Abs(v.X()) > epsilon || v.Y() >= 0 {
		t.Errorf("Expected direction preserved, got %v", v)
	}

	v, clamped = ClampMagnitude(Vec2{3, 4}, 600)
	if clamped {
		t.Error("Expected no clamping under the cap")
	}
	if v != (Vec2{3, 4}) {
		t.Errorf("Expected vector unchanged, got %v", v)
	}
}

func TestNormalize2DZeroUsesFallback(t *testing.T) {
	fallback := Vec2{1, 0}
	got := Normalize2D(Zero, fallback)
	if got != fallback {
		t.Errorf("Expected fallback %v, got %v", fallback, got)
	}

	got = Normalize2D(Vec2{0, 5}, fallback)
	if math.Abs(got.Y()-1) > epsilon {
		t.Errorf("Expected unit Y, got %v", got)
	}
}

func TestProject(t *testing.T) {
	along, lateral := Project(Vec2{3, 4}, Vec2{1, 0})
	if along != (Vec2{3, 0}) {
		t.Errorf("Expected along (3,0), got %v", along)
	}
	if lateral != (Vec2{0, 4}) {
		t.Errorf("Expected lateral (0,4), got %v", lateral)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"pi stays", math.Pi, math.Pi},
		{"minus pi flips", -math.Pi, math.Pi},
		{"just over pi", math.Pi + 0.5, -math.Pi + 0.5},
		{"full turn", 2 * math.Pi, 0},
		{"many turns", 7*math.Pi + 0.25, -math.Pi + 0.25},
		{"negative", -3 * math.Pi / 2, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapAngle(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("WrapAngle(%f) = %f, want %f", tt.in, got, tt.want)
			}
			if got <= -math.Pi || got > math.Pi {
				t.Errorf("WrapAngle(%f) = %f out of (-pi, pi]", tt.in, got)
			}
		})
	}
}

func TestForwardAndHeadingTo(t *testing.T) {
	up := Forward(0)
	if math.Abs(up.X()) > epsilon || math.Abs(up.Y()+1) > epsilon {
		t.Errorf("Expected heading 0 to face up, got %v", up)
	}

	right := Forward(math.Pi / 2)
	if math.Abs(right.X()-1) > epsilon || math.Abs(right.Y()) > epsilon {
		t.Errorf("Expected heading pi/2 to face right, got %v", right)
	}

	h := HeadingTo(Vec2{0, 0}, Vec2{10, 0})
	if math.Abs(WrapAngle(h-math.Pi/2)) > epsilon {
		t.Errorf("Expected heading pi/2 towards +X, got %f", h)
	}

	h = HeadingTo(Vec2{0, 0}, Vec2{0, -10})
	if math.Abs(WrapAngle(h)) > epsilon {
		t.Errorf("Expected heading 0 towards -Y, got %f", h)
	}
}
