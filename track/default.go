package track

import (
	"math"

	"github.com/lixenwraith/vi-racer/vmath"
)

// Default returns the built-in oval: a 1000x700 world with a 50 unit boundary wall,
// a central island and the finish line across the bottom straight
// Cars race counter-clockwise on screen, crossing the finish line moving +X
func Default() *Track {
	t, err := New(
		"oval",
		NewRect(0, 0, 1000, 700),
		NewRect(50, 50, 950, 650),
		NewRect(300, 250, 700, 450),
		NewRect(490, 450, 510, 650),
		[]vmath.Vec2{
			{500, 600},
			{800, 450},
			{800, 200},
			{500, 100},
			{200, 200},
			{200, 450},
		},
		Spawn{Position: vmath.Vec2{440, 550}, Heading: math.Pi / 2},
		[]Spawn{
			{Position: vmath.Vec2{390, 505}, Heading: math.Pi / 2},
			{Position: vmath.Vec2{390, 600}, Heading: math.Pi / 2},
			{Position: vmath.Vec2{330, 550}, Heading: math.Pi / 2},
		},
		vmath.Vec2{1, 0},
	)
	if err != nil {
		// Built-in geometry is fixed; failing here is a programming error
		panic(err)
	}
	return t
}
