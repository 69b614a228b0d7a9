package race

import "github.com/lixenwraith/vi-racer/vmath"

// Standing is the ranking input for one car
type Standing struct {
	Laps     int
	Position vmath.Vec2
}

// ahead reports whether a leads b: more laps, or equal laps and further along axis
// The axis tie-break is a known simplification valid for a track whose finish
// straight runs along axis
func ahead(a, b Standing, axis vmath.Vec2) bool {
	if a.Laps != b.Laps {
		return a.Laps > b.Laps
	}
	return a.Position.Dot(axis) > b.Position.Dot(axis)
}

// Rank returns the 1-based position of standings[self] among all standings
func Rank(standings []Standing, self int, axis vmath.Vec2) int {
	rank := 1
	me := standings[self]
	for i, other := range standings {
		if i == self {
			continue
		}
		if ahead(other, me, axis) {
			rank++
		}
	}
	return rank
}

// Ranks returns the position of every standing, recomputed from scratch
func Ranks(standings []Standing, axis vmath.Vec2) []int {
	out := make([]int, len(standings))
	for i := range standings {
		out[i] = Rank(standings, i, axis)
	}
	return out
}
