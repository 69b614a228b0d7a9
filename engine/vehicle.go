package engine

import (
	"github.com/lixenwraith/vi-racer/navigation"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/race"
)

// Kind distinguishes the human car from opponents
type Kind uint8

const (
	KindPlayer Kind = iota
	KindAI
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "ai"
}

// Vehicle is one car in the race
// Owned by the Simulation; only physics mutates it, and only during a tick
type Vehicle struct {
	physics.Kinetic

	ID      int
	Kind    Kind
	Profile physics.Profile
	Tracker *race.Tracker
	Pilot   *navigation.Pilot // nil for the player
}

// view returns the read-only projection handed to observers
func (v *Vehicle) view(rank int) CarView {
	return CarView{
		ID:       v.ID,
		Kind:     v.Kind,
		Position: v.Pos,
		Heading:  v.Rot,
		Speed:    physics.Speed(v),
		Lap:      v.Tracker.Laps(),
		Rank:     rank,
		Radius:   v.Profile.Radius,
	}
}
