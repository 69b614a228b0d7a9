// Package navigation steers AI cars around the track's waypoint loop
package navigation

import (
	"math"

	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/vmath"
)

// Route is the closed waypoint loop a pilot follows
type Route interface {
	Waypoint(i int) vmath.Vec2
}

// PilotConfig tunes waypoint pursuit
type PilotConfig struct {
	AngleThreshold float64 // Heading error (radians) under which the car drives straight
	Proximity      float64 // Distance at which the target waypoint counts as reached
}

// Pilot holds one AI car's cursor into the waypoint loop
// Never terminates: the cursor wraps forever
type Pilot struct {
	config    PilotConfig
	route     Route
	loopLen   int
	pathIndex int
}

// NewPilot creates a pilot starting at the first waypoint
func NewPilot(route Route, loopLen int, config PilotConfig) *Pilot {
	if loopLen < 1 {
		loopLen = 1
	}
	return &Pilot{
		config:  config,
		route:   route,
		loopLen: loopLen,
	}
}

// PathIndex returns the current target cursor, always in [0, loopLen)
func (p *Pilot) PathIndex() int {
	return p.pathIndex
}

// Target returns the waypoint the pilot is heading for
func (p *Pilot) Target() vmath.Vec2 {
	return p.route.Waypoint(p.pathIndex)
}

// Advance moves the cursor to the next waypoint, wrapping to 0 after the last
func (p *Pilot) Advance() {
	p.pathIndex = (p.pathIndex + 1) % p.loopLen
}

// HeadingError returns the signed turn needed to face the target, in (-pi, pi]
func (p *Pilot) HeadingError(pos vmath.Vec2, heading float64) float64 {
	desired := vmath.HeadingTo(pos, p.Target())
	return vmath.WrapAngle(desired - heading)
}

// Steer produces this tick's command: always throttle, turn toward the target when
// off by more than the threshold, and advance when close enough
func (p *Pilot) Steer(pos vmath.Vec2, heading float64) input.Command {
	cmd := input.Command{Forward: true}

	diff := p.HeadingError(pos, heading)
	if math.Abs(diff) > p.config.AngleThreshold {
		if diff < 0 {
			cmd.Left = true
		} else {
			cmd.Right = true
		}
	}

	if vmath.Distance(pos, p.Target()) < p.config.Proximity {
		p.Advance()
	}
	return cmd
}
