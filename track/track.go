// Package track holds the immutable race course: walls, checkpoint, AI waypoint loop and spawn grid
package track

import (
	"errors"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/lixenwraith/vi-racer/vmath"
)

// ErrInvalidTrack is returned when track geometry fails validation
var ErrInvalidTrack = errors.New("invalid track")

// Rect is an axis-aligned rectangle in world units, Min inclusive, Max inclusive
type Rect struct {
	Min vmath.Vec2
	Max vmath.Vec2
}

// NewRect builds a rectangle from two corners in any order
func NewRect(x1, y1, x2, y2 float64) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{Min: vmath.Vec2{x1, y1}, Max: vmath.Vec2{x2, y2}}
}

// Width returns the horizontal extent
func (r Rect) Width() float64 { return r.Max.X() - r.Min.X() }

// Height returns the vertical extent
func (r Rect) Height() float64 { return r.Max.Y() - r.Min.Y() }

// Center returns the midpoint
func (r Rect) Center() vmath.Vec2 { return r.Min.Add(r.Max).Mul(0.5) }

// Empty reports a degenerate rectangle
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Envelope converts the rectangle into a simplefeatures envelope
// NaN or infinite corners are rejected
func (r Rect) Envelope() (geom.Envelope, error) {
	return geom.NewEnvelope([]geom.XY{
		{X: r.Min.X(), Y: r.Min.Y()},
		{X: r.Max.X(), Y: r.Max.Y()},
	})
}

// ContainsPoint reports whether p lies inside or on the rectangle
func (r Rect) ContainsPoint(p vmath.Vec2) bool {
	env, err := r.Envelope()
	if err != nil {
		return false
	}
	return env.Contains(geom.XY{X: p.X(), Y: p.Y()})
}

// ContainsRect reports whether o lies entirely inside r
func (r Rect) ContainsRect(o Rect) bool {
	return r.ContainsPoint(o.Min) && r.ContainsPoint(o.Max)
}

// Intersects reports whether two rectangles share any area or edge
func (r Rect) Intersects(o Rect) bool {
	a, err := r.Envelope()
	if err != nil {
		return false
	}
	b, err := o.Envelope()
	if err != nil {
		return false
	}
	return a.Intersects(b)
}

// CircleBounds returns the axis-aligned bounds of a circle
func CircleBounds(center vmath.Vec2, radius float64) Rect {
	return Rect{
		Min: vmath.Vec2{center.X() - radius, center.Y() - radius},
		Max: vmath.Vec2{center.X() + radius, center.Y() + radius},
	}
}

// Spawn is a starting pose on the grid
type Spawn struct {
	Position vmath.Vec2
	Heading  float64
}

// Track is immutable for the lifetime of a simulation
type Track struct {
	Name string

	// Bounds is the full world extent, walls fill the space between Bounds and Outer
	Bounds Rect
	// Outer is the drivable interior of the boundary wall
	Outer Rect
	// Inner is the island in the middle of the ring
	Inner Rect
	// Walls are the solid rectangles vehicles collide with, derived from Bounds/Outer/Inner
	Walls []Rect

	// Checkpoint is the finish line zone; overlapping it completes a lap
	Checkpoint Rect

	// Waypoints is the closed AI patrol loop, consumed in order
	Waypoints []vmath.Vec2

	PlayerSpawn Spawn
	AISpawns    []Spawn

	// ForwardAxis orders cars on equal laps for ranking; unit length after validation
	ForwardAxis vmath.Vec2
}

// New builds a track from its ring definition, derives walls and validates it
func New(name string, bounds, outer, inner, checkpoint Rect, waypoints []vmath.Vec2, player Spawn, ai []Spawn, axis vmath.Vec2) (*Track, error) {
	t := &Track{
		Name:        name,
		Bounds:      bounds,
		Outer:       outer,
		Inner:       inner,
		Checkpoint:  checkpoint,
		Waypoints:   append([]vmath.Vec2(nil), waypoints...),
		PlayerSpawn: player,
		AISpawns:    append([]Spawn(nil), ai...),
		ForwardAxis: axis,
	}
	t.Walls = deriveWalls(bounds, outer, inner)

	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.ForwardAxis = vmath.Normalize2D(axis, vmath.Vec2{1, 0})
	return t, nil
}

// deriveWalls returns the four boundary slabs surrounding outer plus the inner island
func deriveWalls(bounds, outer, inner Rect) []Rect {
	walls := []Rect{
		// top and bottom span the full width
		NewRect(bounds.Min.X(), bounds.Min.Y(), bounds.Max.X(), outer.Min.Y()),
		NewRect(bounds.Min.X(), outer.Max.Y(), bounds.Max.X(), bounds.Max.Y()),
		// left and right fill between them
		NewRect(bounds.Min.X(), outer.Min.Y(), outer.Min.X(), outer.Max.Y()),
		NewRect(outer.Max.X(), outer.Min.Y(), bounds.Max.X(), outer.Max.Y()),
	}

	out := walls[:0]
	for _, w := range walls {
		if !w.Empty() {
			out = append(out, w)
		}
	}
	if !inner.Empty() {
		out = append(out, inner)
	}
	return out
}

// Validate checks the ring is well formed and every point of interest is drivable
func (t *Track) Validate() error {
	for _, r := range []struct {
		name string
		rect Rect
	}{
		{"bounds", t.Bounds},
		{"outer", t.Outer},
		{"inner", t.Inner},
		{"checkpoint", t.Checkpoint},
	} {
		if _, err := r.rect.Envelope(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTrack, r.name, err)
		}
	}
	if t.Bounds.Empty() || t.Outer.Empty() {
		return fmt.Errorf("%w: empty bounds or outer ring", ErrInvalidTrack)
	}
	if !t.Bounds.ContainsRect(t.Outer) {
		return fmt.Errorf("%w: outer ring exceeds world bounds", ErrInvalidTrack)
	}
	if !t.Inner.Empty() && !t.Outer.ContainsRect(t.Inner) {
		return fmt.Errorf("%w: inner island exceeds outer ring", ErrInvalidTrack)
	}
	if t.Checkpoint.Empty() || !t.Outer.Intersects(t.Checkpoint) {
		return fmt.Errorf("%w: checkpoint outside drivable area", ErrInvalidTrack)
	}
	if len(t.Waypoints) < 2 {
		return fmt.Errorf("%w: waypoint loop needs at least 2 points, got %d", ErrInvalidTrack, len(t.Waypoints))
	}
	for i, wp := range t.Waypoints {
		if !t.Drivable(wp) {
			return fmt.Errorf("%w: waypoint %d at (%.0f,%.0f) not drivable", ErrInvalidTrack, i, wp.X(), wp.Y())
		}
	}
	if !t.Drivable(t.PlayerSpawn.Position) {
		return fmt.Errorf("%w: player spawn not drivable", ErrInvalidTrack)
	}
	for i, s := range t.AISpawns {
		if !t.Drivable(s.Position) {
			return fmt.Errorf("%w: ai spawn %d not drivable", ErrInvalidTrack, i)
		}
	}
	if t.ForwardAxis.Len() == 0 {
		return fmt.Errorf("%w: forward axis is zero", ErrInvalidTrack)
	}
	return nil
}

// Drivable reports whether a point is inside the outer ring and not inside any wall
func (t *Track) Drivable(p vmath.Vec2) bool {
	if !t.Outer.ContainsPoint(p) {
		return false
	}
	// Walls share edges with Outer, so test the interior of the island only
	if !t.Inner.Empty() && p.X() > t.Inner.Min.X() && p.X() < t.Inner.Max.X() &&
		p.Y() > t.Inner.Min.Y() && p.Y() < t.Inner.Max.Y() {
		return false
	}
	return true
}

// OnCheckpoint reports whether a circle overlaps the checkpoint zone
func (t *Track) OnCheckpoint(center vmath.Vec2, radius float64) bool {
	return t.Checkpoint.Intersects(CircleBounds(center, radius))
}

// Waypoint returns the loop point at index i, wrapping modulo loop length
func (t *Track) Waypoint(i int) vmath.Vec2 {
	n := len(t.Waypoints)
	i %= n
	if i < 0 {
		i += n
	}
	return t.Waypoints[i]
}

// LoopLength returns the perimeter of the closed waypoint loop, 0 when the loop is degenerate
func (t *Track) LoopLength() float64 {
	if len(t.Waypoints) < 2 {
		return 0
	}
	coords := make([]float64, 0, 2*(len(t.Waypoints)+1))
	for _, wp := range t.Waypoints {
		coords = append(coords, wp.X(), wp.Y())
	}
	coords = append(coords, t.Waypoints[0].X(), t.Waypoints[0].Y())

	ls, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return 0
	}
	return ls.Length()
}
