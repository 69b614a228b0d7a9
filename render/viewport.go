package render

import (
	"math"

	"github.com/lixenwraith/vi-racer/vmath"
)

// Viewport maps world coordinates onto a block of terminal cells
// The world is stretched to fill the block; cells are roughly twice as tall as wide
// so the default 10:7 world looks right on a typical 80x24 terminal
type Viewport struct {
	X, Y          int        // Top-left cell
	Width, Height int        // Cells
	Origin        vmath.Vec2 // World point shown at the top-left corner
	WorldW        float64
	WorldH        float64
}

// NewViewport creates a viewport showing the world rectangle starting at origin
func NewViewport(x, y, width, height int, origin vmath.Vec2, worldW, worldH float64) Viewport {
	return Viewport{X: x, Y: y, Width: width, Height: height, Origin: origin, WorldW: worldW, WorldH: worldH}
}

// Empty reports a viewport with no cells
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0 || v.WorldW <= 0 || v.WorldH <= 0
}

// WorldToCell returns the screen cell containing p; ok is false outside the viewport
func (v Viewport) WorldToCell(p vmath.Vec2) (x, y int, ok bool) {
	if v.Empty() {
		return 0, 0, false
	}
	p = p.Sub(v.Origin)
	cx := int(math.Floor(p.X() / v.WorldW * float64(v.Width)))
	cy := int(math.Floor(p.Y() / v.WorldH * float64(v.Height)))
	if cx < 0 || cx >= v.Width || cy < 0 || cy >= v.Height {
		return 0, 0, false
	}
	return v.X + cx, v.Y + cy, true
}

// CellCenter returns the world point at the center of screen cell (x, y)
func (v Viewport) CellCenter(x, y int) vmath.Vec2 {
	return v.Origin.Add(vmath.Vec2{
		(float64(x-v.X) + 0.5) / float64(v.Width) * v.WorldW,
		(float64(y-v.Y) + 0.5) / float64(v.Height) * v.WorldH,
	})
}
