// Package render draws the race, lobby and diagnostic screens onto a tcell screen
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// cellKind is the static track layer for one cell
type cellKind uint8

const (
	cellRoad cellKind = iota
	cellWall
	cellIsland
	cellFinish
)

// headingGlyphs are car arrows for the 8 compass octants, clockwise from up
var headingGlyphs = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// RaceView is everything the race screen shows besides the frame
type RaceView struct {
	Frame   engine.Frame
	Buttons []input.Button
	Pressed func(input.Control) bool
	Paused  bool
	Muted   bool
}

// TerminalRenderer handles all terminal rendering
// Not safe for concurrent use; the main goroutine owns it
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int

	track  *track.Track
	view   Viewport
	layer  []cellKind // Cached static track, row-major over the viewport
	layerW int
	layerH int
}

// NewTerminalRenderer creates a renderer drawing to screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// Resize updates the screen dimensions and invalidates the track layer
func (r *TerminalRenderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.layer = nil
}

// Size returns the current screen dimensions
func (r *TerminalRenderer) Size() (int, int) {
	return r.width, r.height
}

// TooSmall reports whether the race view cannot fit
func (r *TerminalRenderer) TooSmall() bool {
	return r.width < constants.MinScreenWidth || r.height < constants.MinScreenHeight
}

// SetTrack selects the track drawn by RenderRace
func (r *TerminalRenderer) SetTrack(t *track.Track) {
	r.track = t
	r.layer = nil
}

// Viewport returns the world-to-screen mapping of the race view
func (r *TerminalRenderer) Viewport() Viewport {
	r.ensureLayer()
	return r.view
}

// ensureLayer rebuilds the viewport and static track cells when size or track changed
func (r *TerminalRenderer) ensureLayer() {
	if r.track == nil {
		return
	}
	h := r.height - constants.HUDHeight - constants.ButtonBarHeight
	if r.layer != nil && r.layerW == r.width && r.layerH == h {
		return
	}

	b := r.track.Bounds
	r.view = NewViewport(0, constants.HUDHeight, r.width, h, b.Min, b.Width(), b.Height())
	r.layerW, r.layerH = r.width, h
	if r.view.Empty() {
		r.layer = []cellKind{}
		return
	}

	r.layer = make([]cellKind, r.width*h)
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < r.width; cx++ {
			p := r.view.CellCenter(cx, cy+r.view.Y)
			r.layer[cy*r.width+cx] = r.classify(p)
		}
	}
}

func (r *TerminalRenderer) classify(p vmath.Vec2) cellKind {
	t := r.track
	switch {
	case !t.Inner.Empty() && t.Inner.ContainsPoint(p):
		return cellIsland
	case !t.Outer.ContainsPoint(p):
		return cellWall
	case t.Checkpoint.ContainsPoint(p):
		return cellFinish
	default:
		return cellRoad
	}
}

// RenderRace draws the full race screen and shows it
func (r *TerminalRenderer) RenderRace(rv RaceView) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)

	if r.TooSmall() || r.track == nil {
		r.drawCentered(r.height/2, "Terminal too small", defaultStyle.Foreground(RgbError))
		r.screen.Show()
		return
	}

	r.ensureLayer()
	r.drawTrack(defaultStyle)
	r.drawParticles(rv.Frame)
	r.drawCars(rv.Frame)
	r.drawHUD(rv, defaultStyle)
	r.drawButtons(rv, defaultStyle)

	if rv.Paused {
		r.drawCentered(r.view.Y+r.view.Height/2, " PAUSED - p to resume ", defaultStyle.Foreground(RgbStatusText).Background(RgbPausedBg))
	}

	r.screen.Show()
}

// drawTrack paints the cached static layer
func (r *TerminalRenderer) drawTrack(defaultStyle tcell.Style) {
	for cy := 0; cy < r.layerH; cy++ {
		y := r.view.Y + cy
		for cx := 0; cx < r.layerW; cx++ {
			switch r.layer[cy*r.layerW+cx] {
			case cellWall:
				r.screen.SetContent(cx, y, '█', nil, defaultStyle.Foreground(RgbWall))
			case cellIsland:
				r.screen.SetContent(cx, y, ' ', nil, defaultStyle.Background(RgbGrass))
			case cellFinish:
				bg := RgbCheckerA
				if (cx+cy)%2 == 1 {
					bg = RgbCheckerB
				}
				r.screen.SetContent(cx, y, ' ', nil, defaultStyle.Background(bg))
			default:
				r.screen.SetContent(cx, y, ' ', nil, defaultStyle.Background(RgbRoad))
			}
		}
	}
}

// background returns the track background at a cell so sprites keep the road color
func (r *TerminalRenderer) background(x, y int) tcell.Color {
	cy := y - r.view.Y
	if x < 0 || x >= r.layerW || cy < 0 || cy >= r.layerH {
		return RgbBackground
	}
	switch r.layer[cy*r.layerW+x] {
	case cellIsland:
		return RgbGrass
	case cellFinish:
		if (x+cy)%2 == 1 {
			return RgbCheckerB
		}
		return RgbCheckerA
	case cellWall:
		return RgbBackground
	default:
		return RgbRoad
	}
}

func (r *TerminalRenderer) drawParticles(f engine.Frame) {
	for _, p := range f.Particles {
		x, y, ok := r.view.WorldToCell(p.Pos)
		if !ok {
			continue
		}
		age := p.Age(f.Time)
		style := tcell.StyleDefault.Background(r.background(x, y))

		switch p.Kind {
		case engine.ParticleSmoke:
			ch := '░'
			if age > 0.5 {
				ch = '·'
			}
			r.screen.SetContent(x, y, ch, nil, style.Foreground(lerpColor(RgbSmokeFresh, RgbSmokeOld, age)))
		case engine.ParticleSpark:
			r.screen.SetContent(x, y, '*', nil, style.Foreground(lerpColor(RgbSparkHot, RgbSparkCool, age)))
		}
	}
}

func (r *TerminalRenderer) drawCars(f engine.Frame) {
	// AI first so the player draws on top when sharing a cell
	for pass := 0; pass < 2; pass++ {
		for _, c := range f.Cars {
			if (c.Kind == engine.KindPlayer) != (pass == 1) {
				continue
			}
			x, y, ok := r.view.WorldToCell(c.Position)
			if !ok {
				continue
			}
			color := RgbPlayer
			if c.Kind == engine.KindAI {
				color = AIColor(c.ID)
			}
			style := tcell.StyleDefault.Background(r.background(x, y)).Foreground(color).Bold(true)
			r.screen.SetContent(x, y, HeadingGlyph(c.Heading), nil, style)
		}
	}
}

// HeadingGlyph returns the arrow closest to heading (0 faces up, clockwise)
func HeadingGlyph(heading float64) rune {
	octant := int(math.Round(vmath.WrapAngle(heading) / (math.Pi / 4)))
	octant = ((octant % 8) + 8) % 8
	return headingGlyphs[octant]
}

// FormatLapTime renders seconds as m:ss.cc, or placeholders when unset
func FormatLapTime(sec float64) string {
	if sec <= 0 || math.IsNaN(sec) {
		return "-:--.--"
	}
	m := int(sec) / 60
	return fmt.Sprintf("%d:%05.2f", m, sec-float64(m*60))
}

// drawHUD draws the status segments and a speed bar on the top row
func (r *TerminalRenderer) drawHUD(rv RaceView, defaultStyle tcell.Style) {
	hud := rv.Frame.HUD
	segStyle := defaultStyle.Foreground(RgbStatusText)

	segments := []struct {
		text string
		bg   tcell.Color
	}{
		{fmt.Sprintf(" LAP %d ", hud.Lap), RgbLapBg},
		{fmt.Sprintf(" LAST %s ", FormatLapTime(hud.LastLapTime)), RgbTimeBg},
		{fmt.Sprintf(" BEST %s ", FormatLapTime(hud.BestLapTime)), RgbBestBg},
		{fmt.Sprintf(" POS %d/%d ", max(hud.Position, 1), max(hud.TotalCars, 1)), RgbPositionBg},
	}
	if rv.Paused {
		segments = append(segments, struct {
			text string
			bg   tcell.Color
		}{" PAUSED ", RgbPausedBg})
	}

	x := 0
	for _, seg := range segments {
		x = r.drawText(x, 0, seg.text, segStyle.Background(seg.bg))
	}

	speedText := fmt.Sprintf(" %3.0f u/s", hud.Speed)
	if rv.Muted {
		speedText += " M"
	}
	barStart := x + 1
	barEnd := r.width - len([]rune(speedText))
	if barEnd-barStart >= 4 {
		progress := hud.Speed / constants.PlayerMaxSpeed
		filled := int(math.Round(progress * float64(barEnd-barStart)))
		for bx := barStart; bx < barEnd; bx++ {
			style := defaultStyle.Foreground(tcell.NewRGBColor(0, 0, 0))
			if bx-barStart < filled {
				style = defaultStyle.Foreground(GetSpeedColor(float64(bx-barStart+1) / float64(barEnd-barStart)))
			}
			r.screen.SetContent(bx, 0, '█', nil, style)
		}
	}
	r.drawText(max(barEnd, x), 0, speedText, defaultStyle.Foreground(RgbStatusBar))
}

// drawButtons draws the on-screen touch controls
func (r *TerminalRenderer) drawButtons(rv RaceView, defaultStyle tcell.Style) {
	for _, b := range rv.Buttons {
		bg := RgbButton
		if rv.Pressed != nil && rv.Pressed(b.Control) {
			bg = RgbButtonPressed
		}
		style := defaultStyle.Background(bg).Foreground(RgbStatusBar).Bold(true)
		for y := b.Y; y < b.Y+b.H; y++ {
			for x := b.X; x < b.X+b.W; x++ {
				r.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		label := []rune(b.Label)
		lx := b.X + (b.W-len(label))/2
		r.drawText(lx, b.Y+b.H/2, b.Label, style)
	}
}

// drawText writes s at (x, y), clipped to the screen; returns the x after the text
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= 0 && x < r.width && y >= 0 && y < r.height {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

// drawCentered writes s horizontally centered on row y
func (r *TerminalRenderer) drawCentered(y int, s string, style tcell.Style) {
	x := (r.width - len([]rune(s))) / 2
	r.drawText(max(x, 0), y, s, style)
}
