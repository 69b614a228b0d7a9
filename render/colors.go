package render

import (
	"github.com/gdamore/tcell/v2"
)

// Track palette
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbRoad       = tcell.NewRGBColor(40, 42, 54)    // Asphalt
	RgbWall       = tcell.NewRGBColor(120, 120, 140) // Concrete
	RgbGrass      = tcell.NewRGBColor(30, 70, 40)    // Island infield
	RgbCheckerA   = tcell.NewRGBColor(240, 240, 240) // Finish line light square
	RgbCheckerB   = tcell.NewRGBColor(20, 20, 20)    // Finish line dark square
)

// Car palette
var (
	RgbPlayer = tcell.NewRGBColor(0, 255, 255) // Cyan
	RgbAI     = []tcell.Color{
		tcell.NewRGBColor(255, 165, 0),   // Orange
		tcell.NewRGBColor(255, 80, 200),  // Magenta
		tcell.NewRGBColor(140, 255, 100), // Lime
	}
)

// Particle palette
var (
	RgbSmokeFresh = tcell.NewRGBColor(200, 200, 200)
	RgbSmokeOld   = tcell.NewRGBColor(90, 90, 100)
	RgbSparkHot   = tcell.NewRGBColor(255, 255, 120)
	RgbSparkCool  = tcell.NewRGBColor(255, 120, 0)
)

// UI palette
var (
	RgbStatusText    = tcell.NewRGBColor(0, 0, 0)       // Dark text on status segments
	RgbStatusBar     = tcell.NewRGBColor(255, 255, 255) // White
	RgbLapBg         = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbTimeBg        = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbBestBg        = tcell.NewRGBColor(255, 192, 203) // Pink
	RgbPositionBg    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPausedBg      = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbButton        = tcell.NewRGBColor(70, 70, 90)
	RgbButtonPressed = tcell.NewRGBColor(0, 160, 200)
	RgbSelection     = tcell.NewRGBColor(60, 60, 90)
	RgbHeader        = tcell.NewRGBColor(255, 165, 0)
	RgbDim           = tcell.NewRGBColor(150, 150, 160)
	RgbMarkSaved     = tcell.NewRGBColor(255, 215, 0)
	RgbMarkReminder  = tcell.NewRGBColor(0, 200, 200)
	RgbError         = tcell.NewRGBColor(255, 80, 80)
)

// AIColor returns the color for AI car n (1-based), cycling the palette
func AIColor(n int) tcell.Color {
	if n < 1 {
		n = 1
	}
	return RgbAI[(n-1)%len(RgbAI)]
}

// GetSpeedColor returns the speed bar color at progress in [0, 1]: green through yellow to red
func GetSpeedColor(progress float64) tcell.Color {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	if progress < 0.5 {
		p := progress * 2
		return tcell.NewRGBColor(int32(255*p), 220, 0)
	}
	p := (progress - 0.5) * 2
	return tcell.NewRGBColor(255, int32(220*(1-p)), 0)
}

// lerpColor blends two RGB colors; t=0 is a, t=1 is b
func lerpColor(a, b tcell.Color, t float64) tcell.Color {
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 { return x + int32(float64(y-x)*t) }
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}
