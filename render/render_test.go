package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

// rowText reads a screen row back as a string
func rowText(screen tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(ch)
	}
	return b.String()
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		heading float64
		want    rune
	}{
		{0, '↑'},
		{math.Pi / 4, '↗'},
		{math.Pi / 2, '→'},
		{math.Pi, '↓'},
		{-math.Pi, '↓'},
		{-math.Pi / 2, '←'},
		{-math.Pi / 4, '↖'},
		{2*math.Pi + 0.1, '↑'},
	}
	for _, tt := range tests {
		if got := HeadingGlyph(tt.heading); got != tt.want {
			t.Errorf("HeadingGlyph(%.2f): expected %c, got %c", tt.heading, tt.want, got)
		}
	}
}

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "-:--.--"},
		{math.NaN(), "-:--.--"},
		{45, "0:45.00"},
		{85.5, "1:25.50"},
		{9.25, "0:09.25"},
	}
	for _, tt := range tests {
		if got := FormatLapTime(tt.sec); got != tt.want {
			t.Errorf("FormatLapTime(%v): expected %q, got %q", tt.sec, tt.want, got)
		}
	}
}

func TestViewportMapping(t *testing.T) {
	v := NewViewport(0, 1, 100, 35, vmath.Vec2{0, 0}, 1000, 700)

	x, y, ok := v.WorldToCell(vmath.Vec2{440, 550})
	if !ok || x != 44 || y != 28 {
		t.Errorf("Expected cell (44,28), got (%d,%d) ok=%v", x, y, ok)
	}
	if _, _, ok := v.WorldToCell(vmath.Vec2{-1, 10}); ok {
		t.Error("Expected point left of the world to be off screen")
	}
	if _, _, ok := v.WorldToCell(vmath.Vec2{1000, 10}); ok {
		t.Error("Expected right edge to be exclusive")
	}

	c := v.CellCenter(44, 28)
	if cx, cy, _ := v.WorldToCell(c); cx != 44 || cy != 28 {
		t.Errorf("Expected cell center to map back to (44,28), got (%d,%d)", cx, cy)
	}

	if _, _, ok := (Viewport{}).WorldToCell(vmath.Vec2{1, 1}); ok {
		t.Error("Expected empty viewport to map nothing")
	}
}

func TestRenderRaceDrawsTrackAndCars(t *testing.T) {
	screen := newTestScreen(t, 100, 40)
	r := NewTerminalRenderer(screen)
	tr := track.Default()
	r.SetTrack(tr)

	tp := input.NewTouchPad()
	tp.Layout(100, 40, 3)

	frame := engine.Frame{
		HUD: engine.HUDSnapshot{Speed: 300, Lap: 2, LastLapTime: 45, BestLapTime: 40, Position: 1, TotalCars: 4},
		Cars: []engine.CarView{
			{ID: 0, Kind: engine.KindPlayer, Position: vmath.Vec2{440, 550}, Heading: math.Pi / 2},
			{ID: 1, Kind: engine.KindAI, Position: vmath.Vec2{800, 200}, Heading: 0},
		},
	}
	r.RenderRace(RaceView{Frame: frame, Buttons: tp.Buttons(), Pressed: tp.Pressed})

	v := r.Viewport()
	px, py, ok := v.WorldToCell(vmath.Vec2{440, 550})
	if !ok {
		t.Fatal("Expected player inside the viewport")
	}
	if ch, _, _, _ := screen.GetContent(px, py); ch != '→' {
		t.Errorf("Expected player arrow → at (%d,%d), got %c", px, py, ch)
	}

	ax, ay, _ := v.WorldToCell(vmath.Vec2{800, 200})
	if ch, _, _, _ := screen.GetContent(ax, ay); ch != '↑' {
		t.Errorf("Expected AI arrow ↑ at (%d,%d), got %c", ax, ay, ch)
	}

	// Top-left corner of the world is boundary wall
	if ch, _, _, _ := screen.GetContent(0, v.Y); ch != '█' {
		t.Errorf("Expected wall glyph in the corner, got %c", ch)
	}

	hud := rowText(screen, 0, 100)
	for _, want := range []string{"LAP 2", "LAST 0:45.00", "BEST 0:40.00", "POS 1/4", "300 u/s"} {
		if !strings.Contains(hud, want) {
			t.Errorf("Expected HUD to contain %q, got %q", want, hud)
		}
	}

	gas := tp.Buttons()[3]
	label := rowText(screen, gas.Y+gas.H/2, 100)
	if !strings.Contains(label, "GAS") || !strings.Contains(label, "BRAKE") {
		t.Errorf("Expected pedal labels on the button bar, got %q", label)
	}
}

func TestRenderRaceParticles(t *testing.T) {
	screen := newTestScreen(t, 100, 40)
	r := NewTerminalRenderer(screen)
	r.SetTrack(track.Default())

	frame := engine.Frame{
		Particles: []engine.Particle{
			{Kind: engine.ParticleSpark, Pos: vmath.Vec2{600, 120}, Life: 1},
			{Kind: engine.ParticleSmoke, Pos: vmath.Vec2{150, 400}, Life: 1000},
		},
	}
	r.RenderRace(RaceView{Frame: frame})

	v := r.Viewport()
	sx, sy, _ := v.WorldToCell(vmath.Vec2{600, 120})
	if ch, _, _, _ := screen.GetContent(sx, sy); ch != '*' {
		t.Errorf("Expected spark glyph, got %c", ch)
	}
	mx, my, _ := v.WorldToCell(vmath.Vec2{150, 400})
	if ch, _, _, _ := screen.GetContent(mx, my); ch != '░' {
		t.Errorf("Expected fresh smoke glyph, got %c", ch)
	}
}

func TestRenderRaceTooSmall(t *testing.T) {
	screen := newTestScreen(t, 20, 5)
	r := NewTerminalRenderer(screen)
	r.SetTrack(track.Default())

	if !r.TooSmall() {
		t.Fatal("Expected 20x5 to be too small")
	}
	r.RenderRace(RaceView{})

	if !strings.Contains(rowText(screen, 2, 20), "too small") {
		t.Errorf("Expected too-small message, got %q", rowText(screen, 2, 20))
	}
}

func TestResizeRebuildsLayer(t *testing.T) {
	screen := newTestScreen(t, 100, 40)
	r := NewTerminalRenderer(screen)
	r.SetTrack(track.Default())
	before := r.Viewport()

	screen.SetSize(60, 20)
	r.Resize(60, 20)
	after := r.Viewport()

	if after.Width != 60 || after.Height != 16 {
		t.Errorf("Expected 60x16 viewport after resize, got %dx%d", after.Width, after.Height)
	}
	if before.Width == after.Width {
		t.Error("Expected viewport to change with screen size")
	}
}

func TestRenderLobby(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	lv := LobbyView{
		Title: "vi-racer",
		Rows: []LobbyRow{
			{Header: true, Text: "MATCHES"},
			{Text: "Arsenal vs Chelsea", Detail: "2025-05-01", Saved: true},
			{Text: "Inter vs Milan", Reminder: true},
		},
		Selected: 1,
		Status:   "offline data",
	}
	r.RenderLobby(lv)

	if !strings.Contains(rowText(screen, 0, 80), "vi-racer") {
		t.Error("Expected title on the first row")
	}
	if !strings.Contains(rowText(screen, 2, 80), "MATCHES") {
		t.Error("Expected section header")
	}
	if ch, _, _, _ := screen.GetContent(1, 3); ch != '★' {
		t.Errorf("Expected saved mark on selected row, got %c", ch)
	}
	if ch, _, _, _ := screen.GetContent(1, 4); ch == '★' {
		t.Error("Expected no saved mark on unsaved row")
	}
	if !strings.Contains(rowText(screen, 22, 80), "offline data") {
		t.Error("Expected status line")
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		selected, total, visible, want int
	}{
		{0, 5, 10, 0},
		{3, 50, 10, 0},
		{20, 50, 10, 15},
		{49, 50, 10, 40},
	}
	for _, tt := range tests {
		if got := scrollOffset(tt.selected, tt.total, tt.visible); got != tt.want {
			t.Errorf("scrollOffset(%d,%d,%d): expected %d, got %d", tt.selected, tt.total, tt.visible, tt.want, got)
		}
	}
}

func TestRenderOverlayAndDiagnostic(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen)

	reg := status.NewRegistry(nil)
	reg.Counter("engine.steps", "").Add(7)
	r.RenderOverlay(reg.Snapshot())

	found := false
	for y := 0; y < 24; y++ {
		if row := rowText(screen, y, 80); strings.Contains(row, "engine.steps") && strings.Contains(row, "7") {
			found = true
		}
	}
	if !found {
		t.Error("Expected overlay to list engine.steps = 7")
	}

	r.RenderDiagnostic("Track error", "invalid track: checkpoint outside the drivable ring")
	text := ""
	for y := 0; y < 24; y++ {
		text += rowText(screen, y, 80)
	}
	for _, want := range []string{"Track error", "checkpoint outside", "press any key"} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected diagnostic to contain %q", want)
		}
	}
}

func TestWrap(t *testing.T) {
	got := wrap("one two three four", 9)
	want := []string{"one two", "three", "four"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
