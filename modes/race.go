package modes

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/render"
)

// RaceSession binds one simulation to its input sources and frame observer
type RaceSession struct {
	sim      *engine.Simulation
	state    *input.State
	keyboard *input.Keyboard
	touch    *input.TouchPad
	poller   *input.Poller
	latest   *engine.LatestFrame
}

// StartRace wires input and audio into sim and starts its scheduler
// Teardown is registered on sim, so sim.Close releases everything
func StartRace(sim *engine.Simulation, holdTimeout time.Duration, audio Audio, width, height int) (*RaceSession, error) {
	state := input.NewState()
	keyboard := input.NewKeyboard(state, holdTimeout)
	touch := input.NewTouchPad()
	touch.Layout(width, height, constants.ButtonBarHeight)

	rs := &RaceSession{
		sim:      sim,
		state:    state,
		keyboard: keyboard,
		touch:    touch,
		poller:   input.NewPoller(state, keyboard, touch, constants.TouchPollInterval, nil),
		latest:   &engine.LatestFrame{},
	}

	sim.Subscribe(rs.latest)
	if audio != nil {
		sim.Subscribe(audio)
		audio.StartEngine()
		sim.OnClose(audio.StopEngine)
	}
	sim.OnClose(rs.poller.Stop)

	rs.poller.Start()
	if err := sim.Run(state); err != nil {
		sim.Close()
		return nil, err
	}
	return rs, nil
}

// Sim returns the running simulation
func (rs *RaceSession) Sim() *engine.Simulation { return rs.sim }

// Press feeds a drive key
func (rs *RaceSession) Press(ctrl input.Control, now time.Time) {
	rs.keyboard.Press(ctrl, now)
}

// HandleMouse feeds a mouse event to the touch buttons
func (rs *RaceSession) HandleMouse(x, y int, buttons tcell.ButtonMask) bool {
	return rs.touch.HandleMouse(x, y, buttons)
}

// Layout re-places the touch buttons after a resize
func (rs *RaceSession) Layout(width, height int) {
	rs.touch.Layout(width, height, constants.ButtonBarHeight)
}

// TogglePause flips the scheduler pause; held controls are dropped on pause
func (rs *RaceSession) TogglePause() bool {
	paused := rs.sim.TogglePause()
	if paused {
		rs.keyboard.Clear()
		rs.touch.Clear()
		rs.state.Reset()
	}
	return paused
}

// View builds the render state from the latest published frame
func (rs *RaceSession) View(muted bool) render.RaceView {
	frame, ok := rs.latest.Load()
	if !ok {
		frame = engine.Frame{HUD: rs.sim.HUD()}
	}
	return render.RaceView{
		Frame:   frame,
		Buttons: rs.touch.Buttons(),
		Pressed: rs.touch.Pressed,
		Paused:  rs.sim.Paused(),
		Muted:   muted,
	}
}

// Close tears the race down
func (rs *RaceSession) Close() {
	rs.sim.Close()
}
