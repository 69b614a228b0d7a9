package modes

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/render"
	"github.com/lixenwraith/vi-racer/status"
)

// Options configures a Router
type Options struct {
	Lobby       *Lobby
	NewRace     RaceFactory
	Audio       Audio // Optional
	Metrics     *status.Registry
	HoldTimeout time.Duration
	Logger      zerolog.Logger
	Now         func() time.Time // Defaults to time.Now
}

// Router interprets terminal events and owns the active mode
// Handle and Draw run on the main goroutine
type Router struct {
	renderer *render.TerminalRenderer
	lobby    *Lobby
	newRace  RaceFactory
	audio    Audio
	metrics  *status.Registry
	hold     time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mode    Mode
	race    *RaceSession
	overlay bool
	muted   bool // Used when there is no audio

	diagTitle string
	diagMsg   string

	statRaces *status.Counter
	statMode  *status.Label
}

// NewRouter creates a router in the lobby
func NewRouter(renderer *render.TerminalRenderer, opts Options) *Router {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.HoldTimeout <= 0 {
		opts.HoldTimeout = constants.KeyHoldTimeout
	}
	if opts.Metrics == nil {
		opts.Metrics = status.NewRegistry(nil)
	}
	r := &Router{
		renderer:  renderer,
		lobby:     opts.Lobby,
		newRace:   opts.NewRace,
		audio:     opts.Audio,
		metrics:   opts.Metrics,
		hold:      opts.HoldTimeout,
		log:       opts.Logger,
		now:       opts.Now,
		mode:      ModeLobby,
		statRaces: opts.Metrics.Counter("modes.races", "Races started"),
		statMode:  opts.Metrics.Label("modes.mode"),
	}
	r.statMode.Set(r.mode.String())
	r.lobby.Enter()
	return r
}

// Mode returns the active mode
func (r *Router) Mode() Mode { return r.mode }

// Race returns the running race, nil in the lobby
func (r *Router) Race() *RaceSession { return r.race }

// OverlayVisible reports whether the diagnostics panel is shown
func (r *Router) OverlayVisible() bool { return r.overlay }

// Muted reports the audio mute state
func (r *Router) Muted() bool {
	if r.audio != nil {
		return r.audio.Muted()
	}
	return r.muted
}

// Handle processes a terminal event and returns false when the game should exit
func (r *Router) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		r.renderer.Resize(w, h)
		if r.race != nil {
			r.race.Layout(w, h)
		}
		return true

	case *tcell.EventMouse:
		if r.race != nil {
			x, y := ev.Position()
			r.race.HandleMouse(x, y, ev.Buttons())
		}
		return true

	case *tcell.EventKey:
		return r.handleKey(ev)
	}
	return true
}

func (r *Router) handleKey(ev *tcell.EventKey) bool {
	// Any key dismisses the diagnostic screen except quit
	intent := input.Decode(r.inputMode(), ev)
	if r.diagTitle != "" {
		if intent.Type == input.IntentQuit {
			return false
		}
		r.diagTitle, r.diagMsg = "", ""
		return true
	}

	ctx := context.Background()
	switch intent.Type {
	case input.IntentQuit:
		return false
	case input.IntentEscape:
		switch {
		case r.overlay:
			r.overlay = false
		case r.race != nil:
			r.endRace()
		}
	case input.IntentToggleOverlay:
		r.overlay = !r.overlay
	case input.IntentToggleMute:
		r.toggleMute()

	case input.IntentSelectUp:
		r.lobby.Move(-1)
	case input.IntentSelectDown:
		r.lobby.Move(1)
	case input.IntentToggleSave:
		r.lobby.ToggleSave(ctx)
	case input.IntentReminder:
		r.lobby.ToggleReminder(ctx)
	case input.IntentStartRace:
		r.startRace()

	case input.IntentDrive:
		if r.race != nil {
			r.race.Press(intent.Control, r.now())
		}
	case input.IntentPause:
		if r.race != nil {
			r.race.TogglePause()
		}
	}
	return true
}

func (r *Router) inputMode() input.Mode {
	if r.mode == ModeRace {
		return input.ModeRace
	}
	return input.ModeLobby
}

func (r *Router) toggleMute() {
	if r.audio != nil {
		r.audio.ToggleMute()
		return
	}
	r.muted = !r.muted
}

func (r *Router) startRace() {
	if r.race != nil || r.newRace == nil {
		return
	}
	sim, err := r.newRace()
	if err != nil {
		r.fail("RACE FAILED TO START", err)
		return
	}

	w, h := r.renderer.Size()
	rs, err := StartRace(sim, r.hold, r.audio, w, h)
	if err != nil {
		r.fail("RACE FAILED TO START", err)
		return
	}

	r.renderer.SetTrack(sim.Track())
	r.race = rs
	r.setMode(ModeRace)
	r.statRaces.Add(1)
	r.log.Info().Str("session", sim.SessionID()).Str("track", sim.Track().Name).Msg("Race started")
}

func (r *Router) endRace() {
	if r.race == nil {
		return
	}
	hud := r.race.Sim().HUD()
	r.race.Close()
	r.race = nil
	r.setMode(ModeLobby)
	r.lobby.SetStatus(raceSummary(hud.Lap, hud.BestLapTime))
	r.lobby.Enter()
}

func raceSummary(laps int, best float64) string {
	if best <= 0 {
		return fmt.Sprintf("Race over · %d laps", laps)
	}
	return fmt.Sprintf("Race over · %d laps · best %s", laps, render.FormatLapTime(best))
}

func (r *Router) setMode(m Mode) {
	r.mode = m
	r.statMode.Set(m.String())
}

func (r *Router) fail(title string, err error) {
	r.log.Error().Err(err).Msg(title)
	r.diagTitle = title
	r.diagMsg = err.Error()
}

// Draw renders the active screen
func (r *Router) Draw() {
	if r.diagTitle != "" {
		r.renderer.RenderDiagnostic(r.diagTitle, r.diagMsg)
		return
	}

	muted := r.Muted()
	if r.race != nil {
		r.renderer.RenderRace(r.race.View(muted))
	} else {
		r.renderer.RenderLobby(r.lobby.View(context.Background(), muted))
	}

	if r.overlay {
		r.renderer.RenderOverlay(r.metrics.Snapshot())
	}
}

// Close tears down any running race without returning to the lobby
func (r *Router) Close() {
	if r.race != nil {
		r.race.Close()
		r.race = nil
	}
}
