// Package engine runs the fixed-step race simulation and publishes HUD snapshots and frames
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/input"
	"github.com/lixenwraith/vi-racer/navigation"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/race"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
)

var (
	// ErrClosed is returned by operations on a torn down simulation
	ErrClosed = errors.New("simulation closed")

	// ErrTickSkipped is returned by Step when a tick panicked and was abandoned
	ErrTickSkipped = errors.New("tick skipped")
)

// CommandSource supplies the player's command once per scheduled tick
type CommandSource interface {
	Command() input.Command
}

// Simulation is one race session
// Step is the only mutator of vehicle state; callers either drive it directly or via Run
type Simulation struct {
	mu sync.Mutex

	track    *track.Track
	cfg      Config
	clock    *StepClock
	dt       time.Duration
	vehicles []*Vehicle
	player   *Vehicle
	effects  *Effects
	standing []race.Standing // Reused ranking buffer
	tick     uint64
	hud      HUDSnapshot
	closed   bool

	obsMu     sync.RWMutex
	observers []Observer

	scheduler *ClockScheduler
	onClose   []func()
	closeOnce sync.Once

	log zerolog.Logger

	statSteps          *status.Counter
	statSkipped        *status.Counter
	statObserverPanics *status.Counter
	statLaps           *status.Counter
	statWallHits       *status.Counter
	statCarHits        *status.Counter
	statSpeed          *status.Gauge
	statPosition       *status.Gauge
	statSession        *status.Label
}

// New builds a race on t: the player at the player spawn and cfg.AICount opponents at
// the AI spawns, all behind the finish line and facing along the track
func New(t *track.Track, cfg Config) (*Simulation, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil track", track.ErrInvalidTrack)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.AICount > len(t.AISpawns) {
		cfg.Logger.Warn().
			Int("requested", cfg.AICount).
			Int("spawns", len(t.AISpawns)).
			Msg("AI count capped by track spawns")
		cfg.AICount = len(t.AISpawns)
	}
	if cfg.SessionID == "" {
		cfg.SessionID = ksuid.New().String()
	}
	if cfg.Start.IsZero() {
		cfg.Start = time.Now()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = status.NewRegistry(nil)
	}
	reg := cfg.Metrics

	s := &Simulation{
		track:   t,
		cfg:     cfg,
		clock:   NewStepClock(cfg.Start),
		dt:      cfg.TickInterval(),
		effects: NewEffects(cfg.Seed, cfg.SmokeInterval, constants.MaxParticles),
		log:     cfg.Logger.With().Str("session", cfg.SessionID).Logger(),

		statSteps:          reg.Counter("engine.steps", "Simulation ticks completed"),
		statSkipped:        reg.Counter("engine.skipped", "Ticks abandoned after a panic"),
		statObserverPanics: reg.Counter("engine.observer_panics", "Frame observers that panicked"),
		statLaps:           reg.Counter("race.laps", "Checkpoint crossings counted by all cars"),
		statWallHits:       reg.Counter("race.wall_hits", "Car-wall contacts"),
		statCarHits:        reg.Counter("race.car_hits", "Car-car contacts"),
		statSpeed:          reg.Gauge("player.speed", "Player speed in units per second"),
		statPosition:       reg.Gauge("player.position", "Player race position"),
		statSession:        reg.Label("race.session"),
	}
	s.statSession.Set(cfg.SessionID)

	s.player = &Vehicle{
		Kinetic: physics.Kinetic{Pos: t.PlayerSpawn.Position, Rot: t.PlayerSpawn.Heading},
		ID:      0,
		Kind:    KindPlayer,
		Profile: cfg.Player,
		Tracker: race.NewTracker(cfg.PlayerCooldown),
	}
	s.vehicles = append(s.vehicles, s.player)

	for i := 0; i < cfg.AICount; i++ {
		sp := t.AISpawns[i]
		s.vehicles = append(s.vehicles, &Vehicle{
			Kinetic: physics.Kinetic{Pos: sp.Position, Rot: sp.Heading},
			ID:      i + 1,
			Kind:    KindAI,
			Profile: cfg.AI,
			Tracker: race.NewTracker(cfg.AICooldown),
			Pilot:   navigation.NewPilot(t, len(t.Waypoints), cfg.Pilot),
		})
	}
	s.standing = make([]race.Standing, len(s.vehicles))

	s.hud = HUDSnapshot{Position: 1, TotalCars: len(s.vehicles)}
	s.hud.Position = s.rankAll()[0]

	s.log.Info().
		Str("track", t.Name).
		Int("cars", len(s.vehicles)).
		Int("tick_rate", cfg.TickRate).
		Msg("Race initialized")

	return s, nil
}

// Step advances the race by one fixed tick using cmd for the player
// On a panic inside the tick the previous HUD is returned with ErrTickSkipped
func (s *Simulation) Step(cmd input.Command) (HUDSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.hud, ErrClosed
	}

	frame, err := s.tickLocked(cmd)
	if err != nil {
		s.statSkipped.Add(1)
		s.log.Error().Err(err).Uint64("tick", s.tick).Msg("Tick abandoned")
		return s.hud, err
	}

	s.tick = frame.Tick
	s.hud = frame.HUD
	s.statSteps.Add(1)
	s.statSpeed.Set(frame.HUD.Speed)
	s.statPosition.Set(float64(frame.HUD.Position))
	s.publish(frame)
	return s.hud, nil
}

// publish hands a committed frame to every observer
// A panicking observer is logged and skipped; the tick stands
func (s *Simulation) publish(frame Frame) {
	s.obsMu.RLock()
	observers := s.observers
	s.obsMu.RUnlock()
	for i, o := range observers {
		s.notify(i, o, frame)
	}
}

func (s *Simulation) notify(i int, o Observer, frame Frame) {
	defer func() {
		if r := recover(); r != nil {
			s.statObserverPanics.Add(1)
			s.log.Error().Interface("panic", r).Int("observer", i).Uint64("tick", frame.Tick).Msg("Observer panicked")
		}
	}()
	o.OnFrame(frame)
}

// tickLocked runs one tick; state may be partially updated when it returns an error
func (s *Simulation) tickLocked(cmd input.Command) (frame Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrTickSkipped, r)
		}
	}()

	now := s.clock.Advance(s.dt)
	simTime := s.clock.Elapsed()
	dt := s.dt.Seconds()
	var events []Event

	// Motion: player from cmd, AI from its pilot
	for _, v := range s.vehicles {
		c := cmd
		if v.Pilot != nil {
			c = v.Pilot.Steer(v.Pos, v.Rot)
		}
		physics.Steer(v, &v.Profile, c.Left, c.Right)
		if physics.Throttle(v, &v.Profile, c.Forward, c.Backward) {
			s.effects.Smoke(v.ID, simTime, v.Pos, v.Rot)
		}
		physics.ApplyGrip(v, &v.Profile)
		physics.CapSpeed(v, &v.Profile)
	}

	for _, v := range s.vehicles {
		physics.Integrate(v, dt)
	}

	// Walls
	for _, v := range s.vehicles {
		for _, c := range physics.ResolveWalls(v, &v.Profile, s.track.Walls) {
			s.effects.Sparks(simTime, c.Point, c.Normal, constants.WallSparkCount)
			s.statWallHits.Add(1)
			events = append(events, Event{Type: EventWallHit, Vehicle: v.ID, Kind: v.Kind, Other: -1, Point: c.Point})
		}
	}

	// Pairs, no broad phase
	for i := 0; i < len(s.vehicles); i++ {
		for j := i + 1; j < len(s.vehicles); j++ {
			a, b := s.vehicles[i], s.vehicles[j]
			c, hit := physics.ResolvePair(a, b, &a.Profile, &b.Profile, s.cfg.PairImpulse)
			if !hit {
				continue
			}
			s.statCarHits.Add(1)
			events = append(events, Event{Type: EventCarHit, Vehicle: a.ID, Kind: a.Kind, Other: b.ID, Point: c.Point})
		}
	}

	// Impulses may push past the cap
	for _, v := range s.vehicles {
		physics.CapSpeed(v, &v.Profile)
	}

	for _, v := range s.vehicles {
		on := s.track.OnCheckpoint(v.Pos, v.Profile.Radius)
		lap, ok := v.Tracker.Update(now, on)
		if !ok {
			continue
		}
		s.statLaps.Add(1)
		events = append(events, Event{Type: EventLap, Vehicle: v.ID, Kind: v.Kind, Other: -1, Point: v.Pos, Lap: lap})
		if v.Kind == KindPlayer {
			s.log.Info().
				Int("lap", lap.Number).
				Dur("lap_time", lap.LapTime).
				Bool("best", lap.PersonalBest).
				Msg("Player lap")
		}
	}

	ranks := s.rankAll()
	cars := make([]CarView, len(s.vehicles))
	for i, v := range s.vehicles {
		cars[i] = v.view(ranks[i])
	}

	s.effects.Update(simTime, dt)

	frame = Frame{
		SessionID: s.cfg.SessionID,
		Tick:      s.tick + 1,
		Time:      simTime,
		HUD:       s.hudFor(ranks[0]),
		Cars:      cars,
		Particles: s.effects.Snapshot(),
		Events:    events,
	}
	return frame, nil
}

// rankAll ranks every vehicle; index 0 is the player
func (s *Simulation) rankAll() []int {
	for i, v := range s.vehicles {
		s.standing[i] = race.Standing{Laps: v.Tracker.Laps(), Position: v.Pos}
	}
	return race.Ranks(s.standing, s.track.ForwardAxis)
}

func (s *Simulation) hudFor(position int) HUDSnapshot {
	t := s.player.Tracker
	hud := HUDSnapshot{
		Speed:     physics.Speed(s.player),
		Lap:       t.Laps(),
		Position:  position,
		TotalCars: len(s.vehicles),
	}
	if last, ok := t.LastLap(); ok {
		hud.LastLapTime = last.Seconds()
	}
	if best, ok := t.BestLap(); ok {
		hud.BestLapTime = best.Seconds()
	}
	return hud
}

// HUD returns the last published snapshot
func (s *Simulation) HUD() HUDSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hud
}

// Track returns the race track
func (s *Simulation) Track() *track.Track { return s.track }

// SessionID returns the race identifier used in logs and telemetry
func (s *Simulation) SessionID() string { return s.cfg.SessionID }

// Subscribe adds an observer notified at the end of every tick
func (s *Simulation) Subscribe(o Observer) {
	if o == nil {
		return
	}
	s.obsMu.Lock()
	// Copy-on-write so an in-flight notification keeps its snapshot
	next := make([]Observer, len(s.observers), len(s.observers)+1)
	copy(next, s.observers)
	s.observers = append(next, o)
	s.obsMu.Unlock()
}

// OnClose registers a teardown hook run once by Close, in registration order
func (s *Simulation) OnClose(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onClose = append(s.onClose, fn)
}

// Run starts a scheduler that steps the race at the configured tick rate with commands from src
// Subsequent calls are no-ops
func (s *Simulation) Run(src CommandSource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.scheduler != nil {
		return nil
	}

	s.scheduler = NewClockScheduler(nil, s.dt, func(uint64) {
		// Skipped ticks are logged and counted inside Step; the loop keeps going
		_, _ = s.Step(src.Command())
	}, s.cfg.Metrics)
	s.scheduler.Start()
	return nil
}

// TogglePause flips the scheduler's pause state; false when not running
func (s *Simulation) TogglePause() bool {
	s.mu.Lock()
	sc := s.scheduler
	s.mu.Unlock()
	if sc == nil {
		return false
	}
	return sc.TogglePause()
}

// Paused reports whether the running scheduler is paused
func (s *Simulation) Paused() bool {
	s.mu.Lock()
	sc := s.scheduler
	s.mu.Unlock()
	return sc != nil && sc.IsPaused()
}

// Close stops the scheduler, runs teardown hooks, drops particles and observers
// Idempotent; no goroutine started by the simulation survives it
func (s *Simulation) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		sc := s.scheduler
		s.mu.Unlock()

		// Stop outside the lock: an in-flight tick needs it to finish
		if sc != nil {
			sc.Stop()
		}

		s.mu.Lock()
		s.closed = true
		hooks := s.onClose
		s.onClose = nil
		ticks := s.tick
		s.effects.Clear()
		s.mu.Unlock()

		s.obsMu.Lock()
		s.observers = nil
		s.obsMu.Unlock()

		for _, fn := range hooks {
			fn()
		}

		s.log.Info().Uint64("ticks", ticks).Msg("Race closed")
	})
}
