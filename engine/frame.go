package engine

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-racer/race"
	"github.com/lixenwraith/vi-racer/vmath"
)

// HUDSnapshot is the player-facing race summary derived each tick
// Lap times are seconds; BestLapTime 0 means no lap has completed
type HUDSnapshot struct {
	Speed       float64
	Lap         int
	LastLapTime float64
	BestLapTime float64
	Position    int
	TotalCars   int
}

// CarView is the renderable state of one car
type CarView struct {
	ID       int
	Kind     Kind
	Position vmath.Vec2
	Heading  float64
	Speed    float64
	Lap      int
	Rank     int
	Radius   float64
}

// EventType tags things that happened during a tick
type EventType uint8

const (
	EventLap EventType = iota
	EventWallHit
	EventCarHit
)

func (e EventType) String() string {
	switch e {
	case EventLap:
		return "lap"
	case EventWallHit:
		return "wall_hit"
	case EventCarHit:
		return "car_hit"
	default:
		return "unknown"
	}
}

// Event is a discrete tick outcome for audio and telemetry
// Other is the second car for EventCarHit, -1 otherwise
type Event struct {
	Type    EventType
	Vehicle int
	Kind    Kind
	Other   int
	Point   vmath.Vec2
	Lap     race.Lap
}

// Frame is everything observers see after a tick
// Slices are freshly allocated per tick and safe to retain
type Frame struct {
	SessionID string
	Tick      uint64
	Time      time.Duration // Sim time since start
	HUD       HUDSnapshot
	Cars      []CarView
	Particles []Particle
	Events    []Event
}

// Player returns the player's car view
func (f Frame) Player() (CarView, bool) {
	for _, c := range f.Cars {
		if c.Kind == KindPlayer {
			return c, true
		}
	}
	return CarView{}, false
}

// Observer receives frames synchronously at the end of every tick
// Runs on the tick goroutine; must not call Step
type Observer interface {
	OnFrame(Frame)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Frame)

func (f ObserverFunc) OnFrame(fr Frame) { f(fr) }

// LatestFrame is an Observer that keeps the most recent frame for another goroutine
// The render loop polls it at its own rate
type LatestFrame struct {
	mu    sync.RWMutex
	frame Frame
	ok    bool
}

// OnFrame stores fr, replacing the previous frame
func (l *LatestFrame) OnFrame(fr Frame) {
	l.mu.Lock()
	l.frame = fr
	l.ok = true
	l.mu.Unlock()
}

// Load returns the latest frame, false before the first tick
func (l *LatestFrame) Load() (Frame, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frame, l.ok
}
