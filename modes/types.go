// Package modes routes terminal events between the lobby and a running race
package modes

import (
	"context"

	"github.com/lixenwraith/vi-racer/content"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/saved"
)

// Mode is the active screen
type Mode uint8

const (
	ModeLobby Mode = iota
	ModeRace
)

func (m Mode) String() string {
	switch m {
	case ModeLobby:
		return "lobby"
	case ModeRace:
		return "race"
	default:
		return "unknown"
	}
}

// FeedSource supplies lobby content
type FeedSource interface {
	Current() *content.Feed
	Refresh()
}

// SavedStore is the part of saved.Store the lobby uses
type SavedStore interface {
	Save(ctx context.Context, item saved.Item) (bool, error)
	Remove(ctx context.Context, id string) error
	Has(ctx context.Context, id string) (bool, error)
	ToggleReminder(ctx context.Context, matchID string) (bool, error)
	HasReminder(ctx context.Context, matchID string) (bool, error)
}

// Audio is the part of the sound manager a race drives
type Audio interface {
	engine.Observer
	StartEngine()
	StopEngine()
	ToggleMute() bool
	Muted() bool
}

// RaceFactory builds the simulation for a new race
// The factory owns per-race collaborators such as telemetry and registers their teardown with OnClose
type RaceFactory func() (*engine.Simulation, error)
