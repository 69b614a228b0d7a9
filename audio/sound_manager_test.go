package audio

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/race"
)

// TestSoundManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(nil, zerolog.Nop())

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.StartEngine()
	sm.SetSpeed(300)
	sm.Play(SoundBump, 0)
	sm.Play(SoundChime, 0)
	sm.ToggleMute()
	sm.StopEngine()
	sm.Cleanup()
	sm.Cleanup()
}

// TestSoundManagerInitialization verifies the speaker can be opened and released
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager(nil, zerolog.Nop())

	// Speaker initialization may fail in CI without audio devices; the game runs silent then
	if err := sm.Initialize(); err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		return
	}
	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}

	sm.StartEngine()
	sm.Play(SoundChime, 0)
	sm.Cleanup()
}

func TestSoundManagerDisabledSkipsSpeaker(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg, zerolog.Nop())

	if err := sm.Initialize(); err != nil {
		t.Errorf("Expected disabled audio to initialize as no-op, got %v", err)
	}
	if !sm.Muted() {
		t.Error("Expected disabled audio to start muted")
	}
	if sm.Play(SoundBump, 0) {
		t.Error("Expected muted manager to reject sounds")
	}
}

func TestPlayRateLimited(t *testing.T) {
	sm := NewSoundManager(nil, zerolog.Nop())

	if !sm.Play(SoundBump, 0) {
		t.Fatal("Expected first bump accepted")
	}
	if sm.Play(SoundBump, 50*time.Millisecond) {
		t.Error("Expected bump within gap rejected")
	}
	if !sm.Play(SoundChime, 50*time.Millisecond) {
		t.Error("Expected different sound type accepted")
	}
	if !sm.Play(SoundBump, 200*time.Millisecond) {
		t.Error("Expected bump after gap accepted")
	}
	if sm.Played(SoundBump) != 2 {
		t.Errorf("Expected 2 bumps, got %d", sm.Played(SoundBump))
	}
	if sm.Play(SoundType(99), time.Second) {
		t.Error("Expected unknown sound rejected")
	}
}

func TestToggleMute(t *testing.T) {
	sm := NewSoundManager(nil, zerolog.Nop())

	if !sm.ToggleMute() {
		t.Fatal("Expected first toggle to mute")
	}
	if sm.Play(SoundBump, 0) {
		t.Error("Expected muted manager to reject sounds")
	}
	if sm.ToggleMute() {
		t.Error("Expected second toggle to unmute")
	}
	if !sm.Play(SoundBump, 0) {
		t.Error("Expected sound after unmute")
	}
}

func TestOnFrameMapsPlayerEvents(t *testing.T) {
	sm := NewSoundManager(nil, zerolog.Nop())

	frame := engine.Frame{
		Time: time.Second,
		Cars: []engine.CarView{
			{ID: 0, Kind: engine.KindPlayer, Speed: 300},
			{ID: 1, Kind: engine.KindAI, Speed: 500},
		},
		Events: []engine.Event{
			{Type: engine.EventWallHit, Vehicle: 1, Other: -1},
			{Type: engine.EventLap, Vehicle: 0, Other: -1, Lap: race.Lap{Number: 1}},
		},
	}
	sm.OnFrame(frame)

	if sm.Played(SoundBump) != 0 {
		t.Error("Expected AI wall hit to stay silent")
	}
	if sm.Played(SoundChime)+sm.Played(SoundBestLap) != 0 {
		t.Error("Expected opening crossing to stay silent")
	}
	if lvl := sm.hum.Level(); lvl != 0.5 {
		t.Errorf("Expected hum level 0.5 at half speed, got %f", lvl)
	}

	frame.Time = 2 * time.Second
	frame.Events = []engine.Event{
		{Type: engine.EventCarHit, Vehicle: 1, Other: 0},
		{Type: engine.EventLap, Vehicle: 0, Other: -1, Lap: race.Lap{Number: 2, Timed: true, PersonalBest: true}},
	}
	sm.OnFrame(frame)

	if sm.Played(SoundBump) != 1 {
		t.Errorf("Expected bump for car hit involving player, got %d", sm.Played(SoundBump))
	}
	if sm.Played(SoundBestLap) != 1 {
		t.Errorf("Expected best lap chime, got %d", sm.Played(SoundBestLap))
	}

	frame.Time = 3 * time.Second
	frame.Events = []engine.Event{
		{Type: engine.EventLap, Vehicle: 0, Other: -1, Lap: race.Lap{Number: 3, Timed: true}},
	}
	sm.OnFrame(frame)
	if sm.Played(SoundChime) != 1 {
		t.Errorf("Expected lap chime, got %d", sm.Played(SoundChime))
	}
}
