// Package audio plays the engine hum and race sound effects through the beep speaker
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/engine"
)

// SoundManager manages all race audio
// Every method is safe before Initialize and after Cleanup; without a device the game runs silent
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	hum         *HumGenerator
	humStreamer *beep.Ctrl
	initialized bool

	muted    atomic.Bool
	maxSpeed float64

	lastPlayed [soundTypeCount]time.Duration
	hasPlayed  [soundTypeCount]bool
	played     [soundTypeCount]atomic.Int64

	log zerolog.Logger
}

// NewSoundManager creates a sound manager; nil cfg uses DefaultConfig
func NewSoundManager(cfg *Config, log zerolog.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	sm := &SoundManager{
		cfg:      cfg,
		rate:     rate,
		mixer:    &beep.Mixer{},
		hum:      NewHumGenerator(rate),
		maxSpeed: constants.PlayerMaxSpeed,
		log:      log,
	}
	sm.muted.Store(!cfg.Enabled)
	return sm
}

// Initialize opens the speaker; a disabled config skips it and returns nil
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(constants.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Info().Int("sample_rate", int(sm.rate)).Msg("Audio initialized")
	return nil
}

// Cleanup stops all sounds; the speaker stays open since beep cannot reopen it
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.humStreamer != nil {
		sm.humStreamer.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.humStreamer = nil
	sm.initialized = false
}

// StartEngine starts the looping engine hum; no-op if already running
func (sm *SoundManager) StartEngine() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	defer speaker.Unlock()

	if sm.humStreamer != nil {
		sm.humStreamer.Paused = sm.muted.Load()
		return
	}
	vol := clampVolume(sm.cfg.HumVolume * sm.cfg.MasterVolume)
	sm.humStreamer = &beep.Ctrl{Streamer: newVolume(sm.hum, vol), Paused: sm.muted.Load()}
	sm.mixer.Add(sm.humStreamer)
}

// StopEngine silences the hum until the next StartEngine
func (sm *SoundManager) StopEngine() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.humStreamer == nil {
		return
	}
	speaker.Lock()
	sm.humStreamer.Paused = true
	speaker.Unlock()
}

// SetSpeed maps a speed in units/s onto the hum pitch
func (sm *SoundManager) SetSpeed(speed float64) {
	if sm.maxSpeed <= 0 {
		return
	}
	sm.hum.SetLevel(speed / sm.maxSpeed)
}

// Play queues a one-shot sound unless muted or the same sound played within MinSoundGap of now
// now is sim time; returns true when the sound was accepted
func (sm *SoundManager) Play(st SoundType, now time.Duration) bool {
	if st < 0 || st >= soundTypeCount || sm.muted.Load() {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.hasPlayed[st] && now-sm.lastPlayed[st] < constants.MinSoundGap {
		return false
	}
	sm.lastPlayed[st] = now
	sm.hasPlayed[st] = true
	sm.played[st].Add(1)

	if sm.initialized {
		s := GetSoundEffect(st, sm.cfg)
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
	}
	return true
}

// Played returns how many times a sound was accepted
func (sm *SoundManager) Played(st SoundType) int64 {
	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return sm.played[st].Load()
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	muted := !sm.muted.Load()
	sm.muted.Store(muted)

	sm.mu.Lock()
	if sm.humStreamer != nil {
		speaker.Lock()
		sm.humStreamer.Paused = muted
		speaker.Unlock()
	}
	sm.mu.Unlock()
	return muted
}

// Muted reports whether output is muted
func (sm *SoundManager) Muted() bool { return sm.muted.Load() }

// OnFrame maps a simulation frame to audio: hum pitch from player speed,
// bumps on player contacts and chimes on player laps
func (sm *SoundManager) OnFrame(f engine.Frame) {
	player, ok := f.Player()
	if !ok {
		return
	}
	sm.SetSpeed(player.Speed)

	for _, e := range f.Events {
		switch e.Type {
		case engine.EventWallHit:
			if e.Vehicle == player.ID {
				sm.Play(SoundBump, f.Time)
			}
		case engine.EventCarHit:
			if e.Vehicle == player.ID || e.Other == player.ID {
				sm.Play(SoundBump, f.Time)
			}
		case engine.EventLap:
			if e.Vehicle != player.ID || !e.Lap.Timed {
				continue
			}
			if e.Lap.PersonalBest {
				sm.Play(SoundBestLap, f.Time)
			} else {
				sm.Play(SoundChime, f.Time)
			}
		}
	}
}
