package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length; larger is safer, smaller is snappier
	AudioBufferDuration = 100 * time.Millisecond

	// MinSoundGap is the minimum gap between two one-shot sounds of the same type
	MinSoundGap = 120 * time.Millisecond
)

// Engine Hum
const (
	// HumBaseFreq is the idle engine pitch in Hz
	HumBaseFreq = 55.0

	// HumFreqRange is added to the base pitch at max speed
	HumFreqRange = 110.0

	// HumGlide is the fraction of the pitch gap closed per sample block
	HumGlide = 0.15
)

// Bump Sound Timing
const (
	BumpSoundDuration = 90 * time.Millisecond
	BumpSoundAttack   = 2 * time.Millisecond
	BumpSoundRelease  = 60 * time.Millisecond
)

// Chime Sound Timing
const (
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 320 * time.Millisecond
	ChimeSoundAttack   = 5 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 250 * time.Millisecond
)
