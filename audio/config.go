package audio

import "github.com/lixenwraith/vi-racer/constants"

// Config holds audio output settings
type Config struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	HumVolume     float64 // 0.0-1.0, engine hum relative to master
	SampleRate    int
	EffectVolumes [soundTypeCount]float64
}

// DefaultConfig returns audio enabled at moderate volume
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		HumVolume:    0.35,
		SampleRate:   constants.AudioSampleRate,
		EffectVolumes: [soundTypeCount]float64{
			SoundBump:    0.6,
			SoundChime:   0.7,
			SoundBestLap: 0.8,
		},
	}
}

// clampVolume bounds v to [0, 1]
func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
