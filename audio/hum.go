package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/vi-racer/constants"
)

// HumGenerator is the continuous engine tone; pitch follows a throttle level set from the tick goroutine
// The speaker goroutine reads the level once per block and glides toward it to avoid zipper noise
type HumGenerator struct {
	sr     beep.SampleRate
	level  atomic.Uint64 // float64 bits, 0..1
	freq   float64
	phase  float64
	phase2 float64
}

// NewHumGenerator creates an idling hum
func NewHumGenerator(sr beep.SampleRate) *HumGenerator {
	return &HumGenerator{sr: sr, freq: constants.HumBaseFreq}
}

// SetLevel sets the engine load in [0, 1]; out of range values are clamped
func (g *HumGenerator) SetLevel(level float64) {
	if math.IsNaN(level) {
		level = 0
	}
	g.level.Store(math.Float64bits(clampVolume(level)))
}

// Level returns the current target engine load
func (g *HumGenerator) Level() float64 {
	return math.Float64frombits(g.level.Load())
}

// TargetFreq returns the pitch the hum glides toward
func (g *HumGenerator) TargetFreq() float64 {
	return constants.HumBaseFreq + constants.HumFreqRange*g.Level()
}

func (g *HumGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	g.freq += (g.TargetFreq() - g.freq) * constants.HumGlide
	step := g.freq / float64(g.sr)
	amp := 0.25 + 0.5*g.Level()

	for i := range samples {
		// Fundamental plus a detuned octave for body
		sample := 0.6*waveSample(WaveSaw, g.phase, nil) + 0.4*math.Sin(2*math.Pi*g.phase2)
		sample *= amp * 0.5

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += step
		g.phase -= math.Floor(g.phase)
		g.phase2 += step * 2.01
		g.phase2 -= math.Floor(g.phase2)
	}
	return len(samples), true
}

func (g *HumGenerator) Err() error { return nil }
