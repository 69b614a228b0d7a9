package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-racer/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator; it ends after duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewPCG(uint64(freq*1000), uint64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := waveSample(o.wave, o.phase, o.rng)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// waveSample evaluates one sample of a unit-amplitude wave at phase in [0, 1)
func waveSample(wave WaveType, phase float64, rng *rand.Rand) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope wraps s with attack and release ramps over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly; beep volume is logarithmic so 0 maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateBumpSound is a short thud: low saw under a burst of noise
func CreateBumpSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	thud := NewOscillator(70, constants.BumpSoundDuration, WaveSaw, rate)
	thudShaped := NewEnvelope(thud, constants.BumpSoundDuration, constants.BumpSoundAttack, constants.BumpSoundRelease, rate)

	noise := NewOscillator(0, constants.BumpSoundDuration, WaveNoise, rate)
	noiseShaped := NewEnvelope(noise, constants.BumpSoundDuration, constants.BumpSoundAttack, constants.BumpSoundRelease/2, rate)

	mixed := beep.Mix(
		newVolume(thudShaped, 0.7),
		newVolume(noiseShaped, 0.3),
	)
	return newVolume(mixed, cfg.EffectVolumes[SoundBump]*cfg.MasterVolume)
}

// createTwoNote sequences two sine notes, used by both lap chimes
func createTwoNote(cfg *Config, f1, f2, vol float64) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(f1, constants.ChimeNote1Duration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, constants.ChimeNote1Duration, constants.ChimeSoundAttack, constants.ChimeNote1Release, rate)

	n2 := NewOscillator(f2, constants.ChimeNote2Duration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, constants.ChimeNote2Duration, constants.ChimeSoundAttack, constants.ChimeNote2Release, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), vol*cfg.MasterVolume)
}

// CreateChimeSound is the lap completion chime (A5 then E6)
func CreateChimeSound(cfg *Config) beep.Streamer {
	return createTwoNote(cfg, 880.0, 1318.51, cfg.EffectVolumes[SoundChime])
}

// CreateBestLapSound is the personal best chime, a fifth higher (E6 then B6)
func CreateBestLapSound(cfg *Config) beep.Streamer {
	return createTwoNote(cfg, 1318.51, 1975.53, cfg.EffectVolumes[SoundBestLap])
}

// GetSoundEffect returns the streamer for a sound type, nil for unknown types
func GetSoundEffect(soundType SoundType, cfg *Config) beep.Streamer {
	switch soundType {
	case SoundBump:
		return CreateBumpSound(cfg)
	case SoundChime:
		return CreateChimeSound(cfg)
	case SoundBestLap:
		return CreateBestLapSound(cfg)
	default:
		return nil
	}
}
