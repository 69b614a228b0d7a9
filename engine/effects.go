package engine

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/vmath"
)

// ParticleKind selects particle appearance
type ParticleKind uint8

const (
	ParticleSmoke ParticleKind = iota
	ParticleSpark
)

// Particle is a short-lived cosmetic point
type Particle struct {
	Kind ParticleKind
	Pos  vmath.Vec2
	Vel  vmath.Vec2
	Born time.Duration
	Life time.Duration
}

// Age returns the elapsed fraction of the particle's life in [0, 1]
func (p Particle) Age(now time.Duration) float64 {
	if p.Life <= 0 {
		return 1
	}
	a := float64(now-p.Born) / float64(p.Life)
	return math.Max(0, math.Min(1, a))
}

// Effects owns tire smoke and wall spark particles
// Smoke is rate limited per vehicle against sim time; the pool is bounded and drops the oldest
type Effects struct {
	rng           *rand.Rand
	smokeInterval time.Duration
	lastSmoke     map[int]time.Duration
	particles     []Particle
	max           int
}

// NewEffects creates an empty particle system; seed 0 picks a random seed
func NewEffects(seed uint64, smokeInterval time.Duration, max int) *Effects {
	var rng *rand.Rand
	if seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	if max <= 0 {
		max = constants.MaxParticles
	}
	return &Effects{
		rng:           rng,
		smokeInterval: smokeInterval,
		lastSmoke:     make(map[int]time.Duration),
		particles:     make([]Particle, 0, max),
		max:           max,
	}
}

// Smoke emits a puff behind a throttling vehicle unless it smoked within the interval
func (e *Effects) Smoke(vehicle int, now time.Duration, pos vmath.Vec2, heading float64) bool {
	if last, ok := e.lastSmoke[vehicle]; ok && now-last < e.smokeInterval {
		return false
	}
	e.lastSmoke[vehicle] = now

	back := vmath.Forward(heading).Mul(-1)
	jitter := vmath.Perpendicular(back).Mul(e.rng.Float64()*20 - 10)
	e.add(Particle{
		Kind: ParticleSmoke,
		Pos:  pos.Add(back.Mul(constants.CarRadius)),
		Vel:  back.Mul(30).Add(jitter),
		Born: now,
		Life: constants.SmokeLifetime,
	})
	return true
}

// Sparks bursts n particles from a wall contact, fanned around the contact normal
func (e *Effects) Sparks(now time.Duration, point, normal vmath.Vec2, n int) {
	base := math.Atan2(normal.Y(), normal.X())
	for i := 0; i < n; i++ {
		a := base + (e.rng.Float64()-0.5)*math.Pi*0.8
		speed := 80 + e.rng.Float64()*120
		e.add(Particle{
			Kind: ParticleSpark,
			Pos:  point,
			Vel:  vmath.Vec2{math.Cos(a), math.Sin(a)}.Mul(speed),
			Born: now,
			Life: constants.SparkLifetime,
		})
	}
}

func (e *Effects) add(p Particle) {
	if len(e.particles) >= e.max {
		copy(e.particles, e.particles[1:])
		e.particles = e.particles[:len(e.particles)-1]
	}
	e.particles = append(e.particles, p)
}

// Update advances particles by dt and drops expired ones
func (e *Effects) Update(now time.Duration, dt float64) {
	live := e.particles[:0]
	for _, p := range e.particles {
		if now-p.Born >= p.Life {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		live = append(live, p)
	}
	e.particles = live
}

// Snapshot returns a copy of the live particles
func (e *Effects) Snapshot() []Particle {
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// Len returns the live particle count
func (e *Effects) Len() int { return len(e.particles) }

// Clear drops all particles and smoke history
func (e *Effects) Clear() {
	e.particles = e.particles[:0]
	clear(e.lastSmoke)
}
