package engine

import (
	"testing"
	"time"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/vmath"
)

func TestSmokeRateLimitedPerVehicle(t *testing.T) {
	fx := NewEffects(7, 50*time.Millisecond, 0)
	pos := vmath.Vec2{100, 100}

	if !fx.Smoke(0, 0, pos, 0) {
		t.Fatal("Expected first puff to emit")
	}
	if fx.Smoke(0, 30*time.Millisecond, pos, 0) {
		t.Error("Expected puff within interval to be suppressed")
	}
	// Other vehicles have their own limiter
	if !fx.Smoke(1, 30*time.Millisecond, pos, 0) {
		t.Error("Expected second vehicle to emit independently")
	}
	if !fx.Smoke(0, 50*time.Millisecond, pos, 0) {
		t.Error("Expected puff once interval elapsed")
	}
	if fx.Len() != 3 {
		t.Errorf("Expected 3 particles, got %d", fx.Len())
	}
}

// TestSmokeOverOneSecond throttles every tick for a second of sim time
func TestSmokeOverOneSecond(t *testing.T) {
	fx := NewEffects(7, constants.SmokeInterval, 0)
	emitted := 0
	for tick := 0; tick < 60; tick++ {
		now := time.Duration(tick) * time.Second / 60
		if fx.Smoke(0, now, vmath.Vec2{}, 0) {
			emitted++
		}
	}
	// 50ms spacing is exactly three ticks at 60Hz
	if emitted != 20 {
		t.Errorf("Expected 20 puffs, got %d", emitted)
	}
}

func TestSparksExpire(t *testing.T) {
	fx := NewEffects(7, constants.SmokeInterval, 0)
	fx.Sparks(0, vmath.Vec2{50, 50}, vmath.Vec2{-1, 0}, constants.WallSparkCount)

	if fx.Len() != constants.WallSparkCount {
		t.Fatalf("Expected %d sparks, got %d", constants.WallSparkCount, fx.Len())
	}
	for _, p := range fx.Snapshot() {
		if p.Kind != ParticleSpark {
			t.Errorf("Expected spark particle, got %v", p.Kind)
		}
		// Fan stays on the normal's side
		if p.Vel.X() >= 0 {
			t.Errorf("Expected spark moving away from wall, got %v", p.Vel)
		}
	}

	fx.Update(constants.SparkLifetime/2, 1.0/60)
	if fx.Len() != constants.WallSparkCount {
		t.Errorf("Expected sparks alive at half life, got %d", fx.Len())
	}
	fx.Update(constants.SparkLifetime, 1.0/60)
	if fx.Len() != 0 {
		t.Errorf("Expected sparks expired, got %d", fx.Len())
	}
}

func TestEffectsBounded(t *testing.T) {
	fx := NewEffects(7, 0, 8)
	for i := 0; i < 20; i++ {
		fx.Sparks(time.Duration(i), vmath.Vec2{}, vmath.Vec2{1, 0}, 1)
	}
	if fx.Len() != 8 {
		t.Fatalf("Expected pool capped at 8, got %d", fx.Len())
	}
	// Oldest dropped first
	if got := fx.Snapshot()[0].Born; got != 12 {
		t.Errorf("Expected oldest surviving particle born at 12, got %d", got)
	}

	fx.Clear()
	if fx.Len() != 0 {
		t.Error("Expected clear to empty the pool")
	}
}

func TestParticleAge(t *testing.T) {
	p := Particle{Born: time.Second, Life: 100 * time.Millisecond}

	if a := p.Age(time.Second + 50*time.Millisecond); a != 0.5 {
		t.Errorf("Expected age 0.5, got %f", a)
	}
	if a := p.Age(2 * time.Second); a != 1 {
		t.Errorf("Expected age clamped to 1, got %f", a)
	}
}
