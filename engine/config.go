package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-racer/constants"
	"github.com/lixenwraith/vi-racer/navigation"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/status"
)

// ErrInvalidConfig is returned by New when the configuration cannot produce a race
var ErrInvalidConfig = errors.New("invalid simulation config")

// Config holds simulation tuning and collaborators
// Zero values for optional collaborators are replaced with working defaults in New
type Config struct {
	AICount  int // Opponents; capped by the track's AI spawn count
	TickRate int // Hz; defines the fixed step dt

	Player physics.Profile
	AI     physics.Profile
	Pilot  navigation.PilotConfig

	PlayerCooldown time.Duration
	AICooldown     time.Duration
	SmokeInterval  time.Duration
	PairImpulse    float64

	// Seed drives cosmetic particle jitter; 0 picks a random seed
	Seed uint64

	// Start is the sim clock epoch; zero uses the wall clock at New
	Start time.Time

	// SessionID tags logs and telemetry; empty generates a ksuid
	SessionID string

	Logger  zerolog.Logger
	Metrics *status.Registry
}

// DefaultConfig returns the standard race tuning
func DefaultConfig() Config {
	return Config{
		AICount:  constants.DefaultAICount,
		TickRate: constants.TickRate,
		Player:   physics.PlayerProfile,
		AI:       physics.AIProfile,
		Pilot: navigation.PilotConfig{
			AngleThreshold: constants.AIAngleThreshold,
			Proximity:      constants.AIWaypointProximity,
		},
		PlayerCooldown: constants.PlayerCheckpointCooldown,
		AICooldown:     constants.AICheckpointCooldown,
		SmokeInterval:  constants.SmokeInterval,
		PairImpulse:    constants.PairImpulse,
		Logger:         zerolog.Nop(),
	}
}

func (c Config) validate() error {
	if c.AICount < 0 {
		return fmt.Errorf("%w: ai count %d", ErrInvalidConfig, c.AICount)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick rate %d", ErrInvalidConfig, c.TickRate)
	}
	for name, p := range map[string]physics.Profile{"player": c.Player, "ai": c.AI} {
		if p.MaxSpeed <= 0 || p.Radius <= 0 {
			return fmt.Errorf("%w: %s profile needs positive max speed and radius", ErrInvalidConfig, name)
		}
	}
	return nil
}

// TickInterval returns the fixed step duration
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
