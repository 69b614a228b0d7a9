package constants

import "time"

// Input
const (
	// KeyHoldTimeout is how long a key counts as held after its last press/repeat event
	// Terminals report no key release, so repeats keep the flag alive
	KeyHoldTimeout = 150 * time.Millisecond
)

// Particles
const (
	// SmokeLifetime is how long a tire smoke particle stays visible
	SmokeLifetime = 400 * time.Millisecond

	// SparkLifetime is how long a wall spark particle stays visible
	SparkLifetime = 250 * time.Millisecond

	// MaxParticles bounds the particle pool
	MaxParticles = 256
)

// Layout
const (
	// HUDHeight is the number of terminal rows reserved for the HUD
	HUDHeight = 1

	// ButtonBarHeight is the number of terminal rows reserved for touch buttons
	ButtonBarHeight = 3

	// MinScreenWidth is the smallest terminal width the race view supports
	MinScreenWidth = 40

	// MinScreenHeight is the smallest terminal height the race view supports
	MinScreenHeight = 12
)

// Logging
const (
	// LogDir is the directory for debug logs
	LogDir = "logs"

	// LogFileName is the debug log file name
	LogFileName = "vi-racer.log"

	// MaxLogSize triggers rotation of the debug log
	MaxLogSize = 10 * 1024 * 1024
)
