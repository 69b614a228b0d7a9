// Package race tracks laps, lap times and standings for every car in a session
package race

import "time"

// State is the per-vehicle checkpoint state
type State uint8

const (
	StateRacing   State = iota // Armed: the next checkpoint overlap completes a lap
	StateCooldown              // Just crossed: overlaps are ignored until the cooldown ends
)

// String returns the state name for logs and the diagnostic overlay
func (s State) String() string {
	switch s {
	case StateRacing:
		return "racing"
	case StateCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Lap describes one checkpoint crossing
type Lap struct {
	Number        int           // Lap count after this crossing
	LapTime       time.Duration // Zero on the opening crossing
	Timed         bool          // False for the opening crossing that only starts the clock
	PersonalBest  bool          // LapTime is a new best
	CompletedTime time.Time
}

// Tracker is the checkpoint state machine for one vehicle
// Racing -> Cooldown on checkpoint overlap; Cooldown -> Racing once the cooldown has
// elapsed and the vehicle has been seen off the checkpoint, so a car parked on the
// line never counts twice
type Tracker struct {
	cooldown time.Duration

	state        State
	enteredAt    time.Time
	leftZone     bool
	lap          int
	lapStartTime time.Time
	lastLap      time.Duration
	bestLap      time.Duration
	hasBest      bool
}

// NewTracker creates a tracker in Racing with lap 0 and no best lap
func NewTracker(cooldown time.Duration) *Tracker {
	return &Tracker{
		cooldown: cooldown,
		state:    StateRacing,
		leftZone: true,
	}
}

// Update advances the state machine for one tick
// Returns the lap record and true when this tick counted a crossing
func (t *Tracker) Update(now time.Time, onCheckpoint bool) (Lap, bool) {
	if !onCheckpoint {
		t.leftZone = true
	}

	if t.state == StateCooldown && now.Sub(t.enteredAt) >= t.cooldown && t.leftZone {
		t.state = StateRacing
	}

	if t.state != StateRacing || !onCheckpoint {
		return Lap{}, false
	}

	t.state = StateCooldown
	t.enteredAt = now
	t.leftZone = false
	t.lap++

	rec := Lap{Number: t.lap, CompletedTime: now}
	if t.lap > 1 {
		t.lastLap = now.Sub(t.lapStartTime)
		rec.LapTime = t.lastLap
		rec.Timed = true
		if !t.hasBest || t.lastLap < t.bestLap {
			t.bestLap = t.lastLap
			t.hasBest = true
			rec.PersonalBest = true
		}
	}
	t.lapStartTime = now
	return rec, true
}

// State returns the current checkpoint state
func (t *Tracker) State() State { return t.state }

// Laps returns the lap count, never decreasing
func (t *Tracker) Laps() int { return t.lap }

// LastLap returns the most recent lap time; false before the first timed lap
func (t *Tracker) LastLap() (time.Duration, bool) {
	return t.lastLap, t.lap > 1
}

// BestLap returns the best lap time; false until a lap has been timed
func (t *Tracker) BestLap() (time.Duration, bool) {
	return t.bestLap, t.hasBest
}

// LapStart returns when the current lap began; zero before the first crossing
func (t *Tracker) LapStart() time.Time { return t.lapStartTime }
