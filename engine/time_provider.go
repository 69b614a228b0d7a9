package engine

import (
	"sync"
	"time"
)

// TimeProvider is a source of time readings
// Real time drives the scheduler; simulation time is a StepClock advanced per tick
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
// Used for real-time operations (scheduling, UI) that should not pause
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// StepClock is a TimeProvider that only moves when told to
// The simulation advances it by one tick interval per Step so lap times are
// deterministic and independent of scheduling jitter; tests use it to drive time
type StepClock struct {
	mu    sync.RWMutex
	epoch time.Time
	now   time.Time
}

// NewStepClock creates a clock reading start
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{epoch: start, now: start}
}

// Now returns the current clock reading
func (c *StepClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new reading
func (c *StepClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set jumps the clock to t
func (c *StepClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Elapsed returns time since the clock was created
func (c *StepClock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now.Sub(c.epoch)
}
