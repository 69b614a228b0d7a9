package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/vi-racer/core"
	"github.com/lixenwraith/vi-racer/status"
)

// TickFunc runs one simulation tick; n is the scheduler's tick counter
type TickFunc func(n uint64)

// ClockScheduler runs a TickFunc at a fixed interval on its own goroutine
// Deadlines are paced against a PausableClock so pausing stops ticks without busy-wait
// and resuming does not replay the paused span
type ClockScheduler struct {
	clock *PausableClock
	tick  TickFunc

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time // Next tick deadline for drift correction

	tickCount atomic.Uint64
	mu        sync.RWMutex

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	statTicks   *status.Counter
	statDropped *status.Counter
}

// NewClockScheduler creates a scheduler calling tick every tickInterval
func NewClockScheduler(clock *PausableClock, tickInterval time.Duration, tick TickFunc, reg *status.Registry) *ClockScheduler {
	if clock == nil {
		clock = NewPausableClock(nil)
	}
	if reg == nil {
		reg = status.NewRegistry(nil)
	}
	return &ClockScheduler{
		clock:        clock,
		tick:         tick,
		tickInterval: tickInterval,
		stopChan:     make(chan struct{}),
		statTicks:    reg.Counter("scheduler.ticks", "Ticks dispatched by the clock scheduler"),
		statDropped:  reg.Counter("scheduler.dropped", "Deadlines skipped after falling behind"),
	}
}

// Start begins the scheduler loop; subsequent calls are no-ops
func (cs *ClockScheduler) Start() {
	if cs.running.CompareAndSwap(false, true) {
		cs.wg.Add(1)
		core.Go(cs.schedulerLoop)
	}
}

// Stop halts the loop and waits for the goroutine to exit
// Safe to call multiple times and before Start
func (cs *ClockScheduler) Stop() {
	cs.stopOnce.Do(func() {
		close(cs.stopChan)
		cs.running.Store(false)
	})
	cs.wg.Wait()
}

// Pause suspends ticking
func (cs *ClockScheduler) Pause() { cs.clock.Pause() }

// Resume continues ticking from the paused deadline
func (cs *ClockScheduler) Resume() { cs.clock.Resume() }

// TogglePause flips the pause state and returns the new state
func (cs *ClockScheduler) TogglePause() bool { return cs.clock.Toggle() }

// IsPaused reports whether ticks are suspended
func (cs *ClockScheduler) IsPaused() bool { return cs.clock.IsPaused() }

// TickCount returns the number of ticks dispatched
func (cs *ClockScheduler) TickCount() uint64 { return cs.tickCount.Load() }

// schedulerLoop runs the main scheduling loop with pause awareness
func (cs *ClockScheduler) schedulerLoop() {
	defer cs.wg.Done()

	cs.mu.Lock()
	cs.nextTickDeadline = cs.clock.Now().Add(cs.tickInterval)
	cs.mu.Unlock()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-cs.stopChan:
			return
		default:
		}

		var sleepDuration time.Duration

		if cs.clock.IsPaused() {
			// Longer sleep while paused to save CPU
			sleepDuration = cs.tickInterval * 2
		} else {
			now := cs.clock.Now()

			cs.mu.RLock()
			deadline := cs.nextTickDeadline
			cs.mu.RUnlock()

			if !now.Before(deadline) {
				n := cs.tickCount.Add(1)
				cs.tick(n)
				cs.statTicks.Add(1)

				cs.mu.Lock()
				cs.nextTickDeadline = cs.nextTickDeadline.Add(cs.tickInterval)

				// Too far behind: drop the backlog instead of bursting
				maxBehind := cs.tickInterval * 2
				if now.Sub(cs.nextTickDeadline) > maxBehind {
					cs.nextTickDeadline = now.Add(cs.tickInterval)
					cs.statDropped.Add(1)
				}
				deadline = cs.nextTickDeadline
				cs.mu.Unlock()

				sleepDuration = deadline.Sub(cs.clock.Now())
			} else {
				sleepDuration = deadline.Sub(now)
			}
		}

		if sleepDuration > 0 {
			timer.Reset(sleepDuration)
			select {
			case <-timer.C:
			case <-cs.stopChan:
				return
			}
		}
	}
}
