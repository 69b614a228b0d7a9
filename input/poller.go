package input

import (
	"sync"
	"time"

	"github.com/lixenwraith/vi-racer/core"
)

// Poller samples keyboard hold expiry and touch buttons into State on a fixed interval
// It is the only periodic writer besides direct key presses
type Poller struct {
	state    *State
	keyboard *Keyboard
	touch    *TouchPad
	Interval time.Duration
	now      func() time.Time

	stopChan chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	wg       sync.WaitGroup
}

// NewPoller creates a poller; now defaults to time.Now when nil
func NewPoller(state *State, keyboard *Keyboard, touch *TouchPad, interval time.Duration, now func() time.Time) *Poller {
	if now == nil {
		now = time.Now
	}
	return &Poller{
		state:    state,
		keyboard: keyboard,
		touch:    touch,
		Interval: interval,
		now:      now,
		stopChan: make(chan struct{}),
	}
}

// Poll performs a single sample
func (p *Poller) Poll() {
	if p.keyboard != nil {
		p.keyboard.Refresh(p.now())
	}
	if p.touch != nil {
		p.state.Store(SourceTouch, p.touch.Command())
	}
}

// Start launches the polling goroutine; calling it twice is a no-op
func (p *Poller) Start() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return
	}
	p.started = true

	p.wg.Add(1)
	core.Go(func() {
		defer p.wg.Done()
		ticker := time.NewTicker(p.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-p.stopChan:
				return
			case <-ticker.C:
				p.Poll()
			}
		}
	})
}

// Stop halts polling, waits for the goroutine and clears the input record
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
		p.wg.Wait()
		p.state.Reset()
	})
}
