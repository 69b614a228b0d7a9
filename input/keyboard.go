package input

import (
	"sync"
	"time"
)

// opposite maps a control to the one it cancels
var opposite = [ControlCount]Control{
	ControlLeft:     ControlRight,
	ControlRight:    ControlLeft,
	ControlForward:  ControlBackward,
	ControlBackward: ControlForward,
}

// Keyboard turns terminal key events into held drive flags
// Terminals report presses and auto-repeats but never releases, so a control stays
// held until holdTimeout passes without a fresh event for it
type Keyboard struct {
	mu          sync.Mutex
	state       *State
	holdTimeout time.Duration
	lastSeen    [ControlCount]time.Time
	held        Command
}

// NewKeyboard creates a keyboard source publishing into state
func NewKeyboard(state *State, holdTimeout time.Duration) *Keyboard {
	return &Keyboard{
		state:       state,
		holdTimeout: holdTimeout,
	}
}

// Press marks a control as held at now and releases its opposite
func (k *Keyboard) Press(ctrl Control, now time.Time) {
	if ctrl >= ControlCount {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	k.lastSeen[ctrl] = now
	k.lastSeen[opposite[ctrl]] = time.Time{}
	k.held = k.held.With(ctrl, true).With(opposite[ctrl], false)
	k.state.Store(SourceKeyboard, k.held)
}

// Release drops a control immediately (used for terminals that do report releases)
func (k *Keyboard) Release(ctrl Control) {
	if ctrl >= ControlCount {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	k.lastSeen[ctrl] = time.Time{}
	k.held = k.held.With(ctrl, false)
	k.state.Store(SourceKeyboard, k.held)
}

// Refresh expires controls whose hold window elapsed and republishes
func (k *Keyboard) Refresh(now time.Time) Command {
	k.mu.Lock()
	defer k.mu.Unlock()

	for ctrl := Control(0); ctrl < ControlCount; ctrl++ {
		if !k.held.Has(ctrl) {
			continue
		}
		if now.Sub(k.lastSeen[ctrl]) > k.holdTimeout {
			k.held = k.held.With(ctrl, false)
		}
	}
	k.state.Store(SourceKeyboard, k.held)
	return k.held
}

// Clear releases everything
func (k *Keyboard) Clear() {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.lastSeen = [ControlCount]time.Time{}
	k.held = Command{}
	k.state.Store(SourceKeyboard, k.held)
}
