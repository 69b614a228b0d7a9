package input

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Button is an on-screen touch control in terminal cells
type Button struct {
	Control Control
	Label   string
	X, Y    int
	W, H    int
}

// Contains reports whether a cell lies on the button
func (b Button) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// pointerButtons are the mouse buttons treated as independent fingers
var pointerButtons = []tcell.ButtonMask{tcell.Button1, tcell.Button2, tcell.Button3}

// TouchPad maps mouse presses on on-screen buttons to drive flags
// Each mouse button acts as one finger: press over a control sets it, release clears it
type TouchPad struct {
	mu      sync.Mutex
	buttons []Button
	fingers map[tcell.ButtonMask]Control
	down    tcell.ButtonMask
}

// NewTouchPad creates a pad with no layout
func NewTouchPad() *TouchPad {
	return &TouchPad{
		fingers: make(map[tcell.ButtonMask]Control),
	}
}

// Layout places the four buttons along the bottom rows of a width x height screen
// Steering sits on the left, pedals on the right
func (t *TouchPad) Layout(width, height, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w := width / 6
	if w < 5 {
		w = 5
	}
	y := height - rows
	t.buttons = []Button{
		{Control: ControlLeft, Label: "<", X: 1, Y: y, W: w, H: rows},
		{Control: ControlRight, Label: ">", X: 2 + w, Y: y, W: w, H: rows},
		{Control: ControlBackward, Label: "BRAKE", X: width - 2*w - 2, Y: y, W: w, H: rows},
		{Control: ControlForward, Label: "GAS", X: width - w - 1, Y: y, W: w, H: rows},
	}
	// Layout change invalidates any finger resting on an old button
	clear(t.fingers)
	t.down = tcell.ButtonNone
}

// Buttons returns a copy of the current layout
func (t *TouchPad) Buttons() []Button {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Button(nil), t.buttons...)
}

// HandleMouse updates fingers from a mouse event
// A newly pressed mouse button picks the control under the pointer; buttons already
// down keep their control since tcell reports one position for all of them
// Returns true if any drive flag changed
func (t *TouchPad) HandleMouse(x, y int, mask tcell.ButtonMask) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	before := t.commandLocked()
	for _, pb := range pointerButtons {
		switch {
		case mask&pb == 0:
			delete(t.fingers, pb)
		case t.down&pb == 0:
			if ctrl, ok := t.hitLocked(x, y); ok {
				t.fingers[pb] = ctrl
			}
		}
	}
	t.down = mask
	return t.commandLocked() != before
}

// Command returns the flags held by all fingers
func (t *TouchPad) Command() Command {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.commandLocked()
}

// Pressed reports whether a control is held by any finger
func (t *TouchPad) Pressed(ctrl Control) bool {
	return t.Command().Has(ctrl)
}

// Clear lifts every finger
func (t *TouchPad) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.fingers)
	t.down = tcell.ButtonNone
}

func (t *TouchPad) commandLocked() Command {
	var c Command
	for _, ctrl := range t.fingers {
		c = c.With(ctrl, true)
	}
	return c
}

func (t *TouchPad) hitLocked(x, y int) (Control, bool) {
	for _, b := range t.buttons {
		if b.Contains(x, y) {
			return b.Control, true
		}
	}
	return 0, false
}
