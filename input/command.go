package input

// Control identifies one of the four drive flags
type Control uint8

const (
	ControlLeft Control = iota
	ControlRight
	ControlForward
	ControlBackward
	ControlCount
)

// String returns a short label for HUD and logs
func (c Control) String() string {
	switch c {
	case ControlLeft:
		return "left"
	case ControlRight:
		return "right"
	case ControlForward:
		return "gas"
	case ControlBackward:
		return "brake"
	default:
		return "none"
	}
}

// Command is the per-tick drive request; zero value is "no input"
type Command struct {
	Left     bool
	Right    bool
	Forward  bool
	Backward bool
}

// With returns a copy with one control set or cleared
// Out-of-range controls are ignored
func (c Command) With(ctrl Control, on bool) Command {
	switch ctrl {
	case ControlLeft:
		c.Left = on
	case ControlRight:
		c.Right = on
	case ControlForward:
		c.Forward = on
	case ControlBackward:
		c.Backward = on
	}
	return c
}

// Has reports whether a control is active
func (c Command) Has(ctrl Control) bool {
	switch ctrl {
	case ControlLeft:
		return c.Left
	case ControlRight:
		return c.Right
	case ControlForward:
		return c.Forward
	case ControlBackward:
		return c.Backward
	}
	return false
}

// Or merges two commands, a control is active if either side has it
func (c Command) Or(o Command) Command {
	return Command{
		Left:     c.Left || o.Left,
		Right:    c.Right || o.Right,
		Forward:  c.Forward || o.Forward,
		Backward: c.Backward || o.Backward,
	}
}

// Any reports whether any control is active
func (c Command) Any() bool {
	return c.Left || c.Right || c.Forward || c.Backward
}

// bits packs the command for atomic storage
func (c Command) bits() uint32 {
	var b uint32
	for ctrl := Control(0); ctrl < ControlCount; ctrl++ {
		if c.Has(ctrl) {
			b |= 1 << ctrl
		}
	}
	return b
}

// commandFromBits unpacks a stored command; unknown bits are ignored
func commandFromBits(b uint32) Command {
	var c Command
	for ctrl := Control(0); ctrl < ControlCount; ctrl++ {
		if b&(1<<ctrl) != 0 {
			c = c.With(ctrl, true)
		}
	}
	return c
}
