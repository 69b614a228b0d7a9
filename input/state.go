package input

import "sync/atomic"

// Source identifies a writer of drive flags
type Source uint8

const (
	SourceKeyboard Source = iota
	SourceTouch
	sourceCount
)

// State is the single authoritative input record read once per simulation tick
// Each source owns one packed slot; writers store whole commands atomically and the
// last write to a slot wins. The tick reads the OR of all slots, so sources never
// overwrite each other
type State struct {
	slots [sourceCount]atomic.Uint32
}

// NewState creates an empty input record
func NewState() *State {
	return &State{}
}

// Store replaces the command for a source
// Unknown sources are ignored
func (s *State) Store(src Source, c Command) {
	if src >= sourceCount {
		return
	}
	s.slots[src].Store(c.bits())
}

// Set toggles a single control for a source without disturbing its other flags
func (s *State) Set(src Source, ctrl Control, on bool) {
	if src >= sourceCount || ctrl >= ControlCount {
		return
	}
	mask := uint32(1) << ctrl
	for {
		old := s.slots[src].Load()
		next := old &^ mask
		if on {
			next |= mask
		}
		if s.slots[src].CompareAndSwap(old, next) {
			return
		}
	}
}

// Source returns the command currently held by one source
func (s *State) Source(src Source) Command {
	if src >= sourceCount {
		return Command{}
	}
	return commandFromBits(s.slots[src].Load())
}

// Command returns the merged command across all sources
func (s *State) Command() Command {
	var c Command
	for i := range s.slots {
		c = c.Or(commandFromBits(s.slots[i].Load()))
	}
	return c
}

// Reset clears every source
func (s *State) Reset() {
	for i := range s.slots {
		s.slots[i].Store(0)
	}
}
