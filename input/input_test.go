package input

import (
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestCommandBitsRoundTrip(t *testing.T) {
	c := Command{Left: true, Backward: true}
	got := commandFromBits(c.bits())
	if got != c {
		t.Errorf("Expected %+v, got %+v", c, got)
	}

	// Unknown high bits are ignored
	if got := commandFromBits(1 << 20); got.Any() {
		t.Errorf("Expected unknown bits ignored, got %+v", got)
	}
}

func TestStateMergesSources(t *testing.T) {
	s := NewState()

	s.Store(SourceKeyboard, Command{Forward: true})
	s.Store(SourceTouch, Command{Left: true})

	got := s.Command()
	want := Command{Forward: true, Left: true}
	if got != want {
		t.Errorf("Expected merged %+v, got %+v", want, got)
	}
}

func TestStateLastWriteWinsPerSource(t *testing.T) {
	s := NewState()

	s.Store(SourceTouch, Command{Forward: true})
	s.Store(SourceTouch, Command{Right: true})

	got := s.Source(SourceTouch)
	if got != (Command{Right: true}) {
		t.Errorf("Expected last write to win, got %+v", got)
	}
}

func TestStateSetSingleFlag(t *testing.T) {
	s := NewState()

	s.Set(SourceKeyboard, ControlForward, true)
	s.Set(SourceKeyboard, ControlLeft, true)
	s.Set(SourceKeyboard, ControlForward, false)

	if got := s.Command(); got != (Command{Left: true}) {
		t.Errorf("Expected only left held, got %+v", got)
	}

	// Invalid indices are ignored rather than rejected
	s.Set(Source(99), ControlLeft, true)
	s.Set(SourceKeyboard, Control(99), true)
	s.Store(Source(99), Command{Forward: true})
	if got := s.Command(); got != (Command{Left: true}) {
		t.Errorf("Expected invalid writes ignored, got %+v", got)
	}
}

func TestStateConcurrentWriters(t *testing.T) {
	s := NewState()
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.Set(SourceTouch, Control(j%int(ControlCount)), j%2 == 0)
				_ = s.Command()
			}
		}(i)
	}
	wg.Wait()

	s.Reset()
	if s.Command().Any() {
		t.Error("Expected reset to clear all sources")
	}
}

func TestKeyboardHoldTimeout(t *testing.T) {
	s := NewState()
	kb := NewKeyboard(s, 150*time.Millisecond)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	kb.Press(ControlForward, start)
	if !s.Command().Forward {
		t.Fatal("Expected forward held immediately after press")
	}

	// Auto-repeat keeps it alive
	kb.Press(ControlForward, start.Add(100*time.Millisecond))
	kb.Refresh(start.Add(200 * time.Millisecond))
	if !s.Command().Forward {
		t.Error("Expected forward still held within timeout of last repeat")
	}

	kb.Refresh(start.Add(300 * time.Millisecond))
	if s.Command().Forward {
		t.Error("Expected forward released after hold timeout")
	}
}

func TestKeyboardOppositeCancels(t *testing.T) {
	s := NewState()
	kb := NewKeyboard(s, time.Second)
	now := time.Now()

	kb.Press(ControlLeft, now)
	kb.Press(ControlRight, now)

	got := s.Command()
	if got.Left || !got.Right {
		t.Errorf("Expected right to cancel left, got %+v", got)
	}

	kb.Press(ControlForward, now)
	kb.Release(ControlForward)
	if s.Command().Forward {
		t.Error("Expected explicit release to clear forward")
	}

	kb.Clear()
	if s.Command().Any() {
		t.Error("Expected clear to release everything")
	}
}

func TestTouchPadFingers(t *testing.T) {
	tp := NewTouchPad()
	tp.Layout(60, 20, 3)

	var gas, left Button
	for _, b := range tp.Buttons() {
		switch b.Control {
		case ControlForward:
			gas = b
		case ControlLeft:
			left = b
		}
	}

	// Finger one on gas
	if !tp.HandleMouse(gas.X, gas.Y, tcell.Button1) {
		t.Error("Expected gas press to change state")
	}
	// Finger two on left, finger one still down
	tp.HandleMouse(left.X, left.Y, tcell.Button1|tcell.Button2)

	got := tp.Command()
	if !got.Forward || !got.Left {
		t.Errorf("Expected gas and left held, got %+v", got)
	}

	// Lift finger one only
	tp.HandleMouse(left.X, left.Y, tcell.Button2)
	got = tp.Command()
	if got.Forward || !got.Left {
		t.Errorf("Expected only left held, got %+v", got)
	}

	tp.HandleMouse(0, 0, tcell.ButtonNone)
	if tp.Command().Any() {
		t.Error("Expected all released")
	}
}

func TestTouchPadMissesButtons(t *testing.T) {
	tp := NewTouchPad()
	tp.Layout(60, 20, 3)

	if tp.HandleMouse(30, 2, tcell.Button1) {
		t.Error("Expected press outside buttons to change nothing")
	}
	if tp.Command().Any() {
		t.Error("Expected no control from empty area")
	}
}

func TestPollerPublishesTouch(t *testing.T) {
	s := NewState()
	tp := NewTouchPad()
	tp.Layout(60, 20, 3)
	b := tp.Buttons()[0]
	tp.HandleMouse(b.X, b.Y, tcell.Button1)

	p := NewPoller(s, nil, tp, time.Millisecond, nil)
	p.Poll()
	if !s.Command().Has(b.Control) {
		t.Errorf("Expected %s published after poll", b.Control)
	}

	p.Start()
	p.Start()
	p.Stop()
	p.Stop()
	if s.Command().Any() {
		t.Error("Expected stop to clear input record")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		ev   *tcell.EventKey
		want Intent
	}{
		{"race up", ModeRace, tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Intent{Type: IntentDrive, Control: ControlForward}},
		{"race s brakes", ModeRace, tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), Intent{Type: IntentDrive, Control: ControlBackward}},
		{"race uppercase", ModeRace, tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModNone), Intent{Type: IntentDrive, Control: ControlLeft}},
		{"lobby s saves", ModeLobby, tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), Intent{Type: IntentToggleSave}},
		{"lobby enter", ModeLobby, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Intent{Type: IntentStartRace}},
		{"escape everywhere", ModeRace, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Intent{Type: IntentEscape}},
		{"ctrl-c quits", ModeLobby, tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Intent{Type: IntentQuit}},
		{"unknown rune", ModeRace, tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), Intent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.mode, tt.ev); got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
