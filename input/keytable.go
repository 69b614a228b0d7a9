package input

import "github.com/gdamore/tcell/v2"

// KeyEntry describes a key's effect without function pointers
type KeyEntry struct {
	Intent  IntentType
	Control Control
}

// KeyTable maps keys to intents for one mode
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, function keys)
	Keys map[tcell.Key]KeyEntry
	// Printable rune bindings, matched case-insensitively
	Runes map[rune]KeyEntry
}

// systemKeys apply in every mode
var systemKeys = map[tcell.Key]KeyEntry{
	tcell.KeyCtrlC:  {Intent: IntentQuit},
	tcell.KeyCtrlQ:  {Intent: IntentQuit},
	tcell.KeyEscape: {Intent: IntentEscape},
	tcell.KeyF1:     {Intent: IntentToggleOverlay},
}

// LobbyKeys is the lobby key table
var LobbyKeys = KeyTable{
	Keys: map[tcell.Key]KeyEntry{
		tcell.KeyUp:    {Intent: IntentSelectUp},
		tcell.KeyDown:  {Intent: IntentSelectDown},
		tcell.KeyEnter: {Intent: IntentStartRace},
	},
	Runes: map[rune]KeyEntry{
		'k': {Intent: IntentSelectUp},
		'j': {Intent: IntentSelectDown},
		's': {Intent: IntentToggleSave},
		'r': {Intent: IntentReminder},
		'g': {Intent: IntentStartRace},
		'm': {Intent: IntentToggleMute},
		'q': {Intent: IntentQuit},
	},
}

// RaceKeys is the in-race key table: arrows and WASD drive
var RaceKeys = KeyTable{
	Keys: map[tcell.Key]KeyEntry{
		tcell.KeyUp:    {Intent: IntentDrive, Control: ControlForward},
		tcell.KeyDown:  {Intent: IntentDrive, Control: ControlBackward},
		tcell.KeyLeft:  {Intent: IntentDrive, Control: ControlLeft},
		tcell.KeyRight: {Intent: IntentDrive, Control: ControlRight},
	},
	Runes: map[rune]KeyEntry{
		'w': {Intent: IntentDrive, Control: ControlForward},
		's': {Intent: IntentDrive, Control: ControlBackward},
		'a': {Intent: IntentDrive, Control: ControlLeft},
		'd': {Intent: IntentDrive, Control: ControlRight},
		'p': {Intent: IntentPause},
		'm': {Intent: IntentToggleMute},
	},
}

// Decode resolves a key event for a mode; unknown keys decode to IntentNone
func Decode(mode Mode, ev *tcell.EventKey) Intent {
	if e, ok := systemKeys[ev.Key()]; ok {
		return Intent{Type: e.Intent, Control: e.Control}
	}

	table := &LobbyKeys
	if mode == ModeRace {
		table = &RaceKeys
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if e, ok := table.Runes[r]; ok {
			return Intent{Type: e.Intent, Control: e.Control}
		}
		return Intent{}
	}

	if e, ok := table.Keys[ev.Key()]; ok {
		return Intent{Type: e.Intent, Control: e.Control}
	}
	return Intent{}
}
