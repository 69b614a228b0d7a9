package input

// IntentType discriminates semantic actions decoded from terminal events
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit          // Ctrl+C, q in lobby
	IntentEscape        // ESC: leave race, close overlay
	IntentToggleOverlay // F1 diagnostics
	IntentToggleMute    // m
	IntentResize        // Terminal resize event

	// Lobby
	IntentSelectUp   // k, Up
	IntentSelectDown // j, Down
	IntentToggleSave // s
	IntentReminder   // r
	IntentStartRace  // Enter, g

	// Race
	IntentDrive // Steering/pedal key, carries Control
	IntentPause // p
)

// Mode selects which key table applies
type Mode uint8

const (
	ModeLobby Mode = iota
	ModeRace
)

// Intent is a decoded action
type Intent struct {
	Type    IntentType
	Control Control // Valid for IntentDrive
}
