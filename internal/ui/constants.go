package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconStop     = "■"
	IconClose    = "×"
	IconHint     = "💡"
	IconCheck    = "✓"
	IconClear    = "⌫"
)

// Board sizing
const (
	CellSize       float32 = 44
	CellTextSize   float32 = 22
	CellStroke     float32 = 0.5
	SquareStroke   float32 = 2
	CommandsWidth  float32 = 140
	WindowWidth    float32 = 620
	WindowHeight   float32 = 500
	KeypadColumns          = 5
	DialogMinWidth float32 = 320
)

// Notification behaviour
const (
	NotificationAutoHide = 4 * time.Second
)

// Solver operations started from the UI give up after this long
const (
	SolveTimeout = 30 * time.Second
)

// Language codes
const (
	LanguageSystem  = "system"
	LanguageEnglish = "en"
	LanguageItalian = "it"
)
