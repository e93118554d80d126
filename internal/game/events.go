package game

import "github.com/ytget/sudoku/internal/model"

// EventKind tells the view what changed
type EventKind int

const (
	// EventNewBoard means the whole board was replaced
	EventNewBoard EventKind = iota
	// EventCellChanged carries the square and cell of a modified cell
	EventCellChanged
	// EventCheckResult carries whether the board matches the solution
	EventCheckResult
	// EventNotSaved means the game has unsaved changes. With Ask set the
	// view should offer to save before going on, otherwise it should ask
	// for a file to save to.
	EventNotSaved
	// EventChooseDifficulty asks the view for the level of a new game
	EventChooseDifficulty
	// EventChooseFile asks the view for a saved game to open
	EventChooseFile
	// EventGenerating means a new puzzle is being generated
	EventGenerating
	// EventError carries a failure the view should report
	EventError
)

var eventNames = map[EventKind]string{
	EventNewBoard:         "new-board",
	EventCellChanged:      "cell-changed",
	EventCheckResult:      "check-result",
	EventNotSaved:         "not-saved",
	EventChooseDifficulty: "choose-difficulty",
	EventChooseFile:       "choose-file",
	EventGenerating:       "generating",
	EventError:            "error",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is sent to the view after every state change
type Event struct {
	Kind       EventKind
	Square     int
	Cell       int
	Correct    bool
	Ask        bool
	Difficulty model.Difficulty
	Err        error
}
