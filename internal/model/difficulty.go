package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDifficulty is returned for unknown difficulty names
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty is the level of a puzzle. The value is the multiplier applied to
// MinClues to get the number of clues of a generated puzzle.
type Difficulty int

const (
	DifficultyExtreme Difficulty = 1
	DifficultyHard    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyEasy    Difficulty = 4
)

// MinClues is the smallest number of clues a uniquely solvable puzzle can have
const MinClues = 17

// Difficulties lists every level from the easiest to the hardest
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme}

// String returns the display name of the level
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyHard:
		return "Hard"
	case DifficultyExtreme:
		return "Extreme"
	default:
		return "Unknown"
	}
}

// TargetClues returns how many cells a puzzle of this level starts with
func (d Difficulty) TargetClues() int {
	return MinClues * int(d)
}

// IsValid reports whether d is one of the known levels
func (d Difficulty) IsValid() bool {
	return d >= DifficultyExtreme && d <= DifficultyEasy
}

// ParseDifficulty parses a level name, ignoring case and surrounding spaces
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	case "extreme":
		return DifficultyExtreme, nil
	}
	return 0, fmt.Errorf("%w: the difficulty level %q is not valid", ErrInvalidDifficulty, name)
}

// DifficultyNames returns the display names of all levels
func DifficultyNames() []string {
	names := make([]string, 0, len(Difficulties))
	for _, d := range Difficulties {
		names = append(names, d.String())
	}
	return names
}
