package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ytget/sudoku/internal/model"
)

const (
	// FileExtension is the extension of saved games
	FileExtension = ".sudoku"

	// FormatVersion is the version written by Save
	FormatVersion = 1
)

// ErrUnsupportedVersion is returned for files written by a newer format
var ErrUnsupportedVersion = errors.New("unsupported saved game version")

// SavedGame is the on-disk form of a game in progress. Puzzle holds the
// givens, Current the board as the player left it.
type SavedGame struct {
	Version    int       `json:"version"`
	Difficulty string    `json:"difficulty,omitempty"`
	Puzzle     [][]int   `json:"puzzle"`
	Current    [][]int   `json:"current"`
	SavedAt    time.Time `json:"saved_at"`
}

// NewSavedGame builds a saved game from the givens and the current board
func NewSavedGame(d model.Difficulty, puzzle, current *model.Board) *SavedGame {
	sg := &SavedGame{
		Version: FormatVersion,
		Puzzle:  puzzle.Matrix(),
		Current: current.Matrix(),
		SavedAt: time.Now().UTC().Truncate(time.Second),
	}
	if d.IsValid() {
		sg.Difficulty = d.String()
	}
	return sg
}

// Boards returns the givens and the current board
func (sg *SavedGame) Boards() (puzzle, current *model.Board, err error) {
	puzzle, err = model.FromMatrix(sg.Puzzle)
	if err != nil {
		return nil, nil, fmt.Errorf("puzzle: %w", err)
	}
	current, err = model.FromMatrix(sg.Current)
	if err != nil {
		return nil, nil, fmt.Errorf("current: %w", err)
	}
	return puzzle, current, nil
}

// Level returns the saved difficulty, or 0 when none was recorded
func (sg *SavedGame) Level() model.Difficulty {
	d, err := model.ParseDifficulty(sg.Difficulty)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks the version and that every given is kept on the current
// board.
func (sg *SavedGame) Validate() error {
	if sg.Version < 1 || sg.Version > FormatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, sg.Version)
	}
	if sg.Difficulty != "" {
		if _, err := model.ParseDifficulty(sg.Difficulty); err != nil {
			return err
		}
	}
	puzzle, current, err := sg.Boards()
	if err != nil {
		return err
	}
	for _, c := range puzzle.Cells(model.Used()) {
		if current.Get(c.Row, c.Col) != c.Value {
			return fmt.Errorf("%w: given at (%d,%d) changed", model.ErrInvalidMatrix, c.Row, c.Col)
		}
	}
	return nil
}

// Encode writes sg as indented JSON
func Encode(w io.Writer, sg *SavedGame) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sg)
}

// Decode reads and validates a saved game
func Decode(r io.Reader) (*SavedGame, error) {
	var sg SavedGame
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sg); err != nil {
		return nil, fmt.Errorf("decode saved game: %w", err)
	}
	if err := sg.Validate(); err != nil {
		return nil, err
	}
	return &sg, nil
}

// Save writes sg to path, replacing any existing file atomically. The
// extension is added when missing.
func Save(path string, sg *SavedGame) (string, error) {
	path = WithExtension(path)
	if err := sg.Validate(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}
	if err := writeFileAtomic(path, sg); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a saved game from path
func Load(path string) (*SavedGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// WithExtension appends FileExtension unless path already ends with it
func WithExtension(path string) string {
	if strings.EqualFold(filepath.Ext(path), FileExtension) {
		return path
	}
	return path + FileExtension
}
