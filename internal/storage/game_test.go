package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/sudoku/internal/model"
)

func sampleBoards(t *testing.T) (*model.Board, *model.Board) {
	t.Helper()
	puzzle := model.NewBoard()
	require.NoError(t, puzzle.Set(0, 0, 5))
	require.NoError(t, puzzle.Set(4, 4, 9))

	current := puzzle.Clone()
	require.NoError(t, current.Set(0, 1, 3))
	return puzzle, current
}

func TestSaveLoadRoundTrip(t *testing.T) {
	puzzle, current := sampleBoards(t)
	sg := NewSavedGame(model.DifficultyHard, puzzle, current)

	path, err := Save(filepath.Join(t.TempDir(), "nested", "game"), sg)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, FileExtension))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(sg, loaded); diff != "" {
		t.Errorf("saved game mismatch (-want +got):\n%s", diff)
	}

	p, c, err := loaded.Boards()
	require.NoError(t, err)
	assert.True(t, p.Equal(puzzle))
	assert.True(t, c.Equal(current))
	assert.Equal(t, model.DifficultyHard, loaded.Level())
}

func TestSaveOverwrites(t *testing.T) {
	puzzle, current := sampleBoards(t)
	path := filepath.Join(t.TempDir(), "game.sudoku")

	_, err := Save(path, NewSavedGame(model.DifficultyEasy, puzzle, current))
	require.NoError(t, err)

	require.NoError(t, current.Set(8, 8, 1))
	_, err = Save(path, NewSavedGame(model.DifficultyEasy, puzzle, current))
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Current[8][8])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestSaveFailureLeavesNoTempFile(t *testing.T) {
	puzzle, current := sampleBoards(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "game.sudoku")
	require.NoError(t, os.Mkdir(target, 0o755))

	_, err := Save(target, NewSavedGame(model.DifficultyEasy, puzzle, current))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "game.sudoku", entries[0].Name())
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"future version", `{"version": 99, "puzzle": [], "current": []}`, ErrUnsupportedVersion},
		{"bad matrix", `{"version": 1, "puzzle": [[1]], "current": [[1]]}`, model.ErrInvalidMatrix},
		{"bad difficulty", `{"version": 1, "difficulty": "nightmare", "puzzle": [], "current": []}`, model.ErrInvalidDifficulty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Decode(strings.NewReader(`{"version": 1, "extra": true}`))
	assert.Error(t, err)
}

func TestValidateGivenChanged(t *testing.T) {
	puzzle, current := sampleBoards(t)
	require.NoError(t, current.Set(0, 0, 6))

	err := NewSavedGame(model.DifficultyEasy, puzzle, current).Validate()
	assert.ErrorIs(t, err, model.ErrInvalidMatrix)

	_, err = Save(filepath.Join(t.TempDir(), "x"), NewSavedGame(model.DifficultyEasy, puzzle, current))
	assert.Error(t, err)
}

func TestEncodeIsReadableJSON(t *testing.T) {
	puzzle, current := sampleBoards(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewSavedGame(0, puzzle, current)))

	out := buf.String()
	assert.Contains(t, out, `"version": 1`)
	assert.NotContains(t, out, "difficulty")
}

func TestWithExtension(t *testing.T) {
	assert.Equal(t, "a.sudoku", WithExtension("a"))
	assert.Equal(t, "a.sudoku", WithExtension("a.sudoku"))
	assert.Equal(t, "a.SUDOKU", WithExtension("a.SUDOKU"))
	assert.Equal(t, "a.txt.sudoku", WithExtension("a.txt"))
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.sudoku"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
