package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/sudoku/internal/config"
	"github.com/ytget/sudoku/internal/game"
	"github.com/ytget/sudoku/internal/model"
)

var puzzle = [][]int{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

var solution = [][]int{
	{5, 3, 4, 6, 7, 8, 9, 1, 2},
	{6, 7, 2, 1, 9, 5, 3, 4, 8},
	{1, 9, 8, 3, 4, 2, 5, 6, 7},
	{8, 5, 9, 7, 6, 1, 4, 2, 3},
	{4, 2, 6, 8, 5, 3, 7, 9, 1},
	{7, 1, 3, 9, 2, 4, 8, 5, 6},
	{9, 6, 1, 5, 3, 7, 2, 8, 4},
	{2, 8, 7, 4, 1, 9, 6, 3, 5},
	{3, 4, 5, 2, 8, 6, 1, 7, 9},
}

// fakeGenerator stands in for the generation service and its queue
type fakeGenerator struct {
	added       []model.Difficulty
	stopped     []string
	maxParallel int
	callback    func(*model.GenerationTask)
}

func (f *fakeGenerator) SetUpdateCallback(cb func(*model.GenerationTask)) { f.callback = cb }
func (f *fakeGenerator) SetMaxParallel(n int)                            { f.maxParallel = n }

func (f *fakeGenerator) AddTask(d model.Difficulty) (*model.GenerationTask, error) {
	f.added = append(f.added, d)
	return &model.GenerationTask{ID: fmt.Sprintf("task-%d", len(f.added)), Difficulty: d, Status: model.TaskStatusPending}, nil
}

func (f *fakeGenerator) StopTask(id string) error {
	f.stopped = append(f.stopped, id)
	return nil
}

func mustBoard(t *testing.T, m [][]int) *model.Board {
	t.Helper()
	b, err := model.FromMatrix(m)
	require.NoError(t, err)
	return b
}

func newTestUI(t *testing.T) (*RootUI, *fakeGenerator) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	settings := config.NewSettings(app)
	settings.SetSaveDirectory(t.TempDir())
	settings.SetLanguage(LanguageEnglish)
	settings.SetDifficulty(model.DifficultyHard)

	gen := &fakeGenerator{}
	g := game.New(gen)
	w := app.NewWindow("")
	ui := NewRootUI(w, app, g, gen)
	return ui, gen
}

// loadPuzzle starts a game and completes its generation
func loadPuzzle(t *testing.T, ui *RootUI, gen *fakeGenerator) {
	t.Helper()
	require.NoError(t, ui.game.StartNewGame(true))
	ui.applyTaskUpdate(&model.GenerationTask{
		ID:         fmt.Sprintf("task-%d", len(gen.added)),
		Difficulty: model.DifficultyHard,
		Status:     model.TaskStatusCompleted,
		Puzzle:     mustBoard(t, puzzle),
		Solution:   mustBoard(t, solution),
	})
	require.True(t, ui.game.HasBoard())
}

func TestRootUIInitialState(t *testing.T) {
	ui, gen := newTestUI(t)

	assert.Equal(t, "Sudoku", ui.window.Title())
	assert.Equal(t, 1, gen.maxParallel)
	assert.NotNil(t, gen.callback)
	assert.Equal(t, model.DifficultyHard, ui.game.Difficulty())

	assert.True(t, ui.hintBtn.Disabled())
	assert.True(t, ui.solveBtn.Disabled())
	assert.True(t, ui.checkBtn.Disabled())
	assert.True(t, ui.saveBtn.Disabled())
	assert.False(t, ui.newBtn.Disabled())
	assert.False(t, ui.notificationContainer.Visible())

	menu := ui.window.MainMenu()
	require.NotNil(t, menu)
	require.Len(t, menu.Items, 3)
}

func TestRootUINewGameAsksForDifficulty(t *testing.T) {
	ui, gen := newTestUI(t)

	test.Tap(ui.newBtn)
	assert.True(t, ui.dialogs.active)
	assert.Empty(t, gen.added)

	ui.onDifficultyChosen(model.DifficultyEasy)
	assert.Equal(t, []model.Difficulty{model.DifficultyEasy}, gen.added)
	assert.True(t, ui.notificationContainer.Visible())
	assert.True(t, ui.notificationSpinner.Visible())
	assert.True(t, strings.Contains(ui.notificationLabel.Text, "Easy"))

	test.Tap(ui.stopBtn)
	assert.Equal(t, []string{"task-1"}, gen.stopped)

	ui.applyTaskUpdate(&model.GenerationTask{ID: "task-1", Status: model.TaskStatusStopped})
	assert.False(t, ui.game.IsGenerating())
	assert.False(t, ui.notificationSpinner.Visible())
	assert.Equal(t, "Generation stopped", ui.notificationLabel.Text)
}

func TestRootUIShowsGeneratedBoard(t *testing.T) {
	ui, gen := newTestUI(t)
	loadPuzzle(t, ui, gen)

	assert.False(t, ui.notificationContainer.Visible())
	assert.False(t, ui.hintBtn.Disabled())
	assert.False(t, ui.checkBtn.Disabled())
	assert.Equal(t, "Sudoku - Hard *", ui.window.Title())

	for s := 0; s < model.Squares; s++ {
		for c := 0; c < cellsPerSquare; c++ {
			row, col := model.SquareToCoord(s, c)
			assert.Equal(t, puzzle[row][col], ui.board.CellValue(s, c))
			assert.Equal(t, puzzle[row][col] != 0, ui.board.cells[s][c].given)
		}
	}
}

func TestRootUIKeyboardInput(t *testing.T) {
	ui, gen := newTestUI(t)
	loadPuzzle(t, ui, gen)

	// no selection yet
	ui.onTypedRune('4')
	assert.Equal(t, 0, ui.game.Value(0, 2))

	// (0,2) is empty in the puzzle
	test.Tap(ui.board.cells[0][2])
	ui.onTypedRune('4')
	assert.Equal(t, 4, ui.game.Value(0, 2))
	assert.Equal(t, 4, ui.board.CellValue(0, 2))

	// letters are ignored, backspace clears
	ui.onTypedRune('x')
	assert.Equal(t, 4, ui.game.Value(0, 2))
	ui.onTypedKey(&fyne.KeyEvent{Name: fyne.KeyBackspace})
	assert.Equal(t, 0, ui.board.CellValue(0, 2))

	// given cells are read-only
	ui.onTypedKey(&fyne.KeyEvent{Name: fyne.KeyLeft})
	square, cell, _ := ui.board.Selected()
	assert.Equal(t, [2]int{0, 1}, [2]int{square, cell})
	ui.onTypedRune('9')
	assert.Equal(t, 3, ui.game.Value(0, 1))
}

func TestRootUIKeypadFollowsSelection(t *testing.T) {
	ui, gen := newTestUI(t)
	assert.True(t, ui.keypad.buttons[0].Disabled())

	loadPuzzle(t, ui, gen)
	assert.True(t, ui.keypad.buttons[0].Disabled(), "nothing selected")

	// (0,2) is editable, (0,0) is given
	test.Tap(ui.board.cells[0][2])
	assert.False(t, ui.keypad.buttons[0].Disabled())
	test.Tap(ui.keypad.buttons[6])
	assert.Equal(t, 7, ui.game.Value(0, 2))

	test.Tap(ui.board.cells[0][0])
	assert.True(t, ui.keypad.buttons[0].Disabled())

	// a new board drops the selection and the typed values
	test.Tap(ui.board.cells[0][2])
	loadPuzzle(t, ui, gen)
	_, _, ok := ui.board.Selected()
	assert.False(t, ok)
	assert.Equal(t, 0, ui.board.CellValue(0, 2))
	assert.True(t, ui.keypad.buttons[0].Disabled())
}

func TestRootUIHighlightsConflicts(t *testing.T) {
	ui, gen := newTestUI(t)
	loadPuzzle(t, ui, gen)

	// 5 is already in row 0
	ui.board.Select(0, 2)
	ui.onDigit(5)
	assert.True(t, ui.board.IsConflict(0, 2))
	assert.True(t, ui.board.IsConflict(0, 0))

	ui.settings.SetHighlightConflicts(false)
	ui.refreshConflicts()
	assert.False(t, ui.board.IsConflict(0, 2))
}

func TestRootUIHintAndCheck(t *testing.T) {
	ui, gen := newTestUI(t)
	loadPuzzle(t, ui, gen)

	empty := len(ui.game.Board().Cells(model.Unused()))
	ui.onHint()
	assert.Len(t, ui.game.Board().Cells(model.Unused()), empty-1)

	square, cell, ok := ui.board.Selected()
	require.True(t, ok)
	row, col := model.SquareToCoord(square, cell)
	assert.Equal(t, solution[row][col], ui.board.CellValue(square, cell))

	ui.onAutoSolve()
	assert.True(t, ui.game.Board().Equal(mustBoard(t, solution)))

	ui.onCheck()
	assert.True(t, ui.dialogs.active)
}

func TestRootUISave(t *testing.T) {
	ui, gen := newTestUI(t)
	loadPuzzle(t, ui, gen)

	path := filepath.Join(t.TempDir(), "game")
	ui.saveGame(path)
	assert.True(t, ui.game.IsSaved())
	assert.Equal(t, "Sudoku - Hard - game.sudoku", ui.window.Title())
	assert.Equal(t, filepath.Dir(path), ui.settings.GetSaveDirectory())
	assert.Equal(t, "Game saved", ui.notificationLabel.Text)
}

func TestRootUILanguageChange(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.onLanguageChange(LanguageItalian)
	assert.Equal(t, "Suggerimento", ui.hintBtn.Text)
	assert.Equal(t, LanguageItalian, ui.settings.GetLanguage())
	assert.Equal(t, "Gioca", ui.window.MainMenu().Items[1].Label)
}

func TestDialogQueueShowsOneAtATime(t *testing.T) {
	var q dialogQueue
	var shown []string
	var dones []func()
	show := func(name string) dialogFunc {
		return func(done func()) {
			shown = append(shown, name)
			dones = append(dones, done)
		}
	}

	q.push(show("a"))
	q.push(show("b"))
	assert.Equal(t, []string{"a"}, shown)
	assert.Equal(t, 1, q.Len())

	q.pushNext(show("c"))
	dones[0]()
	dones[0]() // a second call is ignored
	assert.Equal(t, []string{"a", "c"}, shown)

	dones[1]()
	dones[2]()
	assert.Equal(t, []string{"a", "c", "b"}, shown)
	assert.False(t, q.active)
}
