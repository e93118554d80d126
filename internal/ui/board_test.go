package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/sudoku/internal/model"
)

func TestBoardViewSelection(t *testing.T) {
	test.NewApp()
	b := NewBoardView()

	_, _, ok := b.Selected()
	assert.False(t, ok)

	var got [][2]int
	b.SetOnSelect(func(square, cell int) { got = append(got, [2]int{square, cell}) })

	test.Tap(b.cells[4][8])
	square, cell, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, 4, square)
	assert.Equal(t, 8, cell)
	assert.True(t, b.cells[4][8].selected)

	// moving right from (5,5) lands on (5,6), the first cell of square 5's row
	b.Move(0, 1)
	square, cell, _ = b.Selected()
	row, col := model.SquareToCoord(square, cell)
	assert.Equal(t, [2]int{5, 6}, [2]int{row, col})
	assert.False(t, b.cells[4][8].selected)

	// wrapping at the edges
	b.Select(0, 0)
	b.Move(-1, -1)
	square, cell, _ = b.Selected()
	row, col = model.SquareToCoord(square, cell)
	assert.Equal(t, [2]int{8, 8}, [2]int{row, col})

	assert.Len(t, got, 4)
}

func TestBoardViewMoveWithoutSelection(t *testing.T) {
	test.NewApp()
	b := NewBoardView()
	b.Move(1, 1)
	square, cell, ok := b.Selected()
	require.True(t, ok)
	assert.Equal(t, 0, square)
	assert.Equal(t, 0, cell)
}

func TestBoardViewCells(t *testing.T) {
	test.NewApp()
	b := NewBoardView()

	b.SetCell(2, 3, 7, true)
	assert.Equal(t, 7, b.CellValue(2, 3))
	assert.Equal(t, "7", b.cells[2][3].text.Text)
	assert.True(t, b.cells[2][3].text.TextStyle.Bold)

	b.SetCell(2, 3, 0, false)
	assert.Equal(t, "", b.cells[2][3].text.Text)

	b.SetConflicts([]model.Cell{{Row: 0, Col: 0, Value: 1}, {Row: 8, Col: 8, Value: 1}})
	assert.True(t, b.IsConflict(0, 0))
	assert.True(t, b.IsConflict(8, 8))
	assert.False(t, b.IsConflict(0, 1))

	b.SetConflicts(nil)
	assert.False(t, b.IsConflict(0, 0))

	b.SetCell(1, 1, 5, false)
	b.Select(1, 1)
	b.Reset()
	assert.Equal(t, 0, b.CellValue(1, 1))
	_, _, ok := b.Selected()
	assert.False(t, ok)
}

func TestTightGridLayout(t *testing.T) {
	test.NewApp()
	b := NewBoardView()
	size := b.Object().MinSize()
	assert.InDelta(t, CellSize*model.Cols, size.Width, 0.01)
	assert.InDelta(t, CellSize*model.Rows, size.Height, 0.01)
}
