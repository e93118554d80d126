package ui

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/sudoku/internal/model"
)

const cellsPerSquare = model.SquareSide * model.SquareSide

// cellWidget shows one board cell and reports taps
type cellWidget struct {
	widget.BaseWidget

	square, cell int
	value        int
	given        bool
	selected     bool
	conflict     bool

	bg       *canvas.Rectangle
	text     *canvas.Text
	onTapped func(square, cell int)
}

func newCellWidget(square, cell int, onTapped func(square, cell int)) *cellWidget {
	c := &cellWidget{square: square, cell: cell, onTapped: onTapped}

	c.bg = canvas.NewRectangle(themeColor(theme.ColorNameInputBackground))
	c.bg.StrokeWidth = CellStroke
	c.bg.SetMinSize(fyne.NewSize(CellSize, CellSize))

	c.text = canvas.NewText("", themeColor(theme.ColorNameForeground))
	c.text.Alignment = fyne.TextAlignCenter
	c.text.TextSize = CellTextSize

	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget
func (c *cellWidget) CreateRenderer() fyne.WidgetRenderer {
	c.applyState()
	return widget.NewSimpleRenderer(container.NewStack(c.bg, container.NewCenter(c.text)))
}

// Tapped selects the cell
func (c *cellWidget) Tapped(*fyne.PointEvent) {
	if c.onTapped != nil {
		c.onTapped(c.square, c.cell)
	}
}

// Refresh redraws the cell from its state
func (c *cellWidget) Refresh() {
	c.applyState()
	c.BaseWidget.Refresh()
}

func (c *cellWidget) applyState() {
	c.text.Text = ""
	if c.value != 0 {
		c.text.Text = strconv.Itoa(c.value)
	}
	c.text.TextStyle = fyne.TextStyle{Bold: c.given}
	c.text.Color = themeColor(theme.ColorNameForeground)
	if !c.given {
		c.text.Color = themeColor(theme.ColorNamePrimary)
	}

	switch {
	case c.selected:
		c.bg.FillColor = themeColor(ColorNameSelectedCell)
	case c.conflict:
		c.bg.FillColor = themeColor(ColorNameConflictCell)
	case c.given:
		c.bg.FillColor = themeColor(ColorNameGivenCell)
	default:
		c.bg.FillColor = themeColor(theme.ColorNameInputBackground)
	}
	c.bg.StrokeColor = themeColor(theme.ColorNameSeparator)
}

// BoardView draws the 9x9 grid as nine framed squares of nine cells and
// keeps track of the selected cell.
type BoardView struct {
	cells    [model.Squares][cellsPerSquare]*cellWidget
	selected *cellWidget
	content  fyne.CanvasObject
	onSelect func(square, cell int)
}

// NewBoardView creates an empty board
func NewBoardView() *BoardView {
	b := &BoardView{}

	squares := make([]fyne.CanvasObject, 0, model.Squares)
	for s := 0; s < model.Squares; s++ {
		cells := make([]fyne.CanvasObject, 0, cellsPerSquare)
		for c := 0; c < cellsPerSquare; c++ {
			w := newCellWidget(s, c, b.Select)
			b.cells[s][c] = w
			cells = append(cells, w)
		}

		frame := canvas.NewRectangle(color.Transparent)
		frame.StrokeWidth = SquareStroke
		frame.StrokeColor = themeColor(ColorNameBoardLine)

		grid := container.New(newTightGrid(model.SquareSide), cells...)
		squares = append(squares, container.NewStack(grid, frame))
	}

	b.content = container.New(newTightGrid(model.SquareSide), squares...)
	return b
}

// Object returns the canvas object to place in a window
func (b *BoardView) Object() fyne.CanvasObject {
	return b.content
}

// SetOnSelect sets the function called when the selection moves
func (b *BoardView) SetOnSelect(f func(square, cell int)) {
	b.onSelect = f
}

// SetCell shows value at square, cell. Given cells are drawn shaded.
func (b *BoardView) SetCell(square, cell, value int, given bool) {
	w := b.cells[square][cell]
	if w.value == value && w.given == given {
		return
	}
	w.value = value
	w.given = given
	w.Refresh()
}

// CellValue returns the value shown at square, cell
func (b *BoardView) CellValue(square, cell int) int {
	return b.cells[square][cell].value
}

// SetConflicts highlights exactly the given cells
func (b *BoardView) SetConflicts(conflicts []model.Cell) {
	var marked [model.Squares][cellsPerSquare]bool
	for _, c := range conflicts {
		s, k := model.CoordToSquare(c.Row, c.Col)
		marked[s][k] = true
	}
	for s := range b.cells {
		for k, w := range b.cells[s] {
			if w.conflict != marked[s][k] {
				w.conflict = marked[s][k]
				w.Refresh()
			}
		}
	}
}

// IsConflict reports whether square, cell is highlighted as conflicting
func (b *BoardView) IsConflict(square, cell int) bool {
	return b.cells[square][cell].conflict
}

// Select moves the selection to square, cell
func (b *BoardView) Select(square, cell int) {
	w := b.cells[square][cell]
	if b.selected != w {
		if b.selected != nil {
			b.selected.selected = false
			b.selected.Refresh()
		}
		w.selected = true
		w.Refresh()
		b.selected = w
	}
	if b.onSelect != nil {
		b.onSelect(square, cell)
	}
}

// Selected returns the selected cell, if any
func (b *BoardView) Selected() (square, cell int, ok bool) {
	if b.selected == nil {
		return 0, 0, false
	}
	return b.selected.square, b.selected.cell, true
}

// Move shifts the selection by rows and cols, wrapping at the edges. Without
// a selection the top left cell is selected.
func (b *BoardView) Move(rows, cols int) {
	if b.selected == nil {
		b.Select(0, 0)
		return
	}
	row, col := model.SquareToCoord(b.selected.square, b.selected.cell)
	row = (row + rows + model.Rows) % model.Rows
	col = (col + cols + model.Cols) % model.Cols
	b.Select(model.CoordToSquare(row, col))
}

// Reset empties every cell and drops the selection and highlights
func (b *BoardView) Reset() {
	for s := range b.cells {
		for _, w := range b.cells[s] {
			w.value, w.given, w.conflict, w.selected = 0, false, false, false
			w.Refresh()
		}
	}
	b.selected = nil
}
