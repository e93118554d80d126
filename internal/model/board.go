package model

import (
	"errors"
	"fmt"
	"strings"
)

// Board geometry
const (
	Rows       = 9
	Cols       = 9
	Squares    = 9
	SquareSide = 3
	MinValue   = 0 // empty cell
	MaxValue   = 9
	CellCount  = Rows * Cols
)

// Errors returned by board operations
var (
	ErrInvalidCellValue = errors.New("invalid cell value")
	ErrInvalidMatrix    = errors.New("invalid matrix")
	ErrInvalidCell      = errors.New("invalid cell")
)

// Cell is a single board position with its value. Two cells are the same
// cell when their coordinates match, whatever their values.
type Cell struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// SameCell reports whether c and other address the same position
func (c Cell) SameCell(other Cell) bool {
	return c.Row == other.Row && c.Col == other.Col
}

// ValidateValue checks that v can be stored in a cell
func ValidateValue(v int) error {
	if v < MinValue || v > MaxValue {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCellValue, v, MinValue, MaxValue)
	}
	return nil
}

// ValidateSquareCell checks that square and cell address a board position
func ValidateSquareCell(square, cell int) error {
	if square < 0 || square >= Squares || cell < 0 || cell >= SquareSide*SquareSide {
		return fmt.Errorf("%w: square %d, cell %d", ErrInvalidCell, square, cell)
	}
	return nil
}

// Board is a 9x9 Sudoku grid. The zero value is an empty board.
type Board struct {
	cells [Rows][Cols]int
}

// NewBoard returns an empty board
func NewBoard() *Board {
	return &Board{}
}

// FromMatrix builds a board from a row-major matrix
func FromMatrix(matrix [][]int) (*Board, error) {
	if len(matrix) != Rows {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidMatrix, Rows, len(matrix))
	}
	b := NewBoard()
	for i, row := range matrix {
		if len(row) != Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInvalidMatrix, i, len(row), Cols)
		}
		for j, v := range row {
			if err := b.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
		}
	}
	return b, nil
}

// Matrix returns a row-major copy of the board values
func (b *Board) Matrix() [][]int {
	out := make([][]int, Rows)
	for i := range b.cells {
		out[i] = make([]int, Cols)
		copy(out[i], b.cells[i][:])
	}
	return out
}

// Get returns the value at row, col
func (b *Board) Get(row, col int) int {
	return b.cells[row][col]
}

// Set stores value at row, col
func (b *Board) Set(row, col, value int) error {
	if err := ValidateValue(value); err != nil {
		return err
	}
	b.cells[row][col] = value
	return nil
}

// Cell returns the cell at row, col
func (b *Board) Cell(row, col int) Cell {
	return Cell{Row: row, Col: col, Value: b.cells[row][col]}
}

// Rows returns all cells grouped by row
func (b *Board) Rows() [][]Cell {
	out := make([][]Cell, Rows)
	for i := 0; i < Rows; i++ {
		out[i] = make([]Cell, 0, Cols)
		for j := 0; j < Cols; j++ {
			out[i] = append(out[i], b.Cell(i, j))
		}
	}
	return out
}

// Cols returns all cells grouped by column
func (b *Board) Cols() [][]Cell {
	out := make([][]Cell, Cols)
	for j := 0; j < Cols; j++ {
		out[j] = make([]Cell, 0, Rows)
		for i := 0; i < Rows; i++ {
			out[j] = append(out[j], b.Cell(i, j))
		}
	}
	return out
}

// Squares returns all cells grouped by square. Squares are numbered left to
// right, top to bottom, and the cells of a square follow the same order.
func (b *Board) Squares() [][]Cell {
	out := make([][]Cell, Squares)
	for s := 0; s < Squares; s++ {
		out[s] = make([]Cell, 0, SquareSide*SquareSide)
		for c := 0; c < SquareSide*SquareSide; c++ {
			row, col := SquareToCoord(s, c)
			out[s] = append(out[s], b.Cell(row, col))
		}
	}
	return out
}

// CellFilter narrows the result of Cells
type CellFilter struct {
	Used bool // filled cells when true, empty cells otherwise
	Row  *int
	Col  *int
}

// Used selects filled cells
func Used() CellFilter { return CellFilter{Used: true} }

// Unused selects empty cells
func Unused() CellFilter { return CellFilter{Used: false} }

// InRow restricts the filter to a row
func (f CellFilter) InRow(row int) CellFilter {
	f.Row = &row
	return f
}

// InCol restricts the filter to a column
func (f CellFilter) InCol(col int) CellFilter {
	f.Col = &col
	return f
}

// Cells returns the filled or empty cells of the board, optionally restricted
// to a row and/or a column, in row-major order.
func (b *Board) Cells(f CellFilter) []Cell {
	var out []Cell
	for i := 0; i < Rows; i++ {
		if f.Row != nil && *f.Row != i {
			continue
		}
		for j := 0; j < Cols; j++ {
			if f.Col != nil && *f.Col != j {
				continue
			}
			v := b.cells[i][j]
			if (v != 0) == f.Used {
				out = append(out, Cell{Row: i, Col: j, Value: v})
			}
		}
	}
	return out
}

// CountFilled returns the number of non-empty cells
func (b *Board) CountFilled() int {
	n := 0
	for i := range b.cells {
		for _, v := range b.cells[i] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// IsFull reports whether no cell is empty
func (b *Board) IsFull() bool {
	return b.CountFilled() == CellCount
}

// Equal reports whether both boards hold the same values
func (b *Board) Equal(other *Board) bool {
	if other == nil {
		return false
	}
	return b.cells == other.cells
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// String renders the board as nine lines of digits, '.' for empty cells
func (b *Board) String() string {
	var sb strings.Builder
	for i := 0; i < Rows; i++ {
		for j := 0; j < Cols; j++ {
			if v := b.cells[i][j]; v == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + v))
			}
		}
		if i < Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// SquareToCoord converts a square number and a cell number inside the square
// into board coordinates.
func SquareToCoord(square, cell int) (row, col int) {
	row = (square/SquareSide)*SquareSide + cell/SquareSide
	col = (square%SquareSide)*SquareSide + cell%SquareSide
	return row, col
}

// CoordToSquare converts board coordinates into a square number and the cell
// number inside that square.
func CoordToSquare(row, col int) (square, cell int) {
	square = (row/SquareSide)*SquareSide + col/SquareSide
	cell = (row%SquareSide)*SquareSide + col%SquareSide
	return square, cell
}
