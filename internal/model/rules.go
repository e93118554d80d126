package model

// IsCellCorrect reports whether value can be placed at row, col without
// repeating a value already present in the same row, column or square. The
// current content of row, col itself is ignored. An empty value is always
// correct.
func (b *Board) IsCellCorrect(row, col, value int) bool {
	if value == 0 {
		return true
	}
	for j := 0; j < Cols; j++ {
		if j != col && b.cells[row][j] == value {
			return false
		}
	}
	for i := 0; i < Rows; i++ {
		if i != row && b.cells[i][col] == value {
			return false
		}
	}
	square, _ := CoordToSquare(row, col)
	for c := 0; c < SquareSide*SquareSide; c++ {
		r, k := SquareToCoord(square, c)
		if (r != row || k != col) && b.cells[r][k] == value {
			return false
		}
	}
	return true
}

// Conflicts returns the filled cells whose value repeats in their row,
// column or square.
func (b *Board) Conflicts() []Cell {
	var out []Cell
	for _, c := range b.Cells(Used()) {
		if !b.IsCellCorrect(c.Row, c.Col, c.Value) {
			out = append(out, c)
		}
	}
	return out
}

// IsSolved reports whether the board is full and breaks no rule
func (b *Board) IsSolved() bool {
	return b.IsFull() && len(b.Conflicts()) == 0
}
