package sat

import (
	"math/rand/v2"

	"github.com/ytget/sudoku/internal/model"
)

// ProblemVars is the number of variables needed to encode a board: one per
// (row, col, value) triple.
const ProblemVars = model.Rows * model.Cols * model.MaxValue

// triple is the cell assignment a variable stands for
type triple struct {
	row, col, value int
}

// LiteralMap assigns a distinct variable in [1, ProblemVars] to every
// (row, col, value) triple and translates back.
type LiteralMap struct {
	vars    [model.Rows][model.Cols][model.MaxValue]int
	triples [ProblemVars + 1]triple
}

// NewLiteralMap returns the ordered mapping value + 9*col + 81*row
func NewLiteralMap() *LiteralMap {
	m := &LiteralMap{}
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			for v := 1; v <= model.MaxValue; v++ {
				m.assign(r, c, v, v+model.MaxValue*c+model.MaxValue*model.Cols*r)
			}
		}
	}
	return m
}

// NewRandomLiteralMap returns a mapping where variables are shuffled across
// all triples. Solving the same instance under different maps leads the
// solver down different search paths, which is how varied grids come out of
// an empty board.
func NewRandomLiteralMap(rng *rand.Rand) *LiteralMap {
	values := make([]int, ProblemVars)
	for i := range values {
		values[i] = i + 1
	}
	rng.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

	m := &LiteralMap{}
	i := 0
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			for v := 1; v <= model.MaxValue; v++ {
				m.assign(r, c, v, values[i])
				i++
			}
		}
	}
	return m
}

func (m *LiteralMap) assign(row, col, value, v int) {
	m.vars[row][col][value-1] = v
	m.triples[v] = triple{row: row, col: col, value: value}
}

// Literal returns the variable standing for value at row, col. value must
// be in [1, 9].
func (m *LiteralMap) Literal(row, col, value int) int {
	return m.vars[row][col][value-1]
}

// Cell returns the assignment encoded by variable v
func (m *LiteralMap) Cell(v int) (model.Cell, bool) {
	if v <= 0 || v > ProblemVars {
		return model.Cell{}, false
	}
	t := m.triples[v]
	return model.Cell{Row: t.row, Col: t.col, Value: t.value}, true
}

// Decode builds a board from the variables reported true by isTrue. A cell
// with no true variable stays empty; with several, the lowest value wins.
func (m *LiteralMap) Decode(isTrue func(v int) bool) *model.Board {
	b := model.NewBoard()
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			for v := 1; v <= model.MaxValue; v++ {
				if isTrue(m.Literal(r, c, v)) {
					_ = b.Set(r, c, v)
					break
				}
			}
		}
	}
	return b
}

// DecodeClues builds a board holding only the assignments named by lits.
// Negative and auxiliary literals are ignored.
func (m *LiteralMap) DecodeClues(lits []int) *model.Board {
	b := model.NewBoard()
	for _, l := range lits {
		if cell, ok := m.Cell(l); ok {
			_ = b.Set(cell.Row, cell.Col, cell.Value)
		}
	}
	return b
}
