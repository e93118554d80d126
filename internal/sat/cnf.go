package sat

import (
	"fmt"
	"io"

	"github.com/ytget/sudoku/internal/model"
)

// Clause is a disjunction of DIMACS literals: a positive int is a variable,
// a negative int its negation.
type Clause []int

// Formula is a conjunction of clauses
type Formula []Clause

// WriteDIMACS writes f in DIMACS CNF format
func (f Formula) WriteDIMACS(w io.Writer, vars int) error {
	if _, err := fmt.Fprintf(w, "p cnf %d %d\n", vars, len(f)); err != nil {
		return err
	}
	for _, c := range f {
		for _, l := range c {
			if _, err := fmt.Fprintf(w, "%d ", l); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "0\n"); err != nil {
			return err
		}
	}
	return nil
}

// exactlyOne appends an at-least-one clause over lits and the pairwise
// at-most-one clauses.
func exactlyOne(f Formula, lits []int) Formula {
	f = append(f, append(Clause(nil), lits...))
	for i := 0; i < len(lits)-1; i++ {
		for j := i + 1; j < len(lits); j++ {
			f = append(f, Clause{-lits[i], -lits[j]})
		}
	}
	return f
}

// group iterates (first, second) over two ranges and asks lit for the nine
// literals of the group identified by the pair.
func group(f Formula, first, second int, lit func(a, b, k int) int) Formula {
	lits := make([]int, 9)
	for a := 0; a < first; a++ {
		for b := 0; b < second; b++ {
			for k := range lits {
				lits[k] = lit(a, b, k)
			}
			f = exactlyOne(f, lits)
		}
	}
	return f
}

// RulesFormula encodes the Sudoku rules: every cell holds exactly one value,
// and every value appears exactly once in each column, row and square.
func RulesFormula(m *LiteralMap) Formula {
	f := make(Formula, 0, 4*81*37)

	// one value per cell
	f = group(f, model.Rows, model.Cols, func(r, c, k int) int {
		return m.Literal(r, c, k+1)
	})
	// each value once per column
	f = group(f, model.MaxValue, model.Cols, func(v, c, r int) int {
		return m.Literal(r, c, v+1)
	})
	// each value once per row
	f = group(f, model.MaxValue, model.Rows, func(v, r, c int) int {
		return m.Literal(r, c, v+1)
	})
	// each value once per square
	f = group(f, model.MaxValue, model.Squares, func(v, s, k int) int {
		r, c := model.SquareToCoord(s, k)
		return m.Literal(r, c, v+1)
	})
	return f
}

// InstanceFormula encodes the filled cells of b as unit clauses
func InstanceFormula(b *model.Board, m *LiteralMap) Formula {
	used := b.Cells(model.Used())
	f := make(Formula, 0, len(used))
	for _, cell := range used {
		f = append(f, Clause{m.Literal(cell.Row, cell.Col, cell.Value)})
	}
	return f
}

// ClueLiterals returns the literals asserting the filled cells of b
func ClueLiterals(b *model.Board, m *LiteralMap) []int {
	used := b.Cells(model.Used())
	lits := make([]int, 0, len(used))
	for _, cell := range used {
		lits = append(lits, m.Literal(cell.Row, cell.Col, cell.Value))
	}
	return lits
}
