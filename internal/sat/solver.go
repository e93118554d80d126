package sat

import (
	"context"
	"errors"
	"strings"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/rs/zerolog"

	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
)

// Solver results, as reported by gini
const (
	resultSat     = 1
	resultUnsat   = -1
	resultUnknown = 0
)

var (
	// ErrNoSolution is returned when a board has no solution
	ErrNoSolution = errors.New("the board specified has no solution")
	// ErrUnknown is returned when the solver gives up without an answer
	ErrUnknown = errors.New("solver returned unknown")
)

// Solver finds solutions of a board with a SAT solver loaded with the rules
// and the board instance.
type Solver struct {
	g      *gini.Gini
	lits   *LiteralMap
	logger zerolog.Logger
}

// NewSolver loads the rules and the filled cells of board. Later changes to
// board are not seen by the solver.
func NewSolver(board *model.Board, lits *LiteralMap) *Solver {
	if lits == nil {
		lits = NewLiteralMap()
	}
	logger := xlog.WithComponent("sat")
	instance := InstanceFormula(board, lits)
	logInstance(&logger, instance)

	g := gini.New()
	addFormula(g, RulesFormula(lits))
	addFormula(g, instance)

	return &Solver{
		g:      g,
		lits:   lits,
		logger: logger,
	}
}

// logInstance dumps the clue clauses in DIMACS form at debug level
func logInstance(logger *zerolog.Logger, f Formula) {
	e := logger.Debug()
	if !e.Enabled() {
		return
	}
	var sb strings.Builder
	if err := f.WriteDIMACS(&sb, ProblemVars); err != nil {
		e.Err(err).Msg("board instance")
		return
	}
	e.Int("clues", len(f)).Str("dimacs", sb.String()).Msg("board instance")
}

func addFormula(g *gini.Gini, f Formula) {
	for _, c := range f {
		addClause(g, c)
	}
}

func addClause(g *gini.Gini, c Clause) {
	for _, l := range c {
		g.Add(z.Dimacs2Lit(l))
	}
	g.Add(z.LitNull)
}

func solve(ctx context.Context, g *gini.Gini) (int, error) {
	if err := ctx.Err(); err != nil {
		return resultUnknown, err
	}
	switch res := g.Solve(); res {
	case resultSat, resultUnsat:
		return res, nil
	default:
		return res, ErrUnknown
	}
}

func (s *Solver) model(g *gini.Gini) *model.Board {
	return s.lits.Decode(func(v int) bool {
		return g.Value(z.Dimacs2Lit(v))
	})
}

// Solve returns the first solution found
func (s *Solver) Solve(ctx context.Context) (*model.Board, error) {
	res, err := solve(ctx, s.g)
	if err != nil {
		return nil, err
	}
	if res == resultUnsat {
		return nil, ErrNoSolution
	}
	return s.model(s.g), nil
}

// Solutions enumerates up to limit distinct solutions. A limit <= 0 means no
// limit, which on a sparse board can take very long. The solver itself is
// left untouched and can be used again.
func (s *Solver) Solutions(ctx context.Context, limit int) ([]*model.Board, error) {
	g := s.g.Copy()
	var out []*model.Board
	for limit <= 0 || len(out) < limit {
		res, err := solve(ctx, g)
		if err != nil {
			return out, err
		}
		if res == resultUnsat {
			break
		}
		found := s.model(g)
		out = append(out, found)

		// block this assignment so the next solve has to find another one
		block := make(Clause, 0, model.CellCount)
		for _, cell := range found.Cells(model.Used()) {
			block = append(block, -s.lits.Literal(cell.Row, cell.Col, cell.Value))
		}
		addClause(g, block)
	}
	s.logger.Debug().Int("solutions", len(out)).Int("limit", limit).Msg("enumerated solutions")
	return out, nil
}

// CountSolutions counts solutions, stopping at limit
func (s *Solver) CountSolutions(ctx context.Context, limit int) (int, error) {
	sols, err := s.Solutions(ctx, limit)
	return len(sols), err
}

// HasUniqueSolution reports whether the board has exactly one solution
func (s *Solver) HasUniqueSolution(ctx context.Context) (bool, error) {
	n, err := s.CountSolutions(ctx, 2)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
