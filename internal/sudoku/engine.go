package sudoku

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/sat"
)

// Puzzle is a generated game: the givens shown to the player and the only
// grid they lead to.
type Puzzle struct {
	Difficulty model.Difficulty
	Givens     *model.Board
	Solution   *model.Board
}

// Generator creates puzzles. It is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewGenerator returns a generator drawing from rng. A nil rng is seeded
// randomly.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng, logger: xlog.WithComponent("generator")}
}

// fork returns a private source so concurrent generations do not share rng
func (g *Generator) fork() *rand.Rand {
	g.mu.Lock()
	defer g.mu.Unlock()
	return rand.New(rand.NewPCG(g.rng.Uint64(), g.rng.Uint64()))
}

// Generate builds a puzzle with a unique solution. The number of givens is
// 17 times the difficulty level, unless the minimal clue set found is
// already larger.
func (g *Generator) Generate(ctx context.Context, d model.Difficulty) (*Puzzle, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDifficulty, int(d))
	}
	rng := g.fork()
	lits := sat.NewRandomLiteralMap(rng)

	full, err := sat.NewSolver(model.NewBoard(), lits).Solve(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate full grid: %w", err)
	}

	givens, err := sat.NewMinimizer(lits, rng).Minimize(ctx, full)
	if err != nil {
		return nil, fmt.Errorf("minimize: %w", err)
	}
	minimal := givens.CountFilled()

	empty := givens.Cells(model.Unused())
	rng.Shuffle(len(empty), func(i, j int) { empty[i], empty[j] = empty[j], empty[i] })
	for _, cell := range empty {
		if givens.CountFilled() >= d.TargetClues() {
			break
		}
		if err := givens.Set(cell.Row, cell.Col, full.Get(cell.Row, cell.Col)); err != nil {
			return nil, err
		}
	}

	g.logger.Info().
		Str("difficulty", d.String()).
		Int("minimal_clues", minimal).
		Int("clues", givens.CountFilled()).
		Msg("puzzle generated")

	return &Puzzle{Difficulty: d, Givens: givens, Solution: full}, nil
}

// SolveBoard returns the solution of b. Boards with invalid values or no
// solution fail with ErrInvalidMatrix.
func SolveBoard(ctx context.Context, b *model.Board) (*model.Board, error) {
	if len(b.Conflicts()) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatrix, ErrNoSolution)
	}
	sol, err := sat.NewSolver(b, nil).Solve(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSolution) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidMatrix, err)
		}
		return nil, err
	}
	return sol, nil
}

var defaultGenerator = NewGenerator(nil)

// Generate returns a new puzzle matrix for the named difficulty level
// (easy, medium, hard or extreme). Empty cells hold 0.
func Generate(ctx context.Context, difficulty string) ([][]int, error) {
	d, err := model.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}
	p, err := defaultGenerator.Generate(ctx, d)
	if err != nil {
		return nil, err
	}
	return p.Givens.Matrix(), nil
}

// Solve returns the solved matrix. Malformed or unsolvable matrices fail
// with ErrInvalidMatrix.
func Solve(ctx context.Context, matrix [][]int) ([][]int, error) {
	b, err := model.FromMatrix(matrix)
	if err != nil {
		if !errors.Is(err, ErrInvalidMatrix) {
			err = fmt.Errorf("%w: %w", ErrInvalidMatrix, err)
		}
		return nil, err
	}
	sol, err := SolveBoard(ctx, b)
	if err != nil {
		return nil, err
	}
	return sol.Matrix(), nil
}
