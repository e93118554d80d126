package sat

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func mustBoard(t *testing.T, m [][]int) *model.Board {
	t.Helper()
	b, err := model.FromMatrix(m)
	require.NoError(t, err)
	return b
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestLiteralMapOrdered(t *testing.T) {
	m := NewLiteralMap()
	assert.Equal(t, 1, m.Literal(0, 0, 1))
	assert.Equal(t, 9, m.Literal(0, 0, 9))
	assert.Equal(t, 10, m.Literal(0, 1, 1))
	assert.Equal(t, 82, m.Literal(1, 0, 1))
	assert.Equal(t, ProblemVars, m.Literal(8, 8, 9))

	cell, ok := m.Cell(82)
	require.True(t, ok)
	assert.Equal(t, model.Cell{Row: 1, Col: 0, Value: 1}, cell)

	_, ok = m.Cell(0)
	assert.False(t, ok)
	_, ok = m.Cell(ProblemVars + 1)
	assert.False(t, ok)
}

func TestRandomLiteralMapIsABijection(t *testing.T) {
	m := NewRandomLiteralMap(testRNG())
	seen := make(map[int]bool, ProblemVars)
	for r := 0; r < model.Rows; r++ {
		for c := 0; c < model.Cols; c++ {
			for v := 1; v <= model.MaxValue; v++ {
				l := m.Literal(r, c, v)
				require.False(t, seen[l], "variable %d assigned twice", l)
				seen[l] = true

				cell, ok := m.Cell(l)
				require.True(t, ok)
				assert.Equal(t, model.Cell{Row: r, Col: c, Value: v}, cell)
			}
		}
	}
	assert.Len(t, seen, ProblemVars)
}

func TestDecodeClues(t *testing.T) {
	m := NewLiteralMap()
	b := m.DecodeClues([]int{m.Literal(2, 3, 4), -m.Literal(0, 0, 1), ProblemVars + 10})
	assert.Equal(t, 1, b.CountFilled())
	assert.Equal(t, 4, b.Get(2, 3))
}

func TestRulesFormulaShape(t *testing.T) {
	f := RulesFormula(NewLiteralMap())
	// 4 families x 81 groups x (1 at-least-one + 36 pairwise) clauses
	assert.Len(t, f, 4*81*37)

	var binary, wide int
	for _, c := range f {
		switch len(c) {
		case 2:
			binary++
		case 9:
			wide++
		default:
			t.Fatalf("unexpected clause width %d", len(c))
		}
	}
	assert.Equal(t, 4*81*36, binary)
	assert.Equal(t, 4*81, wide)
}

func TestInstanceFormula(t *testing.T) {
	m := NewLiteralMap()
	b := mustBoard(t, puzzle)
	f := InstanceFormula(b, m)
	assert.Len(t, f, b.CountFilled())
	assert.Equal(t, Clause{m.Literal(0, 0, 5)}, f[0])
}

func TestWriteDIMACS(t *testing.T) {
	f := Formula{{1, -2}, {3}}
	var buf bytes.Buffer
	require.NoError(t, f.WriteDIMACS(&buf, 3))
	assert.Equal(t, "p cnf 3 2\n1 -2 0\n3 0\n", buf.String())
}

func TestLogInstanceAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	logInstance(&logger, Formula{{5}})
	assert.Empty(t, buf.String())

	logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	logInstance(&logger, Formula{{5}, {-12}})
	assert.Contains(t, buf.String(), `"clues":2`)
	assert.Contains(t, buf.String(), `p cnf 729 2\n5 0\n-12 0\n`)
}

func TestSolverSolvesPuzzle(t *testing.T) {
	for _, lits := range []*LiteralMap{NewLiteralMap(), NewRandomLiteralMap(testRNG())} {
		s := NewSolver(mustBoard(t, puzzle), lits)
		got, err := s.Solve(context.Background())
		require.NoError(t, err)
		if diff := cmp.Diff(solution, got.Matrix()); diff != "" {
			t.Errorf("solution mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestSolverEmptyBoard(t *testing.T) {
	s := NewSolver(model.NewBoard(), NewRandomLiteralMap(testRNG()))
	got, err := s.Solve(context.Background())
	require.NoError(t, err)
	assert.True(t, got.IsSolved())
}

func TestSolverNoSolution(t *testing.T) {
	b := model.NewBoard()
	require.NoError(t, b.Set(0, 0, 1))
	require.NoError(t, b.Set(0, 8, 1))

	_, err := NewSolver(b, nil).Solve(context.Background())
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolverHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSolver(model.NewBoard(), nil).Solve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolutionsEnumeration(t *testing.T) {
	ctx := context.Background()

	unique := NewSolver(mustBoard(t, puzzle), nil)
	ok, err := unique.HasUniqueSolution(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	empty := NewSolver(model.NewBoard(), nil)
	sols, err := empty.Solutions(ctx, 3)
	require.NoError(t, err)
	require.Len(t, sols, 3)
	assert.False(t, sols[0].Equal(sols[1]))
	assert.False(t, sols[1].Equal(sols[2]))
	for _, s := range sols {
		assert.True(t, s.IsSolved())
	}

	// enumeration works on a copy, the solver still answers afterwards
	_, err = empty.Solve(ctx)
	assert.NoError(t, err)

	// clearing a few cells of a full grid still leaves it solvable
	b := mustBoard(t, solution)
	for _, rc := range [][2]int{{0, 0}, {0, 1}, {6, 0}, {6, 1}} {
		require.NoError(t, b.Set(rc[0], rc[1], 0))
	}
	n, err := NewSolver(b, nil).CountSolutions(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMinimizeProducesMinimalUniquePuzzle(t *testing.T) {
	ctx := context.Background()
	full := mustBoard(t, solution)

	minimal, err := NewMinimizer(NewRandomLiteralMap(testRNG()), testRNG()).Minimize(ctx, full)
	require.NoError(t, err)

	clues := minimal.Cells(model.Used())
	assert.GreaterOrEqual(t, len(clues), model.MinClues)
	assert.Less(t, len(clues), model.CellCount)

	// every clue agrees with the full grid
	for _, c := range clues {
		assert.Equal(t, full.Get(c.Row, c.Col), c.Value)
	}

	ok, err := NewSolver(minimal, nil).HasUniqueSolution(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// dropping any clue admits another solution
	for _, c := range clues {
		reduced := minimal.Clone()
		require.NoError(t, reduced.Set(c.Row, c.Col, 0))
		n, err := NewSolver(reduced, nil).CountSolutions(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, n, "clue %+v is redundant", c)
	}
}

func TestMinimizeRejectsIncompleteBoard(t *testing.T) {
	_, err := NewMinimizer(nil, nil).Minimize(context.Background(), mustBoard(t, puzzle))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "complete"))
	assert.ErrorIs(t, err, model.ErrInvalidMatrix)
}
