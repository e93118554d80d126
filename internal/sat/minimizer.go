package sat

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/rs/zerolog"

	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
)

// Minimizer reduces a solved board to a minimal set of clues that still has
// that board as its only solution.
type Minimizer struct {
	lits   *LiteralMap
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewMinimizer returns a minimizer using lits for the encoding and rng to
// pick the order clues are tested in.
func NewMinimizer(lits *LiteralMap, rng *rand.Rand) *Minimizer {
	if lits == nil {
		lits = NewLiteralMap()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Minimizer{lits: lits, rng: rng, logger: xlog.WithComponent("minimizer")}
}

// Minimize returns a copy of full keeping only a minimal set of clues. Every
// remaining clue is needed: removing any one of them admits a second
// solution.
func (m *Minimizer) Minimize(ctx context.Context, full *model.Board) (*model.Board, error) {
	if !full.IsSolved() {
		return nil, fmt.Errorf("minimize: %w: board is not a complete valid grid", model.ErrInvalidMatrix)
	}

	g := gini.New()
	addFormula(g, RulesFormula(m.lits))

	clues := ClueLiterals(full, m.lits)

	// forbid the known solution: any model found from now on is an alternate one
	block := make(Clause, 0, len(clues))
	for _, l := range clues {
		block = append(block, -l)
	}
	addClause(g, block)

	untested := append([]int(nil), clues...)
	m.rng.Shuffle(len(untested), func(i, j int) { untested[i], untested[j] = untested[j], untested[i] })

	kept := make([]int, 0, model.MinClues*2)
	solves := 0
	assumptions := make([]z.Lit, 0, len(clues))
	for len(untested) > 0 {
		test := untested[len(untested)-1]
		untested = untested[:len(untested)-1]

		assumptions = assumptions[:0]
		for _, l := range kept {
			assumptions = append(assumptions, z.Dimacs2Lit(l))
		}
		for _, l := range untested {
			assumptions = append(assumptions, z.Dimacs2Lit(l))
		}
		g.Assume(assumptions...)

		res, err := solve(ctx, g)
		solves++
		if err != nil {
			return nil, err
		}
		if res == resultSat {
			// without test an alternate solution exists, so test is needed
			kept = append(kept, test)
			continue
		}

		// test is redundant; keep only the untested clues in the failed core
		core := make(map[int]struct{})
		for _, l := range g.Why(nil) {
			core[l.Dimacs()] = struct{}{}
		}
		filtered := untested[:0]
		for _, l := range untested {
			if _, ok := core[l]; ok {
				filtered = append(filtered, l)
			}
		}
		untested = filtered
	}

	m.logger.Debug().Int("clues", len(kept)).Int("solves", solves).Msg("minimized board")
	return m.lits.DecodeClues(kept), nil
}
