package sudoku

import (
	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/sat"
)

// Errors returned by the engine. They are the same values as the ones of
// the model and sat packages, so errors.Is works across layers.
var (
	ErrInvalidCellValue  = model.ErrInvalidCellValue
	ErrInvalidMatrix     = model.ErrInvalidMatrix
	ErrInvalidDifficulty = model.ErrInvalidDifficulty
	ErrNoSolution        = sat.ErrNoSolution
)
