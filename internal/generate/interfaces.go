package generate

import (
	"context"

	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/sudoku"
)

// PuzzleGenerator creates a puzzle for a difficulty level
type PuzzleGenerator interface {
	Generate(ctx context.Context, d model.Difficulty) (*sudoku.Puzzle, error)
}

// Generator defines the interface for the generation service.
type Generator interface {
	SetUpdateCallback(func(*model.GenerationTask))
	AddTask(d model.Difficulty) (*model.GenerationTask, error)
	GetTask(id string) (*model.GenerationTask, bool)
	GetAllTasks() []*model.GenerationTask
	StopTask(id string) error
	SetMaxParallel(n int)
	Wait()
	Close()
}
