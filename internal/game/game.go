package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"

	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/storage"
	"github.com/ytget/sudoku/internal/sudoku"
)

// ErrNoBoard is returned by operations that need a game in progress
var ErrNoBoard = errors.New("no game in progress")

// TaskQueue runs puzzle generation in the background
type TaskQueue interface {
	AddTask(d model.Difficulty) (*model.GenerationTask, error)
	StopTask(id string) error
}

// SolveFunc returns the solution of a board
type SolveFunc func(ctx context.Context, b *model.Board) (*model.Board, error)

// Game holds the state of the game in progress and implements the actions
// of the player. Changes are reported through the event handler, which is
// called without internal locks held.
type Game struct {
	mu         sync.Mutex
	board      *model.Board
	givens     *model.Board
	solution   *model.Board
	difficulty model.Difficulty
	filename   string
	saved      bool
	pending    string // ID of the generation task a new game waits for

	queue   TaskQueue
	solve   SolveFunc
	rng     *rand.Rand
	onEvent func(Event)
	logger  zerolog.Logger
}

// Option configures a Game
type Option func(*Game)

// WithSolver replaces the solver used for hints, auto-solve and check
func WithSolver(solve SolveFunc) Option {
	return func(g *Game) { g.solve = solve }
}

// WithRand sets the random source used to pick hints
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// New returns a game with no board, generating new puzzles through queue
func New(queue TaskQueue, opts ...Option) *Game {
	g := &Game{
		saved:  true,
		queue:  queue,
		solve:  sudoku.SolveBoard,
		logger: xlog.WithComponent("game"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// SetEventHandler sets the function receiving state changes
func (g *Game) SetEventHandler(handler func(Event)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onEvent = handler
}

func (g *Game) emit(events ...Event) {
	g.mu.Lock()
	handler := g.onEvent
	g.mu.Unlock()
	if handler == nil {
		return
	}
	for _, e := range events {
		handler(e)
	}
}

// SetDifficulty sets the level of the next new game
func (g *Game) SetDifficulty(d model.Difficulty) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %d", model.ErrInvalidDifficulty, int(d))
	}
	g.mu.Lock()
	g.difficulty = d
	g.mu.Unlock()
	return nil
}

// Difficulty returns the level of the current or next game
func (g *Game) Difficulty() model.Difficulty {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.difficulty
}

// StartNewGame starts generating a puzzle at the chosen difficulty. Without
// a chosen difficulty the view is asked for one. Unsaved changes are
// reported first, once.
func (g *Game) StartNewGame(difficultyChosen bool) error {
	var events []Event

	g.mu.Lock()
	if !g.saved {
		events = append(events, Event{Kind: EventNotSaved, Ask: true})
		g.saved = true
	}
	if !difficultyChosen || !g.difficulty.IsValid() {
		g.mu.Unlock()
		g.emit(append(events, Event{Kind: EventChooseDifficulty})...)
		return nil
	}
	d := g.difficulty
	previous := g.pending
	g.mu.Unlock()

	if previous != "" {
		// a newer request supersedes the one still running
		if err := g.queue.StopTask(previous); err != nil {
			g.logger.Debug().Err(err).Str("task", previous).Msg("stop superseded generation")
		}
	}

	task, err := g.queue.AddTask(d)
	if err != nil {
		g.emit(append(events, Event{Kind: EventError, Err: err})...)
		return err
	}

	g.mu.Lock()
	g.pending = task.ID
	g.mu.Unlock()

	g.logger.Info().Str("task", task.ID).Str("difficulty", d.String()).Msg("new game requested")
	g.emit(append(events, Event{Kind: EventGenerating, Difficulty: d})...)
	return nil
}

// IsGenerating reports whether a new game is being generated
func (g *Game) IsGenerating() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != ""
}

// CancelGeneration stops the generation a new game waits for
func (g *Game) CancelGeneration() error {
	g.mu.Lock()
	id := g.pending
	g.mu.Unlock()
	if id == "" {
		return nil
	}
	return g.queue.StopTask(id)
}

// HandleTaskUpdate applies the outcome of the generation the game waits
// for. Updates of other tasks are ignored.
func (g *Game) HandleTaskUpdate(task *model.GenerationTask) {
	g.mu.Lock()
	if task == nil || task.ID != g.pending || !task.Status.IsFinished() {
		g.mu.Unlock()
		return
	}
	g.pending = ""

	switch task.Status {
	case model.TaskStatusCompleted:
		g.setBoardLocked(task.Puzzle, task.Puzzle.Clone())
		g.solution = task.Solution
		g.difficulty = task.Difficulty
		g.filename = ""
		g.saved = false
		g.mu.Unlock()
		g.emit(Event{Kind: EventNewBoard, Difficulty: task.Difficulty})
	case model.TaskStatusError:
		g.mu.Unlock()
		g.emit(Event{Kind: EventError, Err: fmt.Errorf("generate puzzle: %s", task.LastError)})
	default:
		g.mu.Unlock()
	}
}

// setBoardLocked replaces the board and drops the cached solution
func (g *Game) setBoardLocked(givens, current *model.Board) {
	g.givens = givens
	g.board = current
	g.solution = nil
}

// HasBoard reports whether a game is in progress
func (g *Game) HasBoard() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board != nil
}

// Board returns a copy of the current board, nil without a game
func (g *Game) Board() *model.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board == nil {
		return nil
	}
	return g.board.Clone()
}

// Value returns the value at square, cell
func (g *Game) Value(square, cell int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board == nil || model.ValidateSquareCell(square, cell) != nil {
		return 0
	}
	return g.board.Get(model.SquareToCoord(square, cell))
}

// IsEditable reports whether the player may change the cell at square,
// cell. Cells empty in the generated puzzle are editable.
func (g *Game) IsEditable(square, cell int) bool {
	if model.ValidateSquareCell(square, cell) != nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.isEditableLocked(model.SquareToCoord(square, cell))
}

func (g *Game) isEditableLocked(row, col int) bool {
	return g.givens != nil && g.givens.Get(row, col) == 0
}

// Conflicts returns the cells breaking a rule on the current board
func (g *Game) Conflicts() []model.Cell {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.board == nil {
		return nil
	}
	return g.board.Conflicts()
}

// IsSaved reports whether the game has no unsaved changes
func (g *Game) IsSaved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saved
}

// FileName returns the file the game was last saved to or opened from
func (g *Game) FileName() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.filename
}

// SetCell writes value into the cell at square, cell. 0 clears the cell.
// Cells given by the puzzle are left untouched.
func (g *Game) SetCell(square, cell, value int) error {
	if err := model.ValidateSquareCell(square, cell); err != nil {
		return err
	}
	if err := model.ValidateValue(value); err != nil {
		return err
	}
	row, col := model.SquareToCoord(square, cell)

	g.mu.Lock()
	if g.board == nil || !g.isEditableLocked(row, col) {
		g.mu.Unlock()
		return nil
	}
	if err := g.board.Set(row, col, value); err != nil {
		g.mu.Unlock()
		return err
	}
	g.saved = false
	g.mu.Unlock()

	g.emit(Event{Kind: EventCellChanged, Square: square, Cell: cell})
	return nil
}

// ClearCell empties the cell at square, cell
func (g *Game) ClearCell(square, cell int) error {
	return g.SetCell(square, cell, 0)
}

// solutionLocked returns the cached solution, solving the givens the first
// time.
func (g *Game) solutionLocked(ctx context.Context) (*model.Board, error) {
	if g.board == nil {
		return nil, ErrNoBoard
	}
	if g.solution != nil {
		return g.solution, nil
	}
	sol, err := g.solve(ctx, g.givens)
	if err != nil {
		return nil, fmt.Errorf("solve board: %w", err)
	}
	g.solution = sol
	return sol, nil
}

// Solution returns the solution of the game in progress
func (g *Game) Solution(ctx context.Context) (*model.Board, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	sol, err := g.solutionLocked(ctx)
	if err != nil {
		return nil, err
	}
	return sol.Clone(), nil
}

// Hint fills a random empty cell with its correct value. On a full board it
// corrects a random wrong cell instead. It reports the cell changed, if any.
func (g *Game) Hint(ctx context.Context) (model.Cell, bool, error) {
	g.mu.Lock()
	sol, err := g.solutionLocked(ctx)
	if err != nil {
		g.mu.Unlock()
		g.emit(Event{Kind: EventError, Err: err})
		return model.Cell{}, false, err
	}

	candidates := g.board.Cells(model.Unused())
	g.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	if len(candidates) == 0 {
		for _, c := range g.board.Cells(model.Used()) {
			if g.isEditableLocked(c.Row, c.Col) && c.Value != sol.Get(c.Row, c.Col) {
				candidates = append(candidates, c)
			}
		}
		g.rng.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	}
	g.mu.Unlock()

	for _, c := range candidates {
		correct := sol.Get(c.Row, c.Col)
		if c.Value == correct {
			continue
		}
		square, cell := model.CoordToSquare(c.Row, c.Col)
		if err := g.SetCell(square, cell, correct); err != nil {
			return model.Cell{}, false, err
		}
		return model.Cell{Row: c.Row, Col: c.Col, Value: correct}, true, nil
	}
	return model.Cell{}, false, nil
}

// AutoSolve replaces the board with its solution
func (g *Game) AutoSolve(ctx context.Context) error {
	g.mu.Lock()
	sol, err := g.solutionLocked(ctx)
	if err != nil {
		g.mu.Unlock()
		g.emit(Event{Kind: EventError, Err: err})
		return err
	}
	g.board = sol.Clone()
	g.saved = false
	d := g.difficulty
	g.mu.Unlock()

	g.emit(Event{Kind: EventNewBoard, Difficulty: d})
	return nil
}

// Check reports whether the board equals the solution
func (g *Game) Check(ctx context.Context) (bool, error) {
	g.mu.Lock()
	sol, err := g.solutionLocked(ctx)
	if err != nil {
		g.mu.Unlock()
		g.emit(Event{Kind: EventError, Err: err})
		return false, err
	}
	correct := g.board.Equal(sol)
	g.mu.Unlock()

	g.emit(Event{Kind: EventCheckResult, Correct: correct})
	return correct, nil
}

// Save writes the game to path, or to the file it was last saved to when
// path is empty. Without any file the view is asked for one.
func (g *Game) Save(path string) error {
	g.mu.Lock()
	if g.board == nil {
		g.mu.Unlock()
		return ErrNoBoard
	}
	if path == "" {
		path = g.filename
	}
	if path == "" {
		g.mu.Unlock()
		g.emit(Event{Kind: EventNotSaved, Ask: false})
		return nil
	}

	sg := storage.NewSavedGame(g.difficulty, g.givens, g.board)
	written, err := storage.Save(path, sg)
	if err != nil {
		g.mu.Unlock()
		err = fmt.Errorf("save game: %w", err)
		g.emit(Event{Kind: EventError, Err: err})
		return err
	}
	g.filename = written
	g.saved = true
	g.mu.Unlock()

	g.logger.Info().Str("file", written).Msg("game saved")
	return nil
}

// Open loads the game saved at path. With an empty path the view is asked
// for a file, after reporting unsaved changes.
func (g *Game) Open(path string) error {
	if path == "" {
		var events []Event
		g.mu.Lock()
		if !g.saved {
			events = append(events, Event{Kind: EventNotSaved, Ask: true})
		}
		g.mu.Unlock()
		g.emit(append(events, Event{Kind: EventChooseFile})...)
		return nil
	}

	sg, err := storage.Load(path)
	if err != nil {
		err = fmt.Errorf("open game: %w", err)
		g.emit(Event{Kind: EventError, Err: err})
		return err
	}
	givens, current, err := sg.Boards()
	if err != nil {
		g.emit(Event{Kind: EventError, Err: err})
		return err
	}

	g.mu.Lock()
	g.setBoardLocked(givens, current)
	if d := sg.Level(); d.IsValid() {
		g.difficulty = d
	}
	g.filename = path
	g.saved = true
	d := g.difficulty
	g.mu.Unlock()

	g.logger.Info().Str("file", path).Msg("game opened")
	g.emit(Event{Kind: EventNewBoard, Difficulty: d})
	return nil
}
