package generate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/sudoku"
)

const (
	// TaskIDPrefix prefixes every generation task ID
	TaskIDPrefix = "generate-"

	// DefaultMaxParallel is used when a non positive limit is given
	DefaultMaxParallel = 1

	// stopPollInterval is how often a running task looks for stop requests
	stopPollInterval = 50 * time.Millisecond
)

// Service handles background puzzle generation
type Service struct {
	tasks       map[string]*model.GenerationTask
	tasksMutex  sync.RWMutex
	maxParallel int
	sem         *semaphore.Weighted
	generator   PuzzleGenerator
	onUpdate    func(*model.GenerationTask) // callback for UI updates

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger zerolog.Logger
}

// NewService creates a generation service running at most maxParallel
// generations at a time.
func NewService(generator PuzzleGenerator, maxParallel int) *Service {
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallel
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		tasks:       make(map[string]*model.GenerationTask),
		maxParallel: maxParallel,
		sem:         semaphore.NewWeighted(int64(maxParallel)),
		generator:   generator,
		ctx:         ctx,
		cancel:      cancel,
		logger:      xlog.WithComponent("generate"),
	}
}

// SetUpdateCallback sets the callback function for task updates. The
// callback receives a snapshot of the task and may run on any goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.GenerationTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetMaxParallel changes the concurrency limit for tasks queued from now on
func (s *Service) SetMaxParallel(n int) {
	if n <= 0 {
		n = DefaultMaxParallel
	}
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	if n == s.maxParallel {
		return
	}
	s.maxParallel = n
	s.sem = semaphore.NewWeighted(int64(n))
}

// AddTask queues the generation of a puzzle at difficulty d
func (s *Service) AddTask(d model.Difficulty) (*model.GenerationTask, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidDifficulty, int(d))
	}
	if s.ctx.Err() != nil {
		return nil, errors.New("generation service is closed")
	}

	task := &model.GenerationTask{
		ID:         generateTaskID(),
		Difficulty: d,
		Status:     model.TaskStatusPending,
		StartedAt:  time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	sem := s.sem
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)

	s.wg.Add(1)
	go s.runTask(task, sem)

	s.logger.Debug().Str("task", task.ID).Str("difficulty", d.String()).Msg("task queued")
	return task, nil
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.GenerationTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// GetAllTasks returns snapshots of all tasks, oldest first
func (s *Service) GetAllTasks() []*model.GenerationTask {
	s.tasksMutex.RLock()
	tasks := make([]*model.GenerationTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		snapshot := *task
		tasks = append(tasks, &snapshot)
	}
	s.tasksMutex.RUnlock()

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

// StopTask asks a pending or running task to stop
func (s *Service) StopTask(id string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}
	if !task.Status.CanStop() {
		status := task.Status
		s.tasksMutex.Unlock()
		return fmt.Errorf("task is not active: %s", status)
	}

	// Set stopping status, the task goroutine does the rest
	task.Status = model.TaskStatusStopping
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return nil
}

// Wait blocks until every queued task has finished
func (s *Service) Wait() {
	s.wg.Wait()
}

// Close stops all tasks and waits for them
func (s *Service) Close() {
	s.cancel()
	s.wg.Wait()
}

// runTask waits for a worker slot and generates the puzzle
func (s *Service) runTask(task *model.GenerationTask, sem *semaphore.Weighted) {
	defer s.wg.Done()

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	// Monitor for stop requests
	done := make(chan struct{})
	defer close(done)
	go s.watchStop(task, cancel, done)

	if !s.setStatus(task, model.TaskStatusStarting) {
		s.finish(task, nil, context.Canceled)
		return
	}

	if err := sem.Acquire(ctx, 1); err != nil {
		s.finish(task, nil, err)
		return
	}
	defer sem.Release(1)

	if !s.setStatus(task, model.TaskStatusRunning) {
		s.finish(task, nil, context.Canceled)
		return
	}

	puzzle, err := s.generator.Generate(ctx, task.Difficulty)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	s.finish(task, puzzle, err)
}

// watchStop cancels the task context once a stop is requested
func (s *Service) watchStop(task *model.GenerationTask, cancel context.CancelFunc, done <-chan struct{}) {
	ticker := time.NewTicker(stopPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.tasksMutex.RLock()
			status := task.Status
			s.tasksMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
		}
	}
}

// setStatus moves task to status unless a stop was requested meanwhile
func (s *Service) setStatus(task *model.GenerationTask, status model.TaskStatus) bool {
	s.tasksMutex.Lock()
	if task.Status == model.TaskStatusStopping {
		s.tasksMutex.Unlock()
		return false
	}
	task.Status = status
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	return true
}

// finish records the outcome of a task
func (s *Service) finish(task *model.GenerationTask, puzzle *sudoku.Puzzle, err error) {
	s.tasksMutex.Lock()
	switch {
	case err != nil && (errors.Is(err, context.Canceled) || task.Status == model.TaskStatusStopping):
		task.Status = model.TaskStatusStopped
	case err != nil:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	default:
		task.Status = model.TaskStatusCompleted
		task.Puzzle = puzzle.Givens
		task.Solution = puzzle.Solution
	}
	task.FinishedAt = time.Now()
	status := task.Status
	s.tasksMutex.Unlock()

	event := s.logger.Info()
	if status == model.TaskStatusError {
		event = s.logger.Error().Err(err)
	}
	event.Str("task", task.ID).Str("status", status.String()).Dur("elapsed", task.Elapsed()).Msg("task finished")

	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.GenerationTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// generateTaskID generates a unique task ID using UUID v7, which is time
// ordered
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
