package generate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/sudoku"
)

// fakeGenerator returns a fixed puzzle, optionally blocking until released
type fakeGenerator struct {
	release chan struct{}
	err     error

	running atomic.Int32
	peak    atomic.Int32
}

func (f *fakeGenerator) Generate(ctx context.Context, d model.Difficulty) (*sudoku.Puzzle, error) {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	givens := model.NewBoard()
	_ = givens.Set(0, 0, 5)
	return &sudoku.Puzzle{Difficulty: d, Givens: givens, Solution: model.NewBoard()}, nil
}

func waitStatus(t *testing.T, s *Service, id string, want model.TaskStatus) *model.GenerationTask {
	t.Helper()
	var task *model.GenerationTask
	require.Eventually(t, func() bool {
		var ok bool
		task, ok = s.GetTask(id)
		return ok && task.Status == want
	}, 5*time.Second, 10*time.Millisecond, "task %s never reached %s", id, want)
	return task
}

func TestNewServiceDefaults(t *testing.T) {
	s := NewService(&fakeGenerator{}, 0)
	defer s.Close()

	assert.Equal(t, DefaultMaxParallel, s.maxParallel)
	assert.Empty(t, s.GetAllTasks())
}

func TestAddTaskCompletes(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := NewService(&fakeGenerator{}, 2)
	defer s.Close()

	var mu sync.Mutex
	var seen []model.TaskStatus
	s.SetUpdateCallback(func(task *model.GenerationTask) {
		mu.Lock()
		seen = append(seen, task.Status)
		mu.Unlock()
	})

	task, err := s.AddTask(model.DifficultyHard)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(task.ID, TaskIDPrefix))
	assert.Equal(t, model.DifficultyHard, task.Difficulty)

	s.Wait()

	got, ok := s.GetTask(task.ID)
	require.True(t, ok)
	assert.Equal(t, model.TaskStatusCompleted, got.Status)
	require.NotNil(t, got.Puzzle)
	assert.Equal(t, 5, got.Puzzle.Get(0, 0))
	assert.NotNil(t, got.Solution)
	assert.False(t, got.FinishedAt.IsZero())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []model.TaskStatus{
		model.TaskStatusPending,
		model.TaskStatusStarting,
		model.TaskStatusRunning,
		model.TaskStatusCompleted,
	}, seen)
}

func TestAddTaskInvalidDifficulty(t *testing.T) {
	s := NewService(&fakeGenerator{}, 1)
	defer s.Close()

	_, err := s.AddTask(model.Difficulty(0))
	assert.ErrorIs(t, err, model.ErrInvalidDifficulty)
}

func TestGetTaskUnknown(t *testing.T) {
	s := NewService(&fakeGenerator{}, 1)
	defer s.Close()

	_, ok := s.GetTask("missing")
	assert.False(t, ok)
	assert.Error(t, s.StopTask("missing"))
}

func TestTaskError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := NewService(&fakeGenerator{err: errors.New("boom")}, 1)
	defer s.Close()

	task, err := s.AddTask(model.DifficultyEasy)
	require.NoError(t, err)
	s.Wait()

	got, _ := s.GetTask(task.ID)
	assert.Equal(t, model.TaskStatusError, got.Status)
	assert.Equal(t, "boom", got.LastError)
	assert.Nil(t, got.Puzzle)
}

func TestStopRunningTask(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{release: make(chan struct{})}
	s := NewService(gen, 1)
	defer s.Close()

	task, err := s.AddTask(model.DifficultyMedium)
	require.NoError(t, err)
	waitStatus(t, s, task.ID, model.TaskStatusRunning)

	require.NoError(t, s.StopTask(task.ID))
	s.Wait()

	got := waitStatus(t, s, task.ID, model.TaskStatusStopped)
	assert.Nil(t, got.Puzzle)

	err = s.StopTask(task.ID)
	assert.ErrorContains(t, err, "not active")
}

func TestMaxParallelIsHonoured(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{release: make(chan struct{})}
	s := NewService(gen, 2)
	defer s.Close()

	ids := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		task, err := s.AddTask(model.DifficultyEasy)
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	require.Eventually(t, func() bool { return gen.running.Load() == 2 }, 5*time.Second, 10*time.Millisecond)
	// give the others a chance to (wrongly) start
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(2), gen.running.Load())

	close(gen.release)
	s.Wait()

	assert.Equal(t, int32(2), gen.peak.Load())
	for _, id := range ids {
		got, _ := s.GetTask(id)
		assert.Equal(t, model.TaskStatusCompleted, got.Status)
	}

	all := s.GetAllTasks()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestCloseStopsPendingTasks(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	gen := &fakeGenerator{release: make(chan struct{})}
	s := NewService(gen, 1)

	first, err := s.AddTask(model.DifficultyEasy)
	require.NoError(t, err)
	second, err := s.AddTask(model.DifficultyEasy)
	require.NoError(t, err)

	s.Close()

	for _, id := range []string{first.ID, second.ID} {
		got, _ := s.GetTask(id)
		assert.Equal(t, model.TaskStatusStopped, got.Status)
	}

	_, err = s.AddTask(model.DifficultyEasy)
	assert.Error(t, err)
}

func TestGenerateTaskIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := generateTaskID()
		require.False(t, seen[id])
		seen[id] = true
	}
}
