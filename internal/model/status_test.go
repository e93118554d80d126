package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusLifecycle(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		active   bool
		finished bool
		canStop  bool
	}{
		// queued: waiting for the service, not yet holding a worker
		{TaskStatusPending, false, false, true},
		{TaskStatusStarting, true, false, true},
		{TaskStatusRunning, true, false, true},
		// stop requested: still busy, a second stop is refused
		{TaskStatusStopping, true, false, false},
		{TaskStatusStopped, false, true, false},
		{TaskStatusCompleted, false, true, false},
		{TaskStatusError, false, true, false},
	}

	for _, test := range tests {
		t.Run(test.status.String(), func(t *testing.T) {
			assert.Equal(t, test.active, test.status.IsActive(), "IsActive")
			assert.Equal(t, test.finished, test.status.IsFinished(), "IsFinished")
			assert.Equal(t, test.canStop, test.status.CanStop(), "CanStop")
			assert.False(t, test.status.IsActive() && test.status.IsFinished())
		})
	}
}

func TestTaskStatusUnknown(t *testing.T) {
	unknown := TaskStatus("Paused")
	assert.False(t, unknown.IsActive())
	assert.False(t, unknown.IsFinished())
	assert.False(t, unknown.CanStop())
	assert.Equal(t, "Paused", unknown.String())
}
