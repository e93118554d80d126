package model

// TaskStatus represents the status of a generation or packaging task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but not started
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the task is waiting for a worker slot
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusRunning means the task is doing its work
	TaskStatusRunning TaskStatus = "Running"

	// TaskStatusStopping means a stop was requested and not yet honoured
	TaskStatusStopping TaskStatus = "Stopping"

	// TaskStatusStopped means the task was stopped by the user
	TaskStatusStopped TaskStatus = "Stopped"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusRunning || ts == TaskStatusStopping
}

// IsFinished reports whether the task reached a final state
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusStopped || ts == TaskStatusError
}

// CanStop reports whether a stop request applies. A queued task can be
// stopped before it starts; a task already stopping cannot be stopped twice.
func (ts TaskStatus) CanStop() bool {
	return ts == TaskStatusPending || ts == TaskStatusStarting || ts == TaskStatusRunning
}
