package model

import (
	"fmt"
	"time"
)

// GenerationTask represents a puzzle being generated in the background
type GenerationTask struct {
	ID         string
	Difficulty Difficulty
	Status     TaskStatus
	Puzzle     *Board    // generated puzzle, set on completion
	Solution   *Board    // the only solution of Puzzle
	LastError  string    // last error message if any
	StartedAt  time.Time // when the task was queued
	FinishedAt time.Time // when the task finished
}

// Elapsed returns how long the task ran, or has been running so far
func (t *GenerationTask) Elapsed() time.Duration {
	if t.StartedAt.IsZero() {
		return 0
	}
	if t.FinishedAt.IsZero() {
		return time.Since(t.StartedAt)
	}
	return t.FinishedAt.Sub(t.StartedAt)
}

// PackagingStep names a stage of the installer build pipeline
type PackagingStep string

const (
	StepBundle      PackagingStep = "bundle"
	StepPersonalize PackagingStep = "personalize"
	StepInstaller   PackagingStep = "installer"
	StepDiskImage   PackagingStep = "disk-image"
	StepLayout      PackagingStep = "layout"
	StepFinalize    PackagingStep = "finalize"
)

// PackagingTask represents one run of the installer build pipeline
type PackagingTask struct {
	ID         string
	TargetOS   string
	Status     TaskStatus
	Step       PackagingStep // step currently running or last completed
	Message    string        // human readable progress line
	OutputPath string        // installer produced on success
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Describe returns a one-line summary suitable for console output
func (t *PackagingTask) Describe() string {
	if t.Status == TaskStatusError {
		return fmt.Sprintf("[%s] %s failed: %s", t.TargetOS, t.Step, t.LastError)
	}
	if t.Message != "" {
		return fmt.Sprintf("[%s] %s", t.TargetOS, t.Message)
	}
	return fmt.Sprintf("[%s] %s", t.TargetOS, t.Status)
}
