package planning

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTaskIndex is returned when a task index is outside the plan.
	ErrInvalidTaskIndex = errors.New("task index out of range")
	ErrNotEditing       = errors.New("plan is not being edited")
	ErrAlreadyEditing   = errors.New("plan is already being edited")
	ErrEmptyObjective   = errors.New("objective must not be empty")
)

// TaskIndexError carries the offending index and the valid bound.
type TaskIndexError struct {
	Index int
	Count int
}

func (e *TaskIndexError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("task index %d out of range: plan has no tasks", e.Index)
	}
	return fmt.Sprintf("task index %d out of range [0, %d)", e.Index, e.Count)
}

func (e *TaskIndexError) Unwrap() error {
	return ErrInvalidTaskIndex
}
