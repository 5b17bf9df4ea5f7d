package services

import (
	"fmt"

	"task-tracker/internal/models"
)

// MaxDescriptionLength is the longest accepted task description,
// counted in characters after trimming.
const MaxDescriptionLength = 500

// ValidationError reports malformed or out-of-range input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports that no task has the referenced ID.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task with ID %d not found", e.ID)
}

type TaskRepository interface {
	// Create validates the description (non-empty after trimming,
	// at most MaxDescriptionLength characters), builds a task with
	// status todo and the next free ID, persists the store and
	// returns the new task.
	//
	// It returns a ValidationError if the description is invalid.
	Create(description string) (*models.Task, error)

	// Get returns the task with the given ID.
	//
	// It returns a NotFoundError if no task has that ID.
	Get(id int) (*models.Task, error)

	// List returns all tasks in insertion order. A non-empty
	// statusFilter restricts the result to tasks with that status
	// and must be one of the three valid statuses, else a
	// ValidationError is returned.
	List(statusFilter string) ([]models.Task, error)

	// UpdateDescription replaces the description of an existing
	// task, applying the same validation as Create, and refreshes
	// the task's update timestamp.
	UpdateDescription(id int, description string) (*models.Task, error)

	// UpdateStatus sets the status of an existing task. Any status
	// may transition to any other status.
	UpdateStatus(id int, status string) (*models.Task, error)

	// MarkInProgress is UpdateStatus with the in-progress status.
	MarkInProgress(id int) (*models.Task, error)

	// MarkDone is UpdateStatus with the done status.
	MarkDone(id int) (*models.Task, error)

	// Delete removes an existing task permanently.
	Delete(id int) error
}
