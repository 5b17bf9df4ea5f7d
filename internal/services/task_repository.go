package services

import (
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"task-tracker/internal/models"
	"task-tracker/internal/storage"
)

type taskRepositoryImpl struct {
	logger zerolog.Logger
	store  storage.Store

	// Serializes the load-mutate-save cycle of each operation so two
	// in-process requests cannot interleave their reads and writes of
	// the backing file. IDs, ordering and validation are unaffected.
	mu sync.Mutex
}

func NewTaskRepository(
	logger zerolog.Logger,
	store storage.Store,
) TaskRepository {
	return &taskRepositoryImpl{
		logger: logger,
		store:  store,
	}
}

// nextID returns 1 for an empty list, else max(existing ids)+1.
// Deleted IDs are never handed out again.
func nextID(tasks []models.Task) int {
	id := 1
	for _, task := range tasks {
		if task.ID >= id {
			id = task.ID + 1
		}
	}
	return id
}

func findIndex(tasks []models.Task, id int) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func validateDescription(description string) (string, error) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return "", &ValidationError{Message: "description must be a non-empty string"}
	}
	if utf8.RuneCountInString(trimmed) > MaxDescriptionLength {
		return "", &ValidationError{Message: fmt.Sprintf(
			"description must be at most %d characters", MaxDescriptionLength)}
	}
	return trimmed, nil
}

func (r *taskRepositoryImpl) Create(description string) (*models.Task, error) {
	trimmed, err := validateDescription(description)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Msg("rejected task description")
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return nil, err
	}

	now := time.Now()
	task := models.Task{
		ID:          nextID(tasks),
		Description: trimmed,
		Status:      models.StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tasks = append(tasks, task)
	err = r.store.SaveAll(tasks)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to save tasks")
		return nil, err
	}

	r.logger.Info().
		Int("task_id", task.ID).
		Msg("created task")
	return &task, nil
}

func (r *taskRepositoryImpl) Get(id int) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return nil, err
	}

	idx := findIndex(tasks, id)
	if idx == -1 {
		r.logger.Warn().
			Int("task_id", id).
			Msg("task not found")
		return nil, &NotFoundError{ID: id}
	}

	task := tasks[idx]
	return &task, nil
}

func (r *taskRepositoryImpl) List(statusFilter string) ([]models.Task, error) {
	if statusFilter != "" && !models.ValidStatus(statusFilter) {
		r.logger.Warn().
			Str("status", statusFilter).
			Msg("invalid status filter")
		return nil, &ValidationError{Message: fmt.Sprintf(
			"status must be '%s', '%s', or '%s'",
			models.StatusTodo, models.StatusInProgress, models.StatusDone)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return nil, err
	}

	if statusFilter == "" {
		return tasks, nil
	}

	filtered := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == statusFilter {
			filtered = append(filtered, task)
		}
	}
	r.logger.Debug().
		Str("status", statusFilter).
		Int("count", len(filtered)).
		Msg("filtered tasks")

	return filtered, nil
}

func (r *taskRepositoryImpl) UpdateDescription(id int, description string) (*models.Task, error) {
	trimmed, err := validateDescription(description)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Int("task_id", id).
			Msg("rejected task description")
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return nil, err
	}

	idx := findIndex(tasks, id)
	if idx == -1 {
		r.logger.Warn().
			Int("task_id", id).
			Msg("task not found")
		return nil, &NotFoundError{ID: id}
	}

	tasks[idx].Description = trimmed
	tasks[idx].UpdatedAt = time.Now()

	err = r.store.SaveAll(tasks)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to save tasks")
		return nil, err
	}

	task := tasks[idx]
	r.logger.Info().
		Int("task_id", task.ID).
		Msg("updated task description")
	return &task, nil
}

func (r *taskRepositoryImpl) UpdateStatus(id int, status string) (*models.Task, error) {
	if !models.ValidStatus(status) {
		r.logger.Warn().
			Str("status", status).
			Int("task_id", id).
			Msg("invalid status")
		return nil, &ValidationError{Message: fmt.Sprintf(
			"status must be '%s', '%s', or '%s'",
			models.StatusTodo, models.StatusInProgress, models.StatusDone)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return nil, err
	}

	idx := findIndex(tasks, id)
	if idx == -1 {
		r.logger.Warn().
			Int("task_id", id).
			Msg("task not found")
		return nil, &NotFoundError{ID: id}
	}

	tasks[idx].Status = status
	tasks[idx].UpdatedAt = time.Now()

	err = r.store.SaveAll(tasks)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to save tasks")
		return nil, err
	}

	task := tasks[idx]
	r.logger.Info().
		Int("task_id", task.ID).
		Str("status", task.Status).
		Msg("updated task status")
	return &task, nil
}

func (r *taskRepositoryImpl) MarkInProgress(id int) (*models.Task, error) {
	return r.UpdateStatus(id, models.StatusInProgress)
}

func (r *taskRepositoryImpl) MarkDone(id int) (*models.Task, error) {
	return r.UpdateStatus(id, models.StatusDone)
}

func (r *taskRepositoryImpl) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks, err := r.store.LoadAll()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to load tasks")
		return err
	}

	idx := findIndex(tasks, id)
	if idx == -1 {
		r.logger.Warn().
			Int("task_id", id).
			Msg("task not found")
		return &NotFoundError{ID: id}
	}

	tasks = append(tasks[:idx], tasks[idx+1:]...)
	err = r.store.SaveAll(tasks)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to save tasks")
		return err
	}

	r.logger.Info().
		Int("task_id", id).
		Msg("deleted task")
	return nil
}
