package storage

import "task-tracker/internal/models"

// Store persists the full ordered task list. Every operation works on
// the whole collection; there is no partial read or write.
type Store interface {
	LoadAll() ([]models.Task, error)
	SaveAll(tasks []models.Task) error
}
