package app

import (
	"task-tracker/internal/config"
	"task-tracker/internal/services"
	"task-tracker/internal/storage"
)

var globalTaskRepository services.TaskRepository

func MustOpenStore() {
	cfg := config.Global().Store

	store := storage.NewFileStore(cfg.Path, cfg.Pretty)

	// Probe the backing file up front so an unreadable store fails
	// at startup instead of on the first request.
	tasks, err := store.LoadAll()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("path", cfg.Path).
			Msg("failed to open task store")
		panic(err)
	}
	globalLogger.Info().
		Str("path", cfg.Path).
		Int("tasks", len(tasks)).
		Msg("opened task store")

	globalTaskRepository = services.NewTaskRepository(globalLogger, store)
}
