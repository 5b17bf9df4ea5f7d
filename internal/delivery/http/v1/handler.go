package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"task-tracker/internal/services"
)

type Handler interface {
	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleMarkInProgress(c *gin.Context)
	HandleMarkDone(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	tasks  services.TaskRepository
}

func New(
	logger zerolog.Logger,
	taskRepository services.TaskRepository,
) Handler {
	return &handlerImpl{
		logger: logger,
		tasks:  taskRepository,
	}
}

func RegisterRoutes(router gin.IRouter, h Handler) {
	tasksRouter := router.Group("/tasks")
	tasksRouter.GET("", h.HandleListTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.PATCH("/:id/status", h.HandleSetTaskStatus)
	tasksRouter.PATCH("/:id/mark-in-progress", h.HandleMarkInProgress)
	tasksRouter.PATCH("/:id/mark-done", h.HandleMarkDone)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
}
