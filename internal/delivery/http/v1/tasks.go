package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/models"
)

type taskResponse struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// taskIDParam parses the id path segment. Non-integer values abort
// the request with a 400.
func (h *handlerImpl) taskIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.logger.Warn().
			Str("id", c.Param("id")).
			Msg("invalid task id")
		abort(c, newBadRequestError("invalid task ID"))
		return 0, false
	}
	return id, true
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	tasks, err := h.tasks.List(c.Query("status"))
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	response := make([]taskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newTaskResponse(&task)
	}

	c.JSON(http.StatusOK, response)
}

type createTaskRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.Create(req.Description)
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	id, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(id)
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type updateTaskRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	id, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateDescription(id, req.Description)
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

type setTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlerImpl) HandleSetTaskStatus(c *gin.Context) {
	id, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	var req setTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateStatus(id, req.Status)
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleMarkInProgress(c *gin.Context) {
	id, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.MarkInProgress(id)
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleMarkDone(c *gin.Context) {
	id, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.MarkDone(id)
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	id, ok := h.taskIDParam(c)
	if !ok {
		return
	}

	err := h.tasks.Delete(id)
	if err != nil {
		abortWithRepositoryError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
