package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"task-tracker/internal/services"
)

var errInvalidRequestBody = errors.New("invalid request body")

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newInternalError() apiError {
	return newAPIError(http.StatusInternalServerError,
		http.StatusText(http.StatusInternalServerError))
}

// abortWithRepositoryError maps repository errors to HTTP statuses:
// validation failures become 400, missing tasks 404 and anything
// else, persistence failures included, 500.
func abortWithRepositoryError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *services.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		abort(c, newBadRequestError(validationErr.Message))
	case errors.As(err, &notFoundErr):
		abort(c, newNotFoundError(notFoundErr.Error()))
	default:
		abort(c, newInternalError())
	}
}
