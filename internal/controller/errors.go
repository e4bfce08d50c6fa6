package controller

import (
	"errors"
	"net/http"
	"strconv"

	"asset-tracker/internal/repository"
	"asset-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
)

// httpError carries the status code and the message returned to the caller.
type httpError struct {
	Code    int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

func badRequest(message string) error {
	return &httpError{Code: http.StatusBadRequest, Message: message}
}

func notFound(message string) error {
	return &httpError{Code: http.StatusNotFound, Message: message}
}

const internalServerError = "Internal Server Error"

// writeError maps err to a status code and writes {"error": message}. Repository
// sentinels are translated; anything else is logged and reported as a generic 500.
func writeError(c *gin.Context, err error, notFoundMsg string) {
	var httpErr *httpError
	switch {
	case errors.As(err, &httpErr):
	case errors.Is(err, repository.ErrNotFound):
		httpErr = &httpError{Code: http.StatusNotFound, Message: notFoundMsg}
	case errors.Is(err, repository.ErrInvalidReference):
		httpErr = &httpError{Code: http.StatusBadRequest, Message: "Referenced category does not exist"}
	case errors.Is(err, repository.ErrInvalidInput):
		httpErr = &httpError{Code: http.StatusBadRequest, Message: "Invalid field value"}
	case errors.Is(err, repository.ErrDuplicate):
		httpErr = &httpError{Code: http.StatusConflict, Message: "Category name already exists"}
	default:
		logger.Error(c.Request.Context(), "Request failed", "error", err, "path", c.FullPath(), "method", c.Request.Method)
		httpErr = &httpError{Code: http.StatusInternalServerError, Message: internalServerError}
	}
	c.JSON(httpErr.Code, gin.H{"error": httpErr.Message})
}

// parseID reads the :id path parameter as a 64-bit integer.
func parseID(c *gin.Context, invalidMsg string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, badRequest(invalidMsg)
	}
	return id, nil
}
