package controller

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"asset-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	todoNotFound  = "Todo not found"
	invalidTodoID = "Invalid todo id"
)

func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.Todos.List(c.Request.Context())
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// CreateTodo requires a string text that is non-empty after trimming.
func (h *Handler) CreateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Text *string `json:"text"`
		Note *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Text == nil || strings.TrimSpace(*body.Text) == "" {
		writeError(c, badRequest("Todo text is required"), todoNotFound)
		return
	}
	created, err := h.Todos.Create(ctx, strings.TrimSpace(*body.Text), models.NullIfBlank(body.Note))
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	h.changed(ctx, models.EntityTodo, models.ActionCreate, created.ID)
	c.JSON(http.StatusCreated, created)
}

// UpdateTodo sets done (coerced to a boolean) and note (null when absent or blank).
// An empty body reads as {}.
func (h *Handler) UpdateTodo(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c, invalidTodoID)
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	var body struct {
		Done any     `json:"done"`
		Note *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, badRequest("Invalid todo payload"), todoNotFound)
		return
	}
	updated, err := h.Todos.Update(ctx, id, truthy(body.Done), models.NullIfBlank(body.Note))
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	h.changed(ctx, models.EntityTodo, models.ActionUpdate, id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c, invalidTodoID)
	if err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	if err := h.Todos.Delete(ctx, id); err != nil {
		writeError(c, err, todoNotFound)
		return
	}
	h.changed(ctx, models.EntityTodo, models.ActionDelete, id)
	c.Status(http.StatusNoContent)
}

// truthy applies JavaScript-style boolean coercion to a decoded JSON value.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
