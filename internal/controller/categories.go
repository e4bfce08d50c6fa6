package controller

import (
	"context"
	"net/http"
	"strings"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

const categoryNotFound = "Category not found"

// ListCategories returns id and name of every category, ordered by name.
func (h *Handler) ListCategories(c *gin.Context) {
	h.serveList(c, cache.KeyCategories, func(ctx context.Context) (any, error) {
		return h.Categories.List(ctx)
	})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	ctx := c.Request.Context()
	var body struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, badRequest("Category name is required"), categoryNotFound)
		return
	}
	if body.Name == nil || strings.TrimSpace(*body.Name) == "" {
		writeError(c, badRequest("Category name is required"), categoryNotFound)
		return
	}
	created, err := h.Categories.Create(ctx, strings.TrimSpace(*body.Name), models.NullIfBlank(body.Description))
	if err != nil {
		writeError(c, err, categoryNotFound)
		return
	}
	h.changed(ctx, models.EntityCategory, models.ActionCreate, created.ID)
	c.JSON(http.StatusCreated, created)
}

// DeleteCategory removes a category; the store clears category_id on its assets.
func (h *Handler) DeleteCategory(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c, "Invalid category id")
	if err != nil {
		writeError(c, err, categoryNotFound)
		return
	}
	if err := h.Categories.Delete(ctx, id); err != nil {
		writeError(c, err, categoryNotFound)
		return
	}
	h.changed(ctx, models.EntityCategory, models.ActionDelete, id)
	c.Status(http.StatusNoContent)
}
