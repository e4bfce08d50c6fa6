package controller

import (
	"context"
	"net/http"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	assetNotFound  = "Asset not found"
	invalidAssetID = "Invalid asset id"
)

// ListAssets returns every asset joined with its category name, ordered by asset_name.
func (h *Handler) ListAssets(c *gin.Context) {
	h.serveList(c, cache.KeyAssets, func(ctx context.Context) (any, error) {
		return h.Assets.List(ctx)
	})
}

func (h *Handler) GetAsset(c *gin.Context) {
	id, err := parseID(c, invalidAssetID)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	asset, err := h.Assets.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// bindAsset decodes and normalizes an asset body; asset_code and asset_name are required.
func bindAsset(c *gin.Context) (*models.Asset, error) {
	var in models.Asset
	if err := c.ShouldBindJSON(&in); err != nil {
		return nil, badRequest("Invalid asset payload")
	}
	in.Normalize()
	if in.MissingRequired() {
		return nil, badRequest("asset_code and asset_name are required")
	}
	return &in, nil
}

func (h *Handler) CreateAsset(c *gin.Context) {
	ctx := c.Request.Context()
	in, err := bindAsset(c)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	created, err := h.Assets.Create(ctx, in)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	h.changed(ctx, models.EntityAsset, models.ActionCreate, created.ID)
	c.JSON(http.StatusCreated, created)
}

// UpdateAsset replaces the whole row. An unknown id is a 404, like DELETE.
func (h *Handler) UpdateAsset(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c, invalidAssetID)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	in, err := bindAsset(c)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	updated, err := h.Assets.Update(ctx, id, in)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	h.changed(ctx, models.EntityAsset, models.ActionUpdate, id)
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := parseID(c, invalidAssetID)
	if err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	if err := h.Assets.Delete(ctx, id); err != nil {
		writeError(c, err, assetNotFound)
		return
	}
	h.changed(ctx, models.EntityAsset, models.ActionDelete, id)
	c.Status(http.StatusNoContent)
}
