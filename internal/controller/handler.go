package controller

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"asset-tracker/internal/cache"
	"asset-tracker/internal/models"
	"asset-tracker/internal/queue"
	"asset-tracker/internal/repository"
	"asset-tracker/pkg/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/singleflight"
)

type AssetStore interface {
	List(ctx context.Context) ([]models.Asset, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	Create(ctx context.Context, a *models.Asset) (*models.Asset, error)
	Update(ctx context.Context, id int64, a *models.Asset) (*models.Asset, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, name string, description *string) (*models.Category, error)
	Delete(ctx context.Context, id int64) error
}

type TodoStore interface {
	List(ctx context.Context) ([]models.Todo, error)
	Create(ctx context.Context, text string, note *string) (*models.Todo, error)
	Update(ctx context.Context, id int64, done bool, note *string) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// ListCache holds serialized list responses. Writes carry the generation read
// before the load so that Invalidate wins over any load it overlaps.
type ListCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Generation(ctx context.Context, key string) (int64, bool)
	SetIfGeneration(ctx context.Context, key string, b []byte, gen int64)
	Invalidate(ctx context.Context, entity string)
	Ping(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, ev *models.ChangeEvent) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the inventory REST API.
type Handler struct {
	Assets     AssetStore
	Categories CategoryStore
	Todos      TodoStore
	Cache      ListCache
	Events     EventPublisher
	DB         Pinger

	lists singleflight.Group
}

// NewHandler wires the postgres repositories, the list cache and the change publisher.
func NewHandler(db *sql.DB, lists *cache.Lists, events *queue.Publisher) *Handler {
	return &Handler{
		Assets:     repository.NewAssetRepository(db),
		Categories: repository.NewCategoryRepository(db),
		Todos:      repository.NewTodoRepository(db),
		Cache:      lists,
		Events:     events,
		DB:         db,
	}
}

// serveList answers from the cache when possible. Concurrent misses for the same key
// share one database query; changed() forgets that query so requests arriving after
// a mutation never join a load that started before it.
func (h *Handler) serveList(c *gin.Context, key string, load func(ctx context.Context) (any, error)) {
	ctx := c.Request.Context()
	if h.Cache != nil {
		if b, ok := h.Cache.Get(ctx, key); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", b)
			return
		}
	}
	v, err, _ := h.lists.Do(key, func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)
		var (
			gen       int64
			cacheable bool
		)
		if h.Cache != nil {
			gen, cacheable = h.Cache.Generation(flightCtx, key)
		}
		items, err := load(flightCtx)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		if cacheable {
			h.Cache.SetIfGeneration(flightCtx, key, b, gen)
		}
		return b, nil
	})
	if err != nil {
		if ctx.Err() != nil || isContextErr(err) {
			return
		}
		writeError(c, err, "")
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", v.([]byte))
}

// changed drops cached lists and announces the mutation. Neither step fails the request.
func (h *Handler) changed(ctx context.Context, entity, action string, id int64) {
	for _, key := range cache.KeysFor(entity) {
		h.lists.Forget(key)
	}
	if h.Cache != nil {
		h.Cache.Invalidate(ctx, entity)
	}
	if h.Events == nil {
		return
	}
	ev := &models.ChangeEvent{Entity: entity, Action: action, ID: id, OccurredAt: time.Now().UTC()}
	if err := h.Events.Publish(ctx, ev); err != nil {
		logger.Warn(ctx, "Publish change event failed", "error", err, "entity", entity, "id", id)
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Health returns 200 if the process is alive. Used by load balancers.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// Ready returns 200 if the database (and Redis, when enabled) is reachable.
func (h *Handler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if h.DB == nil || isNilPinger(h.DB) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database unavailable"})
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database ping failed"})
		return
	}
	if h.Cache != nil {
		if err := h.Cache.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis ping failed"})
			return
		}
	}
	c.String(http.StatusOK, "OK")
}

func isNilPinger(p Pinger) bool {
	db, ok := p.(*sql.DB)
	return ok && db == nil
}
