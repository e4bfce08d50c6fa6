package routes

import (
	"net/http"

	"asset-tracker/internal/controller"
	"asset-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Router builds the gin engine. All resource paths are root level.
func Router(h *controller.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	// Health for load balancers and probes
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	assets := router.Group("/assets")
	{
		assets.GET("", h.ListAssets)
		assets.GET("/:id", h.GetAsset)
		assets.POST("", h.CreateAsset)
		assets.PUT("/:id", h.UpdateAsset)
		assets.DELETE("/:id", h.DeleteAsset)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategory)
		categories.DELETE("/:id", h.DeleteCategory)
	}

	todos := router.Group("/todos")
	{
		todos.GET("", h.ListTodos)
		todos.POST("", h.CreateTodo)
		todos.PATCH("/:id", h.UpdateTodo)
		todos.DELETE("/:id", h.DeleteTodo)
	}

	return router
}

// Handler wraps the router with CORS for the browser client.
func Handler(h *controller.Handler, allowedOrigins []string) http.Handler {
	return middleware.CORS(allowedOrigins).Handler(Router(h))
}
