package server

import (
	"net/http"

	"github.com/Sternrassler/placeholder-proxy/pkg/metrics"
	"github.com/Sternrassler/placeholder-proxy/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(h *Handler, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	useMiddleware(r, logger)

	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/sitemap.xml", h.Sitemap)

	api := r.Group("/api")
	{
		api.GET("/posts", listHandler(h, h.api.Posts, pagination.DefaultInfiniteLimit, true))
		api.GET("/posts/:id", h.PostByID)
		api.GET("/comments", listHandler(h, h.api.Comments, pagination.PageSize, false))
		api.GET("/users", listHandler(h, h.api.Users, pagination.PageSize, false))
		api.GET("/users/:id", h.UserByID)
		api.GET("/albums", listHandler(h, h.api.Albums, pagination.PageSize, false))
		api.GET("/albums/:id", h.AlbumByID)
		api.GET("/albums/:id/photos", h.AlbumPhotos)
		api.GET("/photos", listHandler(h, h.api.Photos, pagination.PageSize, false))
		api.GET("/todos", listHandler(h, h.api.Todos, pagination.PageSize, false))
		api.GET("/metrics", h.FrameworkMetrics)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Error: "route not found"})
	})

	return r
}

// useMiddleware installs the shared middleware chain. Recovery sits inside
// AccessLog and Metrics so recovered panics are logged and counted as 500s.
func useMiddleware(r *gin.Engine, logger zerolog.Logger) {
	r.Use(RequestID())
	r.Use(AccessLog(logger))
	r.Use(Metrics())
	r.Use(Recovery(logger))
	r.Use(SecurityHeaders())
}
