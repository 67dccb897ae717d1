package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Sternrassler/placeholder-proxy/pkg/format"
	"github.com/Sternrassler/placeholder-proxy/pkg/pagination"
	"github.com/Sternrassler/placeholder-proxy/pkg/perf"
	"github.com/Sternrassler/placeholder-proxy/pkg/placeholder"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// EdgeCacheControl is sent with the public list and metrics responses.
const EdgeCacheControl = "public, s-maxage=60, stale-while-revalidate=300"

// Handler serves the HTTP API over a placeholder.API.
type Handler struct {
	api    *placeholder.API
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock overrides the clock used for pseudo-metrics and the sitemap.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// WithLogger sets the handler logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates the HTTP handlers.
func NewHandler(api *placeholder.API, opts ...Option) *Handler {
	if api == nil {
		panic("api cannot be nil")
	}
	h := &Handler{
		api:    api,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// listHandler serves a paginated view of one resource list.
func listHandler[T any](h *Handler, load func(context.Context) ([]T, error), defaultLimit int, edgeCached bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := pagination.ResolveWithLimit(c.Request.URL.Query(), defaultLimit)

		items, err := load(c.Request.Context())
		if err != nil {
			h.respondError(c, err)
			return
		}

		if edgeCached {
			c.Header("Cache-Control", EdgeCacheControl)
		}
		c.JSON(http.StatusOK, pagination.Paginate(items, params.Page, params.Limit))
	}
}

// FrameworkMetrics serves GET /api/metrics?framework=.
func (h *Handler) FrameworkMetrics(c *gin.Context) {
	fw := perf.ParseFramework(c.Query("framework"), perf.NextJS)
	c.Header("Cache-Control", EdgeCacheControl)
	c.JSON(http.StatusOK, perf.FrameworkMetrics(fw, h.now()))
}

// PostDetail is the response of GET /api/posts/:id.
type PostDetail struct {
	Post         placeholder.Post      `json:"post"`
	Author       placeholder.User      `json:"author"`
	Comments     []placeholder.Comment `json:"comments"`
	CanonicalURL string                `json:"canonicalUrl"`
	Breadcrumbs  format.BreadcrumbList `json:"breadcrumbs"`
}

// PostByID serves GET /api/posts/:id.
func (h *Handler) PostByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	post, err := h.api.Post(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	author, err := h.api.User(ctx, post.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	comments, err := h.api.CommentsByPost(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if comments == nil {
		comments = []placeholder.Comment{}
	}

	origin := format.RequestOrigin(c.Request)
	c.JSON(http.StatusOK, PostDetail{
		Post:         post,
		Author:       author,
		Comments:     comments,
		CanonicalURL: format.CanonicalURL(format.PostURL(id), origin),
		Breadcrumbs: format.Breadcrumbs([]format.BreadcrumbItem{
			{Label: "Home", Href: origin + "/"},
			{Label: "Posts", Href: origin + "/posts"},
			{Label: format.TruncateText(post.Title, 50), Href: format.CanonicalURL(format.PostURL(id), origin)},
		}),
	})
}

// UserDetail is the response of GET /api/users/:id.
type UserDetail struct {
	User         placeholder.User      `json:"user"`
	Albums       []placeholder.Album   `json:"albums"`
	Todos        []placeholder.Todo    `json:"todos"`
	CanonicalURL string                `json:"canonicalUrl"`
	Breadcrumbs  format.BreadcrumbList `json:"breadcrumbs"`
}

// UserByID serves GET /api/users/:id.
func (h *Handler) UserByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := h.api.User(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	albums, err := h.api.AlbumsByUser(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	todos, err := h.api.TodosByUser(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if albums == nil {
		albums = []placeholder.Album{}
	}
	if todos == nil {
		todos = []placeholder.Todo{}
	}

	origin := format.RequestOrigin(c.Request)
	canonical := format.CanonicalURL(format.UserURL(id), origin)
	c.JSON(http.StatusOK, UserDetail{
		User:         user,
		Albums:       albums,
		Todos:        todos,
		CanonicalURL: canonical,
		Breadcrumbs: format.Breadcrumbs([]format.BreadcrumbItem{
			{Label: "Home", Href: origin + "/"},
			{Label: "Users", Href: origin + "/users"},
			{Label: user.Name, Href: canonical},
		}),
	})
}

// AlbumDetail is the response of GET /api/albums/:id.
type AlbumDetail struct {
	Album        placeholder.Album                  `json:"album"`
	Photos       pagination.Page[placeholder.Photo] `json:"photos"`
	CanonicalURL string                             `json:"canonicalUrl"`
	Breadcrumbs  format.BreadcrumbList              `json:"breadcrumbs"`
}

// AlbumByID serves GET /api/albums/:id with the first photo page, or the
// page selected by cursor/page/limit.
func (h *Handler) AlbumByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	params := pagination.ResolveWithLimit(c.Request.URL.Query(), pagination.PageSize)

	album, err := h.api.Album(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	photos, err := h.api.PhotosByAlbum(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	origin := format.RequestOrigin(c.Request)
	canonical := format.CanonicalURL(format.AlbumURL(id), origin)
	c.JSON(http.StatusOK, AlbumDetail{
		Album:        album,
		Photos:       pagination.Paginate(photos, params.Page, params.Limit),
		CanonicalURL: canonical,
		Breadcrumbs: format.Breadcrumbs([]format.BreadcrumbItem{
			{Label: "Home", Href: origin + "/"},
			{Label: "Albums", Href: origin + "/albums"},
			{Label: format.TruncateText(album.Title, 50), Href: canonical},
		}),
	})
}

// AlbumPhotos serves GET /api/albums/:id/photos, paginated.
func (h *Handler) AlbumPhotos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	listHandler(h, func(ctx context.Context) ([]placeholder.Photo, error) {
		return h.api.PhotosByAlbum(ctx, id)
	}, pagination.PageSize, false)(c)
}

// Health serves GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready serves GET /ready; it fails when the cache store is unreachable.
func (h *Handler) Ready(c *gin.Context) {
	store := h.api.Cache().Store().Name()
	if err := h.api.Cache().Ping(c.Request.Context()); err != nil {
		h.logger.Warn().Err(err).Str("store", store).Msg("Readiness check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "cache": store})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "cache": store})
}
