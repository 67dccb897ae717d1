package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Sternrassler/placeholder-proxy/pkg/cache"
	"github.com/Sternrassler/placeholder-proxy/pkg/logging"
	"github.com/rs/zerolog"
)

// Fetcher returns the raw JSON body of an upstream path.
// *client.Client implements it.
type Fetcher interface {
	GetJSON(ctx context.Context, path string) ([]byte, error)
}

// API serves typed resources through an owned cache.
type API struct {
	fetcher Fetcher
	cache   *cache.Manager
	logger  zerolog.Logger
}

// New creates the data-access layer. Cache failures degrade to upstream
// fetches; they never fail a call on their own.
func New(fetcher Fetcher, cacheManager *cache.Manager) *API {
	if fetcher == nil {
		panic("fetcher cannot be nil")
	}
	if cacheManager == nil {
		panic("cache manager cannot be nil")
	}
	return &API{
		fetcher: fetcher,
		cache:   cacheManager,
		logger:  logging.NewLogger("placeholder-api"),
	}
}

// Cache returns the cache manager.
func (a *API) Cache() *cache.Manager {
	return a.cache
}

// fetchCached returns the cached value for key or fetches path, stores the
// raw body and decodes it. Concurrent misses on one key each fetch.
func fetchCached[T any](ctx context.Context, a *API, key cache.Key, path string) (T, error) {
	var out T

	entry, err := a.cache.Get(ctx, key)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(entry.Data, &out); jsonErr == nil {
			a.logger.Debug().
				Str("key", key.String()).
				Dur("ttl_remaining", a.cache.Remaining(entry)).
				Msg("Cache hit")
			return out, nil
		}
		a.logger.Warn().Str("key", key.String()).Msg("Discarding undecodable cache entry")
		_ = a.cache.Delete(ctx, key)
	case !errors.Is(err, cache.ErrCacheMiss):
		a.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache get error")
	}

	body, err := a.fetcher.GetJSON(ctx, path)
	if err != nil {
		return out, fmt.Errorf("fetch %s: %w", path, err)
	}

	if err := json.Unmarshal(body, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := a.cache.Set(ctx, key, body); err != nil {
		a.logger.Warn().Err(err).Str("key", key.String()).Msg("Failed to cache response")
	}

	return out, nil
}

// Posts returns all posts.
func (a *API) Posts(ctx context.Context) ([]Post, error) {
	return fetchCached[[]Post](ctx, a, cache.Key{Resource: "posts"}, "/posts")
}

// Post returns a single post.
func (a *API) Post(ctx context.Context, id int) (Post, error) {
	return fetchCached[Post](ctx, a, cache.Key{Resource: "post", ID: int64(id)}, fmt.Sprintf("/posts/%d", id))
}

// Comments returns all comments.
func (a *API) Comments(ctx context.Context) ([]Comment, error) {
	return fetchCached[[]Comment](ctx, a, cache.Key{Resource: "comments"}, "/comments")
}

// CommentsByPost returns the comments of a post.
func (a *API) CommentsByPost(ctx context.Context, postID int) ([]Comment, error) {
	return fetchCached[[]Comment](ctx, a, cache.Key{Resource: "comments", Scope: "post", ID: int64(postID)},
		fmt.Sprintf("/posts/%d/comments", postID))
}

// Users returns all users.
func (a *API) Users(ctx context.Context) ([]User, error) {
	return fetchCached[[]User](ctx, a, cache.Key{Resource: "users"}, "/users")
}

// User returns a single user.
func (a *API) User(ctx context.Context, id int) (User, error) {
	return fetchCached[User](ctx, a, cache.Key{Resource: "user", ID: int64(id)}, fmt.Sprintf("/users/%d", id))
}

// Albums returns all albums.
func (a *API) Albums(ctx context.Context) ([]Album, error) {
	return fetchCached[[]Album](ctx, a, cache.Key{Resource: "albums"}, "/albums")
}

// Album returns a single album.
func (a *API) Album(ctx context.Context, id int) (Album, error) {
	return fetchCached[Album](ctx, a, cache.Key{Resource: "album", ID: int64(id)}, fmt.Sprintf("/albums/%d", id))
}

// AlbumsByUser returns the albums of a user.
func (a *API) AlbumsByUser(ctx context.Context, userID int) ([]Album, error) {
	return fetchCached[[]Album](ctx, a, cache.Key{Resource: "albums", Scope: "user", ID: int64(userID)},
		fmt.Sprintf("/users/%d/albums", userID))
}

// Photos returns all photos.
func (a *API) Photos(ctx context.Context) ([]Photo, error) {
	return fetchCached[[]Photo](ctx, a, cache.Key{Resource: "photos"}, "/photos")
}

// PhotosByAlbum returns the photos of an album.
func (a *API) PhotosByAlbum(ctx context.Context, albumID int) ([]Photo, error) {
	return fetchCached[[]Photo](ctx, a, cache.Key{Resource: "photos", Scope: "album", ID: int64(albumID)},
		fmt.Sprintf("/albums/%d/photos", albumID))
}

// Todos returns all todos.
func (a *API) Todos(ctx context.Context) ([]Todo, error) {
	return fetchCached[[]Todo](ctx, a, cache.Key{Resource: "todos"}, "/todos")
}

// TodosByUser returns the todos of a user.
func (a *API) TodosByUser(ctx context.Context, userID int) ([]Todo, error) {
	return fetchCached[[]Todo](ctx, a, cache.Key{Resource: "todos", Scope: "user", ID: int64(userID)},
		fmt.Sprintf("/users/%d/todos", userID))
}
