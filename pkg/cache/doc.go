// Package cache memoizes upstream JSON responses for a fixed TTL.
//
// The cache is an explicitly owned object: callers build a Manager over a
// Store and hand it to the data-access layer, so tests and request scopes
// get isolated caches instead of sharing process-wide state.
//
// # Basic Usage
//
//	// In-process store
//	manager := cache.NewManager(cache.NewMemoryStore())
//
//	// Or shared Redis store
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	manager := cache.NewManager(cache.NewRedisStore(redisClient))
//
//	key := cache.Key{Resource: "comments", Scope: "post", ID: 1}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from upstream, then
//		_ = manager.Set(ctx, key, body)
//	}
//
// # Expiry
//
// An entry older than the manager TTL (DefaultTTL, one hour) is treated as
// absent and removed on read. The Redis store additionally sets a key
// expiry so stale entries do not accumulate.
//
// # Concurrency
//
// Stores are safe for concurrent use. Concurrent misses for the same key
// are not coalesced: every caller that misses performs its own upstream
// fetch and the last Set wins.
//
// # Metrics
//
//   - placeholder_cache_hits_total{layer} - Cache hits
//   - placeholder_cache_misses_total{layer} - Cache misses (absent or expired)
//   - placeholder_cache_size_bytes{layer} - Bytes written to the store
//   - placeholder_cache_errors_total{operation} - Store operation errors
package cache
