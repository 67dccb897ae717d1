package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultTTL is how long upstream responses stay valid.
const DefaultTTL = time.Hour

// Manager applies the TTL policy on top of a Store.
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock replaces time.Now (for testing).
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a cache manager over store.
func NewManager(store Store, opts ...Option) *Manager {
	if store == nil {
		panic("cache store cannot be nil")
	}

	m := &Manager{
		store: store,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured entry lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Remaining returns how long entry stays fresh under the configured TTL.
func (m *Manager) Remaining(entry *Entry) time.Duration {
	return entry.TTL(m.now(), m.ttl)
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// Get retrieves a cache entry by key.
// Returns ErrCacheMiss if the key doesn't exist or the entry is expired.
func (m *Manager) Get(ctx context.Context, key Key) (*Entry, error) {
	layer := m.store.Name()

	entry, err := m.store.Get(ctx, key.String())
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			CacheMisses.WithLabelValues(layer).Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, err
	}

	if entry.IsExpired(m.now(), m.ttl) {
		_ = m.Delete(ctx, key)
		CacheMisses.WithLabelValues(layer).Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues(layer).Inc()
	return entry, nil
}

// Set stores data under key, stamped with the current time.
func (m *Manager) Set(ctx context.Context, key Key, data []byte) error {
	if data == nil {
		return fmt.Errorf("cache data cannot be nil")
	}

	entry := &Entry{
		Data:     data,
		CachedAt: m.now(),
	}

	if err := m.store.Set(ctx, key.String(), entry, m.ttl); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return err
	}

	CacheSize.WithLabelValues(m.store.Name()).Add(float64(len(data)))
	return nil
}

// Delete removes a cache entry.
func (m *Manager) Delete(ctx context.Context, key Key) error {
	if err := m.store.Delete(ctx, key.String()); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return err
	}
	return nil
}

// Ping checks the underlying store.
func (m *Manager) Ping(ctx context.Context) error {
	return m.store.Ping(ctx)
}
