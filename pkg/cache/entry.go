package cache

import (
	"time"
)

// Entry is a cached upstream response body.
type Entry struct {
	// Data is the raw JSON body
	Data []byte `json:"data"`

	// CachedAt is when the body was stored
	CachedAt time.Time `json:"cached_at"`
}

// Age returns how long ago the entry was stored.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CachedAt)
}

// IsExpired returns true if the entry is at least ttl old.
func (e *Entry) IsExpired(now time.Time, ttl time.Duration) bool {
	return e.Age(now) >= ttl
}

// TTL returns the remaining lifetime of the entry.
// Returns 0 if already expired.
func (e *Entry) TTL(now time.Time, ttl time.Duration) time.Duration {
	remaining := ttl - e.Age(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
