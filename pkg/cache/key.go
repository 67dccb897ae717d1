package cache

import (
	"strconv"
	"strings"
)

// Key identifies a cached upstream resource.
type Key struct {
	// Resource is the resource name (e.g., "posts", "post", "comments")
	Resource string

	// Scope names the parent resource for nested lists (e.g., "post" in
	// comments of a post). Empty for top-level resources.
	Scope string

	// ID is the resource or parent ID (0 when absent)
	ID int64
}

// String generates the cache key string.
// Format: resource[:scope][:id]
//
// Examples:
//
//	posts
//	post:7
//	comments:post:7
func (k Key) String() string {
	parts := []string{k.Resource}

	if k.Scope != "" {
		parts = append(parts, k.Scope)
	}

	if k.ID > 0 {
		parts = append(parts, strconv.FormatInt(k.ID, 10))
	}

	return strings.Join(parts, ":")
}
