package pagination

import (
	"github.com/Sternrassler/placeholder-proxy/pkg/cursor"
)

const (
	// DefaultInfiniteLimit is the page size used by infinite-scroll lists.
	DefaultInfiniteLimit = 8

	// MaxLimit caps the client supplied limit.
	MaxLimit = 50

	// PageSize is the page size used by numbered list pages.
	PageSize = 20
)

// Page is the envelope returned by paginated list endpoints.
type Page[T any] struct {
	Data       []T     `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
	NextCursor *string `json:"nextCursor"`
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.NextCursor != nil
}

// Paginate returns the page-th slice of size limit from items.
// Pages are 1-based; a page past the end yields an empty Data slice.
func Paginate[T any](items []T, page, limit int) Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(items)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	data := make([]T, 0)
	// page <= totalPages keeps (page-1)*limit below total, so it cannot overflow.
	if page <= totalPages {
		start := (page - 1) * limit
		end := min(start+limit, total)
		data = append(data, items[start:end]...)
	}

	result := Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}

	if page < totalPages {
		next := cursor.Encode(page + 1)
		result.NextCursor = &next
	}

	return result
}
