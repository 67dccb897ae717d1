package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/Sternrassler/placeholder-proxy/pkg/cursor"
)

// Params are the resolved paging parameters of a list request.
type Params struct {
	Page       int
	Limit      int
	FromCursor bool
}

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi int) int {
	return min(hi, max(lo, value))
}

// ParsePageParam parses a positive page number, returning fallback otherwise.
func ParsePageParam(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// ParseLimitParam parses a positive page size clamped to [1, maxLimit],
// returning fallback for missing or malformed input.
func ParseLimitParam(raw string, fallback, maxLimit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return fallback
	}
	return Clamp(n, 1, maxLimit)
}

// Resolve reads limit, cursor and page from a query string.
// A valid cursor takes precedence over page.
func Resolve(q url.Values) Params {
	return ResolveWithLimit(q, DefaultInfiniteLimit)
}

// ResolveWithLimit is Resolve with a custom default page size.
func ResolveWithLimit(q url.Values, defaultLimit int) Params {
	params := Params{
		Limit: ParseLimitParam(q.Get("limit"), defaultLimit, MaxLimit),
	}

	if page, ok := cursor.Decode(q.Get("cursor")); ok {
		params.Page = page
		params.FromCursor = true
		return params
	}

	params.Page = ParsePageParam(q.Get("page"), 1)
	return params
}
