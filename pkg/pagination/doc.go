// Package pagination slices in-memory result sets into pages and builds the
// JSON page envelope shared by every list endpoint.
//
// Example usage:
//
//	params := pagination.Resolve(r.URL.Query())
//	page := pagination.Paginate(posts, params.Page, params.Limit)
//	// page.NextCursor is nil on the last page
//
// The envelope:
//   - data: the items of the requested page (always an array)
//   - total / totalPages: size of the full set and number of pages
//   - nextCursor: opaque cursor for page+1, null on the last page
//
// Requests may address a page either by number (?page=2) or by the cursor
// returned from the previous page (?cursor=...). A valid cursor wins;
// malformed input falls back to page 1 without failing the request.
package pagination
