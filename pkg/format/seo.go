package format

import (
	"net/http"
	"strings"
)

// BreadcrumbItem is one step of a breadcrumb trail.
type BreadcrumbItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// ListItem is a schema.org ListItem.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// BreadcrumbList is a schema.org BreadcrumbList JSON-LD document.
type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

// CanonicalURL joins a site origin and path.
func CanonicalURL(path, baseURL string) string {
	return baseURL + path
}

// Breadcrumbs builds the JSON-LD breadcrumb list for items, 1-indexed.
func Breadcrumbs(items []BreadcrumbItem) BreadcrumbList {
	list := BreadcrumbList{
		Context:         "https://schema.org",
		Type:            "BreadcrumbList",
		ItemListElement: make([]ListItem, 0, len(items)),
	}
	for i, item := range items {
		list.ItemListElement = append(list.ItemListElement, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     item.Label,
			Item:     item.Href,
		})
	}
	return list
}

// RequestOrigin derives the public origin of r, honoring proxy headers.
func RequestOrigin(r *http.Request) string {
	host := firstValue(r.Header.Get("X-Forwarded-Host"))
	if host == "" {
		host = r.Host
	}

	proto := firstValue(r.Header.Get("X-Forwarded-Proto"))
	if proto == "" {
		proto = "http"
		if r.TLS != nil {
			proto = "https"
		}
	}

	if host == "" {
		return proto + "://example.com"
	}
	return proto + "://" + host
}

// firstValue returns the first entry of a comma separated header value.
func firstValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}
