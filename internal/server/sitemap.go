package server

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/Sternrassler/placeholder-proxy/pkg/format"
	"github.com/gin-gonic/gin"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

var sitemapPages = []struct {
	path       string
	changeFreq string
	priority   float64
}{
	{"", "daily", 1},
	{"/posts", "daily", 0.8},
	{"/users", "daily", 0.8},
	{"/albums", "daily", 0.8},
	{"/photos", "daily", 0.7},
	{"/todos", "daily", 0.7},
	{"/about", "monthly", 0.5},
}

func buildSitemap(origin string, now time.Time) urlSet {
	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(sitemapPages))}
	lastMod := now.UTC().Format(time.RFC3339)
	for _, p := range sitemapPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        origin + p.path,
			LastMod:    lastMod,
			ChangeFreq: p.changeFreq,
			Priority:   p.priority,
		})
	}
	return set
}

// Sitemap serves GET /sitemap.xml for the request origin.
func (h *Handler) Sitemap(c *gin.Context) {
	c.XML(http.StatusOK, buildSitemap(format.RequestOrigin(c.Request), h.now()))
}
