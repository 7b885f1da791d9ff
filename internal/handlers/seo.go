package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/gin-gonic/gin"
)

type SEOHandler struct{}

func NewSEOHandler() *SEOHandler {
	return &SEOHandler{}
}

func siteURL() string {
	if u := os.Getenv("SITE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

// RobotsTxt keeps crawlers out of the admin and auth pages.
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /admin/
Disallow: /bookmark/
Disallow: /bookmarks
Disallow: /login
Disallow: /signup

Sitemap: %s/sitemap.xml
`, siteURL())

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

// SitemapXML lists the home page, category pages and published posts.
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	base := siteURL()
	now := time.Now().Format("2006-01-02")

	xml := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`

	xml += fmt.Sprintf(`  <url>
    <loc>%s/</loc>
    <lastmod>%s</lastmod>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
`, base, now)

	var categories []string
	db.DB.Model(&models.Post{}).
		Where("published = ? AND category <> ''", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories)
	for _, category := range categories {
		xml += fmt.Sprintf(`  <url>
    <loc>%s/?category=%s</loc>
    <lastmod>%s</lastmod>
    <changefreq>weekly</changefreq>
    <priority>0.7</priority>
  </url>
`, base, url.QueryEscape(category), now)
	}

	// Cap the sitemap to the latest 500 posts
	var posts []models.Post
	db.DB.Where("published = ?", true).
		Order("created_at DESC").
		Limit(500).
		Find(&posts)
	for _, post := range posts {
		lastmod := post.UpdatedAt.Format("2006-01-02")
		priority := 0.6
		changefreq := "weekly"
		switch age := time.Since(post.CreatedAt).Hours() / 24; {
		case age < 7:
			priority = 0.8
			changefreq = "daily"
		case age < 30:
			priority = 0.7
		}

		xml += fmt.Sprintf(`  <url>
    <loc>%s/post/%d</loc>
    <lastmod>%s</lastmod>
    <changefreq>%s</changefreq>
    <priority>%.1f</priority>
  </url>
`, base, post.ID, lastmod, changefreq, priority)
	}

	xml += `</urlset>`

	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.String(http.StatusOK, xml)
}
