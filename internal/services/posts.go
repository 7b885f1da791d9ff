package services

import (
	"sort"
	"strings"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/models"
)

// PostFilter narrows the public listing. Zero values mean "no filter".
type PostFilter struct {
	Category string // exact, case-sensitive
	Search   string // case-insensitive substring over title/content/summary
	Tag      string // exact, case-sensitive membership in the tag list
}

// DraftQuery narrows the admin draft listing.
type DraftQuery struct {
	Search   string // title/content/summary/author, OR-combined
	Category string // exact
	Author   string // substring
	SortBy   string // newest (default), oldest, updated, title, author
}

// PostStats are global counts, independent of any filter.
type PostStats struct {
	Drafts    int64
	Published int64
	Total     int64
}

// ListPosts returns published posts matching the filter, newest first.
// Category and search are applied at the query level; the tag filter runs
// over the materialized result because tags live in a single joined column.
func ListPosts(f PostFilter) ([]models.Post, error) {
	query := db.DB.Model(&models.Post{}).Where("published = ?", true)

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(summary) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var posts []models.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}

	if f.Tag != "" {
		posts = filterByTag(posts, f.Tag)
	}
	return posts, nil
}

func filterByTag(posts []models.Post, tag string) []models.Post {
	filtered := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.HasTag(tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Categories returns the distinct non-empty categories among published
// posts, ascending, for the filter UI.
func Categories() ([]string, error) {
	var categories []string
	err := db.DB.Model(&models.Post{}).
		Where("published = ? AND category <> ''", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// RecentPosts returns the n most recently created published posts.
func RecentPosts(n int) ([]models.Post, error) {
	var posts []models.Post
	err := db.DB.Where("published = ?", true).
		Order("created_at DESC").
		Limit(n).
		Find(&posts).Error
	return posts, err
}

// PopularTags returns up to limit tags ranked by frequency across
// published posts. Ties keep first-encountered order.
func PopularTags(limit int) ([]string, error) {
	var posts []models.Post
	if err := db.DB.Select("tags").Where("published = ?", true).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range posts {
		for _, tag := range p.TagList() {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order, nil
}

// ListDrafts returns unpublished posts matching the query.
func ListDrafts(q DraftQuery) ([]models.Post, error) {
	query := db.DB.Model(&models.Post{}).Where("published = ?", false)

	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(author) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Author != "" {
		query = query.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(q.Author)+"%")
	}

	switch q.SortBy {
	case "oldest":
		query = query.Order("created_at ASC")
	case "updated":
		query = query.Order("updated_at DESC")
	case "title":
		query = query.Order("title ASC")
	case "author":
		query = query.Order("author ASC")
	default: // newest
		query = query.Order("created_at DESC")
	}

	var drafts []models.Post
	err := query.Find(&drafts).Error
	return drafts, err
}

// DraftCategories returns the distinct non-empty categories among drafts,
// ascending, for the draft filter UI.
func DraftCategories() ([]string, error) {
	var categories []string
	err := db.DB.Model(&models.Post{}).
		Where("published = ? AND category <> ''", false).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	return categories, err
}

// DraftAuthors returns the distinct non-empty authors among drafts, ascending.
func DraftAuthors() ([]string, error) {
	var authors []string
	err := db.DB.Model(&models.Post{}).
		Where("published = ? AND author <> ''", false).
		Distinct("author").
		Order("author ASC").
		Pluck("author", &authors).Error
	return authors, err
}

// Stats returns the global draft/published/total counts.
func Stats() (PostStats, error) {
	var s PostStats
	if err := db.DB.Model(&models.Post{}).Where("published = ?", false).Count(&s.Drafts).Error; err != nil {
		return s, err
	}
	if err := db.DB.Model(&models.Post{}).Where("published = ?", true).Count(&s.Published).Error; err != nil {
		return s, err
	}
	if err := db.DB.Model(&models.Post{}).Count(&s.Total).Error; err != nil {
		return s, err
	}
	return s, nil
}

// BatchPublish publishes the given posts. Only currently-unpublished ids
// are touched; others are silently excluded. Returns the affected count.
func BatchPublish(ids []uint) (int64, error) {
	res := db.DB.Model(&models.Post{}).
		Where("id IN ? AND published = ?", ids, false).
		Updates(map[string]interface{}{"published": true, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}

// BatchDelete deletes the given posts, restricted to unpublished ones.
// Bookmarks go with them via the cascade constraint.
func BatchDelete(ids []uint) (int64, error) {
	res := db.DB.Where("id IN ? AND published = ?", ids, false).Delete(&models.Post{})
	return res.RowsAffected, res.Error
}

// BatchSetPublished applies the requested publish state unconditionally
// to every matched id.
func BatchSetPublished(ids []uint, publish bool) (int64, error) {
	res := db.DB.Model(&models.Post{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"published": publish, "updated_at": time.Now()})
	return res.RowsAffected, res.Error
}
