package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	recentPostCount = 5
	popularTagLimit = 10
	indexCacheKey   = "posts:index"
	indexCacheTTL   = 1 * time.Minute
	detailCacheTTL  = 5 * time.Minute
	detailCachePref = "post:detail:"
)

func detailCacheKey(id uint) string {
	return fmt.Sprintf("%s%d", detailCachePref, id)
}

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// Index is the public listing. Only published posts are visible here,
// regardless of the caller's role.
func (h *PostHandler) Index(c *gin.Context) {
	filter := services.PostFilter{
		Category: c.Query("category"),
		Search:   c.Query("q"),
		Tag:      c.Query("tag"),
	}

	// Cache only the unfiltered landing page
	cacheable := filter == (services.PostFilter{})
	if cacheable {
		if cached := utils.GetCache().Get(indexCacheKey); cached != nil {
			if hData, ok := cached.(gin.H); ok {
				Render(c, http.StatusOK, "home/index.html", hData)
				return
			}
		}
	}

	posts, err := services.ListPosts(filter)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load posts")
		return
	}

	categories, _ := services.Categories()
	recent, _ := services.RecentPosts(recentPostCount)
	popularTags, _ := services.PopularTags(popularTagLimit)

	renderData := gin.H{
		"Posts":       posts,
		"Categories":  categories,
		"RecentPosts": recent,
		"PopularTags": popularTags,
		"SearchTerm":  filter.Search,
		"Category":    filter.Category,
		"Tag":         filter.Tag,
		"Title":       "Latest posts",
	}

	if cacheable {
		utils.GetCache().Set(indexCacheKey, renderData, indexCacheTTL)
	}

	Render(c, http.StatusOK, "home/index.html", renderData)
}

// Detail shows a single post and counts the view. Unpublished posts are
// indistinguishable from missing ones unless the viewer is an admin.
func (h *PostHandler) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}
	postID := uint(id)

	viewer := middleware.CurrentUser(c)

	cacheKey := detailCacheKey(postID)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if hData, ok := cached.(gin.H); ok {
			// The view still counts on a cache hit
			db.DB.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("view_count", gorm.Expr("view_count + 1"))

			// Per-viewer state goes into a copy, never the cached map
			data := clonePage(hData)
			injectBookmarkState(data, viewer, postID)
			Render(c, http.StatusOK, "post/detail.html", data)
			return
		}
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if !post.Published && (viewer == nil || !viewer.IsAdmin()) {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	db.DB.Model(&post).UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	post.ViewCount++

	renderData := gin.H{
		"Post":        post,
		"PostContent": utils.RenderMarkdown(post.Content),
		"Tags":        post.TagList(),
		"Title":       post.Title,
		"Description": post.MetaDescription,
	}

	// Drafts are admin-only, so only published pages go in the shared
	// cache. The cache holds its own snapshot; viewer identity and
	// bookmark state are injected per request and never reach it.
	if post.Published {
		utils.GetCache().Set(cacheKey, clonePage(renderData), detailCacheTTL)
	}

	injectBookmarkState(renderData, viewer, postID)
	Render(c, http.StatusOK, "post/detail.html", renderData)
}

func injectBookmarkState(data gin.H, viewer *models.User, postID uint) {
	data["BookmarkCount"] = services.CountBookmarks(postID)
	isBookmarked := false
	if viewer != nil {
		isBookmarked = services.IsBookmarked(viewer.ID, postID)
	}
	data["IsBookmarked"] = isBookmarked
}

// MyBookmarks lists the posts the current user has saved.
func (h *PostHandler) MyBookmarks(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	posts, err := services.ListUserBookmarks(user.ID)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load bookmarks")
		return
	}

	Render(c, http.StatusOK, "post/bookmarks.html", gin.H{
		"Posts": posts,
		"Title": "My bookmarks",
	})
}
