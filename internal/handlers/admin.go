package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

type batchRequest struct {
	PostIDs []uint `json:"post_ids"`
}

type batchTogglePublishRequest struct {
	PostIDs []uint `json:"post_ids"`
	Publish bool   `json:"publish"`
}

type togglePublishRequest struct {
	ID      uint `json:"id"`
	Publish bool `json:"publish"`
}

// postForm carries the editable fields of the create/edit forms.
type postForm struct {
	Title           string
	Content         string
	Summary         string
	Category        string
	TagsInput       string
	ImageAlt        string
	MetaDescription string
	Draft           bool
}

func bindPostForm(c *gin.Context) postForm {
	return postForm{
		Title:           strings.TrimSpace(c.PostForm("title")),
		Content:         c.PostForm("content"),
		Summary:         strings.TrimSpace(c.PostForm("summary")),
		Category:        strings.TrimSpace(c.PostForm("category")),
		TagsInput:       c.PostForm("tags"),
		ImageAlt:        strings.TrimSpace(c.PostForm("image_alt")),
		MetaDescription: strings.TrimSpace(c.PostForm("meta_description")),
		// Unchecked box sends nothing, so new posts default to published
		Draft: c.PostForm("draft") == "on",
	}
}

func (f postForm) validate() string {
	switch {
	case f.Title == "":
		return "Title is required"
	case utf8.RuneCountInString(f.Title) > 200:
		return "Title must be at most 200 characters"
	case f.Content == "":
		return "Content is required"
	case utf8.RuneCountInString(f.Summary) > 500:
		return "Summary must be at most 500 characters"
	case utf8.RuneCountInString(f.Category) > 50:
		return "Category must be at most 50 characters"
	case utf8.RuneCountInString(f.ImageAlt) > 200:
		return "Image alt text must be at most 200 characters"
	case utf8.RuneCountInString(f.MetaDescription) > 160:
		return "Meta description must be at most 160 characters"
	}
	return ""
}

func (f postForm) apply(post *models.Post) {
	post.Title = f.Title
	post.Content = f.Content
	post.Summary = f.Summary
	post.Category = f.Category
	post.SetTagList(models.ParseTags(f.TagsInput))
	post.ImageAlt = f.ImageAlt
	post.MetaDescription = f.MetaDescription
	post.Published = !f.Draft
}

// invalidatePostCaches drops the cached pages a write may have changed.
func invalidatePostCaches(ids ...uint) {
	cache := utils.GetCache()
	cache.Delete(indexCacheKey)
	for _, id := range ids {
		cache.Delete(detailCacheKey(id))
	}
}

func (h *AdminHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "admin/create.html", gin.H{
		"Title": "New post",
		"Form":  postForm{},
	})
}

func (h *AdminHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	form := bindPostForm(c)
	if msg := form.validate(); msg != "" {
		Render(c, http.StatusBadRequest, "admin/create.html", gin.H{
			"Error": msg,
			"Form":  form,
		})
		return
	}

	var post models.Post
	form.apply(&post)
	post.Author = user.Username

	if header, err := c.FormFile("featured_image"); err == nil && header != nil {
		url, err := services.SaveImage(header, "blog-posts")
		if err != nil {
			Render(c, http.StatusBadRequest, "admin/create.html", gin.H{
				"Error": fmt.Sprintf("Featured image rejected: %v", err),
				"Form":  form,
			})
			return
		}
		post.FeaturedImage = url
	}

	if err := db.DB.Create(&post).Error; err != nil {
		Flash(c, "error", "Failed to create the post")
		c.Redirect(http.StatusFound, "/")
		return
	}

	invalidatePostCaches(post.ID)
	Flash(c, "success", "Post created")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

func (h *AdminHandler) ShowEdit(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	Render(c, http.StatusOK, "admin/edit.html", gin.H{
		"Title":     "Edit post",
		"Post":      post,
		"TagsInput": strings.Join(post.TagList(), ", "),
	})
}

func (h *AdminHandler) Update(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var existing models.Post
	if err := db.DB.First(&existing, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	form := bindPostForm(c)
	if msg := form.validate(); msg != "" {
		Render(c, http.StatusBadRequest, "admin/edit.html", gin.H{
			"Error":     msg,
			"Post":      existing,
			"TagsInput": form.TagsInput,
		})
		return
	}

	// Creation time and view count survive edits
	post := existing
	form.apply(&post)
	post.Author = strings.TrimSpace(c.DefaultPostForm("author", existing.Author))

	if header, err := c.FormFile("featured_image"); err == nil && header != nil {
		url, err := services.SaveImage(header, "blog-posts")
		if err != nil {
			Render(c, http.StatusBadRequest, "admin/edit.html", gin.H{
				"Error":     fmt.Sprintf("Featured image rejected: %v", err),
				"Post":      existing,
				"TagsInput": form.TagsInput,
			})
			return
		}
		post.FeaturedImage = url
	}

	if err := db.DB.Save(&post).Error; err != nil {
		// The row may have been deleted underneath us; re-check before
		// reporting a hard failure
		var check models.Post
		if db.DB.First(&check, id).Error != nil {
			RenderError(c, http.StatusNotFound, "Post not found")
			return
		}
		Flash(c, "error", "Failed to update the post")
		c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", id))
		return
	}

	invalidatePostCaches(post.ID)
	Flash(c, "success", "Post updated")
	c.Redirect(http.StatusFound, fmt.Sprintf("/post/%d", post.ID))
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		Flash(c, "error", "Post not found")
		c.Redirect(http.StatusFound, "/")
		return
	}

	// Bookmarks cascade at the constraint level
	if err := db.DB.Delete(&post).Error; err != nil {
		Flash(c, "error", "Failed to delete the post")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if post.FeaturedImage != "" {
		services.DeleteImage(post.FeaturedImage)
	}

	invalidatePostCaches(post.ID)
	Flash(c, "success", "Post deleted")
	c.Redirect(http.StatusFound, "/")
}

// DraftPosts lists unpublished posts with search, filters and sorting.
// The aggregate counts are global, not filtered.
func (h *AdminHandler) DraftPosts(c *gin.Context) {
	query := services.DraftQuery{
		Search:   c.Query("q"),
		Category: c.Query("category"),
		Author:   c.Query("author"),
		SortBy:   c.DefaultQuery("sort", "newest"),
	}

	drafts, err := services.ListDrafts(query)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Failed to load drafts")
		return
	}

	categories, _ := services.DraftCategories()
	authors, _ := services.DraftAuthors()
	stats, _ := services.Stats()

	Render(c, http.StatusOK, "admin/drafts.html", gin.H{
		"Title":            "Draft posts",
		"Drafts":           drafts,
		"Categories":       categories,
		"Authors":          authors,
		"SearchTerm":       query.Search,
		"SelectedCategory": query.Category,
		"SelectedAuthor":   query.Author,
		"SortBy":           query.SortBy,
		"TotalDrafts":      stats.Drafts,
		"TotalPublished":   stats.Published,
		"TotalPosts":       stats.Total,
	})
}

// PublishDraft publishes a single draft from the draft listing.
func (h *AdminHandler) PublishDraft(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		Flash(c, "error", "Post not found")
		c.Redirect(http.StatusFound, "/admin/drafts")
		return
	}

	if post.Published {
		Flash(c, "info", "Post is already published")
		c.Redirect(http.StatusFound, "/admin/drafts")
		return
	}

	if err := db.DB.Model(&post).Update("published", true).Error; err != nil {
		Flash(c, "error", "Failed to publish the post")
		c.Redirect(http.StatusFound, "/admin/drafts")
		return
	}

	invalidatePostCaches(post.ID)
	Flash(c, "success", fmt.Sprintf("Published %q", post.Title))
	c.Redirect(http.StatusFound, "/admin/drafts")
}

// TogglePublish sets a single post's publish state unconditionally.
func (h *AdminHandler) TogglePublish(c *gin.Context) {
	var req togglePublishRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, req.ID).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Post not found"})
		return
	}

	if err := db.DB.Model(&post).Update("published", req.Publish).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to update the post"})
		return
	}

	invalidatePostCaches(post.ID)

	message := "Post unpublished and moved to drafts"
	if req.Publish {
		message = "Post published"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     message,
		"isPublished": req.Publish,
	})
}

// BatchPublish publishes the requested drafts. Already-published ids are
// silently excluded rather than reported as errors.
func (h *AdminHandler) BatchPublish(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	count, err := services.BatchPublish(req.PostIDs)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to publish posts"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No drafts found to publish"})
		return
	}

	invalidatePostCaches(req.PostIDs...)
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        fmt.Sprintf("Published %d posts", count),
		"publishedCount": count,
	})
}

// BatchDelete deletes the requested drafts, skipping published ids.
func (h *AdminHandler) BatchDelete(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	count, err := services.BatchDelete(req.PostIDs)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to delete posts"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No drafts found to delete"})
		return
	}

	invalidatePostCaches(req.PostIDs...)
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Deleted %d drafts", count),
		"deletedCount": count,
	})
}

// BatchTogglePublish applies the requested publish state to every
// matched id, published or not.
func (h *AdminHandler) BatchTogglePublish(c *gin.Context) {
	var req batchTogglePublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	count, err := services.BatchSetPublished(req.PostIDs, req.Publish)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Failed to update posts"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No posts found"})
		return
	}

	invalidatePostCaches(req.PostIDs...)

	message := fmt.Sprintf("Moved %d posts to drafts", count)
	if req.Publish {
		message = fmt.Sprintf("Published %d posts", count)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      message,
		"updatedCount": count,
	})
}

// UploadImage stores an editor image and returns its public URL.
func (h *AdminHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No file selected"})
		return
	}

	url, err := services.SaveImage(header, "blog-content")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "url": url})
}
