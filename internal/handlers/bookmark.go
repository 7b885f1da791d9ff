package handlers

import (
	"net/http"

	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type BookmarkHandler struct{}

func NewBookmarkHandler() *BookmarkHandler {
	return &BookmarkHandler{}
}

type toggleBookmarkRequest struct {
	ID uint `json:"id"`
}

// Toggle flips the bookmark state for the current user and returns the
// new state plus the post's bookmark count. The check-then-act sequence
// is not atomic; concurrent toggles from the same user can race, which
// is accepted here.
func (h *BookmarkHandler) Toggle(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var req toggleBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, req.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	var opErr error
	var message string
	if services.IsBookmarked(user.ID, req.ID) {
		opErr = services.RemoveBookmark(user.ID, req.ID)
		message = "Bookmark removed"
	} else {
		opErr = services.AddBookmark(user.ID, req.ID)
		message = "Post bookmarked"
	}
	if opErr != nil {
		message = opErr.Error()
	}

	// Re-read both so the response reflects whatever actually happened
	c.JSON(http.StatusOK, gin.H{
		"success":       opErr == nil,
		"message":       message,
		"isBookmarked":  services.IsBookmarked(user.ID, req.ID),
		"bookmarkCount": services.CountBookmarks(req.ID),
	})
}

// Status reports the bookmark state and count for a single post.
func (h *BookmarkHandler) Status(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	postID := utils.StringToUint(c.Query("post_id"))
	if postID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"isBookmarked": false, "error": "Invalid post id"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isBookmarked":  services.IsBookmarked(user.ID, postID),
		"bookmarkCount": services.CountBookmarks(postID),
	})
}
