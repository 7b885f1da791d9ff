package services

import (
	"errors"

	"inkwell/internal/db"
	"inkwell/internal/models"
)

var (
	ErrAlreadyBookmarked = errors.New("post already bookmarked")
	ErrNotBookmarked     = errors.New("post not bookmarked")
)

// AddBookmark saves a post for the user. Fails with ErrAlreadyBookmarked
// if the pair already exists.
func AddBookmark(userID string, postID uint) error {
	if IsBookmarked(userID, postID) {
		return ErrAlreadyBookmarked
	}
	bookmark := models.Bookmark{
		UserID: userID,
		PostID: postID,
	}
	return db.DB.Create(&bookmark).Error
}

// RemoveBookmark deletes the pair. Fails with ErrNotBookmarked if there
// is nothing to remove.
func RemoveBookmark(userID string, postID uint) error {
	res := db.DB.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Bookmark{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotBookmarked
	}
	return nil
}

// IsBookmarked reports whether the user has bookmarked the post.
func IsBookmarked(userID string, postID uint) bool {
	var bookmark models.Bookmark
	err := db.DB.Where("user_id = ? AND post_id = ?", userID, postID).First(&bookmark).Error
	return err == nil
}

// ListUserBookmarks returns the posts the user has bookmarked, ordered by
// the post's creation time, newest first.
func ListUserBookmarks(userID string) ([]models.Post, error) {
	var posts []models.Post
	err := db.DB.
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", userID).
		Order("posts.created_at DESC").
		Find(&posts).Error
	return posts, err
}

// CountBookmarks returns how many users have bookmarked the post.
func CountBookmarks(postID uint) int64 {
	var count int64
	db.DB.Model(&models.Bookmark{}).Where("post_id = ?", postID).Count(&count)
	return count
}
