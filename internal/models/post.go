package models

import (
	"strings"
	"time"
)

// TagSeparator joins the tag list into the single column it is stored in.
// Tags themselves must never contain this character or the round trip
// through the database silently corrupts the list.
const TagSeparator = ","

type Post struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	Summary         string    `gorm:"size:500" json:"summary"`
	Category        string    `gorm:"size:50;index" json:"category"`
	Tags            string    `gorm:"size:500" json:"tags"` // comma-joined, see TagList
	Author          string    `gorm:"size:100" json:"author"`
	Published       bool      `gorm:"index" json:"published"`
	ViewCount       int       `gorm:"default:0" json:"view_count"`
	FeaturedImage   string    `json:"featured_image"` // public path, optional
	ImageAlt        string    `gorm:"size:200" json:"image_alt"`
	MetaDescription string    `gorm:"size:160" json:"meta_description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TagList rehydrates the stored tag string into an ordered slice.
func (p *Post) TagList() []string {
	return splitTags(p.Tags)
}

// SetTagList stores the ordered tag slice back into the joined column.
func (p *Post) SetTagList(tags []string) {
	p.Tags = strings.Join(tags, TagSeparator)
}

// HasTag reports exact (case-sensitive) membership in the tag list.
func (p *Post) HasTag(tag string) bool {
	for _, t := range p.TagList() {
		if t == tag {
			return true
		}
	}
	return false
}

// ImageURL returns the featured image path or a placeholder when unset.
func (p *Post) ImageURL() string {
	if p.FeaturedImage == "" {
		return "/static/img/placeholder.jpg"
	}
	return p.FeaturedImage
}

// ParseTags normalizes a comma-delimited form input into a tag list,
// trimming whitespace and dropping empty entries.
func ParseTags(input string) []string {
	return splitTags(input)
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(s, TagSeparator) {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
