package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagListRoundTrip(t *testing.T) {
	var post Post
	post.SetTagList([]string{"go", "web", "testing"})

	assert.Equal(t, "go,web,testing", post.Tags)
	assert.Equal(t, []string{"go", "web", "testing"}, post.TagList())
}

func TestTagList_Empty(t *testing.T) {
	var post Post
	assert.Nil(t, post.TagList())
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"plain", "go,web", []string{"go", "web"}},
		{"whitespace trimmed", " go , web ", []string{"go", "web"}},
		{"empty entries dropped", "go,,web,", []string{"go", "web"}},
		{"empty input", "", nil},
		{"only separators", ",, ,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTags(tt.input))
		})
	}
}

func TestHasTag(t *testing.T) {
	var post Post
	post.SetTagList([]string{"go", "web"})

	assert.True(t, post.HasTag("go"))
	assert.False(t, post.HasTag("golang"))
	assert.False(t, post.HasTag("Go")) // case-sensitive
}

func TestImageURL(t *testing.T) {
	var post Post
	assert.Equal(t, "/static/img/placeholder.jpg", post.ImageURL())

	post.FeaturedImage = "/uploads/blog-posts/abc.jpg"
	assert.Equal(t, "/uploads/blog-posts/abc.jpg", post.ImageURL())
}
