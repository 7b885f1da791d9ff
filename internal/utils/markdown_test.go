package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_Basics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"heading", "# Hello", "Hello</h1>"},
		{"bold", "some **bold** text", "<strong>bold</strong>"},
		{"list", "- one\n- two", "<li>one</li>"},
		{"gfm table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"strikethrough", "~~gone~~", "<del>gone</del>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := string(RenderMarkdown(tt.input))
			assert.Contains(t, result, tt.expected)
		})
	}
}

func TestRenderMarkdown_StripsScript(t *testing.T) {
	result := string(RenderMarkdown("hello <script>alert(1)</script> world"))

	assert.NotContains(t, result, "<script>")
	assert.NotContains(t, result, "alert(1)")
	assert.Contains(t, result, "hello")
}

func TestRenderMarkdown_LinksOpenSafely(t *testing.T) {
	result := string(RenderMarkdown("[site](https://example.com)"))

	assert.Contains(t, result, `href="https://example.com"`)
	assert.Contains(t, result, `target="_blank"`)
	assert.Contains(t, result, "noreferrer")
}

func TestRenderMarkdown_KeepsImages(t *testing.T) {
	result := string(RenderMarkdown("![cat](https://example.com/cat.jpg)"))

	assert.Contains(t, result, "<img")
	assert.Contains(t, result, `src="https://example.com/cat.jpg"`)
}

func TestEnhancePostHTML(t *testing.T) {
	result := string(EnhancePostHTML(`<p><img src="/a.jpg"></p>`))

	assert.Contains(t, result, `referrerpolicy="no-referrer"`)
	assert.Contains(t, result, `loading="lazy"`)
	assert.Contains(t, result, `alt=""`)
}

func TestEnhancePostHTML_KeepsExistingAlt(t *testing.T) {
	result := string(EnhancePostHTML(`<img src="/a.jpg" alt="a cat">`))

	assert.Contains(t, result, `alt="a cat"`)
}

func TestEnhancePostHTML_Empty(t *testing.T) {
	assert.Empty(t, string(EnhancePostHTML("")))
}
