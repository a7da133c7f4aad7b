package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	renderer := NewContentRenderer()

	tests := []struct {
		name     string
		markdown string
		contains []string
	}{
		{
			name:     "heading and emphasis",
			markdown: "# Title\n\nSome *emphasis* here.",
			contains: []string{"<h1", "Title", "<em>emphasis</em>"},
		},
		{
			name:     "gfm table",
			markdown: "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "strikethrough",
			markdown: "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
		{
			name:     "task list",
			markdown: "- [x] done\n- [ ] pending",
			contains: []string{"checkbox"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := renderer.RenderHTML(tt.markdown)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	renderer := NewContentRenderer()

	tests := []struct {
		name     string
		content  string
		maxChars int
		want     string
	}{
		{
			name:     "first paragraph only",
			content:  "First paragraph here.\n\nSecond paragraph ignored.",
			maxChars: 100,
			want:     "First paragraph here.",
		},
		{
			name:     "heading skipped",
			content:  "# A Heading\n\nThe real opening.",
			maxChars: 100,
			want:     "The real opening.",
		},
		{
			name:     "multi-line paragraph joined",
			content:  "Line one\nline two.\n\nNext.",
			maxChars: 100,
			want:     "Line one line two.",
		},
		{
			name:     "code fence skipped",
			content:  "```go\nfunc main() {}\n```\n\nAfter the fence.",
			maxChars: 100,
			want:     "After the fence.",
		},
		{
			name:     "empty content",
			content:  "",
			maxChars: 100,
			want:     "",
		},
		{
			name:     "only structure no prose",
			content:  "# Just\n\n- a\n- list",
			maxChars: 100,
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderer.Excerpt(tt.content, tt.maxChars))
		})
	}
}

func TestExcerptTinyMaxChars(t *testing.T) {
	renderer := NewContentRenderer()
	content := "A paragraph that is longer than any of the caps below."

	tests := []struct {
		maxChars int
		want     string
	}{
		{-1, ""},
		{0, ""},
		{1, "A"},
		{3, "A p"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, renderer.Excerpt(content, tt.maxChars), "maxChars=%d", tt.maxChars)
	}
}

func TestExcerptTruncatesAtWordBoundary(t *testing.T) {
	renderer := NewContentRenderer()
	content := strings.Repeat("word ", 200)

	got := renderer.Excerpt(content, 50)
	assert.True(t, strings.HasSuffix(got, "..."), "truncated excerpt ends with ellipsis: %q", got)
	assert.LessOrEqual(t, len(got), 50)
	assert.False(t, strings.Contains(strings.TrimSuffix(got, "..."), "  "), "no broken words")
}
