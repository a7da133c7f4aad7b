package application

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ContentRenderer converts post content from markdown and derives a short
// plain-text excerpt for posts created without one.
type ContentRenderer interface {
	RenderHTML(content string) (string, error)
	Excerpt(content string, maxChars int) string
}

type ContentRendererImpl struct {
	renderer goldmark.Markdown
}

func NewContentRenderer() ContentRenderer {
	renderer := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	return &ContentRendererImpl{renderer: renderer}
}

func (r *ContentRendererImpl) RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.renderer.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return buf.String(), nil
}

// Excerpt extracts the first paragraph of the content as plain text,
// truncated at a word boundary within maxChars.
func (r *ContentRendererImpl) Excerpt(content string, maxChars int) string {
	lines := strings.Split(content, "\n")
	var paragraphLines []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		// Skip headings before we find content
		if strings.HasPrefix(trimmed, "#") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		if trimmed == "" {
			if len(paragraphLines) > 0 {
				break // End of first paragraph
			}
			continue
		}

		// Stop at code blocks, horizontal rules, lists, tables
		if strings.HasPrefix(trimmed, "```") ||
			strings.HasPrefix(trimmed, "---") ||
			strings.HasPrefix(trimmed, "***") ||
			strings.HasPrefix(trimmed, "- ") ||
			strings.HasPrefix(trimmed, "* ") ||
			strings.HasPrefix(trimmed, "+ ") ||
			strings.HasPrefix(trimmed, "|") {
			if len(paragraphLines) > 0 {
				break
			}
			continue
		}

		paragraphLines = append(paragraphLines, trimmed)
	}

	if len(paragraphLines) == 0 {
		return ""
	}

	excerpt := strings.Join(paragraphLines, " ")
	if maxChars <= 0 {
		return ""
	}
	if utf8.RuneCountInString(excerpt) <= maxChars {
		return excerpt
	}

	runes := []rune(excerpt)
	// no room for the ellipsis: hard cut
	if maxChars <= 3 {
		return string(runes[:maxChars])
	}
	truncated := string(runes[:maxChars-3])
	if lastSpace := strings.LastIndexAny(truncated, " \t"); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}
