package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// Highlight markers use Private Use Area characters, which pass through
// Goldmark unchanged and are turned into <mark> tags afterwards.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	trailingSpace      = regexp.MustCompile(`[ \t]+\n`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
	highlightPattern   = regexp.MustCompile(`==([^=\n]+?)==`)
)

// MarkdownPreprocessor prepares question source Markdown for conversion.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourcePreprocessor normalizes question source text before Goldmark sees it.
type SourcePreprocessor struct{}

// PreprocessMarkdown strips a byte order mark, normalizes line endings,
// drops trailing whitespace, compresses blank lines and marks ==highlights==.
// TeX spans are left byte-for-byte intact.
func (p *SourcePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = strings.TrimPrefix(content, "\ufeff")
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = trailingSpace.ReplaceAllString(content, "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return convertHighlights(content)
}

// convertHighlights rewrites ==text== outside TeX spans to placeholder markers.
func convertHighlights(content string) string {
	spans := mathSpan.FindAllStringIndex(content, -1)
	if len(spans) == 0 {
		return highlightText(content)
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, s := range spans {
		b.WriteString(highlightText(content[last:s[0]]))
		b.WriteString(content[s[0]:s[1]])
		last = s[1]
	}
	b.WriteString(highlightText(content[last:]))
	return b.String()
}

func highlightText(s string) string {
	return highlightPattern.ReplaceAllString(s, MarkStartPlaceholder+"$1"+MarkEndPlaceholder)
}

// ConvertMarkPlaceholders turns highlight markers into <mark> tags.
// Called on Goldmark output, so Goldmark itself never needs WithUnsafe.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
