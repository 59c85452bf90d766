package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// mathSpan matches display ($$...$$) and inline ($...$) TeX so Goldmark does
// not read underscores and asterisks inside formulas as emphasis.
var mathSpan = regexp.MustCompile(`\$\$[\s\S]+?\$\$|\$[^$\n]+?\$`)

// mathPlaceholderPrefix survives Goldmark untouched (letters and digits only).
const mathPlaceholderPrefix = "QBMATHSPAN"

var mathPlaceholder = regexp.MustCompile(mathPlaceholderPrefix + `(\d+)X`)

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions and syntax highlighting.
func NewGoldmarkConverter() *GoldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // styled by question-frame.css
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
			// WithUnsafe() is not used: raw HTML in question sources is escaped.
		),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment. TeX spans are kept
// verbatim (HTML-escaped) for KaTeX auto-render.
// Goldmark doesn't support context, so cancellation is only checked up front.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	protected, spans := protectMath(content)

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(protected), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	return restoreMath(buf.String(), spans), nil
}

// protectMath swaps TeX spans for placeholders and returns the spans in order.
func protectMath(content string) (string, []string) {
	var spans []string
	out := mathSpan.ReplaceAllStringFunc(content, func(m string) string {
		spans = append(spans, m)
		return mathPlaceholderPrefix + strconv.Itoa(len(spans)-1) + "X"
	})
	return out, spans
}

// restoreMath puts the escaped TeX spans back in place of their placeholders.
func restoreMath(htmlContent string, spans []string) string {
	if len(spans) == 0 {
		return htmlContent
	}
	return mathPlaceholder.ReplaceAllStringFunc(htmlContent, func(m string) string {
		idx, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(m, mathPlaceholderPrefix), "X"))
		if err != nil || idx >= len(spans) {
			return m
		}
		return html.EscapeString(spans[idx])
	})
}
