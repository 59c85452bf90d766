package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/alnah/go-quizbundle/internal/fetch"
)

// ErrFontInline indicates a font referenced by the stylesheet could not be inlined.
var ErrFontInline = errors.New("font inlining failed")

// DefaultFontMIME is used for font files with an unknown extension.
const DefaultFontMIME = "application/octet-stream"

// fontURLPattern matches url(fonts/...) with optional single or double quotes.
// Group 1 is the relative font path.
var fontURLPattern = regexp.MustCompile(`url\(['"]?(fonts/[^)"']+)['"]?\)`)

var fontMIMETypes = map[string]string{
	".woff2": "font/woff2",
	".woff":  "font/woff",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
}

// FontMIMEType returns the MIME type for a font path by its lowercased extension.
func FontMIMEType(fontPath string) string {
	if mime, ok := fontMIMETypes[strings.ToLower(path.Ext(fontPath))]; ok {
		return mime
	}
	return DefaultFontMIME
}

// FontInliner replaces relative font URLs in a stylesheet with data URIs.
type FontInliner struct {
	fetcher fetch.Fetcher
	baseURL string
}

// NewFontInliner creates a FontInliner resolving font paths against baseURL.
// baseURL must end with a slash; font paths are appended verbatim.
func NewFontInliner(f fetch.Fetcher, baseURL string) *FontInliner {
	return &FontInliner{fetcher: f, baseURL: baseURL}
}

// Inline fetches every font referenced as url(fonts/...) and substitutes
// url(data:<mime>;base64,<payload>). Each occurrence is fetched, duplicates included.
// Returns the first fetch error; no partially inlined stylesheet is returned.
func (i *FontInliner) Inline(ctx context.Context, css string) (string, error) {
	matches := fontURLPattern.FindAllStringSubmatchIndex(css, -1)
	if len(matches) == 0 {
		return css, nil
	}

	var b strings.Builder
	b.Grow(len(css))
	last := 0

	for _, m := range matches {
		fontPath := css[m[2]:m[3]]

		data, err := i.fetcher.Fetch(ctx, i.baseURL+fontPath)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrFontInline, fontPath, err)
		}

		b.WriteString(css[last:m[0]])
		b.WriteString(fontDataURI(fontPath, data))
		last = m[1]
	}
	b.WriteString(css[last:])

	return b.String(), nil
}

// fontDataURI formats a CSS url() holding the font as a base64 data URI.
func fontDataURI(fontPath string, data []byte) string {
	return "url(data:" + FontMIMEType(fontPath) + ";base64," + base64.StdEncoding.EncodeToString(data) + ")"
}
