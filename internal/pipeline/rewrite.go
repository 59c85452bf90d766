package pipeline

import (
	"regexp"
)

// Tag patterns. Each one keys on the distinguishing file name so unrelated
// <link> and <script> tags are never touched.
var (
	katexCSSTag   = regexp.MustCompile(`<link[^>]+katex\.min\.css[^>]*>`)
	katexJSTag    = regexp.MustCompile(`<script[^>]+katex\.min\.js[^>]*></script>`)
	autoRenderTag = regexp.MustCompile(`<script[^>]+auto-render\.min\.js[^>]*></script>`)
	frameCSSTag   = regexp.MustCompile(`<link[^>]+question-frame\.css[^>]*>`)
	frameJSTag    = regexp.MustCompile(`<script[^>]+question-frame\.js[^>]*></script>`)
)

// KaTeXAssets holds the fetched KaTeX resources. An empty field means the
// resource is unavailable and the matching tag keeps its CDN reference.
type KaTeXAssets struct {
	CSS        string // katex.min.css, fonts already inlined
	JS         string // katex.min.js
	AutoRender string // contrib/auto-render.min.js
}

// Available reports whether all three resources are present.
func (k KaTeXAssets) Available() bool {
	return k.CSS != "" && k.JS != "" && k.AutoRender != ""
}

// FragmentRewriter inlines KaTeX and question-frame assets into fragments.
type FragmentRewriter struct {
	katex    KaTeXAssets
	frameCSS string
	frameJS  string
}

// NewFragmentRewriter creates a FragmentRewriter.
// frameCSS and frameJS are the literal contents of the shared question-frame files.
func NewFragmentRewriter(katex KaTeXAssets, frameCSS, frameJS string) *FragmentRewriter {
	return &FragmentRewriter{katex: katex, frameCSS: frameCSS, frameJS: frameJS}
}

// Rewrite replaces every matching external reference with an inline block.
// KaTeX substitutions are skipped for absent resources; question-frame
// substitutions always apply. Replacement text is inserted literally.
func (r *FragmentRewriter) Rewrite(html string) string {
	if r.katex.CSS != "" {
		html = katexCSSTag.ReplaceAllLiteralString(html, styleBlock(r.katex.CSS))
	}
	if r.katex.JS != "" {
		html = katexJSTag.ReplaceAllLiteralString(html, scriptBlock(r.katex.JS))
	}
	if r.katex.AutoRender != "" {
		html = autoRenderTag.ReplaceAllLiteralString(html, scriptBlock(r.katex.AutoRender))
	}

	html = frameCSSTag.ReplaceAllLiteralString(html, styleBlock(r.frameCSS))
	html = frameJSTag.ReplaceAllLiteralString(html, scriptBlock(r.frameJS))
	return html
}

func styleBlock(css string) string {
	return "<style>" + css + "</style>"
}

func scriptBlock(js string) string {
	return "<script>" + js + "</script>"
}
