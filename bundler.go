package quizbundle

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alnah/go-quizbundle/internal/fetch"
	"github.com/alnah/go-quizbundle/internal/fileutil"
	"github.com/alnah/go-quizbundle/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ Fetcher       = (*fetch.HTTPFetcher)(nil)
	_ fetch.Fetcher = Fetcher(nil)
)

// KaTeX files fetched from the CDN, relative to the distribution base.
const (
	katexCSSFile        = "katex.min.css"
	katexJSFile         = "katex.min.js"
	katexAutoRenderFile = "contrib/auto-render.min.js"
)

// Fetcher retrieves a remote resource. The default implementation uses net/http.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Option configures a Bundler.
type Option func(*Bundler)

// bundlerConfig holds options resolved by NewBundler.
type bundlerConfig struct {
	katexVersion string
	cdnBase      string
	offline      bool
	placeholder  string
	assetPath    string
}

// WithKaTeXVersion pins the KaTeX release fetched from jsDelivr.
func WithKaTeXVersion(version string) Option {
	return func(b *Bundler) {
		b.cfg.katexVersion = version
	}
}

// WithCDNBase overrides the KaTeX distribution URL. A missing trailing slash
// is added, so file names resolve inside the directory.
func WithCDNBase(base string) Option {
	return func(b *Bundler) {
		if base != "" && !strings.HasSuffix(base, "/") {
			base += "/"
		}
		b.cfg.cdnBase = base
	}
}

// WithOffline skips the CDN fetch; fragments keep their KaTeX CDN tags.
func WithOffline(offline bool) Option {
	return func(b *Bundler) {
		b.cfg.offline = offline
	}
}

// WithPlaceholder sets the exact tag replaced in the page template.
func WithPlaceholder(placeholder string) Option {
	return func(b *Bundler) {
		b.cfg.placeholder = placeholder
	}
}

// WithFetcher replaces the HTTP fetcher (e.g., for tests or a caching proxy).
func WithFetcher(f Fetcher) Option {
	return func(b *Bundler) {
		b.fetcher = f
	}
}

// WithHTTPClient fetches with client instead of http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bundler) {
		b.fetcher = fetch.NewHTTPFetcher(client)
	}
}

// WithAssetPath loads template overrides from a directory, falling back to
// the embedded templates.
func WithAssetPath(path string) Option {
	return func(b *Bundler) {
		b.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom template loader.
func WithAssetLoader(loader AssetLoader) Option {
	return func(b *Bundler) {
		b.assetLoader = loader
	}
}

// Bundler packages one project into a single HTML page.
// Create with NewBundler, then call Bundle or BundleTo.
type Bundler struct {
	project     Project
	cfg         bundlerConfig
	fetcher     fetch.Fetcher
	assetLoader AssetLoader
	assembler   *pipeline.PageAssembler
}

// NewBundler creates a Bundler for project. Empty Project fields take their defaults.
// Returns error if the decoder template cannot be loaded or parsed.
func NewBundler(project Project, opts ...Option) (*Bundler, error) {
	b := &Bundler{
		project: project.withDefaults(),
		cfg: bundlerConfig{
			katexVersion: DefaultKaTeXVersion,
			placeholder:  DefaultPlaceholder,
		},
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.fetcher == nil {
		b.fetcher = fetch.NewHTTPFetcher(nil)
	}

	if b.assetLoader == nil {
		loader, err := NewAssetLoader(b.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		b.assetLoader = loader
	}

	decoderTmpl, err := b.assetLoader.LoadTemplate(DecoderTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading decoder template: %w", err)
	}
	decoder, err := pipeline.NewDecoderRenderer(decoderTmpl)
	if err != nil {
		return nil, fmt.Errorf("initializing decoder: %w", err)
	}
	b.assembler = pipeline.NewPageAssembler(b.cfg.placeholder, decoder)

	return b, nil
}

// Project returns the project with defaults applied.
func (b *Bundler) Project() Project {
	return b.project
}

// Placeholder returns the tag replaced in the page template.
func (b *Bundler) Placeholder() string {
	return b.assembler.Placeholder()
}

// CDNBase returns the URL KaTeX files and fonts are fetched from.
func (b *Bundler) CDNBase() string {
	if b.cfg.cdnBase != "" {
		return b.cfg.cdnBase
	}
	return KaTeXBase(b.cfg.katexVersion)
}

// Bundle runs the pipeline and returns the assembled page without writing it.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Bundler) Bundle(ctx context.Context) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	katex, katexErr := b.fetchKaTeX(ctx)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if katex.CSS != "" {
		inliner := pipeline.NewFontInliner(b.fetcher, b.CDNBase())
		katex.CSS, err = inliner.Inline(ctx, katex.CSS)
		if err != nil {
			return nil, err
		}
	}

	frameCSS, err := readProjectFile(b.project.FrameCSSPath())
	if err != nil {
		return nil, err
	}
	frameJS, err := readProjectFile(b.project.FrameJSPath())
	if err != nil {
		return nil, err
	}

	fragments, err := pipeline.CollectFragments(b.project.QuestionsPath())
	if err != nil {
		return nil, err
	}
	pipeline.RewriteFragments(fragments, pipeline.NewFragmentRewriter(katex, frameCSS, frameJS))
	questions := pipeline.EncodeFragments(fragments)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	page, err := readProjectFile(b.project.IndexPath())
	if err != nil {
		return nil, err
	}
	registry, err := readProjectFile(b.project.RegistryPath())
	if err != nil {
		return nil, err
	}

	html, err := b.assembler.Assemble(page, registry, questions)
	if err != nil {
		return nil, err
	}

	result = &Result{
		HTML:         html,
		Questions:    questions.Names(),
		Fragments:    make([]Fragment, len(fragments)),
		KaTeXInlined: katex.Available(),
		KaTeXErr:     katexErr,
	}
	for i, f := range fragments {
		result.Fragments[i] = Fragment{Name: f.Name, HTML: f.HTML}
	}
	return result, nil
}

// BundleTo bundles and writes the page to output, resolved with Project.ResolveOutput.
// Nothing is written when bundling fails.
func (b *Bundler) BundleTo(ctx context.Context, output string) (*Result, error) {
	result, err := b.Bundle(ctx)
	if err != nil {
		return nil, err
	}

	path := b.project.ResolveOutput(output)
	if err := fileutil.WriteOutput(path, result.HTML); err != nil {
		return nil, err
	}
	result.OutputPath = path
	return result, nil
}

// fetchKaTeX fetches the three KaTeX files as a group. Any failure yields no
// assets at all, with the cause wrapped in ErrKaTeXUnavailable.
func (b *Bundler) fetchKaTeX(ctx context.Context) (pipeline.KaTeXAssets, error) {
	if b.cfg.offline {
		return pipeline.KaTeXAssets{}, nil
	}

	base := b.CDNBase()
	var files [3]string
	for i, name := range []string{katexCSSFile, katexJSFile, katexAutoRenderFile} {
		text, err := fetch.FetchText(ctx, b.fetcher, base+name)
		if err != nil {
			return pipeline.KaTeXAssets{}, fmt.Errorf("%w: %w", ErrKaTeXUnavailable, err)
		}
		files[i] = text
	}

	return pipeline.KaTeXAssets{CSS: files[0], JS: files[1], AutoRender: files[2]}, nil
}

// readProjectFile reads a UTF-8 text input of the project.
func readProjectFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the project layout
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadProjectFile, err)
	}
	return string(data), nil
}
