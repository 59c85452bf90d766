package quizbundle

import (
	"errors"

	"github.com/alnah/go-quizbundle/internal/fetch"
	"github.com/alnah/go-quizbundle/internal/fileutil"
	"github.com/alnah/go-quizbundle/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrKaTeXUnavailable = errors.New("KaTeX assets unavailable")
	ErrReadProjectFile  = errors.New("failed to read project file")
	ErrEmptyRoot        = errors.New("project root cannot be empty")

	// Asset loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)

// Errors raised by pipeline stages, exposed for errors.Is matching.
var (
	ErrFetch               = fetch.ErrFetch
	ErrFontInline          = pipeline.ErrFontInline
	ErrPlaceholderNotFound = pipeline.ErrPlaceholderNotFound
	ErrReadFragment        = pipeline.ErrReadFragment
	ErrFragmentEncoding    = pipeline.ErrFragmentEncoding
	ErrDecoderRender       = pipeline.ErrDecoderRender
	ErrWriteOutput         = fileutil.ErrWriteOutput
)

// FetchError reports a failed retrieval of a single URL.
type FetchError = fetch.FetchError

// TemplateError reports a page template that lacks the expected anchor.
type TemplateError = pipeline.TemplateError
