package main

import (
	"errors"
	"os"

	quizbundle "github.com/alnah/go-quizbundle"
	"github.com/alnah/go-quizbundle/internal/author"
	"github.com/alnah/go-quizbundle/internal/config"
	"github.com/alnah/go-quizbundle/internal/hints"
	"github.com/alnah/go-quizbundle/internal/verify"
)

// Exit codes for the quizbundle CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Bundle written, check passed
	ExitGeneral  = 1 // General/unexpected error, failed verification
	ExitUsage    = 2 // Invalid flags, config, or question sources
	ExitIO       = 3 // File not found, permission denied, fetch failure
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitTemplate = 5 // Page template or decoder template problems
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, verify.ErrBrowserConnect) ||
		errors.Is(err, verify.ErrPageLoad) ||
		errors.Is(err, verify.ErrEvaluate) {
		return ExitBrowser
	}

	// Template errors (exit 5)
	if errors.Is(err, quizbundle.ErrPlaceholderNotFound) ||
		errors.Is(err, quizbundle.ErrDecoderRender) ||
		errors.Is(err, quizbundle.ErrTemplateNotFound) ||
		errors.Is(err, author.ErrRender) {
		return ExitTemplate
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, quizbundle.ErrInvalidAssetPath) ||
		errors.Is(err, author.ErrFrontMatter) ||
		errors.Is(err, author.ErrInvalidQuestion) ||
		errors.Is(err, author.ErrDuplicateID) ||
		errors.Is(err, author.ErrNoSources) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, quizbundle.ErrReadProjectFile) ||
		errors.Is(err, quizbundle.ErrReadFragment) ||
		errors.Is(err, quizbundle.ErrFragmentEncoding) ||
		errors.Is(err, quizbundle.ErrFontInline) ||
		errors.Is(err, quizbundle.ErrFetch) ||
		errors.Is(err, quizbundle.ErrWriteOutput) ||
		errors.Is(err, author.ErrReadSource) ||
		errors.Is(err, verify.ErrReadPage) {
		return ExitIO
	}

	return ExitGeneral
}

// hintFor returns actionable hint lines for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, verify.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, quizbundle.ErrFontInline):
		return hints.ForFontInline()
	case errors.Is(err, quizbundle.ErrFetch):
		return hints.ForFetch()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configSearchPaths())
	case errors.Is(err, quizbundle.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, quizbundle.ErrReadProjectFile), errors.Is(err, quizbundle.ErrReadFragment):
		return hints.ForProjectLayout()
	}

	var tmplErr *quizbundle.TemplateError
	if errors.As(err, &tmplErr) {
		return hints.ForPlaceholder(tmplErr.Anchor)
	}
	return ""
}
