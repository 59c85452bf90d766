package main

// Notes:
// - exitCodeFor: we test the sentinels of every package the CLI calls, plus
//   wrapped errors to verify the errors.Is chain.
// - hintFor: we test that the hint matches the failure, not the hint text.

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	quizbundle "github.com/alnah/go-quizbundle"
	"github.com/alnah/go-quizbundle/internal/author"
	"github.com/alnah/go-quizbundle/internal/config"
	"github.com/alnah/go-quizbundle/internal/verify"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", verify.ErrBrowserConnect, ExitBrowser},
		{"page load", verify.ErrPageLoad, ExitBrowser},
		{"evaluate", verify.ErrEvaluate, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("verify: %w", verify.ErrBrowserConnect), ExitBrowser},

		// Template errors (exit 5)
		{"placeholder", &quizbundle.TemplateError{Anchor: "<x>"}, ExitTemplate},
		{"placeholder sentinel", quizbundle.ErrPlaceholderNotFound, ExitTemplate},
		{"decoder render", quizbundle.ErrDecoderRender, ExitTemplate},
		{"template not found", quizbundle.ErrTemplateNotFound, ExitTemplate},
		{"fragment render", author.ErrRender, ExitTemplate},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid field", config.ErrInvalidField, ExitUsage},
		{"invalid asset path", quizbundle.ErrInvalidAssetPath, ExitUsage},
		{"front matter", author.ErrFrontMatter, ExitUsage},
		{"invalid question", author.ErrInvalidQuestion, ExitUsage},
		{"duplicate id", author.ErrDuplicateID, ExitUsage},
		{"no sources", author.ErrNoSources, ExitUsage},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"config exists", ErrConfigExists, ExitIO},
		{"read project file", quizbundle.ErrReadProjectFile, ExitIO},
		{"read fragment", quizbundle.ErrReadFragment, ExitIO},
		{"fragment encoding", quizbundle.ErrFragmentEncoding, ExitIO},
		{"font inline", quizbundle.ErrFontInline, ExitIO},
		{"write output", quizbundle.ErrWriteOutput, ExitIO},
		{"read source", author.ErrReadSource, ExitIO},
		{"read page", verify.ErrReadPage, ExitIO},
		{"wrapped not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// General errors (exit 1)
		{"verification failed", ErrVerifyFailed, ExitGeneral},
		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1, 2 must follow Unix conventions")
	}
	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser, ExitTemplate}
	seen := map[int]bool{}
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("exit code %d is used twice", c)
		}
		seen[c] = true
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Hints attached to errors
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"placeholder", fmt.Errorf("bundling: %w", &quizbundle.TemplateError{Anchor: "<!-- Q -->"}), "<!-- Q -->"},
		{"font", quizbundle.ErrFontInline, "--offline"},
		{"config", config.ErrConfigNotFound, "quizbundle init"},
		{"project", quizbundle.ErrReadProjectFile, "quizbundle doctor"},
		{"output", quizbundle.ErrWriteOutput, "--output"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if !strings.HasPrefix(got, "\n  hint: ") {
				t.Fatalf("hintFor() = %q, want hint line", got)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor() = %q, want it to mention %q", got, tt.contains)
			}
		})
	}

	if got := hintFor(errors.New("boom")); got != "" {
		t.Errorf("hintFor(unknown) = %q, want empty", got)
	}
}
