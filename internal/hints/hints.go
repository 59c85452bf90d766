// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-quizbundle/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// IsInCI reports whether a well-known CI environment variable is set.
func IsInCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	if (IsInCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForFetch returns hints for CDN fetch failures.
func ForFetch() string {
	var hints []string
	if os.Getenv("HTTPS_PROXY") == "" && os.Getenv("https_proxy") == "" {
		hints = append(hints, "set HTTPS_PROXY if the CDN is only reachable through a proxy")
	}
	hints = append(hints, "use --offline to keep CDN references instead of inlining KaTeX")
	return formatHints(hints)
}

// ForFontInline returns hints for font inlining failures.
func ForFontInline() string {
	return format("the stylesheet was fetched but a font was not; retry, or use --offline or a different --katex-version")
}

// ForPlaceholder returns a hint showing the exact text the page template must contain.
func ForPlaceholder(placeholder string) string {
	if placeholder == "" {
		return ""
	}
	return format("the page template must contain exactly " + placeholder)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/quizbundle/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or run 'quizbundle init'"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/quizbundle") {
			hint += ", or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check the output directory is writable, or choose another path with --output")
}

// ForProjectLayout returns hints for missing project inputs.
func ForProjectLayout() string {
	return format("run 'quizbundle doctor' to check the project layout, or pass --root")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
