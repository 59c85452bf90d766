package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/alnah/go-quizbundle/internal/config"
)

// envPrefix namespaces every recognized environment variable.
const envPrefix = "QUIZBUNDLE_"

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string        `env:"CONFIG"`         // QUIZBUNDLE_CONFIG: config file name or path
	Root         string        `env:"ROOT"`           // QUIZBUNDLE_ROOT: project root
	Output       string        `env:"OUTPUT"`         // QUIZBUNDLE_OUTPUT: bundle path
	KaTeXVersion string        `env:"KATEX_VERSION"`  // QUIZBUNDLE_KATEX_VERSION
	CDNBase      string        `env:"CDN_BASE"`       // QUIZBUNDLE_CDN_BASE: KaTeX distribution URL
	Offline      bool          `env:"OFFLINE"`        // QUIZBUNDLE_OFFLINE: skip CDN fetches
	AssetPath    string        `env:"ASSET_PATH"`     // QUIZBUNDLE_ASSET_PATH: template overrides
	IssueURL     string        `env:"ISSUE_URL"`      // QUIZBUNDLE_ISSUE_URL: author issue link
	Timeout      time.Duration `env:"VERIFY_TIMEOUT"` // QUIZBUNDLE_VERIFY_TIMEOUT: page load bound
}

// knownEnvVars lists valid QUIZBUNDLE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"QUIZBUNDLE_CONFIG":         true,
	"QUIZBUNDLE_ROOT":           true,
	"QUIZBUNDLE_OUTPUT":         true,
	"QUIZBUNDLE_KATEX_VERSION":  true,
	"QUIZBUNDLE_CDN_BASE":       true,
	"QUIZBUNDLE_OFFLINE":        true,
	"QUIZBUNDLE_ASSET_PATH":     true,
	"QUIZBUNDLE_ISSUE_URL":      true,
	"QUIZBUNDLE_VERIFY_TIMEOUT": true,
	"QUIZBUNDLE_CONTAINER":      true, // read by doctor only
}

// loadEnvConfig parses QUIZBUNDLE_* variables from environ (os.Environ format).
func loadEnvConfig(environ []string) (*envConfig, error) {
	cfg := &envConfig{}
	err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      envPrefix,
		Environment: env.ToMap(environ),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrUsage, err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: environment: %sVERIFY_TIMEOUT must be positive", ErrUsage, envPrefix)
	}
	return cfg, nil
}

// warnUnknownEnvVars logs warnings for unrecognized QUIZBUNDLE_* variables.
// Helps catch typos like QUIZBUNDLE_OFLINE.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with set environment variables.
// CLI flags are applied afterwards, giving: flags > env > config file > defaults.
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	if e.Root != "" {
		cfg.Project.Root = e.Root
	}
	if e.Output != "" {
		cfg.Output.Path = e.Output
	}
	if e.KaTeXVersion != "" {
		cfg.KaTeX.Version = e.KaTeXVersion
	}
	if e.CDNBase != "" {
		cfg.KaTeX.CDNBase = e.CDNBase
	}
	if e.Offline {
		cfg.KaTeX.Offline = true
	}
	if e.AssetPath != "" {
		cfg.Assets.BasePath = e.AssetPath
	}
	if e.IssueURL != "" {
		cfg.Author.IssueURL = e.IssueURL
	}
}
