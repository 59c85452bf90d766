package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-quizbundle/internal/fileutil"
	"github.com/alnah/go-quizbundle/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config field")
)

// DirName is the per-user configuration directory under os.UserConfigDir.
const DirName = "quizbundle"

// Field length limits.
const (
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxURLLength         = 2048 // Browser limit
	MaxVersionLength     = 50   // "0.16.11", "0.16.11-rc.1"
	MaxPlaceholderLength = 500  // One script tag
)

// Default values written by `quizbundle init` and used when a field is omitted.
const (
	DefaultQuestionsDir = "questions"
	DefaultIndex        = "index.html"
	DefaultRegistry     = "registry.js"
	DefaultFrameCSS     = "question-frame.css"
	DefaultFrameJS      = "question-frame.js"
	DefaultPlaceholder  = `<script src="registry.js"></script>`
	DefaultKaTeXVersion = "0.16.11"
	DefaultOutput       = "stochastics-standalone.html"
	DefaultAuthorSource = "questions/src"
)

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:[-+][0-9A-Za-z.-]+)?$`)

// Config holds all configuration for a bundle run.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	KaTeX   KaTeXConfig   `yaml:"katex"`
	Output  OutputConfig  `yaml:"output"`
	Assets  AssetsConfig  `yaml:"assets"`
	Author  AuthorConfig  `yaml:"author"`
}

// ProjectConfig locates the quiz site inputs. Relative paths resolve against Root.
type ProjectConfig struct {
	Root         string `yaml:"root"`         // Empty = current directory
	QuestionsDir string `yaml:"questionsDir"` // Directory holding digit-named fragments
	Index        string `yaml:"index"`        // Page template containing the placeholder
	Registry     string `yaml:"registry"`     // Registry script inlined into the page
	FrameCSS     string `yaml:"frameCSS"` // Relative to QuestionsDir
	FrameJS      string `yaml:"frameJS"`  // Relative to QuestionsDir
	Placeholder  string `yaml:"placeholder"` // Exact text replaced in the page template
}

// KaTeXConfig defines where the math library is fetched from.
type KaTeXConfig struct {
	Version string `yaml:"version"`
	CDNBase string `yaml:"cdnBase"` // Empty = jsDelivr URL derived from Version
	Offline bool   `yaml:"offline"` // Skip fetching; fragments keep CDN references
}

// OutputConfig defines the bundle destination.
type OutputConfig struct {
	Path string `yaml:"path"` // Relative paths resolve against the project root
}

// AssetsConfig defines template override options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded templates
}

// AuthorConfig defines Markdown question source options.
type AuthorConfig struct {
	SourceDir string `yaml:"sourceDir"`
	IssueURL  string `yaml:"issueURL"` // Optional "report an issue" link in each fragment
}

// Validate checks field lengths and formats.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"project.root", c.Project.Root},
		{"project.questionsDir", c.Project.QuestionsDir},
		{"project.index", c.Project.Index},
		{"project.registry", c.Project.Registry},
		{"project.frameCSS", c.Project.FrameCSS},
		{"project.frameJS", c.Project.FrameJS},
		{"output.path", c.Output.Path},
		{"assets.basePath", c.Assets.BasePath},
		{"author.sourceDir", c.Author.SourceDir},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
		if strings.ContainsRune(p.value, 0) {
			return fmt.Errorf("%w: %s: contains NUL byte", ErrInvalidField, p.name)
		}
	}

	if err := validateFieldLength("project.placeholder", c.Project.Placeholder, MaxPlaceholderLength); err != nil {
		return err
	}
	if c.Project.Placeholder != "" && strings.TrimSpace(c.Project.Placeholder) == "" {
		return fmt.Errorf("%w: project.placeholder: must not be blank", ErrInvalidField)
	}

	if err := validateFieldLength("katex.version", c.KaTeX.Version, MaxVersionLength); err != nil {
		return err
	}
	if c.KaTeX.Version != "" && !versionPattern.MatchString(c.KaTeX.Version) {
		return fmt.Errorf("%w: katex.version: %q is not a semantic version", ErrInvalidField, c.KaTeX.Version)
	}

	if err := validateFieldLength("katex.cdnBase", c.KaTeX.CDNBase, MaxURLLength); err != nil {
		return err
	}
	if c.KaTeX.CDNBase != "" && !fileutil.IsURL(c.KaTeX.CDNBase) {
		return fmt.Errorf("%w: katex.cdnBase: %q must start with http:// or https://", ErrInvalidField, c.KaTeX.CDNBase)
	}

	if err := validateFieldLength("author.issueURL", c.Author.IssueURL, MaxURLLength); err != nil {
		return err
	}
	if c.Author.IssueURL != "" && !fileutil.IsURL(c.Author.IssueURL) {
		return fmt.Errorf("%w: author.issueURL: %q must start with http:// or https://", ErrInvalidField, c.Author.IssueURL)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Project: ProjectConfig{
			QuestionsDir: DefaultQuestionsDir,
			Index:        DefaultIndex,
			Registry:     DefaultRegistry,
			FrameCSS:     DefaultFrameCSS,
			FrameJS:      DefaultFrameJS,
			Placeholder:  DefaultPlaceholder,
		},
		KaTeX:  KaTeXConfig{Version: DefaultKaTeXVersion},
		Output: OutputConfig{Path: DefaultOutput},
		Author: AuthorConfig{SourceDir: DefaultAuthorSource},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields omitted from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal renders cfg as YAML, as written by `quizbundle init`.
func Marshal(cfg *Config) ([]byte, error) {
	return yamlutil.Marshal(cfg)
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/quizbundle/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, DirName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
