package main

import (
	"fmt"
	"os"
	"path/filepath"

	quizbundle "github.com/alnah/go-quizbundle"
	"github.com/alnah/go-quizbundle/internal/config"
	"github.com/alnah/go-quizbundle/internal/fileutil"
)

// Config file names picked up without --config.
const (
	defaultConfigName = "quizbundle"
	defaultConfigFile = defaultConfigName + ".yaml"
	defaultOutputName = config.DefaultOutput
)

// loadConfig resolves configuration for a command: config file, then
// QUIZBUNDLE_* variables, then the --root flag. Command-specific flags are
// merged by the caller, which validates the result.
//
// Without --config or QUIZBUNDLE_CONFIG, quizbundle.yaml (or .yml) in the
// project root is loaded when present.
func loadConfig(c commonFlags, env *Environment, log *logger) (*config.Config, *envConfig, error) {
	environ := env.Environ()
	warnUnknownEnvVars(env.Stderr, environ)

	ec, err := loadEnvConfig(environ)
	if err != nil {
		return nil, nil, err
	}

	name := c.config
	if name == "" {
		name = ec.ConfigPath
	}
	if name == "" {
		root := c.root
		if root == "" {
			root = ec.Root
		}
		name = discoverConfig(root)
	}

	cfg := config.DefaultConfig()
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
		log.Debugf("config: %s", name)
	}

	applyEnvConfig(ec, cfg)
	if c.root != "" {
		cfg.Project.Root = c.root
	}
	return cfg, ec, nil
}

// discoverConfig returns the path of a default config file in root, or "".
func discoverConfig(root string) string {
	if root == "" {
		root = "."
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(root, defaultConfigName+ext)
		if fileutil.FileExists(path) {
			// A separator makes LoadConfig treat it as a path, not a name.
			if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
				path = "." + string(filepath.Separator) + path
			}
			return path
		}
	}
	return ""
}

// configSearchPaths lists where a config name is looked up, for hints.
func configSearchPaths() []string {
	paths := []string{defaultConfigFile}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, config.DirName, defaultConfigFile))
	}
	return paths
}

// projectFrom maps the project section of cfg onto a bundle project.
func projectFrom(cfg *config.Config) quizbundle.Project {
	root := cfg.Project.Root
	if root == "" {
		root = "."
	}
	return quizbundle.Project{
		Root:         root,
		QuestionsDir: cfg.Project.QuestionsDir,
		Index:        cfg.Project.Index,
		Registry:     cfg.Project.Registry,
		FrameCSS:     cfg.Project.FrameCSS,
		FrameJS:      cfg.Project.FrameJS,
	}
}

// bundlerOptions maps the KaTeX, placeholder and asset settings of cfg.
func bundlerOptions(cfg *config.Config) []quizbundle.Option {
	opts := []quizbundle.Option{
		quizbundle.WithOffline(cfg.KaTeX.Offline),
		quizbundle.WithAssetPath(cfg.Assets.BasePath),
	}
	if cfg.KaTeX.Version != "" {
		opts = append(opts, quizbundle.WithKaTeXVersion(cfg.KaTeX.Version))
	}
	if cfg.KaTeX.CDNBase != "" {
		opts = append(opts, quizbundle.WithCDNBase(cfg.KaTeX.CDNBase))
	}
	if cfg.Project.Placeholder != "" {
		opts = append(opts, quizbundle.WithPlaceholder(cfg.Project.Placeholder))
	}
	return opts
}
