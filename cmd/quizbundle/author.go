package main

import (
	"context"
	"path/filepath"
	"strings"

	quizbundle "github.com/alnah/go-quizbundle"
	"github.com/alnah/go-quizbundle/internal/author"
	"github.com/alnah/go-quizbundle/internal/config"
)

// runAuthor renders Markdown question sources into fragments and the registry.
func runAuthor(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseAuthorFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	log := newLogger(env, flags.common)

	cfg, _, err := loadConfig(flags.common, env, log)
	if err != nil {
		return err
	}
	mergeAuthorFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	loader, err := quizbundle.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return err
	}
	tmpl, err := loader.LoadTemplate(quizbundle.FragmentTemplate)
	if err != nil {
		return err
	}

	renderer, err := author.NewRenderer(tmpl, fragmentKaTeXBase(cfg), cfg.Author.IssueURL)
	if err != nil {
		return err
	}

	project := projectFrom(cfg)
	source := cfg.Author.SourceDir
	if !filepath.IsAbs(source) {
		source = filepath.Join(project.Root, source)
	}
	log.Debugf("sources: %s", source)

	questions, err := author.LoadQuestions(source)
	if err != nil {
		return err
	}

	result, err := author.Build(ctx, questions, renderer, project.QuestionsPath(), project.RegistryPath())
	if err != nil {
		return err
	}

	for _, path := range result.Fragments {
		log.Debugf("wrote %s", path)
	}
	log.Infof("Rendered %d questions in %d chapters; registry written to %s.",
		len(result.Fragments), result.Chapters, result.Registry)
	return nil
}

// fragmentKaTeXBase is the CDN prefix written into fragment tags. Fragments load
// KaTeX from it until bundle inlines the same release.
func fragmentKaTeXBase(cfg *config.Config) string {
	if cfg.KaTeX.CDNBase != "" {
		base := cfg.KaTeX.CDNBase
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		return base
	}
	version := cfg.KaTeX.Version
	if version == "" {
		version = quizbundle.DefaultKaTeXVersion
	}
	return quizbundle.KaTeXBase(version)
}

// mergeAuthorFlags applies explicitly set flags over cfg.
func mergeAuthorFlags(f *authorFlags, cfg *config.Config) {
	if f.source != "" {
		cfg.Author.SourceDir = f.source
	}
	if f.issueURL != "" {
		cfg.Author.IssueURL = f.issueURL
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if f.katexVer != "" {
		cfg.KaTeX.Version = f.katexVer
	}
}
