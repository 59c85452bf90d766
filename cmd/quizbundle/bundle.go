package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	quizbundle "github.com/alnah/go-quizbundle"
	"github.com/alnah/go-quizbundle/internal/config"
)

// runBundle builds the standalone page and reports where it was written.
func runBundle(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseBundleFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	log := newLogger(env, flags.common)

	cfg, _, err := loadConfig(flags.common, env, log)
	if err != nil {
		return err
	}
	mergeBundleFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	bundler, err := quizbundle.NewBundler(projectFrom(cfg), bundlerOptions(cfg)...)
	if err != nil {
		return err
	}

	project := bundler.Project()
	log.Debugf("questions: %s", project.QuestionsPath())
	if cfg.KaTeX.Offline {
		log.Debugf("katex: offline, CDN references kept")
	} else {
		log.Debugf("katex: %s", bundler.CDNBase())
	}

	start := env.Now()
	result, err := bundler.BundleTo(ctx, cfg.Output.Path)
	if err != nil {
		return err
	}

	if result.KaTeXErr != nil {
		log.Warnf("KaTeX not inlined, fragments keep CDN references: %v", result.KaTeXErr)
	}
	log.Debugf("bundled %s in %v (%s)",
		humanize.Comma(int64(len(result.Questions))),
		env.Now().Sub(start).Round(time.Millisecond),
		humanize.IBytes(uint64(result.Size())))
	log.Infof("%s", bundleSummary(result))
	return nil
}

// bundleSummary is the line printed after a successful bundle.
func bundleSummary(r *quizbundle.Result) string {
	return fmt.Sprintf("Wrote %s (%.1f KB) with %d embedded questions.",
		r.OutputPath, r.SizeKB(), len(r.Questions))
}

// mergeBundleFlags applies explicitly set flags over cfg.
func mergeBundleFlags(f *bundleFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.Path = f.output
	}
	if f.katexVersion != "" {
		cfg.KaTeX.Version = f.katexVersion
	}
	if f.cdnBase != "" {
		cfg.KaTeX.CDNBase = f.cdnBase
	}
	if f.offline {
		cfg.KaTeX.Offline = true
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}
