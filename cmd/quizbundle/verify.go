package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alnah/go-quizbundle/internal/pipeline"
	"github.com/alnah/go-quizbundle/internal/verify"
)

// ErrVerifyFailed is returned when the bundle does not decode as built.
var ErrVerifyFailed = errors.New("verification failed")

// runVerify loads the bundle in headless Chrome and compares every decoded
// question with the payload embedded in the page.
func runVerify(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseVerifyFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	log := newLogger(env, flags.common)

	cfg, ec, err := loadConfig(flags.common, env, log)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, ec.Timeout)
	if err != nil {
		return err
	}

	project := projectFrom(cfg)
	path := flags.output
	if path == "" {
		path = project.ResolveOutput(cfg.Output.Path)
	}

	// The project check is optional: a bundle can be verified on its own.
	var names []string
	if fragments, err := pipeline.CollectFragments(project.QuestionsPath()); err != nil {
		log.Debugf("skipping project comparison: %v", err)
	} else {
		names = make([]string, len(fragments))
		for i, f := range fragments {
			names[i] = f.Name
		}
	}

	loader, err := env.NewLoader(timeout)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := loader.Close(); cerr != nil {
			log.Warnf("closing browser: %v", cerr)
		}
	}()

	log.Debugf("verifying %s (timeout %v)", path, timeout)
	report, err := verify.Page(ctx, loader, path, names)
	if err != nil {
		return err
	}

	for _, m := range report.Mismatches {
		fmt.Fprintf(env.Stderr, "MISMATCH %s\n", m)
	}
	for _, m := range report.Stale {
		fmt.Fprintf(env.Stderr, "STALE %s\n", staleLine(m))
	}
	if !report.OK() {
		return fmt.Errorf("%w: %d decoding mismatches, %d stale entries",
			ErrVerifyFailed, len(report.Mismatches), len(report.Stale))
	}

	log.Infof("Verified %s: %d questions decode byte-for-byte.", path, report.Questions)
	return nil
}

// staleLine explains a difference between the project and the bundle.
func staleLine(m verify.Mismatch) string {
	switch m.Kind {
	case verify.Missing:
		return m.Name + ": in the project but not in the bundle (re-run bundle)"
	case verify.Unexpected:
		return m.Name + ": in the bundle but no longer in the project (re-run bundle)"
	default:
		return m.String()
	}
}

// resolveTimeout picks the page load bound: flag, then environment, then default.
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: --timeout: %v", ErrUsage, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: --timeout must be positive, got %s", ErrUsage, flagValue)
		}
		return d, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return verify.DefaultTimeout, nil
}
