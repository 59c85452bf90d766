package main

import (
	"fmt"
	"strings"

	"github.com/alnah/go-quizbundle/internal/audit"
)

// runAudit prints a checklist for every question fragment. It reports; it
// never fails on fragment content.
func runAudit(args []string, env *Environment) error {
	flags, err := parseAuditFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	log := newLogger(env, flags.common)

	cfg, _, err := loadConfig(flags.common, env, log)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := projectFrom(cfg).QuestionsPath()
	reports, err := audit.Dir(dir)
	if err != nil {
		return err
	}

	if flags.missing {
		for _, name := range audit.MissingPracticalUseCase(reports) {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	printAudit(env, reports, flags.common.verbose)
	return nil
}

// printAudit writes one line per fragment and a summary.
func printAudit(env *Environment, reports []audit.Report, verbose bool) {
	var failing int
	for _, r := range reports {
		if r.OK() {
			if verbose {
				fmt.Fprintf(env.Stdout, "[OK]   %s (%s)\n", r.Name, tagSummary(r.Tags))
			}
			continue
		}
		failing++
		fmt.Fprintf(env.Stdout, "[WARN] %s: %s\n", r.Name, strings.Join(r.Problems(), "; "))
	}

	missing := len(audit.MissingPracticalUseCase(reports))
	fmt.Fprintf(env.Stdout, "\n%d fragments, %d with findings, %d without a practical use case\n",
		len(reports), failing, missing)
}

func tagSummary(tags []string) string {
	if len(tags) == 0 {
		return "no inlinable tags"
	}
	return strings.Join(tags, ", ")
}
