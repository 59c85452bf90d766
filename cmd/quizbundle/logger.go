package main

import (
	"fmt"
	"io"
)

// logger writes human-readable progress lines, gated by --quiet and --verbose.
// Errors are not logged here; runMain prints them once.
type logger struct {
	out     io.Writer
	err     io.Writer
	quiet   bool
	verbose bool
}

func newLogger(env *Environment, c commonFlags) *logger {
	return &logger{out: env.Stdout, err: env.Stderr, quiet: c.quiet, verbose: c.verbose && !c.quiet}
}

// Infof prints a result line unless quiet.
func (l *logger) Infof(format string, args ...any) {
	if l.quiet {
		return
	}
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Debugf prints a detail line in verbose mode only.
func (l *logger) Debugf(format string, args ...any) {
	if !l.verbose {
		return
	}
	fmt.Fprintf(l.err, format+"\n", args...)
}

// Warnf prints a warning to stderr. Warnings survive --quiet.
func (l *logger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.err, "warning: "+format+"\n", args...)
}
