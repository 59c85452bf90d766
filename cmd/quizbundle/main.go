package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBundle     = "bundle"
	cmdAuthor     = "author"
	cmdAudit      = "audit"
	cmdVerify     = "verify"
	cmdDoctor     = "doctor"
	cmdInit       = "init"
	cmdVersion    = "version"
	cmdHelp       = "help"
	cmdCompletion = "completion"
)

func main() {
	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS, in which
	// case the runtime default applies.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// hasVerboseFlag scans raw arguments before any flag set is built.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// runMain dispatches to a command and returns the process exit code.
// Without a command name, or when the first argument is a flag, bundle runs.
func runMain(args []string, env *Environment) int {
	cmd, rest := splitCommand(args)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case cmdBundle:
		err = runBundle(ctx, rest, env)
	case cmdAuthor:
		err = runAuthor(ctx, rest, env)
	case cmdAudit:
		err = runAudit(rest, env)
	case cmdVerify:
		err = runVerify(ctx, rest, env)
	case cmdDoctor:
		return runDoctorCmd(rest, env)
	case cmdInit:
		err = runInit(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "quizbundle %s\n", Version)
		return ExitSuccess
	case cmdHelp:
		return runHelp(rest, env)
	case cmdCompletion:
		err = runCompletion(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// splitCommand separates the command name from its arguments.
func splitCommand(args []string) (string, []string) {
	if len(args) < 2 {
		return cmdBundle, nil
	}
	first := args[1]
	switch {
	case first == "-h" || first == "--help":
		return cmdHelp, nil
	case strings.HasPrefix(first, "-"):
		return cmdBundle, args[1:]
	default:
		return first, args[2:]
	}
}
