package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	root    string
	quiet   bool
	verbose bool
}

// bundleFlags holds flags for the bundle command.
type bundleFlags struct {
	common       commonFlags
	output       string
	katexVersion string
	cdnBase      string
	offline      bool
	assetPath    string
}

// authorFlags holds flags for the author command.
type authorFlags struct {
	common    commonFlags
	source    string
	issueURL  string
	assetPath string
	katexVer  string
}

// auditFlags holds flags for the audit command.
type auditFlags struct {
	common  commonFlags
	missing bool
}

// verifyFlags holds flags for the verify command.
type verifyFlags struct {
	common  commonFlags
	output  string
	timeout string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// initFlags holds flags for the init command.
type initFlags struct {
	output string
	force  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.root, "root", "r", "", "project root directory")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors and warnings")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

func addBundleFlags(fs *flag.FlagSet, f *bundleFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output file (default "+defaultOutputName+")")
	fs.StringVar(&f.katexVersion, "katex-version", "", "KaTeX release to inline")
	fs.StringVar(&f.cdnBase, "cdn-base", "", "KaTeX distribution URL (overrides --katex-version)")
	fs.BoolVar(&f.offline, "offline", false, "keep CDN references instead of inlining KaTeX")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with template overrides")
	addCommonFlags(fs, &f.common)
}

func addAuthorFlags(fs *flag.FlagSet, f *authorFlags) {
	fs.StringVarP(&f.source, "source", "s", "", "directory of Markdown question sources")
	fs.StringVar(&f.issueURL, "issue-url", "", "base URL of the 'report issue' link")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with template overrides")
	fs.StringVar(&f.katexVer, "katex-version", "", "KaTeX release referenced by fragments")
	addCommonFlags(fs, &f.common)
}

func addAuditFlags(fs *flag.FlagSet, f *auditFlags) {
	fs.BoolVar(&f.missing, "missing", false, "list only fragments without a practical use case")
	addCommonFlags(fs, &f.common)
}

func addVerifyFlags(fs *flag.FlagSet, f *verifyFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "bundle to verify (default: configured output)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")
	addCommonFlags(fs, &f.common)
}

func addDoctorFlags(fs *flag.FlagSet, f *doctorFlags) {
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	addCommonFlags(fs, &f.common)
}

func addInitFlags(fs *flag.FlagSet, f *initFlags) {
	fs.StringVarP(&f.output, "output", "o", defaultConfigFile, "config file to write")
	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing file")
}

// isHelp reports whether err is a -h/--help request.
func isHelp(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// parseFlagSet parses args with a fresh FlagSet built by add.
// Help requests print usage to w and return flag.ErrHelp.
func parseFlagSet(name string, args []string, w io.Writer, usage func(io.Writer), add func(*flag.FlagSet)) ([]string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	add(fs)
	fs.Usage = func() { usage(w) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(w)
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

func parseBundleFlags(args []string, w io.Writer) (*bundleFlags, error) {
	f := &bundleFlags{}
	rest, err := parseFlagSet(cmdBundle, args, w, printBundleUsage, func(fs *flag.FlagSet) { addBundleFlags(fs, f) })
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: bundle takes no arguments, got %q", ErrUsage, rest[0])
	}
	return f, nil
}

func parseAuthorFlags(args []string, w io.Writer) (*authorFlags, error) {
	f := &authorFlags{}
	rest, err := parseFlagSet(cmdAuthor, args, w, printAuthorUsage, func(fs *flag.FlagSet) { addAuthorFlags(fs, f) })
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: author takes no arguments, got %q", ErrUsage, rest[0])
	}
	return f, nil
}

func parseAuditFlags(args []string, w io.Writer) (*auditFlags, error) {
	f := &auditFlags{}
	rest, err := parseFlagSet(cmdAudit, args, w, printAuditUsage, func(fs *flag.FlagSet) { addAuditFlags(fs, f) })
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: audit takes no arguments, got %q", ErrUsage, rest[0])
	}
	return f, nil
}

func parseVerifyFlags(args []string, w io.Writer) (*verifyFlags, error) {
	f := &verifyFlags{}
	rest, err := parseFlagSet(cmdVerify, args, w, printVerifyUsage, func(fs *flag.FlagSet) { addVerifyFlags(fs, f) })
	if err != nil {
		return nil, err
	}
	switch len(rest) {
	case 0:
	case 1:
		if f.output != "" {
			return nil, fmt.Errorf("%w: give the bundle as an argument or with --output, not both", ErrUsage)
		}
		f.output = rest[0]
	default:
		return nil, fmt.Errorf("%w: verify takes at most one bundle", ErrUsage)
	}
	return f, nil
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, error) {
	f := &doctorFlags{}
	if _, err := parseFlagSet(cmdDoctor, args, w, printDoctorUsage, func(fs *flag.FlagSet) { addDoctorFlags(fs, f) }); err != nil {
		return nil, err
	}
	return f, nil
}

func parseInitFlags(args []string, w io.Writer) (*initFlags, error) {
	f := &initFlags{}
	rest, err := parseFlagSet(cmdInit, args, w, printInitUsage, func(fs *flag.FlagSet) { addInitFlags(fs, f) })
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: init takes no arguments, got %q", ErrUsage, rest[0])
	}
	return f, nil
}
