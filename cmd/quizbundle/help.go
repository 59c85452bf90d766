package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  bundle      Build the standalone quiz page (default)")
	fmt.Fprintln(w, "  author      Render Markdown question sources into fragments")
	fmt.Fprintln(w, "  audit       Check fragments for a practical use case and stray references")
	fmt.Fprintln(w, "  verify      Load the bundle in headless Chrome and check every question")
	fmt.Fprintln(w, "  doctor      Check the project layout and environment")
	fmt.Fprintln(w, "  init        Write a default quizbundle.yaml")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'quizbundle help <command>' for details on a specific command.")
}

func printCommonFlags(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -r, --root <dir>          Project root directory")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors and warnings")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
}

// printBundleUsage prints usage for the bundle command.
func printBundleUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle [bundle] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inline KaTeX, fonts and question-frame assets into every question fragment,")
	fmt.Fprintln(w, "embed the fragments as base64 and write one self-contained HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default "+defaultOutputName+")")
	fmt.Fprintln(w, "      --katex-version <v>   KaTeX release to inline")
	fmt.Fprintln(w, "      --cdn-base <url>      KaTeX distribution URL")
	fmt.Fprintln(w, "      --offline             Keep CDN references instead of inlining KaTeX")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with template overrides")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  QUIZBUNDLE_CONFIG, QUIZBUNDLE_ROOT, QUIZBUNDLE_OUTPUT, QUIZBUNDLE_KATEX_VERSION,")
	fmt.Fprintln(w, "  QUIZBUNDLE_CDN_BASE, QUIZBUNDLE_OFFLINE, QUIZBUNDLE_ASSET_PATH")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printAuthorUsage prints usage for the author command.
func printAuthorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle author [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render Markdown question sources (YAML front matter + body) into question")
	fmt.Fprintln(w, "fragments and write the chapter registry.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --source <dir>        Markdown sources (default questions/src)")
	fmt.Fprintln(w, "      --issue-url <url>     Base URL of the 'report issue' link")
	fmt.Fprintln(w, "      --katex-version <v>   KaTeX release referenced by fragments")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with template overrides")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printAuditUsage prints usage for the audit command.
func printAuditUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle audit [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report fragments without a <strong>Practical Use Case:</strong> label, without a")
	fmt.Fprintln(w, ".q-container element, or with relative references that break once bundled.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --missing             List only fragments without a practical use case")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printVerifyUsage prints usage for the verify command.
func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle verify [bundle] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open the bundle in headless Chrome and compare window.__embeddedQuestions with")
	fmt.Fprintln(w, "the embedded payloads and the project's fragment names.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Bundle to verify (default: configured output)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (default 30s)")
	fmt.Fprintln(w)
	printCommonFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox")
	fmt.Fprintln(w, "  QUIZBUNDLE_VERIFY_TIMEOUT Page load timeout")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the project layout, Chrome availability and CI/container detection.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w)
	printCommonFlags(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the default configuration. Refuses to overwrite an existing file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       File to write (default "+defaultConfigFile+")")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case cmdBundle:
		printBundleUsage(env.Stdout)
	case cmdAuthor:
		printAuthorUsage(env.Stdout)
	case cmdAudit:
		printAuditUsage(env.Stdout)
	case cmdVerify:
		printVerifyUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdInit:
		printInitUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: quizbundle version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: quizbundle help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
