package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagValue flagType = iota // takes a free-form value
	flagBool
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	FileGlob string // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config":     {FileGlob: "*.yaml,*.yml"},
	"output":     {FileGlob: "*.html,*.yaml,*.yml"},
	"root":       {IsDir: true},
	"source":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// flagsOf registers a command's flags on a throwaway FlagSet.
func flagsOf(name string, add func(*flag.FlagSet)) []flagDef {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	add(fs)
	return extractFlagsFromFlagSet(fs)
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}
		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	names := []string{cmdBundle, cmdAuthor, cmdAudit, cmdVerify, cmdDoctor, cmdInit, cmdCompletion, cmdVersion, cmdHelp}

	return []commandDef{
		{Name: cmdBundle, Desc: "Build the standalone quiz page", Flags: flagsOf(cmdBundle, func(fs *flag.FlagSet) { addBundleFlags(fs, &bundleFlags{}) })},
		{Name: cmdAuthor, Desc: "Render Markdown question sources", Flags: flagsOf(cmdAuthor, func(fs *flag.FlagSet) { addAuthorFlags(fs, &authorFlags{}) })},
		{Name: cmdAudit, Desc: "Check question fragments", Flags: flagsOf(cmdAudit, func(fs *flag.FlagSet) { addAuditFlags(fs, &auditFlags{}) })},
		{Name: cmdVerify, Desc: "Check the bundle in headless Chrome", Flags: flagsOf(cmdVerify, func(fs *flag.FlagSet) { addVerifyFlags(fs, &verifyFlags{}) })},
		{Name: cmdDoctor, Desc: "Check project and environment", Flags: flagsOf(cmdDoctor, func(fs *flag.FlagSet) { addDoctorFlags(fs, &doctorFlags{}) })},
		{Name: cmdInit, Desc: "Write a default config file", Flags: flagsOf(cmdInit, func(fs *flag.FlagSet) { addInitFlags(fs, &initFlags{}) })},
		{Name: cmdCompletion, Desc: "Generate shell completion script", Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command", Args: names},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// flagWords returns every spelling of the flags, for compgen -W.
func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// valueFlagCases groups value-taking flags of all commands by completion kind.
func valueFlagCases(cmds []commandDef) (dirs, files map[string]string) {
	dirs = map[string]string{}
	files = map[string]string{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			spell := "--" + f.Long
			if f.Short != "" {
				spell += "|-" + f.Short
			}
			switch f.Type {
			case flagDir:
				dirs[spell] = ""
			case flagFile:
				files[spell] = f.FileGlob
			}
		}
	}
	return dirs, files
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// bashGlob turns "*.yaml,*.yml" into the extglob "!*.@(yaml|yml)".
func bashGlob(glob string) string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(g, "*."))
	}
	return "!*.@(" + strings.Join(exts, "|") + ")"
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	dirs, files := valueFlagCases(cmds)

	var b strings.Builder
	b.WriteString("# bash completion for quizbundle\n")
	b.WriteString("_quizbundle() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    local commands=%q\n\n", strings.Join(names, " "))
	b.WriteString("    if [[ $COMP_CWORD -eq 1 && $cur != -* ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"$commands\" -- \"$cur\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$prev\" in\n")
	for _, spell := range sortedKeys(dirs) {
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -d -- \"$cur\") )\n            return ;;\n", spell)
	}
	for _, spell := range sortedKeys(files) {
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -f -X '%s' -- \"$cur\") )\n            return ;;\n", spell, bashGlob(files[spell]))
	}
	b.WriteString("    esac\n\n")
	b.WriteString("    cmd=bundle\n")
	b.WriteString("    if [[ ${COMP_WORDS[1]} != -* ]]; then\n")
	b.WriteString("        cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		words := flagWords(c.Flags)
		if len(c.Args) > 0 {
			words = strings.TrimSpace(words + " " + strings.Join(c.Args, " "))
		}
		fmt.Fprintf(&b, "        %s)\n            COMPREPLY=( $(compgen -W %q -- \"$cur\") ) ;;\n", c.Name, words)
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -o filenames -F _quizbundle quizbundle\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateZsh reuses the bash function through zsh's bashcompinit.
func generateZsh(w io.Writer) error {
	if _, err := io.WriteString(w, "#compdef quizbundle\n\nautoload -U +X bashcompinit && bashcompinit\n\n"); err != nil {
		return err
	}
	return generateBash(w)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var names []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}

	var b strings.Builder
	b.WriteString("# fish completion for quizbundle\n")
	b.WriteString("complete -c quizbundle -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c quizbundle -n '__fish_use_subcommand' -a %s -d %s\n", c.Name, fishQuote(c.Desc))
	}

	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		if c.Name == cmdBundle {
			cond = "not __fish_seen_subcommand_from " + strings.Join(names[1:], " ")
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c quizbundle -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagBool:
			case flagDir:
				b.WriteString(" -r -a '(__fish_complete_directories)'")
			case flagFile:
				b.WriteString(" -r -F")
			default:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d %s\n", fishQuote(f.Desc))
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "complete -c quizbundle -n '%s' -a %s\n", cond, fishQuote(strings.Join(c.Args, " ")))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fishQuote single-quotes s for fish.
func fishQuote(s string) string {
	return "'" + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), "'", `\'`) + "'"
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: quizbundle completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(quizbundle completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(quizbundle completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    quizbundle completion fish > ~/.config/fish/completions/quizbundle.fish")
}
