package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	quizbundle "github.com/alnah/go-quizbundle"
	"github.com/alnah/go-quizbundle/internal/fileutil"
	"github.com/alnah/go-quizbundle/internal/pipeline"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"` // "ready", "warnings", "errors"
	Project  projectInfo `json:"project"`
	Chrome   chromeInfo  `json:"chrome"`
	Env      envInfo     `json:"environment"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// projectInfo holds the bundle input checks.
type projectInfo struct {
	Root           string `json:"root"`
	QuestionsDir   bool   `json:"questions_dir"`
	Questions      int    `json:"questions"`
	FrameCSS       bool   `json:"frame_css"`
	FrameJS        bool   `json:"frame_js"`
	Index          bool   `json:"index"`
	HasPlaceholder bool   `json:"placeholder"`
	Registry       bool   `json:"registry"`
}

// chromeInfo holds Chrome/Chromium detection results. Only verify needs it.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stdout)
	if err != nil {
		if isHelp(err) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	result := &doctorResult{Status: "ready"}

	cfg, _, err := loadConfig(flags.common, env, newLogger(env, flags.common))
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		checkProject(result, projectFrom(cfg), cfg.Project.Placeholder)
	}

	checkChrome(result, os.Getenv, launcher.LookPath)
	checkEnvironment(result, os.Getenv)
	finalizeStatus(result)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// finalizeStatus derives Status from the collected findings.
func finalizeStatus(r *doctorResult) {
	switch {
	case len(r.Errors) > 0:
		r.Status = "errors"
	case len(r.Warnings) > 0:
		r.Status = "warnings"
	default:
		r.Status = "ready"
	}
}

// checkProject verifies every input bundle reads.
func checkProject(result *doctorResult, p quizbundle.Project, placeholder string) {
	if placeholder == "" {
		placeholder = quizbundle.DefaultPlaceholder
	}
	info := &result.Project
	info.Root = p.Root

	info.QuestionsDir = fileutil.DirExists(p.QuestionsPath())
	if !info.QuestionsDir {
		result.Errors = append(result.Errors, "questions directory not found: "+p.QuestionsPath())
	} else if fragments, err := pipeline.CollectFragments(p.QuestionsPath()); err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		info.Questions = len(fragments)
		if info.Questions == 0 {
			result.Warnings = append(result.Warnings,
				"no question fragments (digit-named .html files) in "+p.QuestionsPath())
		}
	}

	info.FrameCSS = fileutil.FileExists(p.FrameCSSPath())
	if !info.FrameCSS {
		result.Errors = append(result.Errors, "question frame stylesheet not found: "+p.FrameCSSPath())
	}
	info.FrameJS = fileutil.FileExists(p.FrameJSPath())
	if !info.FrameJS {
		result.Errors = append(result.Errors, "question frame script not found: "+p.FrameJSPath())
	}

	info.Registry = fileutil.FileExists(p.RegistryPath())
	if !info.Registry {
		result.Errors = append(result.Errors, "registry not found: "+p.RegistryPath()+" (run 'quizbundle author')")
	}

	page, err := os.ReadFile(p.IndexPath()) // #nosec G304 -- path comes from the project layout
	if err != nil {
		result.Errors = append(result.Errors, "page template not found: "+p.IndexPath())
		return
	}
	info.Index = true
	info.HasPlaceholder = strings.Contains(string(page), placeholder)
	if !info.HasPlaceholder {
		result.Errors = append(result.Errors,
			fmt.Sprintf("page template %s does not contain %s", p.IndexPath(), placeholder))
	}
}

// checkChrome detects Chrome/Chromium installation. A missing browser only
// affects verify, so it is a warning.
func checkChrome(result *doctorResult, getenv func(string) string, lookPath func() (string, bool)) {
	result.Env.BrowserBin = getenv("ROD_BROWSER_BIN")
	result.Env.NoSandbox = getenv("ROD_NO_SANDBOX")

	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = lookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; verify will download Chromium on first run, or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	out, err := exec.Command(chromePath, "--version").Output() // #nosec G204 -- browser path from rod or ROD_BROWSER_BIN
	if err == nil {
		result.Chrome.Version = strings.TrimSpace(string(out))
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.OS = runtime.GOOS
	result.Env.Arch = runtime.GOARCH
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" && result.Env.BrowserBin == "" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected; verify disables the Chrome sandbox automatically, set ROD_NO_SANDBOX=1 to make it explicit")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if getenv("QUIZBUNDLE_CONTAINER") == "1" {
		return true, "QUIZBUNDLE_CONTAINER=1"
	}
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "quizbundle doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Project")
	if r.Project.Root != "" {
		fmt.Fprintf(w, "  Root: %s\n", r.Project.Root)
		printCheck(w, r.Project.QuestionsDir, fmt.Sprintf("Questions: %d fragments", r.Project.Questions), "Questions directory missing")
		printCheck(w, r.Project.FrameCSS, "Frame stylesheet", "Frame stylesheet missing")
		printCheck(w, r.Project.FrameJS, "Frame script", "Frame script missing")
		printCheck(w, r.Project.Registry, "Registry", "Registry missing")
		printCheck(w, r.Project.Index && r.Project.HasPlaceholder, "Page template with placeholder", "Page template missing or without placeholder")
	} else {
		fmt.Fprintln(w, "  [ERROR] Configuration could not be loaded")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (verify only)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to bundle")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printCheck(w io.Writer, ok bool, okText, errText string) {
	if ok {
		fmt.Fprintf(w, "  [OK] %s\n", okText)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s\n", errText)
	}
}
