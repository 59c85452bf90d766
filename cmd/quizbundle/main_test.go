package main

// Notes:
// - runMain is exercised end to end with --offline or a local httptest CDN;
//   verify runs against a fakeLoader, never a real browser.
// - The process environment is injected through Environment.Environ, so
//   tests stay parallel.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSplitCommand - Default command and dispatch
// ---------------------------------------------------------------------------

func TestSplitCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCmd  string
		wantRest []string
	}{
		{"no args bundles", []string{"quizbundle"}, cmdBundle, nil},
		{"flag first bundles", []string{"quizbundle", "-o", "x.html"}, cmdBundle, []string{"-o", "x.html"}},
		{"explicit command", []string{"quizbundle", "audit", "--missing"}, cmdAudit, []string{"--missing"}},
		{"short help", []string{"quizbundle", "-h"}, cmdHelp, nil},
		{"long help", []string{"quizbundle", "--help"}, cmdHelp, nil},
		{"unknown kept", []string{"quizbundle", "nope"}, "nope", []string{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, rest := splitCommand(tt.args)
			if cmd != tt.wantCmd {
				t.Errorf("cmd = %q, want %q", cmd, tt.wantCmd)
			}
			if strings.Join(rest, " ") != strings.Join(tt.wantRest, " ") {
				t.Errorf("rest = %v, want %v", rest, tt.wantRest)
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"-v"}, true},
		{[]string{"bundle", "--verbose"}, true},
		{[]string{"--", "-v"}, false},
		{[]string{"-q"}, false},
	}
	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "version",
			args:         []string{"quizbundle", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"quizbundle " + Version},
		},
		{
			name:         "help",
			args:         []string{"quizbundle", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: quizbundle", "bundle", "verify"},
		},
		{
			name:         "help for command",
			args:         []string{"quizbundle", "help", "audit"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"--missing"},
		},
		{
			name:         "help for unknown command",
			args:         []string{"quizbundle", "help", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: nope"},
		},
		{
			name:         "command help flag",
			args:         []string{"quizbundle", "bundle", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"--offline"},
		},
		{
			name:         "unknown command",
			args:         []string{"quizbundle", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "unknown flag",
			args:         []string{"quizbundle", "--bogus"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name:     "unsupported shell",
			args:     []string{"quizbundle", "completion", "tcsh"},
			wantCode: ExitUsage,
		},
		{
			name:         "explicit config not found",
			args:         []string{"quizbundle", "--config", "/nonexistent/quizbundle.yaml"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "hint:"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Bundle - Bundle command end to end
// ---------------------------------------------------------------------------

func TestRunMain_Bundle(t *testing.T) {
	t.Parallel()

	t.Run("offline bundle keeps CDN references", func(t *testing.T) {
		t.Parallel()

		root := newTestProject(t, "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/")
		env, stdout, stderr := testEnv()

		code := runMain([]string{"quizbundle", "--root", root, "--offline"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr.String())
		}

		out := filepath.Join(root, defaultOutputName)
		if !strings.HasPrefix(stdout.String(), "Wrote "+out+" (") ||
			!strings.HasSuffix(stdout.String(), " KB) with 2 embedded questions.\n") {
			t.Errorf("stdout = %q, want bundle summary line", stdout.String())
		}
		if strings.Contains(stderr.String(), "warning") {
			t.Errorf("offline bundle should not warn, stderr = %q", stderr.String())
		}

		page, err := os.ReadFile(out)
		if err != nil {
			t.Fatalf("reading bundle: %v", err)
		}
		if strings.Contains(string(page), `<script src="registry.js"></script>`) {
			t.Error("placeholder should be replaced")
		}
		if !strings.Contains(string(page), "window.__embeddedQuestions") {
			t.Error("bundle should contain the decoder script")
		}
	})

	t.Run("inlines from CDN set by environment", func(t *testing.T) {
		t.Parallel()

		cdn := newFakeCDN(t)
		root := newTestProject(t, cdn)
		out := filepath.Join(t.TempDir(), "nested", "site.html")
		env, stdout, stderr := testEnv("QUIZBUNDLE_CDN_BASE="+cdn, "QUIZBUNDLE_OUTPUT="+out)

		code := runMain([]string{"quizbundle", "bundle", "-r", root, "-v"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr.String())
		}
		if !strings.Contains(stdout.String(), "Wrote "+out) {
			t.Errorf("stdout = %q, want output path %s", stdout.String(), out)
		}
		if !strings.Contains(stderr.String(), "bundled 2 in") {
			t.Errorf("verbose stderr should report the bundle, got %q", stderr.String())
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("bundle not written: %v", err)
		}
	})

	t.Run("unreachable CDN warns and still writes", func(t *testing.T) {
		t.Parallel()

		root := newTestProject(t, "https://cdn.example/")
		env, stdout, stderr := testEnv()

		code := runMain([]string{"quizbundle", "-r", root, "--cdn-base", "http://127.0.0.1:1/", "-q"}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr.String())
		}
		if stdout.Len() != 0 {
			t.Errorf("quiet mode should print nothing, got %q", stdout.String())
		}
		if !strings.Contains(stderr.String(), "warning: KaTeX not inlined") {
			t.Errorf("stderr = %q, want KaTeX warning", stderr.String())
		}
	})

	t.Run("missing placeholder is a template error", func(t *testing.T) {
		t.Parallel()

		root := newTestProject(t, "https://cdn.example/")
		writeFile(t, root, "index.html", "<html><body></body></html>")
		env, _, stderr := testEnv()

		code := runMain([]string{"quizbundle", "-r", root, "--offline"}, env)
		if code != ExitTemplate {
			t.Errorf("exit code = %d, want %d", code, ExitTemplate)
		}
		if !strings.Contains(stderr.String(), `hint: the page template must contain exactly <script src="registry.js"></script>`) {
			t.Errorf("stderr = %q, want placeholder hint", stderr.String())
		}
	})

	t.Run("missing project is an I/O error", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv()
		code := runMain([]string{"quizbundle", "-r", filepath.Join(t.TempDir(), "none"), "--offline"}, env)
		if code != ExitIO {
			t.Errorf("exit code = %d, want %d\nstderr: %s", code, ExitIO, stderr.String())
		}
	})

	t.Run("config file in root is discovered", func(t *testing.T) {
		t.Parallel()

		root := newTestProject(t, "https://cdn.example/")
		writeFile(t, root, "quizbundle.yaml", "katex:\n  offline: true\noutput:\n  path: from-config.html\n")
		env, stdout, stderr := testEnv()

		code := runMain([]string{"quizbundle", "-r", root}, env)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, want 0\nstderr: %s", code, stderr.String())
		}
		if !strings.Contains(stdout.String(), filepath.Join(root, "from-config.html")) {
			t.Errorf("stdout = %q, want config output path", stdout.String())
		}
	})

	t.Run("invalid katex version is a usage error", func(t *testing.T) {
		t.Parallel()

		root := newTestProject(t, "https://cdn.example/")
		env, _, _ := testEnv()

		code := runMain([]string{"quizbundle", "-r", root, "--katex-version", "latest"}, env)
		if code != ExitUsage {
			t.Errorf("exit code = %d, want %d", code, ExitUsage)
		}
	})
}

func TestBundleSummary(t *testing.T) {
	t.Parallel()

	r := bundleResult(2048+102, "out/site.html", "1.html", "2.html", "3.html")
	want := "Wrote out/site.html (2.1 KB) with 3 embedded questions."
	if got := bundleSummary(r); got != want {
		t.Errorf("bundleSummary() = %q, want %q", got, want)
	}
}
