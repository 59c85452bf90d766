package hints

// Notes:
// - ForBrowserConnect and ForFetch tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable
// These are acceptable gaps: we test observable behavior through environment manipulation.

import (
	"strings"
	"testing"
)

func clearCI(t *testing.T) {
	t.Helper()
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(v, "")
	}
}

func stubContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func TestForBrowserConnect_InCI(t *testing.T) {
	stubContainer(t, false)
	clearCI(t)
	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	hint := ForBrowserConnect()

	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint = %q, want hint prefix", hint)
	}
	if !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("expected ROD_NO_SANDBOX suggestion in CI")
	}
	if !strings.Contains(hint, "ROD_BROWSER_BIN") {
		t.Error("expected ROD_BROWSER_BIN suggestion")
	}
}

func TestForBrowserConnect_InDocker(t *testing.T) {
	stubContainer(t, true)
	clearCI(t)
	t.Setenv("ROD_NO_SANDBOX", "")
	t.Setenv("ROD_BROWSER_BIN", "")

	if hint := ForBrowserConnect(); !strings.Contains(hint, "ROD_NO_SANDBOX") {
		t.Error("expected ROD_NO_SANDBOX suggestion in Docker")
	}
}

func TestForBrowserConnect_AllConfigured(t *testing.T) {
	stubContainer(t, true)
	clearCI(t)
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

	if hint := ForBrowserConnect(); hint != "" {
		t.Errorf("hint = %q, want empty", hint)
	}
}

func TestIsInCI(t *testing.T) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Run(v, func(t *testing.T) {
			clearCI(t)
			if IsInCI() {
				t.Fatal("IsInCI() = true with no CI variables")
			}
			t.Setenv(v, "1")
			if !IsInCI() {
				t.Errorf("IsInCI() = false with %s set", v)
			}
		})
	}
}

func TestForFetch(t *testing.T) {
	t.Run("suggests proxy and offline", func(t *testing.T) {
		t.Setenv("HTTPS_PROXY", "")
		t.Setenv("https_proxy", "")

		hint := ForFetch()
		if !strings.Contains(hint, "HTTPS_PROXY") {
			t.Error("expected proxy suggestion")
		}
		if !strings.Contains(hint, "--offline") {
			t.Error("expected --offline suggestion")
		}
	})

	t.Run("proxy already configured", func(t *testing.T) {
		t.Setenv("HTTPS_PROXY", "http://proxy:3128")

		hint := ForFetch()
		if strings.Contains(hint, "HTTPS_PROXY") {
			t.Errorf("hint = %q, should not suggest proxy", hint)
		}
		if !strings.Contains(hint, "--offline") {
			t.Error("expected --offline suggestion")
		}
	})
}

func TestForPlaceholder(t *testing.T) {
	t.Parallel()

	const tag = `<script src="registry.js"></script>`
	hint := ForPlaceholder(tag)
	if !strings.Contains(hint, tag) {
		t.Errorf("hint = %q, want it to quote the placeholder", hint)
	}
	if ForPlaceholder("") != "" {
		t.Error("empty placeholder should produce no hint")
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		searched []string
		want     string
	}{
		{
			name:     "suggests user config path",
			searched: []string{"course.yaml", "/home/u/.config/quizbundle/course.yaml"},
			want:     "or create /home/u/.config/quizbundle/course.yaml",
		},
		{
			name:     "no user path",
			searched: []string{"course.yaml"},
			want:     "quizbundle init",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.searched)
			if !strings.Contains(hint, tt.want) {
				t.Errorf("hint = %q, want to contain %q", hint, tt.want)
			}
			if !strings.Contains(hint, "--config") {
				t.Error("expected --config suggestion")
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for name, hint := range map[string]string{
		"ForFontInline":      ForFontInline(),
		"ForOutputDirectory": ForOutputDirectory(),
		"ForProjectLayout":   ForProjectLayout(),
	} {
		if !strings.HasPrefix(hint, "\n  hint: ") {
			t.Errorf("%s() = %q, want \\n  hint: prefix", name, hint)
		}
		if strings.Count(hint, "\n") != 1 {
			t.Errorf("%s() should be a single line", name)
		}
	}

	if format("") != "" {
		t.Error("format(\"\") should be empty")
	}
	if formatHints(nil) != "" {
		t.Error("formatHints(nil) should be empty")
	}
}
