package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-quizbundle/internal/hints"
	"github.com/alnah/go-quizbundle/internal/process"
)

// DefaultTimeout bounds page load when the context carries no deadline.
const DefaultTimeout = 30 * time.Second

// embeddedQuestionsJS serializes the map the decoder script fills in.
const embeddedQuestionsJS = `() => JSON.stringify(window.__embeddedQuestions || null)`

// Browser loads pages in headless Chrome through go-rod.
// Rod downloads Chromium on first use when no browser is found.
type Browser struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
	getenv   func(string) string
}

// NewBrowser returns a Browser that connects lazily on first use.
func NewBrowser(timeout time.Duration) *Browser {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Browser{timeout: timeout, getenv: os.Getenv}
}

// noSandbox reports whether Chrome must run without its sandbox, which
// fails to start as root in most CI runners and containers.
func noSandbox(getenv func(string) string) bool {
	if getenv("ROD_NO_SANDBOX") == "1" || getenv("ROD_BROWSER_BIN") != "" {
		return true
	}
	return hints.IsInCI() || hints.IsInContainer()
}

func (b *Browser) ensureBrowser() error {
	if b.browser != nil {
		return nil
	}

	l := launcher.New().Headless(true)
	if bin := b.getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if noSandbox(b.getenv) {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	b.launcher = l

	b.browser = rod.New().ControlURL(u)
	if err := b.browser.Connect(); err != nil {
		b.browser = nil
		b.kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// EmbeddedQuestions opens path and returns window.__embeddedQuestions.
func (b *Browser) EmbeddedQuestions(ctx context.Context, path string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := b.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := b.browser.Page(proto.TargetCreateTarget{URL: fileURL(abs)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	defer page.Close()

	timeout := b.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	res, err := page.Eval(embeddedQuestionsJS)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluate, err)
	}

	return parseEmbedded(res.Value.Str())
}

// parseEmbedded decodes the JSON the page produced. "null" means the decoder
// script never ran.
func parseEmbedded(raw string) (map[string]string, error) {
	var m map[string]string
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluate, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: window.__embeddedQuestions is not set", ErrEvaluate)
	}
	return m, nil
}

func fileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if len(p) > 0 && p[0] != '/' {
		// Windows drive path.
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// Close shuts the browser down and kills its process group.
func (b *Browser) Close() error {
	var err error
	if b.browser != nil {
		err = b.browser.Close()
		b.browser = nil
	}
	b.kill()
	return err
}

func (b *Browser) kill() {
	if b.launcher == nil {
		return
	}
	process.KillProcessGroup(b.launcher.PID())
	b.launcher.Kill()
	b.launcher.Cleanup()
	b.launcher = nil
}
