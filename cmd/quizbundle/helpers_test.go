package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	quizbundle "github.com/alnah/go-quizbundle"
)

const (
	testFrameCSS = `.q-container{margin:0 auto}`
	testFrameJS  = `function checkAnswer(){}`
	testRegistry = `const chapters = [{"id":"1","title":"Basics","questions":["1.1","1.2"]}];`
	testIndex    = "<!DOCTYPE html><html><head>\n<script src=\"registry.js\"></script>\n</head><body></body></html>"

	testKaTeXCSS   = `.katex{font:normal 1.21em KaTeX_Main}@font-face{src:url(fonts/KaTeX_Main-Regular.woff2)}`
	testKaTeXJS    = `var katex={};`
	testAutoRender = `function renderMathInElement(){}`
)

var errNoBrowserInTests = errors.New("no browser in unit tests")

// testFragment carries the five inlinable tags and the audit markers.
func testFragment(cdn, body string) string {
	return `<!DOCTYPE html><html><head>
<link rel="stylesheet" href="` + cdn + `katex.min.css">
<link rel="stylesheet" href="question-frame.css">
</head><body><div class="q-container">` + body + `
<p><strong>Practical Use Case:</strong> risk.</p></div>
<script defer src="` + cdn + `katex.min.js"></script>
<script defer src="` + cdn + `contrib/auto-render.min.js"></script>
<script src="question-frame.js"></script>
</body></html>`
}

// testEnv returns an Environment writing to buffers with the given process environment.
func testEnv(environ ...string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:     time.Now,
		Stdout:  &stdout,
		Stderr:  &stderr,
		Environ: func() []string { return environ },
		NewLoader: func(time.Duration) (pageLoader, error) {
			return nil, errNoBrowserInTests
		},
	}
	return env, &stdout, &stderr
}

// writeFile writes content under root, creating parent directories.
func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// newTestProject lays out a two-question site in a temp dir and returns its root.
func newTestProject(t *testing.T, cdn string) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "index.html", testIndex)
	writeFile(t, root, "registry.js", testRegistry)
	writeFile(t, root, "questions/question-frame.css", testFrameCSS)
	writeFile(t, root, "questions/question-frame.js", testFrameJS)
	writeFile(t, root, "questions/1-1.html", testFragment(cdn, "<p>What is $E[X]$?</p>"))
	writeFile(t, root, "questions/1-2.html", testFragment(cdn, "<p>Café ∑</p>"))
	return root
}

// newFakeCDN serves a KaTeX distribution and returns its base URL.
func newFakeCDN(t *testing.T) string {
	t.Helper()
	files := map[string]string{
		"/katex.min.css":                  testKaTeXCSS,
		"/katex.min.js":                   testKaTeXJS,
		"/contrib/auto-render.min.js":     testAutoRender,
		"/fonts/KaTeX_Main-Regular.woff2": "\x00woff2",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/"
}

// fakeLoader returns a fixed question map and records Close.
type fakeLoader struct {
	questions map[string]string
	err       error
	closed    bool
}

func (f *fakeLoader) EmbeddedQuestions(context.Context, string) (map[string]string, error) {
	return f.questions, f.err
}

func (f *fakeLoader) Close() error {
	f.closed = true
	return nil
}

// bundleResult builds a Result of the given page size.
func bundleResult(size int, path string, names ...string) *quizbundle.Result {
	return &quizbundle.Result{HTML: strings.Repeat("x", size), OutputPath: path, Questions: names}
}
