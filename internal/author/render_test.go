package author

import (
	"context"
	"strings"
	"testing"

	"github.com/alnah/go-quizbundle/internal/assets"
	"github.com/alnah/go-quizbundle/internal/pipeline"
)

const testKaTeXBase = "https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/"

func newTestRenderer(t *testing.T, issueURL string) *Renderer {
	t.Helper()
	tmpl, err := assets.LoadTemplate(assets.FragmentTemplate)
	if err != nil {
		t.Fatal(err)
	}
	r, err := NewRenderer(tmpl, testKaTeXBase, issueURL)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func mustParse(t *testing.T, src string) *Question {
	t.Helper()
	q, err := ParseQuestion("q.md", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return q
}

// ---------------------------------------------------------------------------
// TestRenderer_Render - Fragment HTML
// ---------------------------------------------------------------------------

func TestRenderer_Render_MultipleChoice(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, "")
	got, err := r.Render(context.Background(), mustParse(t, mcSource))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	for _, want := range []string{
		`<div class="q-container" data-id="1.2" data-type="mc" data-answer="1">`,
		`What is $\operatorname{Var}(W_t)$?`,
		`<span class="q-letter">A</span><span>$0$</span>`,
		`<span class="q-letter">C</span><span>$t^2$</span>`,
		`<mark>linearly</mark>`,
		`href="` + testKaTeXBase + `katex.min.css"`,
		`src="` + testKaTeXBase + `katex.min.js"`,
		`href="question-frame.css"`,
		`src="question-frame.js"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("fragment missing %q", want)
		}
	}
	if strings.Contains(got, "q-numeric") {
		t.Error("multiple choice fragment should have no numeric input")
	}
	if strings.Contains(got, "q-issue-btn") {
		t.Error("issue link rendered without an issue URL")
	}
}

func TestRenderer_Render_Numeric(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, "")
	got, err := r.Render(context.Background(), mustParse(t, numericSource))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(got, `data-answer="0.5" data-tolerance="0.01"`) {
		t.Error("numeric attributes missing")
	}
	if !strings.Contains(got, `class="q-input"`) {
		t.Error("numeric input missing")
	}
	if strings.Contains(got, "q-option") {
		t.Error("numeric fragment should have no options")
	}
}

func TestRenderer_Render_RewritableByBundler(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, "")
	got, err := r.Render(context.Background(), mustParse(t, mcSource))
	if err != nil {
		t.Fatal(err)
	}

	rw := pipeline.NewFragmentRewriter(pipeline.KaTeXAssets{CSS: "K1", JS: "K2", AutoRender: "K3"}, "F1", "F2")
	out := rw.Rewrite(got)
	for _, want := range []string{"<style>K1</style>", "<script>K2</script>", "<script>K3</script>", "<style>F1</style>", "<script>F2</script>"} {
		if !strings.Contains(out, want) {
			t.Errorf("rewritten fragment missing %q", want)
		}
	}
	if strings.Contains(out, testKaTeXBase) {
		t.Error("CDN reference survived rewriting")
	}
}

func TestRenderer_Render_EscapesRawHTML(t *testing.T) {
	t.Parallel()

	src := strings.Replace(numericSource, "Compute $E[W_1^2]/2$.", "Compute <script>alert(1)</script> $a<b$.", 1)
	r := newTestRenderer(t, "")
	got, err := r.Render(context.Background(), mustParse(t, src))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script>alert(1)</script>") {
		t.Error("raw HTML from the source was not escaped")
	}
	if !strings.Contains(got, "$a&lt;b$") {
		t.Error("TeX span should be kept, HTML-escaped")
	}
}

func TestRenderer_IssueLink(t *testing.T) {
	t.Parallel()

	r := newTestRenderer(t, "https://github.com/owner/repo/issues/new")
	q := mustParse(t, numericSource)

	link := r.issueLink(q)
	if !strings.HasPrefix(link, "https://github.com/owner/repo/issues/new?title=Question%202.1%3A%20Compute") {
		t.Errorf("issueLink() = %q", link)
	}

	q.Body = strings.Repeat("é", 300)
	long := r.issueLink(q)
	title := strings.TrimPrefix(long, "https://github.com/owner/repo/issues/new?title=")
	if n := strings.Count(title, "%C3%A9"); n > issueTitleLimit {
		t.Errorf("title has %d characters, want at most %d", n, issueTitleLimit)
	}

	withQuery := &Renderer{issueURL: "https://tracker.example/new?project=quiz"}
	if !strings.Contains(withQuery.issueLink(q), "?project=quiz&title=") {
		t.Errorf("issueLink() = %q, want title appended with &", withQuery.issueLink(q))
	}

	got, err := r.Render(context.Background(), mustParse(t, numericSource))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `class="q-issue-btn"`) {
		t.Error("issue button missing")
	}
}

func TestRenderer_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestRenderer(t, "").Render(ctx, mustParse(t, mcSource)); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestNewRenderer_BadTemplate(t *testing.T) {
	t.Parallel()

	if _, err := NewRenderer("{{.ID", testKaTeXBase, ""); err == nil {
		t.Error("expected parse error")
	}
}

func TestUnwrapParagraph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"<p>$t$</p>", "$t$"},
		{"<p>a</p>\n<p>b</p>", "<p>a</p>\n<p>b</p>"},
		{"<ul><li>x</li></ul>", "<ul><li>x</li></ul>"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := unwrapParagraph(tt.in); got != tt.want {
			t.Errorf("unwrapParagraph(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
