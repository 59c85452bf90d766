//go:build integration

package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-quizbundle/internal/assets"
	"github.com/alnah/go-quizbundle/internal/pipeline"
)

func TestBrowser_DecodesEmbeddedQuestions(t *testing.T) {
	loader := assets.NewEmbeddedLoader()
	tmpl, err := loader.LoadTemplate(assets.DecoderTemplate)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	d, err := pipeline.NewDecoderRenderer(tmpl)
	if err != nil {
		t.Fatalf("NewDecoderRenderer: %v", err)
	}

	fragments := []pipeline.Fragment{
		{Name: "1-ascii.html", HTML: "<p>plain</p>"},
		{Name: "2-unicode.html", HTML: "<p>é ∑ 𝔼[X] — “quotes”</p>"},
		{Name: "3-empty.html", HTML: ""},
	}
	page, err := pipeline.NewPageAssembler("", d).Assemble(
		"<!DOCTYPE html><html><body><script src=\"registry.js\"></script></body></html>",
		"const chapters = [];",
		pipeline.EncodeFragments(fragments),
	)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bundle.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBrowser(time.Minute)
	t.Cleanup(func() { _ = b.Close() })

	r, err := Page(context.Background(), b, path, []string{"1-ascii.html", "2-unicode.html", "3-empty.html"})
	if err != nil {
		t.Fatalf("Page() unexpected error: %v", err)
	}
	if !r.OK() {
		t.Errorf("Page() mismatches = %v, stale = %v", r.Mismatches, r.Stale)
	}
	if r.Questions != 3 {
		t.Errorf("Questions = %d, want 3", r.Questions)
	}
}
