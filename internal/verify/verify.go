// Package verify checks that a bundled page decodes every embedded question
// back to the exact fragment bytes it was built from.
package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/alnah/go-quizbundle/internal/pipeline"
)

// Sentinel errors for verification.
var (
	ErrReadPage       = errors.New("failed to read bundled page")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageLoad       = errors.New("failed to load bundled page")
	ErrEvaluate       = errors.New("failed to read embedded questions from page")
)

// Kind classifies a mismatch.
type Kind int

const (
	// Missing means the name is expected but absent from the decoded map.
	Missing Kind = iota
	// Unexpected means the decoded map holds a name nobody expected.
	Unexpected
	// Differs means both sides hold the name with different content.
	Differs
)

func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Unexpected:
		return "unexpected"
	case Differs:
		return "differs"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Mismatch is one disagreement between the expected and decoded question maps.
type Mismatch struct {
	Name   string
	Kind   Kind
	Offset int // first differing byte, Differs only
}

func (m Mismatch) String() string {
	if m.Kind == Differs {
		return fmt.Sprintf("%s: content differs at byte %d", m.Name, m.Offset)
	}
	return fmt.Sprintf("%s: %s", m.Name, m.Kind)
}

// Compare reports every difference between expected and actual, sorted by name.
func Compare(expected, actual map[string]string) []Mismatch {
	var out []Mismatch
	for name, want := range expected {
		got, ok := actual[name]
		switch {
		case !ok:
			out = append(out, Mismatch{Name: name, Kind: Missing})
		case got != want:
			out = append(out, Mismatch{Name: name, Kind: Differs, Offset: firstDiff(want, got)})
		}
	}
	for name := range actual {
		if _, ok := expected[name]; !ok {
			out = append(out, Mismatch{Name: name, Kind: Unexpected})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

func firstDiff(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// Expected decodes the payloads embedded in page into name -> fragment HTML.
func Expected(page string) (map[string]string, error) {
	questions, err := pipeline.ExtractQuestionMap(page)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(questions))
	for name, payload := range questions {
		html, err := pipeline.DecodeFragment(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = html
	}
	return out, nil
}

// Loader returns the question map a page exposes once its scripts have run.
type Loader interface {
	EmbeddedQuestions(ctx context.Context, path string) (map[string]string, error)
}

// Compile-time interface check.
var _ Loader = (*Browser)(nil)

// Report is the outcome of verifying one page.
type Report struct {
	Path       string
	Questions  int
	Mismatches []Mismatch // decoder output vs embedded payloads
	Stale      []Mismatch // embedded names vs fragments in the project
}

// OK reports whether the page passed every check.
func (r Report) OK() bool {
	return len(r.Mismatches) == 0 && len(r.Stale) == 0
}

// Page verifies the bundled page at path. When fragmentNames is non-nil the
// embedded names are also checked against it, catching a bundle that is older
// than the question directory.
func Page(ctx context.Context, l Loader, path string, fragmentNames []string) (Report, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the user-selected bundle
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrReadPage, err)
	}

	expected, err := Expected(string(data))
	if err != nil {
		return Report{}, fmt.Errorf("%w: %s: %w", ErrReadPage, path, err)
	}

	actual, err := l.EmbeddedQuestions(ctx, path)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Path:       path,
		Questions:  len(expected),
		Mismatches: Compare(expected, actual),
	}

	if fragmentNames != nil {
		r.Stale = Compare(namesOnly(fragmentNames), namesOnlyMap(expected))
	}
	return r, nil
}

func namesOnly(names []string) map[string]string {
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[n] = ""
	}
	return m
}

func namesOnlyMap(src map[string]string) map[string]string {
	m := make(map[string]string, len(src))
	for n := range src {
		m[n] = ""
	}
	return m
}
