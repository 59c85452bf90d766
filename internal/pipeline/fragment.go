package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors for fragment operations.
var (
	ErrReadFragment     = errors.New("failed to read question fragment")
	ErrFragmentEncoding = errors.New("question fragment is not valid UTF-8")
	ErrDecodeFragment   = errors.New("failed to decode question payload")
)

// fragmentExt is the only extension considered when collecting fragments.
const fragmentExt = ".html"

// Fragment is one quiz question's HTML content.
type Fragment struct {
	Name string // file name, e.g. "1-intro.html"
	Raw  string // content as read from disk
	HTML string // content after asset inlining (equals Raw until rewritten)
}

// QuestionMap maps a fragment file name to its base64 payload.
type QuestionMap map[string]string

// Names returns the keys in sorted order.
func (m QuestionMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsQuestionFile reports whether name is a question fragment: an .html file
// whose name starts with a digit. Other files in the directory (shared
// partials, frame assets) are not questions.
func IsQuestionFile(name string) bool {
	if !strings.HasSuffix(name, fragmentExt) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsDigit(first)
}

// CollectFragments reads every question fragment in dir, sorted by file name.
func CollectFragments(dir string) ([]Fragment, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadFragment, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsQuestionFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	fragments := make([]Fragment, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name)) // #nosec G304 -- name comes from ReadDir of dir
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadFragment, name, err)
		}
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("%w: %s", ErrFragmentEncoding, name)
		}
		fragments = append(fragments, Fragment{Name: name, Raw: string(data), HTML: string(data)})
	}

	return fragments, nil
}

// RewriteFragments applies r to every fragment in place.
func RewriteFragments(fragments []Fragment, r *FragmentRewriter) {
	for i := range fragments {
		fragments[i].HTML = r.Rewrite(fragments[i].Raw)
	}
}

// EncodeFragment returns the standard padded base64 of the fragment's UTF-8 bytes.
func EncodeFragment(html string) string {
	return base64.StdEncoding.EncodeToString([]byte(html))
}

// DecodeFragment reverses EncodeFragment.
func DecodeFragment(payload string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFragment, err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: payload is not UTF-8", ErrDecodeFragment)
	}
	return string(data), nil
}

// EncodeFragments builds the QuestionMap from processed fragments.
// File names are unique within a directory, so no key is written twice.
func EncodeFragments(fragments []Fragment) QuestionMap {
	m := make(QuestionMap, len(fragments))
	for _, f := range fragments {
		m[f.Name] = EncodeFragment(f.HTML)
	}
	return m
}
