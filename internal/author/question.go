// Package author renders Markdown question sources into digit-named HTML
// fragments and the chapter registry script consumed by the quiz page.
package author

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-quizbundle/internal/pipeline"
	"github.com/alnah/go-quizbundle/internal/yamlutil"
)

// Sentinel errors for question sources.
var (
	ErrReadSource      = errors.New("failed to read question source")
	ErrFrontMatter     = errors.New("invalid question front matter")
	ErrInvalidQuestion = errors.New("invalid question")
	ErrDuplicateID     = errors.New("duplicate question id")
	ErrNoSources       = errors.New("no question sources found")
)

// Question types.
const (
	TypeMultipleChoice = "mc"
	TypeNumeric        = "numeric"
)

// DefaultTolerance applies to numeric questions that do not set one.
const DefaultTolerance = 0.01

// optionLetters labels multiple-choice options; it bounds the option count.
const optionLetters = "ABCDEF"

const sourceExt = ".md"

// Question is one authored quiz question. Front matter fills the tagged
// fields; the Markdown after the front matter is the question text.
type Question struct {
	ID           string   `yaml:"id"`
	Chapter      string   `yaml:"chapter"`
	ChapterTitle string   `yaml:"chapterTitle"`
	Type         string   `yaml:"type"`
	Answer       float64  `yaml:"answer"`
	Tolerance    *float64 `yaml:"tolerance"`
	Options      []string `yaml:"options"`
	Explanation  string   `yaml:"explanation"`

	Body   string `yaml:"-"`
	Source string `yaml:"-"`
}

// ParseQuestion parses one source document. source names it in errors.
func ParseQuestion(source string, data []byte) (*Question, error) {
	meta, body, err := yamlutil.SplitFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFrontMatter, source, err)
	}

	var q Question
	if err := yamlutil.UnmarshalStrict(meta, &q); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFrontMatter, source, err)
	}
	q.Body = strings.TrimSpace(string(body))
	q.Source = source

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// Validate checks the question can be rendered and collected as a fragment.
func (q *Question) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidQuestion, q.Source, fmt.Sprintf(format, args...))
	}

	if q.ID == "" {
		return invalid("id is required")
	}
	if strings.ContainsAny(q.ID, `/\`) || !pipeline.IsQuestionFile(q.FileName()) {
		return invalid("id %q must start with a digit and contain no path separators", q.ID)
	}
	if q.Chapter == "" {
		return invalid("chapter is required")
	}
	if q.Body == "" {
		return invalid("question text is empty")
	}

	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) < 2 || len(q.Options) > len(optionLetters) {
			return invalid("multiple choice needs 2 to %d options, got %d", len(optionLetters), len(q.Options))
		}
		idx := int(q.Answer)
		if float64(idx) != q.Answer || idx < 0 || idx >= len(q.Options) {
			return invalid("answer %v is not an option index", q.Answer)
		}
	case TypeNumeric:
		if len(q.Options) > 0 {
			return invalid("numeric questions take no options")
		}
		if q.Tolerance != nil && *q.Tolerance < 0 {
			return invalid("tolerance must not be negative")
		}
	default:
		return invalid("type %q must be %q or %q", q.Type, TypeMultipleChoice, TypeNumeric)
	}
	return nil
}

// FileName returns the fragment file name: the id with its first "." turned
// into "-", plus ".html".
func (q *Question) FileName() string {
	return strings.Replace(q.ID, ".", "-", 1) + ".html"
}

// ToleranceOrDefault returns the numeric tolerance.
func (q *Question) ToleranceOrDefault() float64 {
	if q.Tolerance == nil {
		return DefaultTolerance
	}
	return *q.Tolerance
}

// LoadQuestions parses every .md file in dir, ordered by question id.
func LoadQuestions(dir string) ([]*Question, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
	}

	var questions []*Question
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != sourceExt {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from ReadDir of dir
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadSource, err)
		}

		q, err := ParseQuestion(e.Name(), data)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[q.FileName()]; dup {
			return nil, fmt.Errorf("%w: %s in %s and %s", ErrDuplicateID, q.ID, prev, e.Name())
		}
		seen[q.FileName()] = e.Name()
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSources, dir)
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return compareIDs(questions[i].ID, questions[j].ID) < 0
	})
	return questions, nil
}

// compareIDs orders dotted ids numerically where both parts are numbers,
// so "1.2" sorts before "1.10".
func compareIDs(a, b string) int {
	pa, pb := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, errA := strconv.Atoi(pa[i])
		nb, errB := strconv.Atoi(pb[i])
		switch {
		case errA == nil && errB == nil:
			if na != nb {
				return na - nb
			}
		case pa[i] != pb[i]:
			return strings.Compare(pa[i], pb[i])
		}
	}
	return len(pa) - len(pb)
}
