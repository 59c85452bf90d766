package author

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/alnah/go-quizbundle/internal/pipeline"
)

// ErrRender indicates a question could not be rendered.
var ErrRender = errors.New("question rendering failed")

// issueTitleLimit bounds the prefilled issue title, in characters.
const issueTitleLimit = 120

// fragmentData is the template input for one question.
type fragmentData struct {
	KaTeXBase   string
	ID          string
	Type        string
	Answer      string
	Numeric     bool
	Tolerance   string
	Question    template.HTML
	Options     []template.HTML
	Letters     []string
	Explanation template.HTML
	IssueURL    string
}

// Renderer turns a Question into a standalone fragment page.
type Renderer struct {
	tmpl         *template.Template
	preprocessor pipeline.MarkdownPreprocessor
	converter    pipeline.HTMLConverter
	katexBase    string
	issueURL     string
}

// NewRenderer parses the fragment template. katexBase is the CDN directory the
// fragment links KaTeX from; issueURL, if set, gets a prefilled title appended.
func NewRenderer(tmplContent, katexBase, issueURL string) (*Renderer, error) {
	tmpl, err := template.New("fragment").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment template: %w", err)
	}
	return &Renderer{
		tmpl:         tmpl,
		preprocessor: &pipeline.SourcePreprocessor{},
		converter:    pipeline.NewGoldmarkConverter(),
		katexBase:    katexBase,
		issueURL:     issueURL,
	}, nil
}

// Render produces the fragment HTML for q.
func (r *Renderer) Render(ctx context.Context, q *Question) (string, error) {
	question, err := r.markdown(ctx, q.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, q.Source, err)
	}
	explanation, err := r.markdown(ctx, q.Explanation)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, q.Source, err)
	}

	data := fragmentData{
		KaTeXBase:   r.katexBase,
		ID:          q.ID,
		Type:        q.Type,
		Answer:      formatNumber(q.Answer),
		Numeric:     q.Type == TypeNumeric,
		Tolerance:   formatNumber(q.ToleranceOrDefault()),
		Question:    template.HTML(question),    // #nosec G203 -- Goldmark output, raw HTML escaped
		Explanation: template.HTML(explanation), // #nosec G203 -- Goldmark output, raw HTML escaped
		IssueURL:    r.issueLink(q),
	}
	for i, opt := range q.Options {
		optHTML, err := r.markdown(ctx, opt)
		if err != nil {
			return "", fmt.Errorf("%w: %s: option %d: %v", ErrRender, q.Source, i, err)
		}
		data.Options = append(data.Options, template.HTML(unwrapParagraph(optHTML))) // #nosec G203 -- Goldmark output
		data.Letters = append(data.Letters, optionLetters[i:i+1])
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, q.Source, err)
	}
	return buf.String(), nil
}

// markdown converts a source snippet, finishing ==highlight== marks.
func (r *Renderer) markdown(ctx context.Context, src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	html, err := r.converter.ToHTML(ctx, r.preprocessor.PreprocessMarkdown(ctx, src))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(pipeline.ConvertMarkPlaceholders(html)), nil
}

// issueLink prefills the issue title with the question id and text.
func (r *Renderer) issueLink(q *Question) string {
	if r.issueURL == "" {
		return ""
	}
	title := []rune("Question " + q.ID + ": " + strings.Join(strings.Fields(q.Body), " "))
	if len(title) > issueTitleLimit {
		title = title[:issueTitleLimit]
	}
	escaped := strings.ReplaceAll(url.QueryEscape(string(title)), "+", "%20")

	sep := "?"
	if strings.Contains(r.issueURL, "?") {
		sep = "&"
	}
	return r.issueURL + sep + "title=" + escaped
}

// unwrapParagraph strips the <p> Goldmark puts around a one-paragraph snippet.
func unwrapParagraph(html string) string {
	inner, ok := strings.CutPrefix(html, "<p>")
	if !ok {
		return html
	}
	inner, ok = strings.CutSuffix(inner, "</p>")
	if !ok || strings.Contains(inner, "<p>") {
		return html
	}
	return inner
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
