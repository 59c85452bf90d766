package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// DefaultPlaceholder is the tag in the page template that loads the registry.
const DefaultPlaceholder = `<script src="registry.js"></script>`

// Sentinel errors for page assembly.
var (
	ErrPlaceholderNotFound = errors.New("placeholder not found in page template")
	ErrDecoderRender       = errors.New("decoder script rendering failed")
	ErrQuestionMapNotFound = errors.New("embedded question map not found")
)

// TemplateError reports a page template that lacks the expected anchor.
type TemplateError struct {
	Anchor string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("unable to find %s in page template", e.Anchor)
}

// Is reports ErrPlaceholderNotFound as a match.
func (e *TemplateError) Is(target error) bool {
	return target == ErrPlaceholderNotFound
}

// decoderData is the template input for the decoder script.
type decoderData struct {
	Questions string // JSON object literal
}

// DecoderRenderer renders the script that restores fragments at page load.
type DecoderRenderer struct {
	tmpl *template.Template
}

// NewDecoderRenderer creates a DecoderRenderer from template content.
// The template receives {{.Questions}}, a JSON object literal, and must assign
// it to a variable named base64Map; ExtractQuestionMap finds it there.
func NewDecoderRenderer(tmplContent string) (*DecoderRenderer, error) {
	tmpl, err := template.New("decoder").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing decoder template: %w", err)
	}
	return &DecoderRenderer{tmpl: tmpl}, nil
}

// Render embeds questions as a literal value in the decoder script.
// encoding/json sorts map keys, so output is reproducible.
func (d *DecoderRenderer) Render(questions QuestionMap) (string, error) {
	if questions == nil {
		questions = QuestionMap{}
	}
	literal, err := json.Marshal(questions)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecoderRender, err)
	}

	var buf bytes.Buffer
	if err := d.tmpl.Execute(&buf, decoderData{Questions: string(literal)}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecoderRender, err)
	}

	out := buf.String()
	embedded, err := ExtractQuestionMap(out)
	if err != nil || len(embedded) != len(questions) {
		return "", fmt.Errorf("%w: template must assign {{.Questions}} to base64Map", ErrDecoderRender)
	}
	return out, nil
}

// PageAssembler injects the registry and decoder scripts into the page template.
type PageAssembler struct {
	placeholder string
	decoder     *DecoderRenderer
}

// NewPageAssembler creates a PageAssembler. An empty placeholder means DefaultPlaceholder.
func NewPageAssembler(placeholder string, decoder *DecoderRenderer) *PageAssembler {
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}
	return &PageAssembler{placeholder: placeholder, decoder: decoder}
}

// Placeholder returns the anchor tag the assembler replaces.
func (a *PageAssembler) Placeholder() string {
	return a.placeholder
}

// Assemble replaces the placeholder with the inlined registry script followed
// by the decoder script. Returns a *TemplateError if the placeholder does not
// occur verbatim in page.
func (a *PageAssembler) Assemble(page, registryJS string, questions QuestionMap) (string, error) {
	if !strings.Contains(page, a.placeholder) {
		return "", &TemplateError{Anchor: a.placeholder}
	}

	decoder, err := a.decoder.Render(questions)
	if err != nil {
		return "", err
	}

	replacement := "<script>\n" + registryJS + "\n</script>\n" +
		"<script>\n" + decoder + "</script>"

	return strings.ReplaceAll(page, a.placeholder, replacement), nil
}

// questionMapAssign finds the assignment to base64Map; the JSON value follows it.
var questionMapAssign = regexp.MustCompile(`\bbase64Map\s*=\s*`)

// ExtractQuestionMap recovers the QuestionMap embedded in an assembled page.
// The literal may span lines and use any declaration keyword.
func ExtractQuestionMap(page string) (QuestionMap, error) {
	loc := questionMapAssign.FindStringIndex(page)
	if loc == nil {
		return nil, ErrQuestionMapNotFound
	}

	var questions QuestionMap
	dec := json.NewDecoder(strings.NewReader(page[loc[1]:]))
	if err := dec.Decode(&questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionMapNotFound, err)
	}
	if questions == nil {
		return nil, ErrQuestionMapNotFound
	}
	return questions, nil
}
