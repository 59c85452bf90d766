// Package audit checks question fragments for content the bundle relies on.
//
// It is a checklist, not a validator: every fragment yields a Report and
// nothing here makes a bundle fail.
package audit

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-quizbundle/internal/pipeline"
)

// PracticalUseCaseMarker is the bold label every question explanation should carry.
const PracticalUseCaseMarker = "Practical Use Case:"

// Inlinable tags, identified by the file they reference.
const (
	TagKaTeXCSS   = "katex.min.css"
	TagKaTeXJS    = "katex.min.js"
	TagAutoRender = "auto-render.min.js"
	TagFrameCSS   = "question-frame.css"
	TagFrameJS    = "question-frame.js"
)

// inlinable lists the tags in the order the bundler rewrites them.
var inlinable = []struct {
	file string
	atom atom.Atom
	attr string
}{
	{TagKaTeXCSS, atom.Link, "href"},
	{TagKaTeXJS, atom.Script, "src"},
	{TagAutoRender, atom.Script, "src"},
	{TagFrameCSS, atom.Link, "href"},
	{TagFrameJS, atom.Script, "src"},
}

// refAttrs maps elements to the attribute holding a resource reference.
var refAttrs = map[atom.Atom]string{
	atom.Img:    "src",
	atom.A:      "href",
	atom.Source: "src",
	atom.Iframe: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
	atom.Link:   "href",
	atom.Script: "src",
}

// Report describes one fragment.
type Report struct {
	Name             string
	PracticalUseCase bool
	Container        bool     // has a .q-container element
	Tags             []string // inlinable tags present, in rewrite order
	RelativeRefs     []string // references that will not resolve once bundled
}

// OK reports whether the fragment passes every check.
func (r Report) OK() bool {
	return r.PracticalUseCase && r.Container && len(r.RelativeRefs) == 0
}

// Problems lists failed checks as short sentences.
func (r Report) Problems() []string {
	var p []string
	if !r.PracticalUseCase {
		p = append(p, "missing <strong>"+PracticalUseCaseMarker+"</strong>")
	}
	if !r.Container {
		p = append(p, "no .q-container element")
	}
	for _, ref := range r.RelativeRefs {
		p = append(p, "relative reference "+ref+" will not resolve in the bundle")
	}
	return p
}

// Fragment audits one fragment.
func Fragment(name, content string) (Report, error) {
	doc, err := parseHTML(content)
	if err != nil {
		return Report{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	r := Report{Name: name}
	present := make(map[string]bool)

	walk(doc, func(n *html.Node) {
		switch {
		case n.DataAtom == atom.Strong && strings.TrimSpace(textContent(n)) == PracticalUseCaseMarker:
			r.PracticalUseCase = true
		case n.DataAtom == atom.Div && hasClass(n, "q-container"):
			r.Container = true
		}

		if tag, ok := inlinableTag(n); ok {
			present[tag] = true
			return
		}
		if key, ok := refAttrs[n.DataAtom]; ok {
			if ref, ok := attr(n, key); ok && isRelativeRef(ref) {
				r.RelativeRefs = append(r.RelativeRefs, n.Data+"["+key+"="+ref+"]")
			}
		}
	})

	for _, t := range inlinable {
		if present[t.file] {
			r.Tags = append(r.Tags, t.file)
		}
	}
	return r, nil
}

// inlinableTag reports which inlinable tag n is, if any.
func inlinableTag(n *html.Node) (string, bool) {
	for _, t := range inlinable {
		if n.DataAtom != t.atom {
			continue
		}
		if v, ok := attr(n, t.attr); ok && strings.Contains(v, t.file) {
			return t.file, true
		}
	}
	return "", false
}

// Dir audits every question fragment in dir, in file name order.
func Dir(dir string) ([]Report, error) {
	fragments, err := pipeline.CollectFragments(dir)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(fragments))
	for _, f := range fragments {
		r, err := Fragment(f.Name, f.Raw)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// MissingPracticalUseCase returns the names of fragments without the marker.
func MissingPracticalUseCase(reports []Report) []string {
	var names []string
	for _, r := range reports {
		if !r.PracticalUseCase {
			names = append(names, r.Name)
		}
	}
	return names
}
