package quizbundle

import (
	"path/filepath"
)

// Defaults for a project laid out like the reference quiz site.
const (
	DefaultKaTeXVersion = "0.16.11"
	DefaultOutput       = "stochastics-standalone.html"
	DefaultQuestionsDir = "questions"
	DefaultIndex        = "index.html"
	DefaultRegistry     = "registry.js"
	DefaultFrameCSS     = "question-frame.css"
	DefaultFrameJS      = "question-frame.js"
	DefaultPlaceholder  = `<script src="registry.js"></script>`
)

// KaTeXBase returns the jsDelivr distribution URL for a KaTeX version, with a trailing slash.
func KaTeXBase(version string) string {
	return "https://cdn.jsdelivr.net/npm/katex@" + version + "/dist/"
}

// Project locates the inputs of a bundle. Relative paths resolve against Root;
// FrameCSS and FrameJS resolve against the questions directory.
type Project struct {
	Root         string
	QuestionsDir string
	Index        string
	Registry     string
	FrameCSS     string
	FrameJS      string
}

// DefaultProject returns a Project rooted at root with the default layout.
func DefaultProject(root string) Project {
	return Project{
		Root:         root,
		QuestionsDir: DefaultQuestionsDir,
		Index:        DefaultIndex,
		Registry:     DefaultRegistry,
		FrameCSS:     DefaultFrameCSS,
		FrameJS:      DefaultFrameJS,
	}
}

// withDefaults fills empty fields from DefaultProject.
func (p Project) withDefaults() Project {
	d := DefaultProject(p.Root)
	if p.QuestionsDir == "" {
		p.QuestionsDir = d.QuestionsDir
	}
	if p.Index == "" {
		p.Index = d.Index
	}
	if p.Registry == "" {
		p.Registry = d.Registry
	}
	if p.FrameCSS == "" {
		p.FrameCSS = d.FrameCSS
	}
	if p.FrameJS == "" {
		p.FrameJS = d.FrameJS
	}
	return p
}

// QuestionsPath returns the directory holding the question fragments.
func (p Project) QuestionsPath() string { return joinUnlessAbs(p.Root, p.QuestionsDir) }

// IndexPath returns the page template path.
func (p Project) IndexPath() string { return joinUnlessAbs(p.Root, p.Index) }

// RegistryPath returns the registry script path.
func (p Project) RegistryPath() string { return joinUnlessAbs(p.Root, p.Registry) }

// FrameCSSPath returns the shared question-frame stylesheet path.
func (p Project) FrameCSSPath() string { return joinUnlessAbs(p.QuestionsPath(), p.FrameCSS) }

// FrameJSPath returns the shared question-frame script path.
func (p Project) FrameJSPath() string { return joinUnlessAbs(p.QuestionsPath(), p.FrameJS) }

// ResolveOutput returns where a bundle is written. Empty means DefaultOutput;
// relative paths resolve against the project root.
func (p Project) ResolveOutput(output string) string {
	if output == "" {
		output = DefaultOutput
	}
	return joinUnlessAbs(p.Root, output)
}

func joinUnlessAbs(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Fragment is one question after tag inlining.
type Fragment struct {
	Name string // file name, the key in window.__embeddedQuestions
	HTML string
}

// Result is the outcome of a bundle.
type Result struct {
	HTML         string
	Questions    []string   // fragment names, sorted
	Fragments    []Fragment // processed fragments, in Questions order
	KaTeXInlined bool       // false when fetching was skipped or failed
	KaTeXErr     error      // why KaTeX was not inlined; nil when offline or inlined
	OutputPath   string     // set by BundleTo
}

// Size returns the page size in bytes.
func (r *Result) Size() int {
	return len(r.HTML)
}

// SizeKB returns the page size in KiB.
func (r *Result) SizeKB() float64 {
	return float64(len(r.HTML)) / 1024
}
