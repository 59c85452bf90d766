// Package quizbundle packages a static quiz site into one self-contained HTML page.
//
// # Quick Start
//
// Create a bundler for a project root, bundle, and write the page:
//
//	b, err := quizbundle.NewBundler(quizbundle.DefaultProject("site"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.BundleTo(ctx, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Wrote %s (%.1f KB) with %d embedded questions.\n",
//	    result.OutputPath, result.SizeKB(), len(result.Questions))
//
// # Bundle Pipeline
//
// A bundle runs these stages once, in order:
//
//  1. Fetch katex.min.css, katex.min.js and contrib/auto-render.min.js from the CDN
//  2. Inline every url(fonts/...) in the stylesheet as a base64 data URI
//  3. Collect digit-named .html fragments and inline KaTeX and question-frame tags
//  4. Base64-encode each fragment, keyed by file name
//  5. Replace the registry placeholder in the page template with the registry
//     script followed by a decoder script that fills window.__embeddedQuestions
//
// If any of the three CDN fetches fails, KaTeX is left out: fragments keep their
// CDN tags and Result.KaTeXErr reports why. A font that cannot be fetched once
// the stylesheet arrived aborts the bundle. So does a page template without the
// placeholder; no output is written in either case.
//
// # Project Layout
//
//	site/
//	├── index.html              page template containing the placeholder
//	├── registry.js             chapter registry, inlined verbatim
//	└── questions/
//	    ├── 1-1.html            question fragments (name starts with a digit)
//	    ├── 1-2.html
//	    ├── question-frame.css  inlined into every fragment
//	    └── question-frame.js
//
// # Custom Assets
//
// Override the built-in decoder and fragment templates using AssetLoader:
//
//	loader, err := quizbundle.NewAssetLoader("/path/to/assets")
//	b, err := quizbundle.NewBundler(project, quizbundle.WithAssetLoader(loader))
//
// Asset directory structure:
//
//	assets/
//	└── templates/
//	    ├── decoder.tmpl
//	    └── fragment.tmpl
package quizbundle
