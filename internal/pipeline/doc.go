// Package pipeline implements the stages that turn a quiz project into a
// single self-contained page.
//
// The stages run in a fixed order:
//   - Font inlining: url(fonts/...) references in the KaTeX stylesheet
//     become base64 data URIs
//   - Fragment collection: digit-named *.html files in the questions directory
//   - Fragment rewriting: KaTeX and question-frame <link>/<script> tags
//     become inline <style>/<script> blocks
//   - Encoding: each processed fragment becomes a base64 payload
//   - Assembly: the registry script and a generated decoder script replace
//     the placeholder tag of the page template
//
// Matching is textual (regular expressions), not a structural HTML or CSS
// parse. Fragments are hand-authored with a fixed set of tags, so a tag that
// does not match a pattern is left untouched.
//
// The package also converts Markdown question bodies to HTML for the author
// command (see md2html.go).
package pipeline
