// Package assets provides the templates used to build quiz pages.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in templates compiled into the binary:
//
//	decoder   - script that restores base64 fragments into window.__embeddedQuestions;
//	            an override must keep the base64Map = {{.Questions}} assignment
//	fragment  - HTML frame for questions authored in Markdown
//
// FilesystemLoader allows users to override templates from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver tries the custom FilesystemLoader first, falling back to
// EmbeddedLoader if the template is not found.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    ├── decoder.tmpl
//	    └── fragment.tmpl
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
