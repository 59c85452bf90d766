package author

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-quizbundle/internal/fileutil"
)

// Result summarizes a Build.
type Result struct {
	Fragments []string // written fragment paths, in question order
	Registry  string   // written registry path
	Chapters  int
}

// Build renders every question into outDir and writes the registry to registryPath.
// Fragments are written as they render; a failure stops the build and the
// registry is not written.
func Build(ctx context.Context, questions []*Question, r *Renderer, outDir, registryPath string) (*Result, error) {
	result := &Result{}

	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := r.Render(ctx, q)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(outDir, q.FileName())
		if err := fileutil.WriteOutput(path, html); err != nil {
			return nil, fmt.Errorf("writing %s: %w", q.FileName(), err)
		}
		result.Fragments = append(result.Fragments, path)
	}

	chapters := BuildRegistry(questions)
	registry, err := RegistryJS(chapters)
	if err != nil {
		return nil, err
	}
	if err := fileutil.WriteOutput(registryPath, registry); err != nil {
		return nil, fmt.Errorf("writing registry: %w", err)
	}

	result.Registry = registryPath
	result.Chapters = len(chapters)
	return result, nil
}
