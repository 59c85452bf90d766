// Package yamlutil wraps YAML parsing so config files and question front
// matter share one decoder and one set of input limits.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData          = errors.New("yamlutil: nil or empty data")
	ErrNilDestination   = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge    = errors.New("yamlutil: input exceeds maximum size")
	ErrNoFrontMatter    = errors.New("yamlutil: document has no front matter")
	ErrUnterminatedMeta = errors.New("yamlutil: front matter is not terminated")
)

var frontMatterFence = []byte("---")

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// SplitFrontMatter separates a leading "---" fenced YAML block from the body.
// The returned meta excludes the fences; body starts after the closing fence line.
func SplitFrontMatter(doc []byte) (meta, body []byte, err error) {
	doc = bytes.TrimPrefix(doc, []byte("\ufeff"))
	first, rest, _ := cutLine(doc)
	if !bytes.Equal(bytes.TrimSpace(first), frontMatterFence) {
		return nil, doc, ErrNoFrontMatter
	}

	var metaBuf bytes.Buffer
	for {
		line, next, more := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), frontMatterFence) {
			return metaBuf.Bytes(), next, nil
		}
		if !more {
			return nil, doc, ErrUnterminatedMeta
		}
		metaBuf.Write(line)
		metaBuf.WriteByte('\n')
		rest = next
	}
}

// cutLine returns the first line of b without its line terminator.
func cutLine(b []byte) (line, rest []byte, found bool) {
	line, rest, found = bytes.Cut(b, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r")), rest, found
}
