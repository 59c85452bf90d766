package author

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Chapter lists the question ids of one chapter, in the registry's JSON shape.
type Chapter struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Questions []string `json:"questions"`
}

// BuildRegistry groups questions into chapters in first-seen order.
// A chapter takes the first non-empty title among its questions.
func BuildRegistry(questions []*Question) []Chapter {
	var chapters []Chapter
	index := make(map[string]int)

	for _, q := range questions {
		i, ok := index[q.Chapter]
		if !ok {
			i = len(chapters)
			index[q.Chapter] = i
			chapters = append(chapters, Chapter{ID: q.Chapter, Questions: []string{}})
		}
		if chapters[i].Title == "" {
			chapters[i].Title = q.ChapterTitle
		}
		chapters[i].Questions = append(chapters[i].Questions, q.ID)
	}
	return chapters
}

// RegistryJS renders the registry script: a chapters constant holding
// two-space indented JSON.
func RegistryJS(chapters []Chapter) (string, error) {
	if chapters == nil {
		chapters = []Chapter{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(chapters); err != nil {
		return "", fmt.Errorf("encoding registry: %w", err)
	}
	return "const chapters = " + strings.TrimSuffix(buf.String(), "\n") + ";\n", nil
}
