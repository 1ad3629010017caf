// Package extract recovers the JSON object from a raw completion.
// Providers asked for bare JSON still wrap it in markdown fences or
// surround it with prose often enough that a strict parse alone loses
// usable responses.
package extract

import (
	"encoding/json"
	"strings"

	"tubelens/internal/core"
)

// Object extracts the completion's JSON object. It strips markdown code
// fences, tries a strict parse, and falls back to the substring between
// the first '{' and last '}'. A parse only counts when it yields an
// object with at least one key, so "null" and "{}" fail the same way as
// unparsable text. Extraction is deterministic: the same raw text
// always yields the same document or the same error.
func Object(raw string) (map[string]any, error) {
	cleaned := stripFences(raw)

	var doc map[string]any
	if err := json.Unmarshal([]byte(cleaned), &doc); err == nil && len(doc) > 0 {
		return doc, nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		doc = nil
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &doc); err == nil && len(doc) > 0 {
			return doc, nil
		}
	}

	return nil, &core.StageError{
		Kind:    core.ErrKindUnparsableCompletion,
		Message: "completion did not contain a non-empty JSON object",
		Raw:     cleaned,
	}
}

// stripFences removes a leading ```/```json fence line and a trailing
// ``` line, then trims surrounding whitespace. Text without fences
// passes through with only the trim.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx >= 0 {
			text = text[idx+1:]
		} else {
			text = strings.TrimPrefix(text, "```")
		}
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-3]
	}

	return strings.TrimSpace(text)
}
