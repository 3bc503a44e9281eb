package coach

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Model replies routinely arrive wrapped in a fenced code block with an
// optional language tag. One leading and one trailing fence are stripped;
// anything else is left untouched.
var fencedRE = regexp.MustCompile("(?s)\\A```[a-zA-Z0-9_-]*[ \\t]*\\r?\\n(.*?)\\r?\\n?```\\s*\\z")

// StripFences removes a single fenced-code wrapper from a raw model reply,
// tolerating its absence.
func StripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if m := fencedRE.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	return trimmed
}

// Normalize turns a raw model reply into a validated structured document for
// the given task. On failure it returns a MalformedError carrying the raw
// reply for diagnostics.
func Normalize(raw string, task Task) (map[string]any, error) {
	shape, err := ShapeFor(task)
	if err != nil {
		return nil, err
	}

	cleaned := StripFences(raw)

	var doc map[string]any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, &MalformedError{Raw: raw, Err: fmt.Errorf("parse: %w", err)}
	}

	if err := shape.Validate(doc); err != nil {
		return nil, &MalformedError{Raw: raw, Err: err}
	}
	return doc, nil
}
