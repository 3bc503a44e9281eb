package coach

import "fmt"

// Kind is the coarse value kind a shape field must hold. Validation is
// deliberately best-effort: it checks presence and gross structure, not the
// full schema, because model output varies too much for exhaustive typing.
type Kind int

const (
	KindString Kind = iota
	KindScore       // number in [0,100]
	KindStringList
	KindObjectList
	KindList // list of anything
)

// Field is one expected key in a task's result document.
type Field struct {
	Key      string
	Kind     Kind
	Optional bool
}

// Shape is the expected structural contract for one task kind.
type Shape struct {
	Fields []Field
}

var shapes = map[Task]Shape{
	TaskReview: {Fields: []Field{
		{Key: "score", Kind: KindScore},
		{Key: "strengths", Kind: KindStringList},
		{Key: "weaknesses", Kind: KindStringList},
		{Key: "missing_keywords", Kind: KindStringList},
		{Key: "recommendations", Kind: KindStringList},
	}},
	TaskATS: {Fields: []Field{
		{Key: "ats_score", Kind: KindScore},
		{Key: "format_issues", Kind: KindStringList},
		{Key: "improvements", Kind: KindStringList},
	}},
	TaskJobMatch: {Fields: []Field{
		{Key: "match_score", Kind: KindScore},
		{Key: "gap_analysis", Kind: KindString},
		{Key: "matched_skills", Kind: KindStringList},
		{Key: "missing_requirements", Kind: KindStringList},
		{Key: "recommendations", Kind: KindStringList},
	}},
	TaskRewrite: {Fields: []Field{
		{Key: "improved_cv", Kind: KindString},
		{Key: "changes_made", Kind: KindStringList},
	}},
	TaskEmail: {Fields: []Field{
		{Key: "subject", Kind: KindString},
		{Key: "email_body", Kind: KindString},
		{Key: "tips", Kind: KindStringList},
	}},
	// All three categories are optional; Start fails later only when the
	// flattened question list is empty.
	TaskQuestions: {Fields: []Field{
		{Key: "General", Kind: KindStringList, Optional: true},
		{Key: "Technical", Kind: KindStringList, Optional: true},
		{Key: "Behavioral", Kind: KindStringList, Optional: true},
	}},
	TaskAnswerTemplate: {Fields: []Field{
		{Key: "question", Kind: KindString},
		{Key: "answers", Kind: KindStringList},
	}},
	TaskCareerPaths: {Fields: []Field{
		{Key: "career_paths", Kind: KindObjectList},
	}},
	TaskProjects: {Fields: []Field{
		{Key: "projects", Kind: KindObjectList},
	}},
	TaskMiniCourse: {Fields: []Field{
		{Key: "title", Kind: KindString},
		{Key: "description", Kind: KindString},
		{Key: "objectives", Kind: KindList},
		{Key: "modules", Kind: KindList},
	}},
	TaskInterviewReview: {Fields: []Field{
		{Key: "strengths", Kind: KindStringList},
		{Key: "weaknesses", Kind: KindStringList},
		{Key: "tips", Kind: KindStringList},
	}},
}

// ShapeFor returns the expected shape for a task kind.
func ShapeFor(task Task) (Shape, error) {
	shape, ok := shapes[task]
	if !ok {
		return Shape{}, fmt.Errorf("%w: %s", ErrUnknownTask, task)
	}
	return shape, nil
}

// Validate checks a parsed document against the shape.
func (s Shape) Validate(doc map[string]any) error {
	for _, field := range s.Fields {
		val, ok := doc[field.Key]
		if !ok {
			if field.Optional {
				continue
			}
			return fmt.Errorf("missing key %q", field.Key)
		}
		if err := checkKind(field.Key, field.Kind, val); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(key string, kind Kind, val any) error {
	switch kind {
	case KindString:
		if _, ok := val.(string); !ok {
			return fmt.Errorf("key %q: expected string", key)
		}
	case KindScore:
		num, ok := val.(float64)
		if !ok {
			return fmt.Errorf("key %q: expected number", key)
		}
		if num < 0 || num > 100 {
			return fmt.Errorf("key %q: score %v out of range", key, num)
		}
	case KindStringList:
		items, ok := val.([]any)
		if !ok {
			return fmt.Errorf("key %q: expected list", key)
		}
		for _, item := range items {
			if _, ok := item.(string); !ok {
				return fmt.Errorf("key %q: expected list of strings", key)
			}
		}
	case KindObjectList:
		items, ok := val.([]any)
		if !ok {
			return fmt.Errorf("key %q: expected list", key)
		}
		for _, item := range items {
			if _, ok := item.(map[string]any); !ok {
				return fmt.Errorf("key %q: expected list of objects", key)
			}
		}
	case KindList:
		if _, ok := val.([]any); !ok {
			return fmt.Errorf("key %q: expected list", key)
		}
	}
	return nil
}
