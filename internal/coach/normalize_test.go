package coach

import (
	"errors"
	"testing"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"plain fences", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"language tag with dash", "```json-5\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  \n", `{"a":1}`},
		{"crlf", "```json\r\n{\"a\":1}\r\n```", `{"a":1}`},
		{"inner fences untouched", "text with ``` inside", "text with ``` inside"},
		{"only opening fence", "```json\n{\"a\":1}", "```json\n{\"a\":1}"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StripFences(tc.in)
			if got != tc.want {
				t.Errorf("StripFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeFencedAndBare(t *testing.T) {
	bare := `{"subject": "Hello", "email_body": "Body", "tips": ["be brief"]}`
	fenced := "```json\n" + bare + "\n```"

	for _, raw := range []string{bare, fenced} {
		doc, err := Normalize(raw, TaskEmail)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", raw, err)
		}
		if doc["subject"] != "Hello" {
			t.Errorf("subject = %v, want Hello", doc["subject"])
		}
	}
}

func TestNormalizeParseFailure(t *testing.T) {
	_, err := Normalize("this is not json at all", TaskEmail)

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
	if malformed.Raw != "this is not json at all" {
		t.Errorf("Raw = %q, want original reply", malformed.Raw)
	}
}

func TestNormalizeShapeFailure(t *testing.T) {
	_, err := Normalize(`{"subject": "Hello"}`, TaskEmail)

	var malformed *MalformedError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedError, got %v", err)
	}
}

func TestNormalizeUnknownTask(t *testing.T) {
	_, err := Normalize(`{}`, Task("nope"))
	if !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}
}
