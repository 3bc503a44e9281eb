package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextDocxParagraphs(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Senior Engineer</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	got, err := Text(context.Background(), data, "resume.docx")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !bytes.Contains([]byte(got), []byte("Jane Doe")) {
		t.Fatalf("expected name in extracted text, got %q", got)
	}
	if !bytes.Contains([]byte(got), []byte("Senior Engineer")) {
		t.Fatalf("expected title in extracted text, got %q", got)
	}
}

func TestTextPlainPassThrough(t *testing.T) {
	got, err := Text(context.Background(), []byte("plain resume body"), "resume.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "plain resume body" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextInvalidUTF8Dropped(t *testing.T) {
	got, err := Text(context.Background(), []byte{'o', 'k', 0xff, 0xfe, '!'}, "resume.txt")
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "ok!" {
		t.Fatalf("expected invalid bytes dropped, got %q", got)
	}
}

func TestTextUnsupportedExtension(t *testing.T) {
	_, err := Text(context.Background(), []byte("x"), "resume.xlsx")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSupportedExt(t *testing.T) {
	cases := map[string]bool{
		"cv.pdf":    true,
		"cv.DOCX":   true,
		"notes.txt": true,
		"cv.zip":    false,
		"cv":        false,
	}
	for name, want := range cases {
		if got := SupportedExt(name); got != want {
			t.Fatalf("SupportedExt(%q) = %v, want %v", name, got, want)
		}
	}
}
