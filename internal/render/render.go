package render

import (
	"bytes"
	"errors"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	fontFamily = "Arial"
	fontSize   = 11
	lineHeight = 5.5
)

// ErrEmptyContent is returned when there is nothing to render.
var ErrEmptyContent = errors.New("empty content")

// PDF renders plain text into a simple single-column PDF document,
// preserving line breaks. Used for downloading rewritten resume text.
func PDF(content string) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(18, 18, 18)
	doc.SetAutoPageBreak(true, 18)
	doc.AddPage()
	doc.SetFont(fontFamily, "", fontSize)

	// Core fonts are cp1252; translate what we can and drop the rest.
	translate := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range strings.Split(normalizeNewlines(content), "\n") {
		if strings.TrimSpace(line) == "" {
			doc.Ln(lineHeight)
			continue
		}
		doc.MultiCell(0, lineHeight, translate(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
