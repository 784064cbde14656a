package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// wtTag matches <w:t>text</w:t> including attribute-carrying forms like
// <w:t xml:space="preserve">. Pulling text nodes directly keeps the content
// regardless of paragraph or run attributes.
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// extractDOCX extracts text from .docx bytes. DOCX is a zip whose main body
// lives in word/document.xml; some producers number the part differently, so
// any word/*.xml part with text nodes is accepted as a fallback.
func extractDOCX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("extract docx: not a zip: %w", err)
	}

	docXML, err := readDocxBody(zr)
	if err != nil {
		return "", err
	}

	parts := wtTag.FindAllStringSubmatch(docXML, -1)
	var b strings.Builder
	for _, p := range parts {
		text := strings.TrimSpace(p[1])
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func readDocxBody(zr *zip.Reader) (string, error) {
	var fallback string
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, "word/") || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("extract docx: open %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("extract docx: read %s: %w", f.Name, err)
		}
		if f.Name == "word/document.xml" {
			return string(data), nil
		}
		if fallback == "" && wtTag.Match(data) {
			fallback = string(data)
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("extract docx: no document body found")
	}
	return fallback, nil
}
