// Package pdftext extracts plain text from uploaded PDF resumes.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// EmptyTextError reports a PDF that parsed but yielded no text, which
// usually means a scanned image rather than a text-based document.
type EmptyTextError struct{}

func (e *EmptyTextError) Error() string {
	return "no text could be extracted from the uploaded PDF; ensure it is a text-based PDF (not a scanned image)"
}

// Extract pulls the plain text out of an in-memory PDF payload.
func Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "", &EmptyTextError{}
	}
	return text, nil
}
