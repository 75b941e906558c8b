// Package extractor converts PDF byte buffers into normalized plain text.
package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractionError reports a document whose bytes could not be parsed
// as a text-bearing PDF. It is recoverable at the per-document level.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor pulls plain text out of PDF documents. Scanned image-only
// PDFs yield empty text; there is no OCR fallback.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses data as a PDF and returns its text content with all
// whitespace runs collapsed to single spaces.
func (e *Extractor) Extract(data []byte) (text string, err error) {
	// The pdf package panics on some malformed inputs instead of
	// returning an error.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return Normalize(string(raw)), nil
}

// Normalize collapses consecutive whitespace (including newlines) to
// single spaces and trims leading/trailing whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
