package models

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// DocType is the closed set of document categories published by the
// commission.
type DocType string

const (
	TypeAgenda     DocType = "Agenda"
	TypeMinutes    DocType = "Minutes"
	TypeResolution DocType = "Resolution"
)

// Valid reports whether t is one of the known document types.
func (t DocType) Valid() bool {
	switch t {
	case TypeAgenda, TypeMinutes, TypeResolution:
		return true
	}
	return false
}

// ParseType maps user input to its canonical DocType, ignoring letter
// case. The second return is false for values outside the closed set.
func ParseType(s string) (DocType, bool) {
	for _, t := range []DocType{TypeAgenda, TypeMinutes, TypeResolution} {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Document is one harvested commission record, built from a single
// source PDF.
type Document struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	Year          int       `json:"year"`
	Type          DocType   `json:"type"`
	Meeting       string    `json:"meeting,omitempty"`
	SourceURL     string    `json:"source_url"`
	AttachmentURL string    `json:"attachment_url,omitempty"`
	Body          string    `json:"body,omitempty"`
}

// New builds a Document with the derived fields filled in: the ID is
// generated from the source URL, the date is normalized to a UTC
// calendar day, and Year is computed from the date. Year is never
// accepted as independent input.
func New(sourceURL, title string, date time.Time, typ DocType) Document {
	day := Day(date)
	return Document{
		ID:        GenerateDocumentID(sourceURL),
		Title:     title,
		Date:      day,
		Year:      day.Year(),
		Type:      typ,
		SourceURL: sourceURL,
	}
}

// Day truncates t to a UTC calendar day.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateDocumentID creates a deterministic ID from a URL.
// The ID is a SHA-256 hash (first 16 chars) of the URL.
func GenerateDocumentID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}

// TitleFromURL derives a human-readable title from the last path
// segment of a URL, with dash and underscore separators replaced by
// spaces.
func TitleFromURL(rawURL string) string {
	segment := ""
	if u, err := url.Parse(rawURL); err == nil {
		parts := strings.Split(strings.TrimSuffix(u.Path, "/"), "/")
		segment = parts[len(parts)-1]
	}
	if segment == "" {
		return "Commission Document"
	}
	return strings.NewReplacer("-", " ", "_", " ").Replace(segment)
}
