// Package snippet extracts highlighted excerpts from document bodies.
package snippet

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// Window around the best term occurrence, in bytes of the source
	// text.
	before = 60
	after  = 120

	ellipsis = "…"
)

// folded pairs a lowercased copy of a string with a map from every
// byte offset in the copy back to the offset of the originating rune.
// Lowercasing can change rune widths ("Ⱥ" lowers to a wider rune), so
// match offsets found in the copy cannot slice the source directly.
type folded struct {
	lowered string
	offsets []int
}

func fold(s string) folded {
	var b strings.Builder
	b.Grow(len(s))
	offsets := make([]int, 0, len(s)+1)
	for i, r := range s {
		low := unicode.ToLower(r)
		for j := 0; j < utf8.RuneLen(low); j++ {
			offsets = append(offsets, i)
		}
		b.WriteRune(low)
	}
	offsets = append(offsets, len(s))
	return folded{lowered: b.String(), offsets: offsets}
}

// Excerpt returns a window of body around the best query-term
// occurrence, with ellipsis markers where the window was cut short by
// a body boundary. The best occurrence is that of the longest term
// found in the body (case-insensitive), preferring more specific
// matches over incidental short-word hits. If no term occurs, Excerpt
// returns "" rather than falling back to leading text.
func Excerpt(body string, terms []string) string {
	if body == "" {
		return ""
	}

	f := fold(body)
	bestLen, at := 0, -1
	for _, term := range terms {
		if term == "" {
			continue
		}
		i := strings.Index(f.lowered, strings.ToLower(term))
		if i >= 0 && len(term) > bestLen {
			bestLen = len(term)
			at = f.offsets[i]
		}
	}
	if at < 0 {
		return ""
	}

	start := at - before
	if start < 0 {
		start = 0
	}
	end := at + after
	if end > len(body) {
		end = len(body)
	}

	out := body[start:end]
	if start > 0 {
		out = ellipsis + out
	}
	if end < len(body) {
		out = out + ellipsis
	}
	return out
}

// Span is one run of excerpt text; Emphasized marks query-term
// matches.
type Span struct {
	Text       string
	Emphasized bool
}

// Highlight splits text into ordered spans, emphasizing every
// substring that case-insensitively equals one of the terms. The spans
// concatenate back to the input exactly. When matches start at the
// same position the longest term wins.
func Highlight(text string, terms []string) []Span {
	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		if term != "" {
			lowered = append(lowered, strings.ToLower(term))
		}
	}
	if text == "" {
		return nil
	}
	if len(lowered) == 0 {
		return []Span{{Text: text}}
	}

	f := fold(text)
	var spans []Span
	pos := 0 // byte offset into f.lowered
	for pos < len(f.lowered) {
		at, length := nextMatch(f.lowered[pos:], lowered)
		if at < 0 {
			spans = append(spans, Span{Text: text[f.offsets[pos]:]})
			break
		}
		start, end := f.offsets[pos+at], f.offsets[pos+at+length]
		if start > f.offsets[pos] {
			spans = append(spans, Span{Text: text[f.offsets[pos]:start]})
		}
		spans = append(spans, Span{Text: text[start:end], Emphasized: true})
		pos += at + length
	}
	return spans
}

// nextMatch finds the earliest occurrence of any term in s, returning
// its offset and length, or (-1, 0) when none occurs.
func nextMatch(s string, terms []string) (int, int) {
	at, length := -1, 0
	for _, term := range terms {
		i := strings.Index(s, term)
		if i < 0 {
			continue
		}
		if at < 0 || i < at || (i == at && len(term) > length) {
			at = i
			length = len(term)
		}
	}
	return at, length
}
