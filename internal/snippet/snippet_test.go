package snippet

import (
	"reflect"
	"strings"
	"testing"
)

func TestExcerpt_FindsTerm(t *testing.T) {
	body := "solid waste budget discussion"
	got := Excerpt(body, []string{"budget"})
	if got != body {
		t.Errorf("Excerpt = %q, want the whole short body %q", got, body)
	}
}

func TestExcerpt_NoTermNoExcerpt(t *testing.T) {
	if got := Excerpt("solid waste budget discussion", []string{"zoning"}); got != "" {
		t.Errorf("Excerpt = %q, want empty when no term occurs", got)
	}
	if got := Excerpt("", []string{"budget"}); got != "" {
		t.Errorf("Excerpt on empty body = %q, want empty", got)
	}
	if got := Excerpt("some body", nil); got != "" {
		t.Errorf("Excerpt with no terms = %q, want empty", got)
	}
}

func TestExcerpt_PrefersLongestTerm(t *testing.T) {
	body := "tax season opens. The zoning commission met to discuss variances."
	got := Excerpt(body, []string{"tax", "commission"})

	if !strings.Contains(got, "commission") {
		t.Errorf("Excerpt = %q, should center on the longer term", got)
	}
}

func TestExcerpt_WindowAndEllipses(t *testing.T) {
	pad := strings.Repeat("a ", 100) // 200 bytes
	body := pad + "budget" + pad
	got := Excerpt(body, []string{"budget"})

	if !strings.HasPrefix(got, "…") || !strings.HasSuffix(got, "…") {
		t.Errorf("Excerpt = %q, want ellipses on both truncated ends", got)
	}
	if !strings.Contains(got, "budget") {
		t.Errorf("Excerpt = %q, should contain the matched term", got)
	}
	// 60 before + len("budget") + rest of the 120-byte window + 2 ellipses.
	if len(got) > before+after+2*len(ellipsis) {
		t.Errorf("Excerpt length = %d, window not applied", len(got))
	}
}

func TestExcerpt_TrimsAtBodyStart(t *testing.T) {
	body := "budget talk " + strings.Repeat("x", 300)
	got := Excerpt(body, []string{"budget"})

	if strings.HasPrefix(got, "…") {
		t.Errorf("Excerpt = %q, no leading ellipsis when match is at the start", got)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Excerpt = %q, want trailing ellipsis", got)
	}
}

func TestExcerpt_CaseInsensitive(t *testing.T) {
	got := Excerpt("The BUDGET hearing", []string{"budget"})
	if !strings.Contains(got, "BUDGET") {
		t.Errorf("Excerpt = %q, should match case-insensitively and keep original case", got)
	}
}

func TestHighlight(t *testing.T) {
	spans := Highlight("solid waste budget discussion", []string{"budget"})
	want := []Span{
		{Text: "solid waste "},
		{Text: "budget", Emphasized: true},
		{Text: " discussion"},
	}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Highlight = %+v, want %+v", spans, want)
	}
}

func TestHighlight_PreservesAllText(t *testing.T) {
	text := "Budget review: budget, BUDGET and budgeting."
	spans := Highlight(text, []string{"budget", "review"})

	var rebuilt strings.Builder
	for _, s := range spans {
		rebuilt.WriteString(s.Text)
	}
	if rebuilt.String() != text {
		t.Errorf("spans rebuild to %q, want %q", rebuilt.String(), text)
	}

	emphasized := 0
	for _, s := range spans {
		if s.Emphasized {
			emphasized++
			if !strings.EqualFold(s.Text, "budget") && !strings.EqualFold(s.Text, "review") {
				t.Errorf("unexpected emphasized span %q", s.Text)
			}
		}
	}
	// "Budget", "review", "budget", "BUDGET", and the prefix of
	// "budgeting" all match.
	if emphasized != 5 {
		t.Errorf("emphasized spans = %d, want 5", emphasized)
	}
}

func TestHighlight_NoTerms(t *testing.T) {
	spans := Highlight("plain text", nil)
	if !reflect.DeepEqual(spans, []Span{{Text: "plain text"}}) {
		t.Errorf("Highlight = %+v, want one plain span", spans)
	}
}

func TestHighlight_LowercasingChangesRuneWidth(t *testing.T) {
	// "Ⱥ" lowercases to a rune with a longer UTF-8 encoding, so byte
	// offsets in a lowered copy drift away from the source text.
	text := "Ⱥ zoning request"
	spans := Highlight(text, []string{"zoning"})

	var rebuilt strings.Builder
	for _, s := range spans {
		rebuilt.WriteString(s.Text)
	}
	if rebuilt.String() != text {
		t.Errorf("spans rebuild to %q, want %q", rebuilt.String(), text)
	}

	var emphasized []string
	for _, s := range spans {
		if s.Emphasized {
			emphasized = append(emphasized, s.Text)
		}
	}
	if len(emphasized) != 1 || emphasized[0] != "zoning" {
		t.Errorf("emphasized spans = %q, want exactly [zoning]", emphasized)
	}
}

func TestHighlight_MatchSpansFoldedRune(t *testing.T) {
	// "İ" lowercases to plain "i", a narrower rune; the emphasized span
	// must still cover the original text.
	spans := Highlight("İstanbul budget", []string{"istanbul"})
	if len(spans) == 0 || !spans[0].Emphasized || spans[0].Text != "İstanbul" {
		t.Errorf("Highlight = %+v, want İstanbul emphasized", spans)
	}
}

func TestExcerpt_LowercasingChangesRuneWidth(t *testing.T) {
	body := strings.Repeat("Ⱥ", 100) + "budget" + strings.Repeat("x", 200)
	got := Excerpt(body, []string{"budget"})

	if !strings.Contains(got, "budget") {
		t.Errorf("Excerpt = %q, window missed the match", got)
	}
}

func TestHighlight_LongestTermWinsAtSamePosition(t *testing.T) {
	spans := Highlight("budgeting", []string{"budget", "budgeting"})
	want := []Span{{Text: "budgeting", Emphasized: true}}
	if !reflect.DeepEqual(spans, want) {
		t.Errorf("Highlight = %+v, want %+v", spans, want)
	}
}
