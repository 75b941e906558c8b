// Package classifier infers document type, date, and meeting label
// from a URL and extracted body text.
//
// All inference is an ordered cascade of heuristics: each rule list is
// evaluated in sequence and the first match wins. The priorities are
// fixed constants, not confidence scores.
package classifier

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// Result holds the inferred metadata for one document. Date is always
// set (falling back to the harvest date); Meeting may be empty.
type Result struct {
	Type    models.DocType
	Date    time.Time
	Meeting string
}

// Classify infers metadata for a document given its URL, extracted
// body text (may be empty), and the harvest run's current time.
func Classify(rawURL, body string, harvestTime time.Time) Result {
	return Result{
		Type:    InferType(rawURL, body),
		Date:    InferDate(rawURL, body, harvestTime),
		Meeting: InferMeeting(body),
	}
}

// urlTypeRules maps URL path substrings to document types, checked in
// order. "minute" deliberately also matches "minutes".
var urlTypeRules = []struct {
	substr string
	typ    models.DocType
}{
	{"agenda", models.TypeAgenda},
	{"minute", models.TypeMinutes},
	{"resolution", models.TypeResolution},
}

// bodyTypeRules maps body-text substrings to document types. The
// Resolution → Minutes → Agenda order is a fixed tie-break priority,
// not a frequency ranking.
var bodyTypeRules = []struct {
	substr string
	typ    models.DocType
}{
	{"resolution", models.TypeResolution},
	{"minutes", models.TypeMinutes},
	{"agenda", models.TypeAgenda},
}

// InferType classifies a document: URL substrings first, then body
// substrings, then the Agenda default.
func InferType(rawURL, body string) models.DocType {
	u := strings.ToLower(rawURL)
	for _, rule := range urlTypeRules {
		if strings.Contains(u, rule.substr) {
			return rule.typ
		}
	}

	b := strings.ToLower(body)
	for _, rule := range bodyTypeRules {
		if strings.Contains(b, rule.substr) {
			return rule.typ
		}
	}

	return models.TypeAgenda
}

// dateRule pairs a pattern with a positional parser. The 4-digit group
// is always the year regardless of its position in the match.
type dateRule struct {
	pattern *regexp.Regexp
	parse   func(groups []string) (year, month, day int)
}

// datePatterns is the date-inference priority order: year-first, then
// month-first. Each pattern is tried against the URL before any is
// tried against the body.
var datePatterns = []dateRule{
	{
		pattern: regexp.MustCompile(`(20\d{2})[/-](\d{1,2})[/-](\d{1,2})`),
		parse: func(g []string) (int, int, int) {
			return atoi(g[1]), atoi(g[2]), atoi(g[3])
		},
	},
	{
		pattern: regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](20\d{2})`),
		parse: func(g []string) (int, int, int) {
			return atoi(g[3]), atoi(g[1]), atoi(g[2])
		},
	},
}

// InferDate extracts a calendar date from the URL if possible, then
// from the body, then falls back to the harvest time. The result is a
// UTC day with no time component.
func InferDate(rawURL, body string, harvestTime time.Time) time.Time {
	for _, source := range []string{rawURL, body} {
		for _, rule := range datePatterns {
			groups := rule.pattern.FindStringSubmatch(source)
			if groups == nil {
				continue
			}
			year, month, day := rule.parse(groups)
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}
	return models.Day(harvestTime)
}

var (
	meetingGate   = regexp.MustCompile(`(?i)regular|special`)
	meetingPhrase = regexp.MustCompile(`(?i)Regular Session|Special Called`)
)

// InferMeeting captures the first "Regular Session" or "Special
// Called" phrase from the body. The capture is only attempted when the
// body contains "regular" or "special" at all; a triggering substring
// without the full phrase leaves the label empty.
func InferMeeting(body string) string {
	if !meetingGate.MatchString(body) {
		return ""
	}
	return meetingPhrase.FindString(body)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
