package search

import (
	"net/url"
	"strconv"
	"time"

	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// SortKey selects the final result ordering.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortTitle     SortKey = "title"
)

const dateLayout = "2006-01-02"

// Filters are the structural predicates applied before relevance
// scoring. Zero values mean "filter not active".
type Filters struct {
	Type            models.DocType
	Year            int
	DateStart       time.Time
	DateEnd         time.Time
	HasAttachment   *bool
	MeetingContains string
	TitleContains   string
}

// State is one complete, shareable search: free text, filters, and
// sort order.
type State struct {
	Query   string
	Filters Filters
	Sort    SortKey
}

// Encode serializes a State to a URL query string. Inactive filters
// produce no key; Encode and ParseState are inverses.
func (s State) Encode() string {
	values := url.Values{}
	if s.Query != "" {
		values.Set("q", s.Query)
	}
	if s.Filters.Type.Valid() {
		values.Set("type", string(s.Filters.Type))
	}
	if s.Filters.Year != 0 {
		values.Set("year", strconv.Itoa(s.Filters.Year))
	}
	if !s.Filters.DateStart.IsZero() {
		values.Set("start", s.Filters.DateStart.Format(dateLayout))
	}
	if !s.Filters.DateEnd.IsZero() {
		values.Set("end", s.Filters.DateEnd.Format(dateLayout))
	}
	if s.Filters.HasAttachment != nil {
		if *s.Filters.HasAttachment {
			values.Set("pdf", "1")
		} else {
			values.Set("pdf", "0")
		}
	}
	if s.Filters.MeetingContains != "" {
		values.Set("meet", s.Filters.MeetingContains)
	}
	if s.Filters.TitleContains != "" {
		values.Set("title", s.Filters.TitleContains)
	}
	if s.Sort != "" && s.Sort != SortRelevance {
		values.Set("sort", string(s.Sort))
	}
	return values.Encode()
}

// ParseState rebuilds a State from a query string. Malformed values
// (bad year, bad date, unknown sort) deactivate that filter rather
// than producing an error.
func ParseState(raw string) State {
	state := State{Sort: SortRelevance}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return state
	}

	state.Query = values.Get("q")

	if t, ok := models.ParseType(values.Get("type")); ok {
		state.Filters.Type = t
	}
	if year, err := strconv.Atoi(values.Get("year")); err == nil && year != 0 {
		state.Filters.Year = year
	}
	if d, err := time.Parse(dateLayout, values.Get("start")); err == nil {
		state.Filters.DateStart = d
	}
	if d, err := time.Parse(dateLayout, values.Get("end")); err == nil {
		state.Filters.DateEnd = d
	}
	switch values.Get("pdf") {
	case "1":
		yes := true
		state.Filters.HasAttachment = &yes
	case "0":
		no := false
		state.Filters.HasAttachment = &no
	}
	state.Filters.MeetingContains = values.Get("meet")
	state.Filters.TitleContains = values.Get("title")

	switch key := SortKey(values.Get("sort")); key {
	case SortNewest, SortOldest, SortTitle:
		state.Sort = key
	}

	return state
}
