// Package search evaluates query states against a harvested corpus:
// structural filters first, then field-weighted relevance, then the
// final sort.
package search

import (
	"sort"
	"strings"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/index"
	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// Engine answers queries over one corpus snapshot. It is immutable
// after construction: a corpus change means building a new Engine and
// swapping it in, so concurrent readers never see a partial index.
type Engine struct {
	corpus []models.Document
	byID   map[string]int
	idx    *index.Index
}

// NewEngine builds a fully constructed Engine over the corpus. An
// empty corpus is valid and yields empty results.
func NewEngine(corpus []models.Document) *Engine {
	byID := make(map[string]int, len(corpus))
	for i, doc := range corpus {
		byID[doc.ID] = i
	}
	return &Engine{
		corpus: corpus,
		byID:   byID,
		idx:    index.Build(corpus),
	}
}

// Get returns the record with the given ID, if present.
func (e *Engine) Get(id string) (models.Document, bool) {
	i, ok := e.byID[id]
	if !ok {
		return models.Document{}, false
	}
	return e.corpus[i], true
}

// Size returns the number of records in the corpus.
func (e *Engine) Size() int { return len(e.corpus) }

// Evaluate runs one query state: conjunctive structural filters, then
// relevance scoring of the surviving candidates (when query text is
// present), then the requested sort. All sorts are stable.
func (e *Engine) Evaluate(state State) []models.Document {
	filtered := e.applyFilters(state.Filters)

	results := filtered
	if strings.TrimSpace(state.Query) != "" {
		candidates := make(map[string]bool, len(filtered))
		for _, doc := range filtered {
			candidates[doc.ID] = true
		}
		hits := e.idx.Search(state.Query, candidates)
		results = make([]models.Document, 0, len(hits))
		for _, hit := range hits {
			results = append(results, e.corpus[e.byID[hit.ID]])
		}
	}

	return sortDocs(results, state.Sort)
}

// Terms splits query text into the whitespace-separated terms used for
// excerpting and highlighting.
func Terms(query string) []string {
	return strings.Fields(query)
}

// applyFilters keeps the records passing every active predicate, in
// corpus order.
func (e *Engine) applyFilters(f Filters) []models.Document {
	out := make([]models.Document, 0, len(e.corpus))
	for _, doc := range e.corpus {
		if matches(doc, f) {
			out = append(out, doc)
		}
	}
	return out
}

func matches(doc models.Document, f Filters) bool {
	if f.Type != "" && doc.Type != f.Type {
		return false
	}
	if f.Year != 0 && doc.Year != f.Year {
		return false
	}
	if !f.DateStart.IsZero() && doc.Date.Before(f.DateStart) {
		return false
	}
	if !f.DateEnd.IsZero() && doc.Date.After(f.DateEnd) {
		return false
	}
	if f.HasAttachment != nil && *f.HasAttachment != (doc.AttachmentURL != "") {
		return false
	}
	if f.TitleContains != "" &&
		!strings.Contains(strings.ToLower(doc.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	if f.MeetingContains != "" &&
		!strings.Contains(strings.ToLower(doc.Meeting), strings.ToLower(f.MeetingContains)) {
		return false
	}
	return true
}

// sortDocs applies the final ordering. Relevance keeps the incoming
// order (index order for scored results, corpus order otherwise).
func sortDocs(docs []models.Document, key SortKey) []models.Document {
	switch key {
	case SortNewest:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Date.After(docs[j].Date)
		})
	case SortOldest:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Date.Before(docs[j].Date)
		})
	case SortTitle:
		sort.SliceStable(docs, func(i, j int) bool {
			return strings.ToLower(docs[i].Title) < strings.ToLower(docs[j].Title)
		})
	}
	return docs
}
