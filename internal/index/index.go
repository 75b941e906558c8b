// Package index provides an in-memory inverted index over the corpus
// with field-weighted, prefix- and fuzzy-tolerant relevance scoring.
//
// An Index is immutable once built. Corpus changes are handled by
// building a fresh Index and swapping it in; readers never observe a
// half-built structure.
package index

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

type fieldID int

// Searchable fields. IDs, dates, and URLs are stored attributes only
// and are never tokenized.
const (
	fieldTitle fieldID = iota
	fieldBody
	fieldMeeting
	fieldType
	numFields
)

// fieldBoosts is the static relevance weight per field: title
// heaviest, then meeting and type, then body.
var fieldBoosts = [numFields]float64{
	fieldTitle:   4.0,
	fieldBody:    1.8,
	fieldMeeting: 2.0,
	fieldType:    2.0,
}

const (
	// Discounts for inexact token matches, so an exact hit always
	// outranks a prefix hit, which outranks a fuzzy hit.
	prefixWeight = 0.5
	fuzzyWeight  = 0.45

	// Fuzzy matching tolerates ⌈fuzzyRatio·len(term)⌉ edits, and only
	// for terms long enough that a single edit is meaningful.
	fuzzyRatio      = 0.2
	minFuzzyTermLen = 3
)

// Hit is one scored result.
type Hit struct {
	ID    string
	Score float64
}

// Index is a token → postings inverted index over the corpus.
type Index struct {
	ids        []string // record IDs in corpus order, for tie-breaks
	pos        map[string]int
	postings   map[string]map[int]*[numFields]int
	vocabulary []string // sorted tokens
}

// Build constructs a complete Index over the corpus. The given order
// is the tie-break order for equal scores.
func Build(docs []models.Document) *Index {
	idx := &Index{
		ids:      make([]string, len(docs)),
		pos:      make(map[string]int, len(docs)),
		postings: make(map[string]map[int]*[numFields]int),
	}

	for i, doc := range docs {
		idx.ids[i] = doc.ID
		idx.pos[doc.ID] = i
		fields := [numFields]string{
			fieldTitle:   doc.Title,
			fieldBody:    doc.Body,
			fieldMeeting: doc.Meeting,
			fieldType:    string(doc.Type),
		}
		for f, text := range fields {
			for _, token := range Tokenize(text) {
				byDoc := idx.postings[token]
				if byDoc == nil {
					byDoc = make(map[int]*[numFields]int)
					idx.postings[token] = byDoc
				}
				counts := byDoc[i]
				if counts == nil {
					counts = &[numFields]int{}
					byDoc[i] = counts
				}
				counts[f]++
			}
		}
	}

	idx.vocabulary = make([]string, 0, len(idx.postings))
	for token := range idx.postings {
		idx.vocabulary = append(idx.vocabulary, token)
	}
	sort.Strings(idx.vocabulary)

	return idx
}

// Search scores the corpus against a query. Every query term must
// match (exactly, by prefix, or fuzzily) for a document to be scored
// at all. A non-nil candidates set restricts scoring to those record
// IDs. Results are ordered by score descending, ties by corpus order.
func (idx *Index) Search(query string, candidates map[string]bool) []Hit {
	terms := Tokenize(query)
	if len(terms) == 0 {
		return nil
	}

	var total map[int]float64
	for _, term := range terms {
		termScores := idx.scoreTerm(term, candidates)
		if total == nil {
			total = termScores
			continue
		}
		// AND semantics: drop documents this term did not match.
		for doc := range total {
			score, ok := termScores[doc]
			if !ok {
				delete(total, doc)
				continue
			}
			total[doc] += score
		}
	}

	hits := make([]Hit, 0, len(total))
	for doc, score := range total {
		hits = append(hits, Hit{ID: idx.ids[doc], Score: score})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return idx.position(hits[i].ID) < idx.position(hits[j].ID)
	})
	return hits
}

// scoreTerm accumulates the field-weighted contribution of one query
// term across every vocabulary token it matches.
func (idx *Index) scoreTerm(term string, candidates map[string]bool) map[int]float64 {
	scores := make(map[int]float64)
	budget := editBudget(term)

	for _, token := range idx.vocabulary {
		var weight float64
		switch {
		case token == term:
			weight = 1.0
		case strings.HasPrefix(token, term):
			weight = prefixWeight
		case budget > 0 && withinEditDistance(token, term, budget):
			weight = fuzzyWeight
		default:
			continue
		}

		for doc, counts := range idx.postings[token] {
			if candidates != nil && !candidates[idx.ids[doc]] {
				continue
			}
			var fieldScore float64
			for f := fieldID(0); f < numFields; f++ {
				fieldScore += float64(counts[f]) * fieldBoosts[f]
			}
			scores[doc] += fieldScore * weight
		}
	}
	return scores
}

func (idx *Index) position(id string) int {
	return idx.pos[id]
}

// Tokenize lower-cases text and splits it into letter/digit runs.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// editBudget returns the fuzzy edit tolerance for a query term.
func editBudget(term string) int {
	if len(term) < minFuzzyTermLen {
		return 0
	}
	return int(math.Ceil(fuzzyRatio * float64(len(term))))
}

// withinEditDistance reports whether the Levenshtein distance between
// a and b is at most limit. The computation stops early once every path
// exceeds the bound.
func withinEditDistance(a, b string, limit int) bool {
	if abs(len(a)-len(b)) > limit {
		return false
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > limit {
			return false
		}
		prev, curr = curr, prev
	}
	return prev[len(b)] <= limit
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
