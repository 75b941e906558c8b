// Package store persists harvest output: the corpus snapshot, the
// crawled-page archive, and per-run manifests.
package store

import (
	"context"

	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// Manifest describes one harvest run.
type Manifest struct {
	SourceURL   string         `json:"source_url"`
	Timestamp   string         `json:"timestamp"`
	PageCount   int            `json:"page_count"`
	RecordCount int            `json:"record_count"`
	Pages       []ManifestPage `json:"pages"`
}

// ManifestPage is one archived page entry.
type ManifestPage struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Store is the durable backend a harvest run writes to. The corpus is
// a single snapshot replaced wholesale per run; pages and manifests
// accumulate under run-specific prefixes.
type Store interface {
	// PutCorpus replaces the current corpus snapshot.
	PutCorpus(ctx context.Context, docs []models.Document) error
	// GetCorpus reads the current corpus snapshot.
	GetCorpus(ctx context.Context) ([]models.Document, error)
	// PutPage writes one archived page under a run prefix.
	PutPage(ctx context.Context, prefix, filename, content string) error
	// PutManifest writes the run manifest under a run prefix.
	PutManifest(ctx context.Context, prefix string, m Manifest) error
}
