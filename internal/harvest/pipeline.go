// Package harvest orchestrates one full pipeline run: discover
// attachments, extract and classify each document, assemble the
// corpus, and write it to the store.
package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/ews-cloud/hawkins-county-commission-search/internal/classifier"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/crawler"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/extractor"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/processor"
	"github.com/ews-cloud/hawkins-county-commission-search/internal/store"
	"github.com/ews-cloud/hawkins-county-commission-search/pkg/models"
)

// Discoverer finds the attachment frontier reachable from a root URL.
type Discoverer interface {
	Discover(ctx context.Context, rootURL string) (*crawler.Result, error)
}

// Fetcher retrieves the raw bytes of one URL.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// Extractor converts attachment bytes into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Config holds pipeline configuration.
type Config struct {
	Workers int // concurrent attachment fetches; defaults to 4
}

// Result holds the accounting for one harvest run.
type Result struct {
	Attachments   int // attachment URLs discovered
	Records       int // records assembled into the corpus
	PagesArchived int
	Prefix        string // store prefix for this run's archive
	Duration      time.Duration
	Errors        []error // recoverable per-document failures
}

// Pipeline runs the harvest flow end to end.
type Pipeline struct {
	discoverer Discoverer
	fetcher    Fetcher
	extractor  Extractor
	store      store.Store
	workers    int
	now        func() time.Time
}

// New creates a Pipeline.
func New(d Discoverer, f Fetcher, e Extractor, st store.Store, config Config) *Pipeline {
	workers := config.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Pipeline{
		discoverer: d,
		fetcher:    f,
		extractor:  e,
		store:      st,
		workers:    workers,
		now:        time.Now,
	}
}

// Run executes one harvest. Per-document failures are recoverable and
// collected in the Result; the run fails only when discovery finds no
// frontier, the corpus cannot be written, or the context is cancelled.
// A cancelled run writes nothing.
func (p *Pipeline) Run(ctx context.Context, rootURL string) (*Result, error) {
	start := p.now()
	result := &Result{}

	discovery, err := p.discoverer.Discover(ctx, rootURL)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	result.Attachments = len(discovery.Attachments)
	slog.Info("discovery complete", "root", rootURL,
		"attachments", result.Attachments, "pages", len(discovery.Pages))

	// Fetch and process attachments concurrently, but keep each
	// outcome in its frontier slot so assembly stays deterministic.
	slots := make([]*models.Document, len(discovery.Attachments))
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		sem = make(chan struct{}, p.workers)
	)

	for i, attachmentURL := range discovery.Attachments {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(slot int, u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			doc, err := p.processAttachment(ctx, u)
			if err != nil {
				slog.Warn("skipping document", "url", u, "error", err)
				mu.Lock()
				result.Errors = append(result.Errors, err)
				mu.Unlock()
				return
			}
			slots[slot] = doc
		}(i, attachmentURL)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	corpus := assemble(slots)
	result.Records = len(corpus)

	result.Prefix = p.runPrefix(rootURL)
	result.PagesArchived = p.archivePages(ctx, result.Prefix, rootURL, discovery, corpus)

	if err := p.store.PutCorpus(ctx, corpus); err != nil {
		return nil, fmt.Errorf("write corpus: %w", err)
	}

	result.Duration = p.now().Sub(start)
	slog.Info("harvest complete", "records", result.Records,
		"errors", len(result.Errors), "duration", result.Duration)
	return result, nil
}

// processAttachment fetches, extracts, and classifies one attachment.
func (p *Pipeline) processAttachment(ctx context.Context, attachmentURL string) (*models.Document, error) {
	data, err := p.fetcher.Get(ctx, attachmentURL)
	if err != nil {
		return nil, err
	}

	text, err := p.extractor.Extract(data)
	if err != nil {
		return nil, &extractor.ExtractionError{URL: attachmentURL, Err: err}
	}

	meta := classifier.Classify(attachmentURL, text, p.now())

	doc := models.New(attachmentURL, models.TitleFromURL(attachmentURL), meta.Date, meta.Type)
	doc.Meeting = meta.Meeting
	doc.AttachmentURL = attachmentURL
	doc.Body = text
	return &doc, nil
}

// assemble drops failed slots, deduplicates by record ID
// (first-seen-wins), and sorts by date descending with discovery-order
// ties.
func assemble(slots []*models.Document) []models.Document {
	corpus := make([]models.Document, 0, len(slots))
	seen := make(map[string]bool)
	for _, doc := range slots {
		if doc == nil || seen[doc.ID] {
			continue
		}
		seen[doc.ID] = true
		corpus = append(corpus, *doc)
	}

	sort.SliceStable(corpus, func(i, j int) bool {
		return corpus[i].Date.After(corpus[j].Date)
	})
	return corpus
}

// archivePages converts the crawled section pages to Markdown and
// writes them, with a run manifest, under the run prefix. Archive
// failures never fail the run.
func (p *Pipeline) archivePages(ctx context.Context, prefix, rootURL string, discovery *crawler.Result, corpus []models.Document) int {
	archived := 0
	var pages []store.ManifestPage
	for _, page := range discovery.Pages {
		md, err := processor.ToMarkdown(page.HTML)
		if err != nil {
			slog.Warn("page conversion failed", "url", page.URL, "error", err)
			continue
		}
		filename := models.GenerateDocumentID(page.URL) + ".md"
		if err := p.store.PutPage(ctx, prefix, filename, md); err != nil {
			slog.Warn("page archive failed", "url", page.URL, "error", err)
			continue
		}
		archived++
		pages = append(pages, store.ManifestPage{
			URL:   page.URL,
			Title: processor.PageTitle(page.HTML),
		})
	}

	manifest := store.Manifest{
		SourceURL:   rootURL,
		Timestamp:   p.now().UTC().Format(time.RFC3339),
		PageCount:   archived,
		RecordCount: len(corpus),
		Pages:       pages,
	}
	if err := p.store.PutManifest(ctx, prefix, manifest); err != nil {
		slog.Warn("manifest write failed", "prefix", prefix, "error", err)
	}
	return archived
}

// runPrefix builds a unique prefix for this run's archive:
// harvests/<host>/<timestamp>-<shortid>.
func (p *Pipeline) runPrefix(rootURL string) string {
	host := "unknown"
	if u, err := url.Parse(rootURL); err == nil && u.Host != "" {
		host = u.Host
	}
	now := p.now()
	timestamp := now.UTC().Format("2006-01-02T15-04-05")
	shortID := models.GenerateDocumentID(fmt.Sprintf("%s-%d", rootURL, now.UnixNano()))[:8]
	return fmt.Sprintf("harvests/%s/%s-%s", host, timestamp, shortID)
}
