// Package crawler discovers commission document attachments reachable
// from a root page.
package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
)

// Config holds crawler configuration.
type Config struct {
	AllowedDomain string // empty = derive from the root URL
	Delay         time.Duration
	Timeout       time.Duration
	UserAgent     string
	Parallelism   int
}

// Page is one crawled HTML page, kept for the harvest archive.
type Page struct {
	URL  string
	HTML string
}

// Result holds the outcome of one crawl: the deduplicated attachment
// frontier (in discovery order) and the HTML pages that were visited.
type Result struct {
	Attachments []string
	Pages       []Page
}

// Crawler walks a site two hops deep: the root page, the same-domain
// section pages it links to, and the PDF links found on either. PDF
// links are collected without being dereferenced.
type Crawler struct {
	config Config
}

// New creates a Crawler with the given configuration.
func New(config Config) *Crawler {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Parallelism == 0 {
		config.Parallelism = 2
	}
	return &Crawler{config: config}
}

// Discover crawls from rootURL and returns the attachment frontier.
// A failed section-page fetch is logged and skipped; a failed root
// fetch is fatal because there is no frontier to work from.
func (c *Crawler) Discover(ctx context.Context, rootURL string) (*Result, error) {
	parsed, err := url.Parse(rootURL)
	if err != nil {
		return nil, fmt.Errorf("parse root url: %w", err)
	}

	domain := c.config.AllowedDomain
	if domain == "" {
		domain = parsed.Hostname()
	}

	var (
		mu        sync.Mutex
		result    Result
		seen      = make(map[string]bool)
		rootErr   error
		cancelled bool
	)

	collector := colly.NewCollector(
		colly.MaxDepth(2),
		colly.UserAgent(c.config.UserAgent),
		colly.AllowedDomains(domain),
	)
	collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       c.config.Delay,
		Parallelism: c.config.Parallelism,
	})
	collector.SetRequestTimeout(c.config.Timeout)

	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			slog.Debug("crawl cancelled", "url", r.URL.String())
			r.Abort()
			mu.Lock()
			cancelled = true
			mu.Unlock()
		}
	})

	collector.OnResponse(func(r *colly.Response) {
		mu.Lock()
		result.Pages = append(result.Pages, Page{
			URL:  r.Request.URL.String(),
			HTML: string(r.Body),
		})
		mu.Unlock()
		slog.Debug("crawled page", "url", r.Request.URL.String(), "size", len(r.Body))
	})

	collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
		link := e.Request.AbsoluteURL(e.Attr("href"))
		if link == "" {
			return
		}

		if IsPDFLink(link) {
			mu.Lock()
			if !seen[link] {
				seen[link] = true
				result.Attachments = append(result.Attachments, link)
			}
			mu.Unlock()
			return
		}

		// Same-domain enforcement for page visits is handled by the
		// collector's allowed-domain list; revisits are deduplicated
		// by colly itself.
		e.Request.Visit(link)
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r.Request.Depth <= 1 {
			mu.Lock()
			rootErr = err
			mu.Unlock()
			return
		}
		// Section pages are recoverable: their contribution is empty.
		slog.Warn("page fetch failed, skipping", "url", r.Request.URL.String(), "error", err)
	})

	if err := collector.Visit(rootURL); err != nil {
		return nil, fmt.Errorf("fetch root page %s: %w", rootURL, err)
	}
	collector.Wait()

	if cancelled {
		return nil, ctx.Err()
	}
	if rootErr != nil {
		return nil, fmt.Errorf("fetch root page %s: %w", rootURL, rootErr)
	}

	slog.Debug("crawl complete", "root", rootURL,
		"attachments", len(result.Attachments), "pages", len(result.Pages))
	return &result, nil
}

// IsPDFLink reports whether a URL's path ends in ".pdf",
// case-insensitively.
func IsPDFLink(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), ".pdf")
}
