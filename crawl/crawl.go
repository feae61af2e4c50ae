// Package crawl provides bounded, same-origin, breadth-first web crawling.
// It coordinates fetching, content extraction, markdown conversion, and link
// discovery, and drives the crawl lifecycle of knowledge base sources.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/knowbase"
)

// Crawler defaults.
const (
	DefaultConcurrency = 4
	DefaultMaxPages    = 100
	DefaultTimeout     = 5 * time.Minute
)

// Crawler orchestrates bounded breadth-first crawls. Fetcher, Extractor,
// Converter and Links are required; the remaining collaborators are optional.
type Crawler struct {
	Fetcher   knowbase.Fetcher
	Extractor knowbase.Extractor
	Converter knowbase.Converter
	Links     knowbase.LinkExtractor

	// Sitemaps, when set, pre-seeds the frontier from the site's sitemap
	// before link-following begins.
	Sitemaps knowbase.SitemapService

	// RateLimiter, when set, throttles fetches per domain.
	RateLimiter knowbase.DomainLimiter

	// KBs and Pages are required by CrawlSource only.
	KBs   knowbase.KnowledgeBaseService
	Pages knowbase.PageStore

	Concurrency int
	MaxPages    int
	Timeout     time.Duration
	RetryDelays []time.Duration
}

// Options bounds a single crawl run.
type Options struct {
	// MaxDepth is the maximum number of link hops from the seed (seed = 0).
	MaxDepth int

	// MaxPages caps the number of harvested pages. Reaching the cap is
	// policy, not failure.
	MaxPages int

	// Timeout bounds the whole crawl. Expiry before the first page is
	// harvested fails the crawl; afterwards it merely ends it.
	Timeout time.Duration
}

// PageError records one per-page failure. Individual page failures are
// aggregated and never abort the crawl.
type PageError struct {
	URL string
	Err error
}

// Result holds the outcome of a crawl: harvested pages plus per-page errors.
type Result struct {
	Pages  []*knowbase.PageContent
	Errors []PageError
}

// ProgressEvent reports crawl progress. Crawled is monotonically
// non-decreasing across events; Total is a best-effort estimate that may
// grow as new links are discovered.
type ProgressEvent struct {
	Crawled int
	Total   int
	URL     string
}

// ProgressFunc is called after each page is harvested.
type ProgressFunc func(ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	url   string
	depth int
	page  *knowbase.PageContent
	links []knowbase.DiscoveredLink
	err   error
}

// Crawl performs a bounded breadth-first traversal from seedURL. The seed is
// fetched first and synchronously: a seed failure fails the whole crawl.
// After that, per-page failures are recorded in the result's error list and
// the traversal continues. The crawl ends when the frontier empties, the
// page cap is reached, or the timeout expires.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, opts Options, progress ProgressFunc) (*Result, error) {
	seed, err := NormalizeURL(seedURL)
	if err != nil {
		return nil, knowbase.Errorf(knowbase.EINVALID, "invalid seed URL %q: %v", seedURL, err)
	}

	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = c.maxPages()
	}
	maxDepth := opts.MaxDepth
	if maxDepth < 0 {
		maxDepth = 0
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = c.timeout()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(knowbase.DiscoveredLink{URL: seed, Depth: 0, Priority: knowbase.PriorityNavigation})
	seedLink, _ := frontier.Pop() // marks the seed as seen

	// The seed is processed inline so its failure is fatal and deterministic.
	seedRes := c.processURL(ctx, seedLink)
	if seedRes.err != nil {
		return nil, knowbase.Errorf(knowbase.EUNAVAILABLE, "seed fetch failed for %q: %v", seed, seedRes.err)
	}

	result := &Result{}
	result.Pages = append(result.Pages, seedRes.page)
	c.enqueueLinks(frontier, seed, seedRes, maxDepth)
	notify(progress, result, frontier, 0, maxPages, seedRes.url)

	if c.Sitemaps != nil {
		// Sitemap URLs count as one hop from the seed, so they are always
		// within the depth budget. Discovery failure just means the crawl
		// relies on link-following alone.
		if urls, err := c.Sitemaps.DiscoverURLs(ctx, seed); err == nil {
			for _, u := range urls {
				if SameOrigin(seed, u) {
					frontier.Push(knowbase.DiscoveredLink{URL: u, Depth: 1, Priority: knowbase.PriorityTOC, Source: "sitemap"})
				}
			}
		}
	}

	c.walkFrontier(ctx, frontier, result, maxDepth, maxPages, seed, progress)
	return result, nil
}

// walkFrontier runs the worker pool over the frontier until a termination
// condition is met: frontier empty, page cap reached, or context done.
func (c *Crawler) walkFrontier(
	ctx context.Context,
	frontier *Frontier,
	result *Result,
	maxDepth, maxPages int,
	seed string,
	progress ProgressFunc,
) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	workCh := make(chan knowbase.DiscoveredLink)
	resultCh := make(chan crawlResult)

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range workCh {
				res := c.processURL(ctx, link)
				select {
				case resultCh <- res:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(resultCh)
	}()

	handle := func(res crawlResult) {
		if res.err != nil {
			result.Errors = append(result.Errors, PageError{URL: res.url, Err: res.err})
			return
		}
		if len(result.Pages) >= maxPages {
			return
		}
		result.Pages = append(result.Pages, res.page)
		c.enqueueLinks(frontier, seed, res, maxDepth)
		notify(progress, result, frontier, 0, maxPages, res.url)
	}

	pending := 0
	var next *knowbase.DiscoveredLink
	if link, ok := frontier.Pop(); ok {
		next = &link
	}

coordinatorLoop:
	for {
		if ctx.Err() != nil {
			break
		}
		if next == nil && pending == 0 {
			break
		}

		// Stop dispatching once harvested plus in-flight work could fill
		// the page budget; keep draining what is already in flight.
		canDispatch := next != nil && len(result.Pages)+pending < maxPages

		switch {
		case canDispatch:
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case workCh <- *next:
				pending++
				next = nil
			case res := <-resultCh:
				pending--
				handle(res)
			}
		case pending > 0:
			select {
			case <-ctx.Done():
				break coordinatorLoop
			case res := <-resultCh:
				pending--
				handle(res)
			}
		default:
			// Work remains queued but the page budget is spent.
			break coordinatorLoop
		}

		if next == nil {
			if link, ok := frontier.Pop(); ok {
				next = &link
			}
		}
	}

	close(workCh)

	// Drain in-flight results so harvested pages are not lost; handle
	// enforces the page cap. Workers blocked on resultCh exit via ctx.
	drainTimeout := time.After(5 * time.Second)
	for pending > 0 {
		select {
		case res, ok := <-resultCh:
			if !ok {
				return
			}
			pending--
			handle(res)
		case <-drainTimeout:
			return
		}
	}
}

// processURL fetches one URL and turns it into a page plus discovered links.
func (c *Crawler) processURL(ctx context.Context, link knowbase.DiscoveredLink) crawlResult {
	res := crawlResult{url: link.URL, depth: link.Depth}

	if c.RateLimiter != nil {
		u, err := url.Parse(link.URL)
		if err != nil {
			res.err = err
			return res
		}
		if err := c.RateLimiter.Wait(ctx, u.Host); err != nil {
			res.err = err
			return res
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, link.URL, c.Fetcher.Fetch, delays)
	if err != nil {
		res.err = err
		return res
	}

	// Links come from the raw page so navigation areas are included even
	// though the extractor strips them from the content.
	if links, err := c.Links.ExtractLinks(html, link.URL); err == nil {
		res.links = links
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		res.err = err
		return res
	}

	text, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		res.err = err
		return res
	}

	page := &knowbase.PageContent{
		URL:   link.URL,
		Title: extracted.Title,
		Text:  text,
	}
	for _, l := range res.links {
		page.Links = append(page.Links, l.URL)
	}
	res.page = page
	return res
}

// enqueueLinks pushes a result's same-origin links at depth+1, respecting the
// depth budget. The frontier handles normalization and deduplication.
func (c *Crawler) enqueueLinks(frontier *Frontier, seed string, res crawlResult, maxDepth int) {
	depth := res.depth + 1
	if depth > maxDepth {
		return
	}
	for _, link := range res.links {
		if !SameOrigin(seed, link.URL) {
			continue
		}
		link.Depth = depth
		frontier.Push(link)
	}
}

func notify(progress ProgressFunc, result *Result, frontier *Frontier, pending, maxPages int, currentURL string) {
	if progress == nil {
		return
	}
	crawled := len(result.Pages)
	total := crawled + pending + frontier.Len()
	if total > maxPages {
		total = maxPages
	}
	if total < crawled {
		total = crawled
	}
	progress(ProgressEvent{Crawled: crawled, Total: total, URL: currentURL})
}

func (c *Crawler) maxPages() int {
	if c.MaxPages > 0 {
		return c.MaxPages
	}
	return DefaultMaxPages
}

func (c *Crawler) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// CrawlSource crawls one registered source of a knowledge base and persists
// the harvested pages. The source moves to crawling for the duration and ends
// complete or error; partial page failures leave the source complete with a
// soft error message.
func (c *Crawler) CrawlSource(ctx context.Context, kbID, sourceID string, progress ProgressFunc) (*knowbase.Source, error) {
	kb, err := c.KBs.FindKnowledgeBaseByID(ctx, kbID)
	if err != nil {
		return nil, err
	}
	src := kb.FindSource(sourceID)
	if src == nil {
		return nil, knowbase.Errorf(knowbase.ENOTFOUND, "source %q not found in knowledge base %q", sourceID, kbID)
	}

	crawling := knowbase.SourceStatusCrawling
	if _, err := c.KBs.UpdateSource(ctx, kbID, sourceID, knowbase.SourceUpdate{Status: &crawling}); err != nil {
		return nil, err
	}

	opts := Options{
		MaxDepth: kb.CrawlDepth,
		MaxPages: c.maxPages(),
		Timeout:  c.timeout(),
	}
	res, err := c.Crawl(ctx, src.URL, opts, progress)
	if err != nil {
		failed := knowbase.SourceStatusError
		msg := knowbase.ErrorMessage(err)
		if _, uerr := c.KBs.UpdateSource(ctx, kbID, sourceID, knowbase.SourceUpdate{Status: &failed, Error: &msg}); uerr != nil {
			return nil, uerr
		}
		return nil, err
	}

	saved := 0
	saveErrs := 0
	for _, page := range res.Pages {
		if err := c.Pages.SavePage(ctx, kbID, sourceID, page); err != nil {
			saveErrs++
			continue
		}
		saved++
	}

	complete := knowbase.SourceStatusComplete
	now := time.Now().UTC()
	var msg string
	if n := len(res.Errors) + saveErrs; n > 0 {
		msg = fmt.Sprintf("%d pages failed during crawl", n)
	}
	return c.KBs.UpdateSource(ctx, kbID, sourceID, knowbase.SourceUpdate{
		Status:        &complete,
		PageCount:     &saved,
		Error:         &msg,
		LastCrawledAt: &now,
	})
}
