package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/knowbase"
	"github.com/fwojciec/knowbase/crawl"
	"github.com/fwojciec/knowbase/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site maps normalized URLs to the links found on each page. Absent URLs
// fail to fetch.
type site map[string][]string

// newTestCrawler builds a Crawler backed by a fake site. Retries are
// disabled so failing pages fail fast.
func newTestCrawler(pages site) *crawl.Crawler {
	return &crawl.Crawler{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if _, ok := pages[url]; !ok {
					return "", errors.New("404 not found")
				}
				return "<html>" + url + "</html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*knowbase.ExtractResult, error) {
				return &knowbase.ExtractResult{Title: "Title", ContentHTML: html}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "text of " + html, nil
			},
		},
		Links: &mock.LinkExtractor{
			ExtractLinksFn: func(html, baseURL string) ([]knowbase.DiscoveredLink, error) {
				var links []knowbase.DiscoveredLink
				for _, u := range pages[baseURL] {
					links = append(links, knowbase.DiscoveredLink{URL: u, Priority: knowbase.PriorityContent})
				}
				return links, nil
			},
		},
		Concurrency: 2,
		RetryDelays: []time.Duration{},
	}
}

func pageURLs(res *crawl.Result) []string {
	urls := make([]string, 0, len(res.Pages))
	for _, p := range res.Pages {
		urls = append(urls, p.URL)
	}
	sort.Strings(urls)
	return urls
}

func TestCrawler_crawls_same_origin_links(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com/docs":   {"https://example.com/docs/a", "https://example.com/docs/b", "https://other.com/external"},
		"https://example.com/docs/a": nil,
		"https://example.com/docs/b": nil,
	})

	res, err := c.Crawl(context.Background(), "https://example.com/docs", crawl.Options{MaxDepth: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/docs",
		"https://example.com/docs/a",
		"https://example.com/docs/b",
	}, pageURLs(res))
	assert.Empty(t, res.Errors)
}

func TestCrawler_seed_failure_is_fatal(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{})

	_, err := c.Crawl(context.Background(), "https://example.com/missing", crawl.Options{MaxDepth: 1}, nil)
	require.Error(t, err)
	assert.Equal(t, knowbase.EUNAVAILABLE, knowbase.ErrorCode(err))
}

func TestCrawler_invalid_seed(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{})

	_, err := c.Crawl(context.Background(), "http://exa mple.com", crawl.Options{}, nil)
	require.Error(t, err)
	assert.Equal(t, knowbase.EINVALID, knowbase.ErrorCode(err))
}

func TestCrawler_page_failures_do_not_abort(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com":    {"https://example.com/broken", "https://example.com/ok"},
		"https://example.com/ok": nil,
	})

	res, err := c.Crawl(context.Background(), "https://example.com", crawl.Options{MaxDepth: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com", "https://example.com/ok"}, pageURLs(res))
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "https://example.com/broken", res.Errors[0].URL)
}

func TestCrawler_respects_max_depth(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com/0": {"https://example.com/1"},
		"https://example.com/1": {"https://example.com/2"},
		"https://example.com/2": {"https://example.com/3"},
		"https://example.com/3": nil,
	})

	res, err := c.Crawl(context.Background(), "https://example.com/0", crawl.Options{MaxDepth: 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/0",
		"https://example.com/1",
		"https://example.com/2",
	}, pageURLs(res))
}

func TestCrawler_respects_max_pages(t *testing.T) {
	t.Parallel()

	pages := site{"https://example.com/hub": nil}
	for i := 0; i < 20; i++ {
		u := fmt.Sprintf("https://example.com/p%02d", i)
		pages["https://example.com/hub"] = append(pages["https://example.com/hub"], u)
		pages[u] = nil
	}
	c := newTestCrawler(pages)

	res, err := c.Crawl(context.Background(), "https://example.com/hub", crawl.Options{MaxDepth: 1, MaxPages: 5}, nil)
	require.NoError(t, err)
	assert.Len(t, res.Pages, 5)
}

func TestCrawler_does_not_revisit_url_variants(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com/docs":   {"https://example.com/docs/a", "https://EXAMPLE.com/docs/a/", "https://example.com/docs/a#x"},
		"https://example.com/docs/a": {"https://example.com/docs"},
	})

	res, err := c.Crawl(context.Background(), "https://example.com/docs", crawl.Options{MaxDepth: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/docs", "https://example.com/docs/a"}, pageURLs(res))
}

func TestCrawler_progress_is_monotonic(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com":   {"https://example.com/a", "https://example.com/b"},
		"https://example.com/a": nil,
		"https://example.com/b": nil,
	})

	var mu sync.Mutex
	var crawled []int
	progress := func(ev crawl.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		crawled = append(crawled, ev.Crawled)
		assert.GreaterOrEqual(t, ev.Total, ev.Crawled)
	}

	res, err := c.Crawl(context.Background(), "https://example.com", crawl.Options{MaxDepth: 1}, progress)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, crawled)
	for i := 1; i < len(crawled); i++ {
		assert.GreaterOrEqual(t, crawled[i], crawled[i-1])
	}
	assert.Equal(t, len(res.Pages), crawled[len(crawled)-1])
}

func TestCrawler_seeds_from_sitemap(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com/docs":        nil,
		"https://example.com/docs/hidden": nil,
	})
	c.Sitemaps = &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
			return []string{"https://example.com/docs/hidden", "https://other.com/elsewhere"}, nil
		},
	}

	res, err := c.Crawl(context.Background(), "https://example.com/docs", crawl.Options{MaxDepth: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/docs", "https://example.com/docs/hidden"}, pageURLs(res))
}

func TestCrawler_sitemap_failure_is_tolerated(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{"https://example.com/docs": nil})
	c.Sitemaps = &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
			return nil, errors.New("robots.txt unreachable")
		},
	}

	res, err := c.Crawl(context.Background(), "https://example.com/docs", crawl.Options{MaxDepth: 1}, nil)
	require.NoError(t, err)
	assert.Len(t, res.Pages, 1)
}

func newSourceKB() *knowbase.KnowledgeBase {
	return &knowbase.KnowledgeBase{
		ID:         "kb1",
		Name:       "Docs",
		CrawlDepth: 1,
		Sources: []*knowbase.Source{
			{ID: "src1", URL: "https://example.com", Status: knowbase.SourceStatusPending},
		},
	}
}

func TestCrawlSource_completes_and_saves_pages(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com":   {"https://example.com/a"},
		"https://example.com/a": nil,
	})

	var mu sync.Mutex
	var saved []string
	var updates []knowbase.SourceUpdate
	c.Pages = &mock.PageStore{
		SavePageFn: func(ctx context.Context, kbID, sourceID string, page *knowbase.PageContent) error {
			mu.Lock()
			defer mu.Unlock()
			saved = append(saved, page.URL)
			return nil
		},
	}
	c.KBs = &mock.KnowledgeBaseService{
		FindKnowledgeBaseByIDFn: func(ctx context.Context, id string) (*knowbase.KnowledgeBase, error) {
			return newSourceKB(), nil
		},
		UpdateSourceFn: func(ctx context.Context, kbID, sourceID string, upd knowbase.SourceUpdate) (*knowbase.Source, error) {
			mu.Lock()
			defer mu.Unlock()
			updates = append(updates, upd)
			return &knowbase.Source{ID: sourceID, Status: *upd.Status}, nil
		},
	}

	src, err := c.CrawlSource(context.Background(), "kb1", "src1", nil)
	require.NoError(t, err)
	assert.Equal(t, knowbase.SourceStatusComplete, src.Status)
	assert.Len(t, saved, 2)

	require.Len(t, updates, 2)
	assert.Equal(t, knowbase.SourceStatusCrawling, *updates[0].Status)
	assert.Equal(t, knowbase.SourceStatusComplete, *updates[1].Status)
	require.NotNil(t, updates[1].PageCount)
	assert.Equal(t, 2, *updates[1].PageCount)
	require.NotNil(t, updates[1].Error)
	assert.Empty(t, *updates[1].Error)
	require.NotNil(t, updates[1].LastCrawledAt)
}

func TestCrawlSource_partial_failures_leave_soft_error(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{
		"https://example.com":    {"https://example.com/broken", "https://example.com/ok"},
		"https://example.com/ok": nil,
	})

	var mu sync.Mutex
	var lastUpdate knowbase.SourceUpdate
	c.Pages = &mock.PageStore{
		SavePageFn: func(ctx context.Context, kbID, sourceID string, page *knowbase.PageContent) error {
			return nil
		},
	}
	c.KBs = &mock.KnowledgeBaseService{
		FindKnowledgeBaseByIDFn: func(ctx context.Context, id string) (*knowbase.KnowledgeBase, error) {
			return newSourceKB(), nil
		},
		UpdateSourceFn: func(ctx context.Context, kbID, sourceID string, upd knowbase.SourceUpdate) (*knowbase.Source, error) {
			mu.Lock()
			defer mu.Unlock()
			lastUpdate = upd
			return &knowbase.Source{ID: sourceID, Status: *upd.Status}, nil
		},
	}

	src, err := c.CrawlSource(context.Background(), "kb1", "src1", nil)
	require.NoError(t, err)
	assert.Equal(t, knowbase.SourceStatusComplete, src.Status)

	mu.Lock()
	defer mu.Unlock()
	require.NotNil(t, lastUpdate.Error)
	assert.Equal(t, "1 pages failed during crawl", *lastUpdate.Error)
}

func TestCrawlSource_seed_failure_marks_source_error(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{})

	var mu sync.Mutex
	var updates []knowbase.SourceUpdate
	c.Pages = &mock.PageStore{}
	c.KBs = &mock.KnowledgeBaseService{
		FindKnowledgeBaseByIDFn: func(ctx context.Context, id string) (*knowbase.KnowledgeBase, error) {
			return newSourceKB(), nil
		},
		UpdateSourceFn: func(ctx context.Context, kbID, sourceID string, upd knowbase.SourceUpdate) (*knowbase.Source, error) {
			mu.Lock()
			defer mu.Unlock()
			updates = append(updates, upd)
			return &knowbase.Source{ID: sourceID, Status: *upd.Status}, nil
		},
	}

	_, err := c.CrawlSource(context.Background(), "kb1", "src1", nil)
	require.Error(t, err)
	assert.Equal(t, knowbase.EUNAVAILABLE, knowbase.ErrorCode(err))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, updates, 2)
	assert.Equal(t, knowbase.SourceStatusError, *updates[1].Status)
	require.NotNil(t, updates[1].Error)
	assert.NotEmpty(t, *updates[1].Error)
}

func TestCrawlSource_source_not_found(t *testing.T) {
	t.Parallel()

	c := newTestCrawler(site{})
	c.KBs = &mock.KnowledgeBaseService{
		FindKnowledgeBaseByIDFn: func(ctx context.Context, id string) (*knowbase.KnowledgeBase, error) {
			return newSourceKB(), nil
		},
	}

	_, err := c.CrawlSource(context.Background(), "kb1", "nope", nil)
	require.Error(t, err)
	assert.Equal(t, knowbase.ENOTFOUND, knowbase.ErrorCode(err))
}
