package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/knowbase"
)

var _ knowbase.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps. Sitemap locations come
// from robots.txt Sitemap: directives, with /sitemap.xml as the fallback;
// sitemap index files are followed recursively.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a SitemapService using the given HTTP client.
// A nil client means http.DefaultClient.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs finds URLs from the site's sitemap. When baseURL has a
// non-root path, only URLs under that path are returned. No sitemap is not
// an error: the result is simply empty.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// Sitemaps live at the domain root even when the base URL points into a
	// subtree.
	root := *base
	root.Path = ""

	sitemapURLs, err := s.locateSitemaps(ctx, &root)
	if err != nil {
		return nil, err
	}

	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	var urls []string
	for _, sitemapURL := range sitemapURLs {
		found, err := s.readSitemap(ctx, sitemapURL, seenSitemaps)
		if err != nil {
			return nil, err
		}
		for _, u := range found {
			if seenURLs[u] {
				continue
			}
			seenURLs[u] = true
			if underPath(u, base.Path) {
				urls = append(urls, u)
			}
		}
	}
	return urls, nil
}

// locateSitemaps finds sitemap URLs from robots.txt, falling back to the
// conventional /sitemap.xml location.
func (s *SitemapService) locateSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if sitemaps, err := s.sitemapsFromRobots(ctx, robotsURL); err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if ok {
		return []string{fallback}, nil
	}
	return nil, nil
}

// sitemapsFromRobots extracts Sitemap: directives from a robots.txt file.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		directive, value, ok := strings.Cut(line, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(directive), "sitemap") {
			continue
		}
		// The value itself contains a colon (the URL scheme), so re-cut
		// from the original line.
		value = strings.TrimSpace(line[len(directive)+1:])
		if value != "" {
			sitemaps = append(sitemaps, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

// readSitemap fetches and parses one sitemap document. Index documents are
// followed recursively; seen guards against cycles.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML at %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		var urls []string
		for _, el := range root.SelectElements("sitemap") {
			loc := elementText(el, "loc")
			if loc == "" {
				continue
			}
			nested, err := s.readSitemap(ctx, loc, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, nested...)
		}
		return urls, nil
	}

	var urls []string
	for _, el := range root.SelectElements("url") {
		if loc := elementText(el, "loc"); loc != "" {
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

func elementText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// underPath reports whether the URL's path sits at or below prefix. An empty
// or root prefix matches everything; matching respects path segment
// boundaries, so /docs does not match /documentation.
func underPath(rawURL, prefix string) bool {
	if prefix == "" || prefix == "/" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if u.Path == prefix {
		return true
	}
	return strings.HasPrefix(u.Path, prefix+"/")
}

func (s *SitemapService) get(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}
	return resp.Body, nil
}

func (s *SitemapService) exists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
