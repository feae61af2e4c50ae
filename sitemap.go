package knowbase

import "context"

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs from a site's sitemap. It checks robots.txt
	// for sitemap directives, then falls back to /sitemap.xml; sitemap
	// indexes are resolved recursively. When baseURL has a non-root path,
	// only URLs under that path are returned. An empty result is not an
	// error; it means the crawler must discover links on its own.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
