// Package goquery implements link extraction with CSS selectors. Links are
// grouped by where they appear on the page (TOC, navigation, content,
// footer) so the crawler can prefer structural navigation over prose links.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/knowbase"
)

// Ensure LinkExtractor implements knowbase.LinkExtractor at compile time.
var _ knowbase.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds same-host links in HTML using universal CSS selectors
// that work across documentation frameworks.
type LinkExtractor struct{}

// NewLinkExtractor creates a LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// region maps one page area to a selector and priority.
type region struct {
	selector string
	priority knowbase.LinkPriority
	source   string
}

// Regions are scanned highest priority first; a URL appearing in several
// regions keeps its first (highest-priority) classification.
var regions = []region{
	{".toc a[href], .table-of-contents a[href], .sidebar a[href], aside a[href]", knowbase.PriorityTOC, "toc"},
	{`nav a[href], [role="navigation"] a[href], .nav a[href], .menu a[href], .navbar a[href]`, knowbase.PriorityNavigation, "nav"},
	{"main a[href], article a[href], .content a[href], .doc-content a[href]", knowbase.PriorityContent, "content"},
	{"footer a[href], .footer a[href]", knowbase.PriorityFooter, "footer"},
}

// ExtractLinks parses HTML and returns links resolved against baseURL,
// deduplicated by URL. Links pointing off the base URL's host and non-HTTP
// schemes (mailto:, javascript:, ...) are dropped. Pages without any of the
// recognized page areas fall back to a whole-document scan at content
// priority.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]knowbase.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, knowbase.Errorf(knowbase.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, knowbase.Errorf(knowbase.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []knowbase.DiscoveredLink

	collect := func(selector string, priority knowbase.LinkPriority, source string) {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			resolved, ok := resolve(base, href)
			if !ok || seen[resolved] {
				return
			}
			seen[resolved] = true
			links = append(links, knowbase.DiscoveredLink{
				URL:      resolved,
				Priority: priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   source,
			})
		})
	}

	for _, r := range regions {
		collect(r.selector, r.priority, r.source)
	}
	if len(links) == 0 {
		collect("a[href]", knowbase.PriorityContent, "content")
	}
	return links, nil
}

// resolve turns an href into an absolute same-host URL. The bool result is
// false when the link is unusable: empty, non-HTTP, unparseable, or pointing
// at another host.
func resolve(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || isNonHTTPLink(href) {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if !strings.EqualFold(resolved.Host, base.Host) {
		return "", false
	}
	return resolved.String(), true
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
