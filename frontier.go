package knowbase

import "context"

// LinkPriority orders links discovered on the same page (higher = earlier).
// It affects enqueue order only; the frontier itself is breadth-first.
type LinkPriority int

// Link priority levels.
const (
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink represents a URL found during crawling.
type DiscoveredLink struct {
	URL      string
	Depth    int // link hops from the seed; the seed is depth 0
	Priority LinkPriority
	Text     string
	Source   string // "nav", "toc", "content", "footer"
}

// LinkExtractor parses HTML and returns discovered links with priority.
// The baseURL is used to resolve relative URLs; links pointing off the base
// URL's host are dropped.
type LinkExtractor interface {
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
