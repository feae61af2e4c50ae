package knowbase

import (
	"context"
	"net/url"
	"time"
)

// Crawl depth bounds. Depth counts link hops from the seed URL; the seed
// itself is depth zero. Values outside the range are clamped, never rejected.
const (
	MinCrawlDepth = 1
	MaxCrawlDepth = 3
)

// ClampCrawlDepth forces depth into the [MinCrawlDepth, MaxCrawlDepth] range.
func ClampCrawlDepth(depth int) int {
	if depth < MinCrawlDepth {
		return MinCrawlDepth
	}
	if depth > MaxCrawlDepth {
		return MaxCrawlDepth
	}
	return depth
}

// SourceStatus describes where a source is in its crawl lifecycle.
type SourceStatus string

// Source lifecycle states. A source is created pending, moves to crawling
// while a crawl runs, and ends complete or error. A complete source may still
// carry a soft error message describing partial failures.
const (
	SourceStatusPending  SourceStatus = "pending"
	SourceStatusCrawling SourceStatus = "crawling"
	SourceStatusComplete SourceStatus = "complete"
	SourceStatusError    SourceStatus = "error"
)

// KnowledgeBase represents one named collection of crawled sources.
type KnowledgeBase struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	Sources    []*Source `json:"sources"`
	CrawlDepth int       `json:"crawlDepth"`
	TotalPages int       `json:"totalPages"`
}

// Validate returns an error if the knowledge base contains invalid fields.
func (kb *KnowledgeBase) Validate() error {
	if kb.Name == "" {
		return Errorf(EINVALID, "knowledge base name required")
	}
	if kb.CrawlDepth < MinCrawlDepth || kb.CrawlDepth > MaxCrawlDepth {
		return Errorf(EINVALID, "crawl depth must be between %d and %d", MinCrawlDepth, MaxCrawlDepth)
	}
	return nil
}

// RecomputeTotalPages restores the invariant that TotalPages is the sum of
// page counts over all sources. Call after every source mutation.
func (kb *KnowledgeBase) RecomputeTotalPages() {
	total := 0
	for _, src := range kb.Sources {
		total += src.PageCount
	}
	kb.TotalPages = total
}

// FindSource returns the source with the given ID, or nil if absent.
func (kb *KnowledgeBase) FindSource(sourceID string) *Source {
	for _, src := range kb.Sources {
		if src.ID == sourceID {
			return src
		}
	}
	return nil
}

// HasSourceURL reports whether the knowledge base already contains a source
// with the exact given URL.
func (kb *KnowledgeBase) HasSourceURL(rawURL string) bool {
	for _, src := range kb.Sources {
		if src.URL == rawURL {
			return true
		}
	}
	return false
}

// Source represents one crawlable URL registered with a knowledge base.
type Source struct {
	ID            string       `json:"id"`
	URL           string       `json:"url"`
	AddedAt       time.Time    `json:"addedAt"`
	LastCrawledAt *time.Time   `json:"lastCrawledAt,omitempty"`
	PageCount     int          `json:"pageCount"`
	Status        SourceStatus `json:"status"`
	Error         string       `json:"error,omitempty"`
}

// Validate returns an error if the source contains invalid fields.
func (s *Source) Validate() error {
	return ValidateSourceURL(s.URL)
}

// ValidateSourceURL rejects URLs that cannot be crawled: anything that fails
// to parse, is not absolute http(s), or has no host.
func ValidateSourceURL(rawURL string) error {
	if rawURL == "" {
		return Errorf(EINVALID, "source URL required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Errorf(EINVALID, "invalid source URL %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "source URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "source URL %q missing host", rawURL)
	}
	return nil
}

// SourceUpdate represents fields that can be updated on a source.
// Nil fields are left unchanged.
type SourceUpdate struct {
	Status        *SourceStatus
	PageCount     *int
	Error         *string
	LastCrawledAt *time.Time
}

// KnowledgeBaseService manages knowledge base metadata and source membership.
type KnowledgeBaseService interface {
	// CreateKnowledgeBase allocates a new knowledge base. The crawl depth is
	// clamped into [MinCrawlDepth, MaxCrawlDepth].
	CreateKnowledgeBase(ctx context.Context, name string, crawlDepth int) (*KnowledgeBase, error)

	// FindKnowledgeBaseByID retrieves a knowledge base by ID.
	// Returns ENOTFOUND if absent, ECORRUPT if the manifest cannot be parsed.
	FindKnowledgeBaseByID(ctx context.Context, id string) (*KnowledgeBase, error)

	// ListKnowledgeBases returns all readable knowledge bases.
	// Corrupt manifests are skipped; one bad knowledge base never fails the listing.
	ListKnowledgeBases(ctx context.Context) ([]*KnowledgeBase, error)

	// DeleteKnowledgeBase removes a knowledge base and everything under it.
	// Returns false (and no error) if the knowledge base was already gone.
	DeleteKnowledgeBase(ctx context.Context, id string) (bool, error)

	// AddSource registers a URL with a knowledge base.
	// Returns EINVALID for malformed URLs and ECONFLICT for duplicates;
	// neither mutates stored state.
	AddSource(ctx context.Context, kbID, rawURL string) (*Source, error)

	// RemoveSource deletes a source and all pages attributed to it, then
	// recomputes the page total. Returns false if the source was absent.
	RemoveSource(ctx context.Context, kbID, sourceID string) (bool, error)

	// UpdateSource applies a partial update to a source and recomputes the
	// page total. Returns ENOTFOUND if the knowledge base or source is absent.
	UpdateSource(ctx context.Context, kbID, sourceID string, upd SourceUpdate) (*Source, error)
}
